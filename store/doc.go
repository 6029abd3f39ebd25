// Copyright 2025 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store implements the in-memory entry store which merges every
// source document into one key space.
//
// A key may be defined by more than one source document. The store keeps
// every definition, indexed by key and then by source name, and derives the
// status of a key each time it is read:
//   - conflict: the key is defined in more than one source and at least one
//     definition differs.
//   - incomplete: the key has a single definition (or identical ones) missing
//     required fields.
//   - good: otherwise.
//
// Every mutation rewrites exactly the affected documents through a Codec
// before the in-memory state is changed, so a failed write leaves the store
// as it was.
package store
