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

// Package entry defines declension table entries and the schema they are
// validated against.
//
// An entry is one word key with its six Russian noun case forms:
//  1. nominative
//  2. genitive
//  3. dative
//  4. accusative
//  5. instrumental
//  6. prepositional
//
// plus a grammatical gender and free-form tags. An entry is "good" when every
// case form and the gender are present. Entries tagged "nominative_only" only
// require the nominative form and the gender.
package entry
