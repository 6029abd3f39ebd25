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

// Package source implements reading and writing translation source documents.
//
// A source document is a small subset of TOML. Each entry is a bracketed
// section header holding the entry key followed by assignments:
//
//	[orc]
//	nominative = "орк"
//	genitive = "орка"
//	dative = "орку"
//	accusative = "орка"
//	instrumental = "орком"
//	prepositional = "орке"
//	gender = "male"
//	tags = ["species"]
//
// Every line is one of:
//  1. A blank line.
//  2. A comment starting with '#'.
//  3. A section header: '[key]'.
//  4. A scalar assignment: 'field = "value"'.
//  5. A vector assignment: 'tags = ["a", "b"]'. Only tags may be a list.
//
// Section headers and assignments may end with a '#' comment.
//
// Values are double quoted strings. Backslash, double quote and control
// characters inside values are escaped with a backslash when written, and a
// raw double quote inside a value is a parse error.
package source
