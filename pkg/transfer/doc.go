// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package transfer copies the text of one drawing annotation into others.

A Session asks the user for a source entity, extracts its text through an
Accessor and then writes that text into every destination the user picks
until they cancel. The kinds an Accessor understands form a closed set:

	kind       read                       write                   delete source
	text       value                      value                   entity erased
	mtext      contents                   contents                entity erased
	leader     embedded mtext contents    embedded mtext          entity erased
	dimension  override or measurement    never                   entity erased
	table      picked cell                picked cell             cell cleared

Table cells are addressed with a point pick resolved by a CellLocator.

Everything a session changes goes through one drawing.Transaction, committed
when the session ends. A host error aborts it.
*/
package transfer
