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

package transfer

import "gitlab.com/tozd/go/errors"

var (
	// ErrUserCancelled is returned when the user aborts at the source prompt
	ErrUserCancelled = errors.Base("cancelled by user")
	// ErrUnsupportedEntity means an entity kind reached an accessor that cannot handle it
	ErrUnsupportedEntity = errors.Base("unsupported entity")
	// ErrSessionUsed is returned when Run is called twice on one session
	ErrSessionUsed = errors.Base("session already ran")
)
