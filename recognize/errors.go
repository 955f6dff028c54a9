// Copyright 2025 Poiesic Systems
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


package recognize

import "errors"

var (
	// ErrInvalidSampleCount is returned when the resample count is below 2.
	ErrInvalidSampleCount = errors.New("sample count must be at least 2")

	// ErrNilTemplate is returned when Load receives a nil template.
	ErrNilTemplate = errors.New("nil template")
)
