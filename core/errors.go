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


package core

import "errors"

// Stroke and geometry errors
var (
	// ErrInvalidStroke indicates a stroke has too few points for the requested operation.
	ErrInvalidStroke = errors.New("invalid stroke")

	// ErrDegenerateGeometry indicates a stroke whose path length or magnitude is zero.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrUndefinedRotation indicates the best-fit rotation between two vectors is undefined.
	ErrUndefinedRotation = errors.New("undefined rotation")

	// ErrTooManyPoints indicates a raw stroke exceeds the configured point limit.
	ErrTooManyPoints = errors.New("too many points")
)

// Recognition errors
var (
	// ErrEmptyTemplateSet indicates classification was attempted without templates.
	ErrEmptyTemplateSet = errors.New("empty template set")

	// ErrNotReady indicates the template store has not finished loading.
	ErrNotReady = errors.New("template store not ready")

	// ErrAlreadyLoaded indicates a second load was attempted on a template store.
	ErrAlreadyLoaded = errors.New("template store already loaded")
)

// Template validation errors
var (
	// ErrInvalidTemplate indicates a RawTemplate failed validation.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrEmptyTemplateName indicates the template Name field is empty.
	ErrEmptyTemplateName = errors.New("template name cannot be empty")

	// ErrMalformedRecord indicates an encoded record could not be decoded.
	ErrMalformedRecord = errors.New("malformed record")
)
