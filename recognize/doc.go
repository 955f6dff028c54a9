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


// Package recognize classifies strokes against a set of gesture templates.
//
// A Store owns the template collection. It moves through three states:
//
//	Unloaded -> Loading -> Ready
//
// Load preprocesses every raw template (resample, normalize) on a worker pool
// and only reaches Ready when all of them succeed. Recognize and Classify are
// rejected with core.ErrNotReady until then. Once Ready the collection is
// read-only and safe for concurrent recognition.
//
// Classify can also be used directly on a caller-owned slice of templates.
package recognize
