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


// Package geometry implements the numeric core of the unistroke recognizer.
//
// A raw stroke travels through three stages before it can be compared:
//
//   - Resample: N points spaced equally along the original path
//   - Normalize: translated to its centroid, rotated so the first point lies
//     on the positive x axis, and scaled to unit magnitude
//   - OptimalCosineDistance: closed-form angular distance between two
//     normalized strokes at their best-fit rotation
//
// Every function returns a freshly allocated stroke and never mutates its
// input. Degenerate input is reported with the typed errors from package core
// instead of NaN or Inf results.
package geometry
