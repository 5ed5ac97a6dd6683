// Copyright 2025 Pico Labs
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


package evidence

import "errors"

var (
	// ErrEmbeddingFailed indicates the embedding service failed.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrQueryFailed indicates the similarity search failed.
	ErrQueryFailed = errors.New("query failed")

	// ErrWriteFailed indicates documents could not be written to storage.
	ErrWriteFailed = errors.New("write failed")
)
