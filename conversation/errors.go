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


package conversation

import "errors"

var (
	// ErrPipelineRequired indicates a nil retrieval pipeline was provided.
	ErrPipelineRequired = errors.New("retrieval pipeline is required")

	// ErrChatRequired indicates a nil chat model was provided.
	ErrChatRequired = errors.New("chat model is required")

	// ErrGenerationFailed indicates the chat model failed to produce a reply.
	ErrGenerationFailed = errors.New("reply generation failed")

	// ErrInvalidPersona indicates a persona file failed validation.
	ErrInvalidPersona = errors.New("invalid persona")
)
