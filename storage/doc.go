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


// Package storage provides the storage abstraction layer for pico.
//
// This package defines the evidence repository interface that decouples
// persistence from retrieval logic, so different backends (BadgerDB,
// in-memory, test doubles) can be used interchangeably.
//
// # Upsert Capability
//
// Backends declare how they support idempotent writes via UpsertSupport:
//
//   - UpsertNative: the backend overwrites by key natively
//   - UpsertEmulated: the caller must emulate upsert as update-or-insert
//   - UpsertInsertOnly: the caller must insert and skip duplicates
//
// The evidence store selects a write strategy from this declaration and
// logs the tier it uses, so the difference between "upsert succeeded"
// and "insert silently skipped" stays observable.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation and
// timeout support.
package storage
