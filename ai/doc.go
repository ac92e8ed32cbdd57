// Copyright 2025 Ayur LLM Authors
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


// Package ai provides abstractions for the AI services used by the
// retrieval pipeline: text embeddings and grounded answer generation.
//
// The package defines interfaces so that business logic depends on
// abstractions rather than on a concrete model provider:
//
//   - Embedder: generates vector embeddings from text
//   - AnswerGenerator: produces an answer grounded in retrieved passages
//   - Provider: aggregates both for convenient initialization
//
// Two implementation sub-packages exist:
//
//   - ai/openai: production implementation using the OpenAI API
//   - ai/mock: test doubles for unit testing without network access
//
// Public constructors in implementation packages return interface types to
// enforce abstraction; mock constructors return concrete types so tests can
// inject behavior and assert on call counts.
package ai
