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

package ayurllm

import (
	"log/slog"
	"path/filepath"

	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/sahilrangra/ayur-llm/ai/openai"
	"github.com/sahilrangra/ayur-llm/index"
	"github.com/sahilrangra/ayur-llm/ingest"
	"github.com/sahilrangra/ayur-llm/rag"
	"github.com/sahilrangra/ayur-llm/storage"
	"github.com/sahilrangra/ayur-llm/storage/badger"
)

// Service bundles the corpus store, the vector index, and the AI
// provider into one handle. It is the root object the CLI and the HTTP
// server are assembled from.
type Service struct {
	backend   *badger.Backend
	docRepo   storage.DocumentRepository
	chunkRepo storage.ChunkRepository
	store     *index.Store
	provider  ai.Provider
	aiConfig  *ai.Config
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*serviceOptions)

type serviceOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
}

// WithAIConfig sets the AI configuration used to build the provider.
func WithAIConfig(cfg *ai.Config) ServiceOption {
	return func(o *serviceOptions) {
		o.aiConfig = cfg
	}
}

// WithProvider injects a pre-built AI provider, bypassing the OpenAI
// one. Used by tests with the mock provider.
func WithProvider(p ai.Provider) ServiceOption {
	return func(o *serviceOptions) {
		o.provider = p
	}
}

// NewService opens the service rooted at dataDir. The corpus store
// lives under dataDir/corpus and the vector index under
// dataDir/vectors.
func NewService(dataDir string, opts ...ServiceOption) (*Service, error) {
	options := &serviceOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "corpus"), false)
	if err != nil {
		return nil, err
	}

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	store, err := index.Open(filepath.Join(dataDir, "vectors"))
	if err != nil {
		chunkRepo.Close()
		docRepo.Close()
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			chunkRepo.Close()
			docRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Service{
		backend:   backend,
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
		store:     store,
		provider:  provider,
		aiConfig:  options.aiConfig,
		logger:    slog.Default(),
	}, nil
}

// Close releases the provider and storage.
func (s *Service) Close() error {
	if err := s.provider.Close(); err != nil {
		s.logger.Error("error closing AI provider", "err", err)
	}

	if err := s.chunkRepo.Close(); err != nil {
		s.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := s.docRepo.Close(); err != nil {
		s.logger.Error("error closing document repository", "err", err)
		return err
	}
	if err := s.backend.Close(); err != nil {
		s.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (s *Service) DocumentRepository() storage.DocumentRepository {
	return s.docRepo
}

func (s *Service) ChunkRepository() storage.ChunkRepository {
	return s.chunkRepo
}

func (s *Service) IndexStore() *index.Store {
	return s.store
}

func (s *Service) Provider() ai.Provider {
	return s.provider
}

// AIConfig returns the configuration the provider was built from.
func (s *Service) AIConfig() *ai.Config {
	return s.aiConfig
}

func (s *Service) NewIngestPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(s.docRepo, s.chunkRepo, opts...)
}

func (s *Service) NewIndexBuilder(opts ...index.BuilderOption) (*index.Builder, error) {
	return index.NewBuilder(s.chunkRepo, s.provider.Embedder(), s.store, opts...)
}

func (s *Service) NewAnswerer(opts ...rag.AnswererOption) (*rag.Answerer, error) {
	return rag.NewAnswerer(s.provider.Embedder(), s.provider.AnswerGenerator(), s.store, opts...)
}
