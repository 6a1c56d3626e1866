// Copyright 2025 MataConnect
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


package communitypipe

import (
	"io"
	"log/slog"

	"github.com/mataconnect/communitypipe/ai"
	"github.com/mataconnect/communitypipe/ai/openai"
	"github.com/mataconnect/communitypipe/enrich"
	"github.com/mataconnect/communitypipe/migrate"
	"github.com/mataconnect/communitypipe/storage"
	"github.com/mataconnect/communitypipe/storage/badger"
)

type Pipeline struct {
	backend  *badger.Backend
	store    storage.RecordStore
	enricher ai.Enricher
	logger   *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*pipelineOptions)

type pipelineOptions struct {
	aiConfig *ai.Config
	enricher ai.Enricher
}

// WithAIConfig sets the enrichment service configuration.
func WithAIConfig(config *ai.Config) PipelineOption {
	return func(o *pipelineOptions) {
		o.aiConfig = config
	}
}

// WithEnricher injects a pre-built enricher, bypassing the AI config.
func WithEnricher(enricher ai.Enricher) PipelineOption {
	return func(o *pipelineOptions) {
		o.enricher = enricher
	}
}

func NewPipeline(filePath string, opts ...PipelineOption) (*Pipeline, error) {
	// Apply options
	options := &pipelineOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}
	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create record repository
	store := badger.NewRecordRepository(backend)

	// Create enricher with configured settings
	enricher := options.enricher
	if enricher == nil {
		enricher, err = openai.NewEnricher(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Pipeline{
		backend:  backend,
		store:    store,
		enricher: enricher,
		logger:   slog.Default(),
	}, nil
}

func (p *Pipeline) Close() error {
	// Close record store
	if err := p.store.Close(); err != nil {
		p.logger.Error("error closing record store", "err", err)
		return err
	}

	// Close backend
	if err := p.backend.Close(); err != nil {
		p.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (p *Pipeline) RecordStore() storage.RecordStore {
	return p.store
}

func (p *Pipeline) NewRunner(opts ...enrich.Option) (*enrich.Runner, error) {
	return enrich.NewRunner(p.store, p.enricher, opts...)
}

func (p *Pipeline) NewLoader(dest migrate.Collection, config *migrate.Config, progress io.Writer) *migrate.Loader {
	return migrate.NewLoader(dest, config, progress)
}
