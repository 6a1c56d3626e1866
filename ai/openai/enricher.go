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


package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mataconnect/communitypipe/ai"
	"github.com/mataconnect/communitypipe/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Enricher implements ai.Enricher using OpenAI-compatible chat APIs.
type Enricher struct {
	client  llms.Model
	fetcher *PageFetcher
	logger  *slog.Logger
}

// newEnricher is an internal constructor that returns the concrete type.
func newEnricher(config *ai.Config) (*Enricher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible services don't require authentication
	token := config.APIKey
	if token == "" {
		token = "none"
	}

	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(token),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	fetcher := NewPageFetcher(&http.Client{Timeout: config.FetchTimeout}, config.MaxPageChars)

	return &Enricher{
		client:  client,
		fetcher: fetcher,
		logger:  slog.Default().With("component", "openai-enricher"),
	}, nil
}

// NewEnricher creates a new community enricher using the provided
// configuration.
//
// Returns ai.Enricher interface to enforce abstraction.
func NewEnricher(config *ai.Config) (ai.Enricher, error) {
	return newEnricher(config)
}

// EnrichCommunity fetches the community page and asks the model for the
// structured payload. The model is invoked exactly once; a parse or
// validation failure is returned as an error rather than retried.
func (e *Enricher) EnrichCommunity(ctx context.Context, url string) (*core.Community, error) {
	pageText, err := e.fetcher.FetchText(ctx, url)
	if err != nil {
		// The model can often enrich from the URL alone
		e.logger.Warn("failed to fetch page text, enriching from URL only", "url", url, "err", err)
		pageText = ""
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildUserPrompt(url, pageText)),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.3), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "url", url, "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, errors.New("no choices returned from model")
	}

	community, err := parseEnrichment(response.Choices[0].Content)
	if err != nil {
		e.logger.Warn("error parsing enrichment response", "url", url, "err", err)
		return nil, err
	}

	if err := core.ValidateCommunity(community); err != nil {
		return nil, fmt.Errorf("enrichment for %s rejected: %w", url, err)
	}

	e.logger.Debug("enriched community", "url", url, "name", community.Name, "tags", community.Tags)
	return community, nil
}

// parseEnrichment turns a raw model response into a normalized payload.
// Markdown code fences are stripped and common JSON defects repaired
// before parsing.
func parseEnrichment(raw string) (*core.Community, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	text = repairJSON(text)

	var community core.Community
	if err := json.Unmarshal([]byte(text), &community); err != nil {
		return nil, fmt.Errorf("parsing enrichment response: %w", err)
	}
	community.Normalize()
	return &community, nil
}
