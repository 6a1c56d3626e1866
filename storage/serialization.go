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


package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mataconnect/communitypipe/core"
)

// recordEnvelope is the on-disk form of a StoredRecord. The payload is
// embedded as raw JSON so it round-trips byte for byte.
type recordEnvelope struct {
	URL       string          `json:"url"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MarshalCommunity serializes a community payload to its canonical JSON
// text form. Collections are normalized first so every key is present.
func MarshalCommunity(c *core.Community) ([]byte, error) {
	c.Normalize()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return data, nil
}

// UnmarshalCommunity parses the canonical JSON text form of a payload.
func UnmarshalCommunity(data []byte) (*core.Community, error) {
	var c core.Community
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	c.Normalize()
	return &c, nil
}

// MarshalRecord serializes a StoredRecord to its on-disk envelope form.
func MarshalRecord(record *core.StoredRecord) ([]byte, error) {
	env := recordEnvelope{
		URL:       record.URL,
		Payload:   json.RawMessage(record.Payload),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return data, nil
}

// UnmarshalRecord decodes a StoredRecord from its on-disk envelope form.
func UnmarshalRecord(data []byte) (*core.StoredRecord, error) {
	var env recordEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return &core.StoredRecord{
		URL:       env.URL,
		Payload:   []byte(env.Payload),
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
	}, nil
}
