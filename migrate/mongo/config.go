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


package mongo

import (
	"errors"
	"net/url"
	"os"
	"strings"
)

// Environment variables the destination configuration is read from.
const (
	EnvURI        = "MONGODB_URI"
	EnvPassword   = "MONGODB_PASSWORD"
	EnvDatabase   = "MONGODB_DATABASE"
	EnvCollection = "MONGODB_COLLECTION"
)

// passwordPlaceholder in the URI is substituted with the value of
// EnvPassword, so the credential can live outside the connection string.
const passwordPlaceholder = "<password>"

// Configuration errors. A missing required setting is fatal and aborts the
// run before any work begins.
var (
	ErrMissingURI        = errors.New("mongo config: connection URI is required (set " + EnvURI + ")")
	ErrMissingDatabase   = errors.New("mongo config: database name is required")
	ErrMissingCollection = errors.New("mongo config: collection name is required")
)

// Config holds the destination collection settings.
type Config struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the destination database name.
	// Default: "mataconnect"
	Database string

	// Collection is the destination collection name.
	// Default: "communities"
	Collection string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithURI sets the connection URI.
func WithURI(uri string) ConfigOption {
	return func(c *Config) {
		c.URI = uri
	}
}

// WithDatabase sets the destination database name.
func WithDatabase(name string) ConfigOption {
	return func(c *Config) {
		c.Database = name
	}
}

// WithCollection sets the destination collection name.
func WithCollection(name string) ConfigOption {
	return func(c *Config) {
		c.Collection = name
	}
}

// DefaultConfig returns a Config with the default database and collection
// names. The URI has no default and must be provided.
func DefaultConfig() *Config {
	return &Config{
		Database:   "mataconnect",
		Collection: "communities",
	}
}

// NewConfig creates a Config with the default values and applies the
// provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// FromEnv creates a Config from environment variables, falling back to
// defaults for the database and collection names. A "<password>"
// placeholder in the URI is replaced with the escaped value of
// MONGODB_PASSWORD.
func FromEnv() *Config {
	cfg := DefaultConfig()
	cfg.URI = os.Getenv(EnvURI)
	if password := os.Getenv(EnvPassword); password != "" {
		cfg.URI = strings.ReplaceAll(cfg.URI, passwordPlaceholder, url.QueryEscape(password))
	}
	if db := os.Getenv(EnvDatabase); db != "" {
		cfg.Database = db
	}
	if coll := os.Getenv(EnvCollection); coll != "" {
		cfg.Collection = coll
	}
	return cfg
}

// Validate checks that the configuration is valid and complete.
func (c *Config) Validate() error {
	if c.URI == "" {
		return ErrMissingURI
	}
	if c.Database == "" {
		return ErrMissingDatabase
	}
	if c.Collection == "" {
		return ErrMissingCollection
	}
	return nil
}
