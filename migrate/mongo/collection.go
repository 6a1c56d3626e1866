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
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mataconnect/communitypipe/core"
	"github.com/mataconnect/communitypipe/migrate"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection implements migrate.Collection against a MongoDB collection.
type Collection struct {
	client *mongo.Client
	coll   *mongo.Collection
	logger *slog.Logger
}

var _ migrate.Collection = (*Collection)(nil)

// Connect validates the configuration, connects to MongoDB, and returns
// the destination collection handle. Caller must Close when done.
func Connect(ctx context.Context, config *Config) (*Collection, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	logger := slog.Default().With("component", "mongo-destination")
	logger.Info("connected to mongodb", "database", config.Database, "collection", config.Collection)

	return &Collection{
		client: client,
		coll:   client.Database(config.Database).Collection(config.Collection),
		logger: logger,
	}, nil
}

// InsertMany bulk-inserts the documents unordered. Documents the server
// rejects (constraint violations) are absorbed into the returned count;
// only a whole-call failure (connectivity) yields a non-nil error.
func (c *Collection) InsertMany(ctx context.Context, docs []*core.Document) (int, error) {
	items := make([]interface{}, len(docs))
	for i, doc := range docs {
		items[i] = doc
	}

	res, err := c.coll.InsertMany(ctx, items, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			inserted := len(docs) - len(bulkErr.WriteErrors)
			if inserted < 0 {
				inserted = 0
			}
			c.logger.Warn("bulk insert had write errors",
				"attempted", len(docs),
				"rejected", len(bulkErr.WriteErrors))
			return inserted, nil
		}
		return 0, err
	}

	return len(res.InsertedIDs), nil
}

// Close disconnects the underlying client.
func (c *Collection) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
