package migrate

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/mataconnect/communitypipe/core"
	"github.com/mataconnect/communitypipe/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollection records inserts and delegates to InsertManyFunc when set.
type fakeCollection struct {
	InsertManyFunc func(ctx context.Context, docs []*core.Document) (int, error)

	batches  [][]*core.Document
	inserted []*core.Document
}

func (f *fakeCollection) InsertMany(ctx context.Context, docs []*core.Document) (int, error) {
	f.batches = append(f.batches, docs)
	if f.InsertManyFunc != nil {
		return f.InsertManyFunc(ctx, docs)
	}
	f.inserted = append(f.inserted, docs...)
	return len(docs), nil
}

func makeRecords(t *testing.T, n int) []*core.StoredRecord {
	t.Helper()
	records := make([]*core.StoredRecord, 0, n)
	for i := 0; i < n; i++ {
		url := "https://community-" + string(rune('a'+i)) + ".example.org"
		payload, err := storage.MarshalCommunity(&core.Community{
			Name:    "Community " + string(rune('A'+i)),
			Website: url,
			Tags:    []string{"Community"},
		})
		require.NoError(t, err)
		records = append(records, &core.StoredRecord{URL: url, Payload: payload})
	}
	return records
}

func TestLoad_Empty(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, nil, &out)

	summary, err := loader.Load(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
	assert.Empty(t, dest.batches)
	assert.Contains(t, out.String(), "No records found")
}

func TestLoad_SingleBatch(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 10, ReportInterval: 10}, &out)

	summary, err := loader.Load(context.Background(), makeRecords(t, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	require.Len(t, dest.batches, 1)
	assert.Len(t, dest.inserted, 3)
}

func TestLoad_BatchBoundaries(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 2, ReportInterval: 2}, &out)

	// 5 records with batch size 2: batches of 2, 2, and a trailing 1
	summary, err := loader.Load(context.Background(), makeRecords(t, 5))
	require.NoError(t, err)
	assert.Equal(t, 5, summary.Succeeded)
	require.Len(t, dest.batches, 3)
	assert.Len(t, dest.batches[0], 2)
	assert.Len(t, dest.batches[1], 2)
	assert.Len(t, dest.batches[2], 1)
}

func TestLoad_PartialBatchRejection(t *testing.T) {
	dest := &fakeCollection{
		InsertManyFunc: func(ctx context.Context, docs []*core.Document) (int, error) {
			// Destination rejects one document of the batch
			return len(docs) - 1, nil
		},
	}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 10, ReportInterval: 10}, &out)

	summary, err := loader.Load(context.Background(), makeRecords(t, 5))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}

func TestLoad_FullBatchFailureContinues(t *testing.T) {
	calls := 0
	dest := &fakeCollection{
		InsertManyFunc: func(ctx context.Context, docs []*core.Document) (int, error) {
			calls++
			if calls == 1 {
				return 0, errors.New("connection reset")
			}
			return len(docs), nil
		},
	}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 2, ReportInterval: 2}, &out)

	summary, err := loader.Load(context.Background(), makeRecords(t, 4))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 2, calls)
}

func TestLoad_MalformedPayloadIsolated(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 10, ReportInterval: 10}, &out)

	records := makeRecords(t, 2)
	records = append(records, &core.StoredRecord{
		URL:     "https://corrupt.example.org",
		Payload: []byte("{broken"),
	})

	summary, err := loader.Load(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Len(t, dest.inserted, 2)
}

func TestLoad_AllMalformed(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 10, ReportInterval: 10}, &out)

	records := []*core.StoredRecord{
		{URL: "https://a.example.org", Payload: []byte("nope")},
		{URL: "https://b.example.org", Payload: []byte("{")},
	}

	summary, err := loader.Load(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Failed)
	assert.Equal(t, 0, summary.Succeeded)
	// No insert call for an entirely malformed batch
	assert.Empty(t, dest.batches)
}

func TestLoad_TransformedDocuments(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 10, ReportInterval: 10}, &out)

	payload, err := storage.MarshalCommunity(&core.Community{
		Name:     "Femgineers",
		Website:  "https://femgineers.example.org",
		Tags:     []string{"Tech"},
		Language: []string{"English", "German"},
	})
	require.NoError(t, err)

	records := []*core.StoredRecord{{URL: "https://femgineers.example.org", Payload: payload}}

	_, err = loader.Load(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, dest.inserted, 1)

	doc := dest.inserted[0]
	assert.Equal(t, "Femgineers", doc.Name)
	assert.Equal(t, "https://femgineers.example.org", doc.DataSource)
	require.NotNil(t, doc.Language)
	assert.Equal(t, "English", *doc.Language)
	assert.True(t, doc.IsVirtual)
}

func TestLoad_ContextCancellation(t *testing.T) {
	dest := &fakeCollection{}
	var out bytes.Buffer
	loader := NewLoader(dest, &Config{BatchSize: 1, ReportInterval: 1}, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := loader.Load(ctx, makeRecords(t, 3))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, summary.Succeeded)
}

func TestNewLoader_Defaults(t *testing.T) {
	var out bytes.Buffer
	loader := NewLoader(&fakeCollection{}, nil, &out)
	assert.Equal(t, DefaultBatchSize, loader.config.BatchSize)

	loader = NewLoader(&fakeCollection{}, &Config{BatchSize: -1}, &out)
	assert.Equal(t, DefaultBatchSize, loader.config.BatchSize)
	assert.Equal(t, DefaultBatchSize, loader.config.ReportInterval)
}
