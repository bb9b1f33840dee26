package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func sampleLines() []domain.SaleLine {
	return []domain.SaleLine{
		{
			SaleID:               10,
			SaleDate:             time.Date(2024, time.May, 6, 21, 45, 0, 0, time.UTC),
			SaleTotalAmount:      89.9,
			Discount:             5,
			DeliveryFee:          7.5,
			Status:               domain.StatusCompleted,
			PreparationSeconds:   ptr(int64(900)),
			DeliverySeconds:      ptr(int64(1800)),
			StoreName:            "Loja Centro",
			StoreCity:            "São Paulo",
			ChannelName:          "iFood",
			ProductName:          "Pizza",
			ProductCategory:      "Pizzas",
			Quantity:             1,
			LineTotalAmount:      82.4,
			DeliveryNeighborhood: ptr("Pinheiros"),
			DeliveryCity:         ptr("São Paulo"),
		},
		{
			SaleID:          11,
			SaleDate:        time.Date(2024, time.May, 7, 11, 5, 0, 0, time.UTC),
			SaleTotalAmount: 20,
			Status:          domain.StatusCompleted,
			StoreName:       "Loja Sul",
			StoreCity:       "São Paulo",
			ChannelName:     "Balcão",
			ProductName:     "Suco",
			ProductCategory: "Bebidas",
			Quantity:        2,
			LineTotalAmount: 20,
		},
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, compression := range []string{"snappy", "zstd", "gzip", "none"} {
		t.Run(compression, func(t *testing.T) {
			data, err := Encode(sampleLines(), domain.SnapshotMetadata{RunID: "abc"}, compression)
			require.NoError(t, err)

			lines, err := Decode(data)
			require.NoError(t, err)
			require.Len(t, lines, 2)

			assert.Equal(t, int64(10), lines[0].SaleID)
			assert.Equal(t, 21, lines[0].SaleDate.UTC().Hour())
			require.NotNil(t, lines[0].DeliverySeconds)
			assert.Equal(t, int64(1800), *lines[0].DeliverySeconds)
			require.NotNil(t, lines[0].DeliveryNeighborhood)
			assert.Equal(t, "Pinheiros", *lines[0].DeliveryNeighborhood)
			assert.Nil(t, lines[1].DeliverySeconds)
			assert.Nil(t, lines[1].DeliveryNeighborhood)
			assert.Equal(t, "Balcão", lines[1].ChannelName)
		})
	}
}

func TestEncode_UnknownCompression(t *testing.T) {
	_, err := Encode(sampleLines(), domain.SnapshotMetadata{}, "lz77")
	assert.ErrorIs(t, err, ErrUnknownCompression)
}

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := OpenStore(context.Background(), config.Snapshot{
		BucketURL: "file://" + dir,
		Key:       "dados_analiticos.parquet",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func TestStore_WriteRead(t *testing.T) {
	ctx := context.Background()
	store, dir := openTestStore(t)

	extractedAt := time.Date(2024, time.May, 8, 3, 0, 0, 0, time.UTC)
	err := store.Write(ctx, sampleLines(), domain.SnapshotMetadata{
		RunID:         "run-1",
		RowCount:      2,
		SchemaVersion: domain.SnapshotSchemaVersion,
		ExtractedAt:   extractedAt,
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "dados_analiticos.parquet"))
	require.NoError(t, err)

	snapshot, err := store.Read(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Len())
	assert.Equal(t, "run-1", snapshot.Metadata.RunID)
	assert.Equal(t, 2, snapshot.Metadata.RowCount)
	assert.Equal(t, domain.SnapshotSchemaVersion, snapshot.Metadata.SchemaVersion)
	assert.True(t, extractedAt.Equal(snapshot.Metadata.ExtractedAt))
	assert.Equal(t, time.Monday, snapshot.Lines[0].Weekday)
	assert.Equal(t, []string{"Balcão", "iFood"}, snapshot.Channels())
	assert.Equal(t, "file://"+dir+"/dados_analiticos.parquet", snapshot.Source)
}

func TestStore_ReadMissing(t *testing.T) {
	store, _ := openTestStore(t)

	_, err := store.Read(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)
}

func TestStore_FailedWriteKeepsPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	require.NoError(t, store.Write(ctx, sampleLines(), domain.SnapshotMetadata{RunID: "run-1"}))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := store.Write(cancelled, sampleLines()[:1], domain.SnapshotMetadata{RunID: "run-2"})
	require.Error(t, err)

	snapshot, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-1", snapshot.Metadata.RunID)
	assert.Equal(t, 2, snapshot.Len())
}

type fakeReader struct {
	snapshot *domain.Snapshot
	err      error
}

func (f *fakeReader) Read(context.Context) (*domain.Snapshot, error) {
	return f.snapshot, f.err
}

func TestCatalog(t *testing.T) {
	reader := &fakeReader{err: domain.ErrSnapshotUnavailable}
	catalog := NewCatalog(reader)

	_, err := catalog.Current()
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)

	_, err = catalog.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotUnavailable)

	first := domain.NewSnapshot(sampleLines(), domain.SnapshotMetadata{RunID: "run-1"}, "memory")
	reader.snapshot, reader.err = first, nil
	_, err = catalog.Load(context.Background())
	require.NoError(t, err)

	current, err := catalog.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)

	reader.snapshot, reader.err = nil, errors.New("bucket offline")
	_, err = catalog.Load(context.Background())
	require.Error(t, err)

	current, err = catalog.Current()
	require.NoError(t, err)
	assert.Same(t, first, current)
}
