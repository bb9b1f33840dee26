package snapshot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
	"github.com/pkg/errors"

	"github.com/vfg2006/nola-insights/internal/domain"
)

// Chaves gravadas nos metadados do arquivo parquet e do objeto no bucket
const (
	metaRunID         = "run_id"
	metaRowCount      = "rows"
	metaSchemaVersion = "schema_version"
	metaExtractedAt   = "extracted_at"
)

// ErrUnknownCompression indica um codec fora da lista suportada
var ErrUnknownCompression = errors.New("unknown snapshot compression")

func compressionCodec(name string) (compress.Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "snappy":
		return &parquet.Snappy, nil
	case "zstd":
		return &parquet.Zstd, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "none", "uncompressed":
		return &parquet.Uncompressed, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
}

// Encode serializa as linhas em um único arquivo parquet colunar
func Encode(lines []domain.SaleLine, meta domain.SnapshotMetadata, compression string) ([]byte, error) {
	codec, err := compressionCodec(compression)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	options := []parquet.WriterOption{parquet.Compression(codec)}
	for k, v := range metadataPairs(meta) {
		options = append(options, parquet.KeyValueMetadata(k, v))
	}

	if err := parquet.Write(&buf, lines, options...); err != nil {
		return nil, errors.Wrap(err, "failed to encode snapshot")
	}

	return buf.Bytes(), nil
}

// Decode lê todas as linhas de um arquivo parquet gerado por Encode
func Decode(data []byte) ([]domain.SaleLine, error) {
	lines, err := parquet.Read[domain.SaleLine](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode snapshot")
	}
	return lines, nil
}
