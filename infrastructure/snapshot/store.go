package snapshot

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"

	"github.com/vfg2006/nola-insights/internal/config"
	"github.com/vfg2006/nola-insights/internal/domain"
)

const parquetContentType = "application/vnd.apache.parquet"

// Store grava e lê o snapshot analítico em um bucket (file://, s3:// ou gs://)
type Store struct {
	bucket      *blob.Bucket
	bucketURL   string
	key         string
	compression string
}

// OpenStore abre o bucket configurado. Diretórios locais são criados quando não existem.
func OpenStore(ctx context.Context, cfg config.Snapshot) (*Store, error) {
	if _, err := compressionCodec(cfg.Compression); err != nil {
		return nil, err
	}

	bucket, err := openBucket(ctx, cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open snapshot bucket %s", cfg.BucketURL)
	}

	return &Store{
		bucket:      bucket,
		bucketURL:   strings.TrimSuffix(cfg.BucketURL, "/"),
		key:         cfg.Key,
		compression: cfg.Compression,
	}, nil
}

func openBucket(ctx context.Context, url string) (*blob.Bucket, error) {
	if dir, ok := strings.CutPrefix(url, "file://"); ok {
		if i := strings.Index(dir, "?"); i >= 0 {
			dir = dir[:i]
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		return fileblob.OpenBucket(abs, &fileblob.Options{CreateDir: true})
	}
	return blob.OpenBucket(ctx, url)
}

// URI identifica o objeto do snapshot nos logs e relatórios
func (s *Store) URI() string {
	return s.bucketURL + "/" + s.key
}

// Write publica o snapshot. O objeto só fica visível quando a escrita termina;
// em qualquer falha a escrita é abortada e a versão anterior permanece.
func (s *Store) Write(ctx context.Context, lines []domain.SaleLine, meta domain.SnapshotMetadata) error {
	data, err := Encode(lines, meta, s.compression)
	if err != nil {
		return err
	}

	writeCtx, abort := context.WithCancel(ctx)
	defer abort()

	w, err := s.bucket.NewWriter(writeCtx, s.key, &blob.WriterOptions{
		ContentType: parquetContentType,
		Metadata:    metadataPairs(meta),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create writer for %s", s.key)
	}

	if _, err := w.Write(data); err != nil {
		abort()
		_ = w.Close()
		return errors.Wrapf(err, "failed to write %s", s.key)
	}

	if err := w.Close(); err != nil {
		return errors.Wrapf(err, "failed to close writer for %s", s.key)
	}

	return nil
}

// Read carrega o snapshot atual. Objeto ausente retorna domain.ErrSnapshotUnavailable.
func (s *Store) Read(ctx context.Context) (*domain.Snapshot, error) {
	attrs, err := s.bucket.Attributes(ctx, s.key)
	if err != nil {
		return nil, s.classify(err)
	}

	r, err := s.bucket.NewReader(ctx, s.key, nil)
	if err != nil {
		return nil, s.classify(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", s.key)
	}

	lines, err := Decode(data)
	if err != nil {
		return nil, err
	}

	meta := parseMetadata(attrs.Metadata)
	if meta.RowCount == 0 {
		meta.RowCount = len(lines)
	}

	return domain.NewSnapshot(lines, meta, s.URI()), nil
}

func (s *Store) classify(err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return errors.Wrapf(domain.ErrSnapshotUnavailable, "%s not found", s.URI())
	}
	return errors.Wrapf(err, "failed to open %s", s.key)
}

// Close libera o bucket
func (s *Store) Close() error {
	if s.bucket != nil {
		return s.bucket.Close()
	}
	return nil
}
