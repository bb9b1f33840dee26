package snapshot

import (
	"strconv"
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
)

func metadataPairs(meta domain.SnapshotMetadata) map[string]string {
	pairs := map[string]string{
		metaRunID:         meta.RunID,
		metaRowCount:      strconv.Itoa(meta.RowCount),
		metaSchemaVersion: meta.SchemaVersion,
	}
	if !meta.ExtractedAt.IsZero() {
		pairs[metaExtractedAt] = meta.ExtractedAt.UTC().Format(time.RFC3339)
	}
	return pairs
}

// parseMetadata é tolerante: arquivos gerados fora do extrator podem não ter metadados
func parseMetadata(pairs map[string]string) domain.SnapshotMetadata {
	meta := domain.SnapshotMetadata{
		RunID:         pairs[metaRunID],
		SchemaVersion: pairs[metaSchemaVersion],
	}
	if rows, err := strconv.Atoi(pairs[metaRowCount]); err == nil {
		meta.RowCount = rows
	}
	if extractedAt, err := time.Parse(time.RFC3339, pairs[metaExtractedAt]); err == nil {
		meta.ExtractedAt = extractedAt
	}
	return meta
}
