package domain

import "time"

// ExtractionReport resume uma execução do extrator
type ExtractionReport struct {
	RunID         string        `json:"run_id"`
	RowCount      int           `json:"row_count"`
	DistinctSales int           `json:"distinct_sales"`
	SnapshotURI   string        `json:"snapshot_uri"`
	StartedAt     time.Time     `json:"started_at"`
	QueryDuration time.Duration `json:"query_duration"`
	WriteDuration time.Duration `json:"write_duration"`
}
