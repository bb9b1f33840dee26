package domain

import "time"

// KPIs são os indicadores escalares calculados sobre o conjunto filtrado
type KPIs struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalOrders        int     `json:"total_orders"`
	AverageTicket      float64 `json:"avg_ticket"`
	AvgDeliveryMinutes float64 `json:"avg_delivery_time"`
}

// InsightKind identifica a heurística que gerou o insight
type InsightKind string

const (
	InsightAnomalousSpike InsightKind = "anomalous_spike"
	InsightPeakDay        InsightKind = "peak_day"
	InsightPeakHour       InsightKind = "peak_hour"
	InsightTopProduct     InsightKind = "top_product"
	InsightTopChannel     InsightKind = "top_channel"
	InsightNoData         InsightKind = "no_data"
)

// Insight é uma constatação legível produzida por uma heurística
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
	Label   string      `json:"label,omitempty"`
	Value   float64     `json:"value,omitempty"`
}

// HourlyPoint é um ponto da série de faturamento por hora do dia
type HourlyPoint struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

// Option é uma escolha de seletor (chave da API e rótulo exibido)
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DashboardOptions alimenta a barra lateral e os seletores da análise dinâmica
type DashboardOptions struct {
	MinDate          time.Time        `json:"min_date"`
	MaxDate          time.Time        `json:"max_date"`
	Stores           []string         `json:"stores"`
	Channels         []string         `json:"channels"`
	Weekdays         []string         `json:"weekdays"`
	Metrics          []Option         `json:"metrics"`
	RowDimensions    []Option         `json:"row_dimensions"`
	ColumnDimensions []Option         `json:"column_dimensions"`
	Snapshot         SnapshotMetadata `json:"snapshot"`
}

// SectionError é a mensagem exibida no lugar de uma seção que falhou
type SectionError struct {
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
}

// DashboardResponse agrega todas as seções; cada seção falha de forma independente
type DashboardResponse struct {
	Filters  Filters                 `json:"filters"`
	RowCount int                     `json:"row_count"`
	Warning  string                  `json:"warning,omitempty"`
	KPIs     *KPIs                   `json:"kpis,omitempty"`
	Insights []Insight               `json:"insights,omitempty"`
	Hourly   []HourlyPoint           `json:"hourly,omitempty"`
	Pivot    *PivotTable             `json:"pivot,omitempty"`
	Errors   map[string]SectionError `json:"errors,omitempty"`
}
