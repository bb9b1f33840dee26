package domain

import (
	"sort"
	"time"
)

// StatusCompleted é o único status de venda presente no snapshot
const StatusCompleted = "COMPLETED"

// SnapshotSchemaVersion deve ser incrementada a cada mudança incompatível nas colunas
const SnapshotSchemaVersion = "1"

// SaleLine representa uma linha do snapshot analítico: um produto dentro de uma venda concluída.
// Os nomes das colunas parquet seguem o arquivo dados_analiticos.parquet.
type SaleLine struct {
	SaleID               int64     `parquet:"venda_id" json:"sale_id"`
	SaleDate             time.Time `parquet:"data_venda,timestamp(millisecond)" json:"sale_date"`
	SaleTotalAmount      float64   `parquet:"valor_total_venda" json:"sale_total_amount"`
	Discount             float64   `parquet:"desconto_venda" json:"discount"`
	DeliveryFee          float64   `parquet:"taxa_entrega" json:"delivery_fee"`
	Status               string    `parquet:"status_venda" json:"status"`
	PreparationSeconds   *int64    `parquet:"tempo_preparo_seg,optional" json:"preparation_seconds,omitempty"`
	DeliverySeconds      *int64    `parquet:"tempo_entrega_seg,optional" json:"delivery_seconds,omitempty"`
	StoreName            string    `parquet:"loja_nome" json:"store_name"`
	StoreCity            string    `parquet:"loja_cidade" json:"store_city"`
	ChannelName          string    `parquet:"canal_nome" json:"channel_name"`
	ProductName          string    `parquet:"produto_nome" json:"product_name"`
	ProductCategory      string    `parquet:"produto_categoria" json:"product_category"`
	Quantity             float64   `parquet:"produto_qtde" json:"quantity"`
	LineTotalAmount      float64   `parquet:"produto_valor_total" json:"line_total_amount"`
	DeliveryNeighborhood *string   `parquet:"bairro_entrega,optional" json:"delivery_neighborhood,omitempty"`
	DeliveryCity         *string   `parquet:"cidade_entrega,optional" json:"delivery_city,omitempty"`

	// Derivado da data da venda no carregamento, nunca persistido
	Weekday time.Weekday `parquet:"-" json:"-"`
}

// DeliveryMinutes retorna o tempo de entrega em minutos. Tempo ausente ou não positivo não conta.
func (l *SaleLine) DeliveryMinutes() (float64, bool) {
	if l.DeliverySeconds == nil || *l.DeliverySeconds <= 0 {
		return 0, false
	}
	return float64(*l.DeliverySeconds) / 60, true
}

// Day retorna a data (sem horário) da venda.
func (l *SaleLine) Day() time.Time {
	return DateOf(l.SaleDate)
}

// DateOf trunca um instante para o dia do calendário, preservando o relógio de parede.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WallClock reinterpreta o relógio de parede de t como UTC.
// O snapshot guarda horários locais da loja; a hora do dia não pode mudar ao serializar.
func WallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// SnapshotMetadata descreve uma execução do extrator
type SnapshotMetadata struct {
	RunID         string    `json:"run_id"`
	RowCount      int       `json:"row_count"`
	SchemaVersion string    `json:"schema_version"`
	ExtractedAt   time.Time `json:"extracted_at"`
}

// Snapshot é o conjunto imutável de linhas carregado uma vez por processo.
// Depois de criado, nada deve alterar Lines.
type Snapshot struct {
	Lines    []SaleLine
	Metadata SnapshotMetadata
	Source   string
	LoadedAt time.Time
	MinDate  time.Time
	MaxDate  time.Time

	stores   []string
	channels []string
}

// NewSnapshot recalcula os campos derivados e indexa as opções de filtro.
func NewSnapshot(lines []SaleLine, metadata SnapshotMetadata, source string) *Snapshot {
	s := &Snapshot{
		Lines:    lines,
		Metadata: metadata,
		Source:   source,
		LoadedAt: time.Now(),
	}

	stores := make(map[string]struct{})
	channels := make(map[string]struct{})

	for i := range s.Lines {
		line := &s.Lines[i]
		line.SaleDate = line.SaleDate.UTC()
		line.Weekday = line.SaleDate.Weekday()

		day := line.Day()
		if i == 0 || day.Before(s.MinDate) {
			s.MinDate = day
		}
		if i == 0 || day.After(s.MaxDate) {
			s.MaxDate = day
		}

		stores[line.StoreName] = struct{}{}
		channels[line.ChannelName] = struct{}{}
	}

	s.stores = sortedKeys(stores)
	s.channels = sortedKeys(channels)

	return s
}

// Len retorna o número de linhas do snapshot
func (s *Snapshot) Len() int {
	return len(s.Lines)
}

// Stores retorna as lojas disponíveis, ordenadas
func (s *Snapshot) Stores() []string {
	return append([]string(nil), s.stores...)
}

// Channels retorna os canais disponíveis, ordenados
func (s *Snapshot) Channels() []string {
	return append([]string(nil), s.channels...)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
