package domain

import (
	"fmt"
	"strings"
)

// PivotRequest define a tabela dinâmica pedida pelo usuário
type PivotRequest struct {
	Metric Metric
	Row    Dimension
	Column Dimension

	// AllowUnknown agrupa linhas sem valor em UnknownLabel em vez de falhar a pré-condição
	AllowUnknown bool
}

// Validate verifica a combinação de métrica e dimensões
func (r PivotRequest) Validate() error {
	if _, err := r.Metric.Descriptor(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if r.Row == DimensionNone {
		return fmt.Errorf("%w: dimensão de linha é obrigatória", ErrInvalidInput)
	}
	if _, err := r.Row.Descriptor(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if r.Column != DimensionNone {
		if _, err := r.Column.Descriptor(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if r.Column == r.Row {
			return fmt.Errorf("%w: dimensões de linha e coluna devem ser diferentes", ErrInvalidInput)
		}
	}
	return nil
}

// ExportName é o nome determinístico do arquivo exportado
func (r PivotRequest) ExportName(ext string) string {
	return fmt.Sprintf("relatorio_%s_%s.%s", r.Metric.String(), r.Row.String(), strings.TrimPrefix(ext, "."))
}

// Title monta o subtítulo exibido acima da tabela
func (r PivotRequest) Title() string {
	metric, err := r.Metric.Descriptor()
	if err != nil {
		return ""
	}
	row, err := r.Row.Descriptor()
	if err != nil {
		return metric.Label
	}
	title := fmt.Sprintf("%s por %s", metric.Label, row.Label)
	if col, err := r.Column.Descriptor(); err == nil {
		title += fmt.Sprintf(" e %s", col.Label)
	}
	return title
}

// PivotTable é a agregação bidimensional. Values[i][j] corresponde a RowLabels[i] x ColumnLabels[j].
type PivotTable struct {
	Title           string      `json:"title,omitempty"`
	Metric          string      `json:"metric,omitempty"`
	MetricLabel     string      `json:"metric_label,omitempty"`
	RowDimension    string      `json:"row_dimension"`
	ColumnDimension string      `json:"column_dimension,omitempty"`
	RowLabels       []string    `json:"row_labels"`
	ColumnLabels    []string    `json:"column_labels"`
	Values          [][]float64 `json:"values"`
}

// HasColumnDimension indica se as colunas vêm de uma dimensão ou da coluna implícita da métrica
func (t *PivotTable) HasColumnDimension() bool {
	return t.ColumnDimension != ""
}

// Cell retorna o valor da célula pelos rótulos
func (t *PivotTable) Cell(row, column string) (float64, bool) {
	i := indexOf(t.RowLabels, row)
	j := indexOf(t.ColumnLabels, column)
	if i < 0 || j < 0 {
		return 0, false
	}
	return t.Values[i][j], true
}

func indexOf(labels []string, label string) int {
	for i, l := range labels {
		if l == label {
			return i
		}
	}
	return -1
}

// ExportFile é o conteúdo pronto para download
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}
