package analyzing

import (
	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/utils"
)

const pivotSection = "pivot"

type cellKey struct {
	row    string
	column string
}

// BuildPivot agrega as linhas filtradas por uma ou duas dimensões.
// Combinações sem linhas ficam com zero; sem dimensão de coluna a tabela tem uma coluna com o rótulo da métrica.
func BuildPivot(lines []*domain.SaleLine, req domain.PivotRequest) (*domain.PivotTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	metric, _ := req.Metric.Descriptor()
	row, _ := req.Row.Descriptor()

	var column *domain.DimensionDescriptor
	if req.Column != domain.DimensionNone {
		c, _ := req.Column.Descriptor()
		column = &c
	}

	if !req.AllowUnknown {
		for _, d := range []*domain.DimensionDescriptor{&row, column} {
			if d == nil || d.Precondition == nil {
				continue
			}
			if err := d.Precondition(lines); err != nil {
				return nil, domain.NewComputationError(pivotSection, err, d.Hint)
			}
		}
	}

	cells := make(map[cellKey]domain.Accumulator)
	rowSet := make(map[string]struct{})
	columnSet := make(map[string]struct{})

	for _, line := range lines {
		key := cellKey{column: metric.Label}

		key.row = valueOrUnknown(row, line)
		if column != nil {
			key.column = valueOrUnknown(*column, line)
		}

		acc, ok := cells[key]
		if !ok {
			acc = metric.New()
			cells[key] = acc
		}
		acc.Add(line)

		rowSet[key.row] = struct{}{}
		columnSet[key.column] = struct{}{}
	}

	table := &domain.PivotTable{
		Title:        req.Title(),
		Metric:       metric.Key,
		MetricLabel:  metric.Label,
		RowDimension: row.Label,
		RowLabels:    keys(rowSet),
		ColumnLabels: keys(columnSet),
	}
	row.Sort(table.RowLabels)

	if column != nil {
		table.ColumnDimension = column.Label
		column.Sort(table.ColumnLabels)
	} else {
		table.ColumnLabels = []string{metric.Label}
	}

	table.Values = make([][]float64, len(table.RowLabels))
	for i, r := range table.RowLabels {
		table.Values[i] = make([]float64, len(table.ColumnLabels))
		for j, c := range table.ColumnLabels {
			if acc, ok := cells[cellKey{row: r, column: c}]; ok {
				table.Values[i][j] = utils.RoundWithTwoDecimalPlace(acc.Value())
			}
		}
	}

	return table, nil
}

func valueOrUnknown(d domain.DimensionDescriptor, line *domain.SaleLine) string {
	if v, ok := d.Value(line); ok {
		return v
	}
	return domain.UnknownLabel
}

func keys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	return out
}
