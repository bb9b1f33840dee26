package analyzing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/vfg2006/nola-insights/internal/domain"
)

func TestWriteCSV_RoundTripWithColumns(t *testing.T) {
	table, err := BuildPivot(filtered(saleLines()), domain.PivotRequest{
		Metric: domain.MetricTotalValue,
		Row:    domain.DimensionStore,
		Column: domain.DimensionChannel,
	})
	require.NoError(t, err)

	data, err := WriteCSV(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Canal,Balcão,iFood", lines[0])
	assert.Equal(t, "Loja,,", lines[1])
	assert.Equal(t, "Loja Centro,0.00,100.00", lines[2])

	parsed, err := ParseCSV(data)
	require.NoError(t, err)
	assert.Equal(t, table.RowDimension, parsed.RowDimension)
	assert.Equal(t, table.ColumnDimension, parsed.ColumnDimension)
	assert.Equal(t, table.RowLabels, parsed.RowLabels)
	assert.Equal(t, table.ColumnLabels, parsed.ColumnLabels)
	assert.Equal(t, table.Values, parsed.Values)
}

func TestWriteCSV_RoundTripWithoutColumns(t *testing.T) {
	table, err := BuildPivot(filtered(saleLines()), domain.PivotRequest{
		Metric: domain.MetricAverageOrderValue,
		Row:    domain.DimensionCategory,
	})
	require.NoError(t, err)

	data, err := WriteCSV(table)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Categoria,Ticket Médio (R$)\n"))

	parsed, err := ParseCSV(data)
	require.NoError(t, err)
	assert.False(t, parsed.HasColumnDimension())
	assert.Equal(t, table.MetricLabel, parsed.MetricLabel)
	assert.Equal(t, table.RowLabels, parsed.RowLabels)
	assert.Equal(t, table.Values, parsed.Values)
}

func TestParseCSV_Invalid(t *testing.T) {
	_, err := ParseCSV([]byte(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = ParseCSV([]byte("Loja,Valor\nCentro,abc\n"))
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	req := domain.PivotRequest{
		Metric: domain.MetricOrderCount,
		Row:    domain.DimensionStore,
		Column: domain.DimensionChannel,
	}
	table, err := BuildPivot(filtered(saleLines()), req)
	require.NoError(t, err)

	file, err := Export(table, req, "csv")
	require.NoError(t, err)
	assert.Equal(t, "relatorio_order_count_store.csv", file.Name)
	assert.Contains(t, file.ContentType, "text/csv")

	file, err = Export(table, req, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "relatorio_order_count_store.xlsx", file.Name)

	wb, err := xlsx.OpenBinary(file.Data)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	rows := wb.Sheets[0].Rows
	require.Len(t, rows, 4)
	assert.Equal(t, "Canal", rows[0].Cells[0].String())
	assert.Equal(t, "iFood", rows[0].Cells[2].String())
	assert.Equal(t, "Loja", rows[1].Cells[0].String())
	assert.Equal(t, "Loja Sul", rows[3].Cells[0].String())

	_, err = Export(table, req, "pdf")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
