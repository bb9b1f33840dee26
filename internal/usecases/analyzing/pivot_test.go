package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/nola-insights/internal/domain"
)

func TestBuildPivot_StoreByChannelOrderCount(t *testing.T) {
	table, err := BuildPivot(filtered(saleLines()), domain.PivotRequest{
		Metric: domain.MetricOrderCount,
		Row:    domain.DimensionStore,
		Column: domain.DimensionChannel,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Loja Centro", "Loja Sul"}, table.RowLabels)
	assert.Equal(t, []string{"Balcão", "iFood"}, table.ColumnLabels)
	assert.Equal(t, [][]float64{{0, 1}, {1, 0}}, table.Values)
	assert.Equal(t, "Loja", table.RowDimension)
	assert.Equal(t, "Canal", table.ColumnDimension)
	assert.Equal(t, "Nº de Pedidos por Loja e Canal", table.Title)
}

func TestBuildPivot_WithoutColumnDimension(t *testing.T) {
	table, err := BuildPivot(filtered(saleLines()), domain.PivotRequest{
		Metric: domain.MetricTotalValue,
		Row:    domain.DimensionProduct,
	})
	require.NoError(t, err)

	assert.False(t, table.HasColumnDimension())
	assert.Equal(t, []string{"Valor Total (R$)"}, table.ColumnLabels)
	assert.Equal(t, []string{"Pizza", "Refrigerante"}, table.RowLabels)
	assert.Equal(t, [][]float64{{110}, {40}}, table.Values)
}

func TestBuildPivot_AverageOrderValueCountsEachSaleOnce(t *testing.T) {
	// venda 1 tem dois itens (total 100) e a venda 3 um item (total 40) na mesma loja:
	// por venda a média é 70, por linha seria 80
	lines := append(saleLines(), singleItemSale(3, 40, nil))

	table, err := BuildPivot(filtered(lines), domain.PivotRequest{
		Metric: domain.MetricAverageOrderValue,
		Row:    domain.DimensionStore,
	})
	require.NoError(t, err)

	v, ok := table.Cell("Loja Centro", "Ticket Médio (R$)")
	require.True(t, ok)
	assert.Equal(t, 70.0, v)

	v, ok = table.Cell("Loja Sul", "Ticket Médio (R$)")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)
}

func TestBuildPivot_DeliveryTimeIgnoresMissing(t *testing.T) {
	// a venda 3 tem tempo zerado e não entra na média, igual ao indicador
	lines := filtered(append(saleLines(), singleItemSale(3, 40, ptr(int64(0)))))

	table, err := BuildPivot(lines, domain.PivotRequest{
		Metric: domain.MetricDeliveryTime,
		Row:    domain.DimensionChannel,
	})
	require.NoError(t, err)

	v, _ := table.Cell("iFood", "Tempo de Entrega (min)")
	assert.Equal(t, 10.0, v)
	v, _ = table.Cell("Balcão", "Tempo de Entrega (min)")
	assert.Equal(t, 0.0, v)

	table, err = BuildPivot(lines, domain.PivotRequest{
		Metric: domain.MetricDeliveryTime,
		Row:    domain.DimensionStore,
	})
	require.NoError(t, err)

	v, _ = table.Cell("Loja Centro", "Tempo de Entrega (min)")
	assert.Equal(t, ComputeKPIs(lines).AvgDeliveryMinutes, v)
	assert.Equal(t, 10.0, v)
}

func TestBuildPivot_WeekdayCalendarOrder(t *testing.T) {
	lines := saleLines()
	lines[2].SaleDate = at(2024, 5, 5, 19, 10) // domingo

	table, err := BuildPivot(filtered(lines), domain.PivotRequest{
		Metric: domain.MetricTotalValue,
		Row:    domain.DimensionWeekday,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Segunda-feira", "Domingo"}, table.RowLabels)
}

func TestBuildPivot_NeighborhoodPrecondition(t *testing.T) {
	req := domain.PivotRequest{
		Metric: domain.MetricTotalValue,
		Row:    domain.DimensionNeighborhood,
	}

	_, err := BuildPivot(filtered(saleLines()), req)
	require.Error(t, err)

	var computation *domain.ComputationError
	require.ErrorAs(t, err, &computation)
	assert.Equal(t, "pivot", computation.Section)
	assert.NotEmpty(t, computation.Hint)
	assert.ErrorIs(t, err, domain.ErrDimensionNotApplicable)

	req.AllowUnknown = true
	table, err := BuildPivot(filtered(saleLines()), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Centro", domain.UnknownLabel}, table.RowLabels)
	assert.Equal(t, [][]float64{{100}, {50}}, table.Values)
}

func TestBuildPivot_DeliveryOnlyNeighborhood(t *testing.T) {
	lines := saleLines()[:2]

	table, err := BuildPivot(filtered(lines), domain.PivotRequest{
		Metric: domain.MetricOrderCount,
		Row:    domain.DimensionNeighborhood,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Centro"}, table.RowLabels)
	assert.Equal(t, [][]float64{{1}}, table.Values)
}

func TestBuildPivot_InvalidRequest(t *testing.T) {
	_, err := BuildPivot(filtered(saleLines()), domain.PivotRequest{
		Metric: domain.MetricTotalValue,
		Row:    domain.DimensionStore,
		Column: domain.DimensionStore,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = BuildPivot(filtered(saleLines()), domain.PivotRequest{Metric: domain.MetricTotalValue})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuildPivot_Idempotent(t *testing.T) {
	lines := filtered(saleLines())
	req := domain.PivotRequest{
		Metric: domain.MetricAverageOrderValue,
		Row:    domain.DimensionCategory,
		Column: domain.DimensionWeekday,
	}

	first, err := BuildPivot(lines, req)
	require.NoError(t, err)
	second, err := BuildPivot(lines, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
