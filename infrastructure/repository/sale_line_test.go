package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/nola-insights/infrastructure/database/postgres"
	"github.com/vfg2006/nola-insights/internal/domain"
)

func TestBuildSaleLinesQuery(t *testing.T) {
	query, args, err := buildSaleLinesQuery()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM sales JOIN stores ON sales.store_id = stores.id")
	assert.Contains(t, query, "JOIN categories ON products.category_id = categories.id")
	assert.Contains(t, query, "LEFT JOIN delivery_addresses AS delivery ON sales.id = delivery.sale_id")
	assert.Contains(t, query, "WHERE sales.sale_status_desc = $1")
	assert.Contains(t, query, "product_sales.total_price AS produto_valor_total")
	assert.Equal(t, []interface{}{domain.StatusCompleted}, args)
}

type failingConn struct {
	postgres.Conn
	err error
}

func (c *failingConn) RunInReadOnlyTransaction(ctx context.Context, fn func(postgres.Queryer) error) error {
	return c.err
}

func TestSaleLineRepository_FetchCompletedError(t *testing.T) {
	want := errors.New("connection reset")
	repo := NewSaleLineRepository(&failingConn{err: want})

	lines, err := repo.FetchCompleted(context.Background())
	assert.ErrorIs(t, err, want)
	assert.Nil(t, lines)
}

func TestSaleLineRepository_ClassifiesDriverErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "consulta cancelada", err: &pq.Error{Code: "57014", Message: "canceling statement due to statement timeout"}, want: ErrQueryCanceled},
		{name: "tabela ausente", err: &pq.Error{Code: "42P01", Message: `relation "sales" does not exist`}, want: ErrSchemaMismatch},
		{name: "coluna ausente", err: &pq.Error{Code: "42703", Message: `column "delivery_seconds" does not exist`}, want: ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewSaleLineRepository(&failingConn{err: tt.err})

			_, err := repo.FetchCompleted(context.Background())
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
