package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/vfg2006/nola-insights/infrastructure/database/postgres"
	"github.com/vfg2006/nola-insights/internal/domain"
)

const salesTable = "sales"

// Códigos SQLSTATE tratados na extração
const (
	pqQueryCanceled   = "57014"
	pqUndefinedTable  = "42P01"
	pqUndefinedColumn = "42703"
)

var (
	// ErrQueryCanceled indica que a consulta excedeu o tempo limite ou foi cancelada
	ErrQueryCanceled = errors.New("sale lines query canceled")

	// ErrSchemaMismatch indica que o banco de origem não tem as tabelas ou colunas esperadas
	ErrSchemaMismatch = errors.New("source schema does not match the extraction query")
)

var saleLineColumns = []string{
	"sales.id AS venda_id",
	"sales.created_at AS data_venda",
	"sales.total_amount AS valor_total_venda",
	"sales.total_discount AS desconto_venda",
	"sales.delivery_fee AS taxa_entrega",
	"sales.sale_status_desc AS status_venda",
	"sales.production_seconds AS tempo_preparo_seg",
	"sales.delivery_seconds AS tempo_entrega_seg",
	"stores.name AS loja_nome",
	"stores.city AS loja_cidade",
	"channels.name AS canal_nome",
	"products.name AS produto_nome",
	"categories.name AS produto_categoria",
	"product_sales.quantity AS produto_qtde",
	"product_sales.total_price AS produto_valor_total",
	"delivery.neighborhood AS bairro_entrega",
	"delivery.city AS cidade_entrega",
}

type SaleLineRepository interface {
	// FetchCompleted retorna uma linha por produto vendido em vendas concluídas
	FetchCompleted(ctx context.Context) ([]domain.SaleLine, error)
}

type saleLineRepository struct {
	conn postgres.Conn
}

func NewSaleLineRepository(conn postgres.Conn) SaleLineRepository {
	return &saleLineRepository{
		conn: conn,
	}
}

func buildSaleLinesQuery() (string, []interface{}, error) {
	return squirrel.
		Select(saleLineColumns...).
		From(salesTable).
		Join("stores ON sales.store_id = stores.id").
		Join("channels ON sales.channel_id = channels.id").
		Join("product_sales ON product_sales.sale_id = sales.id").
		Join("products ON product_sales.product_id = products.id").
		Join("categories ON products.category_id = categories.id").
		LeftJoin("delivery_addresses AS delivery ON sales.id = delivery.sale_id").
		Where(squirrel.Eq{"sales.sale_status_desc": domain.StatusCompleted}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func (r *saleLineRepository) FetchCompleted(ctx context.Context) ([]domain.SaleLine, error) {
	query, args, err := buildSaleLinesQuery()
	if err != nil {
		return nil, errors.Wrap(err, "failed to build sale lines query")
	}

	lines := make([]domain.SaleLine, 0)

	err = r.conn.RunInReadOnlyTransaction(ctx, func(q postgres.Queryer) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			line, err := scanSaleLine(rows)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, classifyError(err)
	}

	return lines, nil
}

// classifyError traduz erros do driver para os erros da extração
func classifyError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqQueryCanceled:
		return fmt.Errorf("%w: %w", ErrQueryCanceled, err)
	case pqUndefinedTable, pqUndefinedColumn:
		return fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, pqErr.Message, err)
	}
	return err
}

func scanSaleLine(rows *sql.Rows) (domain.SaleLine, error) {
	var (
		line         domain.SaleLine
		discount     sql.NullFloat64
		deliveryFee  sql.NullFloat64
		preparation  sql.NullInt64
		delivery     sql.NullInt64
		storeCity    sql.NullString
		quantity     sql.NullFloat64
		neighborhood sql.NullString
		deliveryCity sql.NullString
		category     sql.NullString
		saleTotal    sql.NullFloat64
		lineTotal    sql.NullFloat64
	)

	if err := rows.Scan(
		&line.SaleID,
		&line.SaleDate,
		&saleTotal,
		&discount,
		&deliveryFee,
		&line.Status,
		&preparation,
		&delivery,
		&line.StoreName,
		&storeCity,
		&line.ChannelName,
		&line.ProductName,
		&category,
		&quantity,
		&lineTotal,
		&neighborhood,
		&deliveryCity,
	); err != nil {
		return line, errors.Wrap(err, "failed to scan sale line")
	}

	line.SaleDate = domain.WallClock(line.SaleDate)
	line.SaleTotalAmount = saleTotal.Float64
	line.Discount = discount.Float64
	line.DeliveryFee = deliveryFee.Float64
	line.StoreCity = storeCity.String
	line.ProductCategory = category.String
	line.Quantity = quantity.Float64
	line.LineTotalAmount = lineTotal.Float64
	line.PreparationSeconds = nullInt64(preparation)
	line.DeliverySeconds = nullInt64(delivery)
	line.DeliveryNeighborhood = nullString(neighborhood)
	line.DeliveryCity = nullString(deliveryCity)

	return line, nil
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
