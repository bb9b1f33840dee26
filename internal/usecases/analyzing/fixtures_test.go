package analyzing

import (
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

// saleLines monta duas vendas: uma de delivery com dois produtos e uma de balcão sem endereço
func saleLines() []domain.SaleLine {
	return []domain.SaleLine{
		{
			SaleID:               1,
			SaleDate:             at(2024, time.May, 6, 12, 30),
			SaleTotalAmount:      100,
			Status:               domain.StatusCompleted,
			DeliverySeconds:      ptr(int64(600)),
			StoreName:            "Loja Centro",
			ChannelName:          "iFood",
			ProductName:          "Pizza",
			ProductCategory:      "Pizzas",
			Quantity:             1,
			LineTotalAmount:      60,
			DeliveryNeighborhood: ptr("Centro"),
		},
		{
			SaleID:               1,
			SaleDate:             at(2024, time.May, 6, 12, 30),
			SaleTotalAmount:      100,
			Status:               domain.StatusCompleted,
			DeliverySeconds:      ptr(int64(600)),
			StoreName:            "Loja Centro",
			ChannelName:          "iFood",
			ProductName:          "Refrigerante",
			ProductCategory:      "Bebidas",
			Quantity:             2,
			LineTotalAmount:      40,
			DeliveryNeighborhood: ptr("Centro"),
		},
		{
			SaleID:          2,
			SaleDate:        at(2024, time.May, 7, 19, 10),
			SaleTotalAmount: 50,
			Status:          domain.StatusCompleted,
			StoreName:       "Loja Sul",
			ChannelName:     "Balcão",
			ProductName:     "Pizza",
			ProductCategory: "Pizzas",
			Quantity:        1,
			LineTotalAmount: 50,
		},
	}
}

// singleItemSale monta uma venda de um item no iFood da Loja Centro
func singleItemSale(id int64, total float64, deliverySeconds *int64) domain.SaleLine {
	return domain.SaleLine{
		SaleID:               id,
		SaleDate:             at(2024, time.May, 6, 20, 0),
		SaleTotalAmount:      total,
		Status:               domain.StatusCompleted,
		DeliverySeconds:      deliverySeconds,
		StoreName:            "Loja Centro",
		ChannelName:          "iFood",
		ProductName:          "Pizza",
		ProductCategory:      "Pizzas",
		Quantity:             1,
		LineTotalAmount:      total,
		DeliveryNeighborhood: ptr("Centro"),
	}
}

func newSnapshot(lines []domain.SaleLine) *domain.Snapshot {
	return domain.NewSnapshot(lines, domain.SnapshotMetadata{
		RunID:         "run-test",
		RowCount:      len(lines),
		SchemaVersion: domain.SnapshotSchemaVersion,
	}, "memory")
}

func filtered(lines []domain.SaleLine) []*domain.SaleLine {
	snapshot := newSnapshot(lines)
	out := make([]*domain.SaleLine, 0, len(snapshot.Lines))
	for i := range snapshot.Lines {
		out = append(out, &snapshot.Lines[i])
	}
	return out
}

// dailyLines gera uma venda por dia com o valor informado
func dailyLines(start time.Time, values ...float64) []domain.SaleLine {
	lines := make([]domain.SaleLine, 0, len(values))
	for i, v := range values {
		lines = append(lines, domain.SaleLine{
			SaleID:          int64(i + 1),
			SaleDate:        start.AddDate(0, 0, i),
			SaleTotalAmount: v,
			Status:          domain.StatusCompleted,
			StoreName:       "Loja Centro",
			ChannelName:     "Balcão",
			ProductName:     "Pizza",
			ProductCategory: "Pizzas",
			Quantity:        1,
			LineTotalAmount: v,
		})
	}
	return lines
}

type stubSnapshots struct {
	snapshot *domain.Snapshot
	err      error
}

func (s *stubSnapshots) Current() (*domain.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshot, nil
}
