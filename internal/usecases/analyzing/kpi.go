package analyzing

import (
	"github.com/vfg2006/nola-insights/internal/domain"
)

// ComputeKPIs calcula os indicadores do conjunto filtrado.
// O ticket médio aqui é faturamento / pedidos distintos, diferente da métrica da tabela dinâmica.
func ComputeKPIs(lines []*domain.SaleLine) *domain.KPIs {
	kpis := &domain.KPIs{}

	orders := make(map[int64]struct{})
	var deliveryMinutes float64
	var deliveryCount int

	for _, line := range lines {
		kpis.TotalRevenue += line.LineTotalAmount
		orders[line.SaleID] = struct{}{}

		if minutes, ok := line.DeliveryMinutes(); ok {
			deliveryMinutes += minutes
			deliveryCount++
		}
	}

	kpis.TotalOrders = len(orders)
	if kpis.TotalOrders > 0 {
		kpis.AverageTicket = kpis.TotalRevenue / float64(kpis.TotalOrders)
	}
	if deliveryCount > 0 {
		kpis.AvgDeliveryMinutes = deliveryMinutes / float64(deliveryCount)
	}

	return kpis
}
