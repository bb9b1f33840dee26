package analyzing

import (
	"github.com/vfg2006/nola-insights/internal/domain"
)

// HourlyRevenue soma o faturamento por hora do dia. A série sempre tem 24 pontos, de 0 a 23.
func HourlyRevenue(lines []*domain.SaleLine) []domain.HourlyPoint {
	series := make([]domain.HourlyPoint, 24)
	for hour := range series {
		series[hour].Hour = hour
	}

	for _, line := range lines {
		series[line.SaleDate.Hour()].Revenue += line.LineTotalAmount
	}

	return series
}
