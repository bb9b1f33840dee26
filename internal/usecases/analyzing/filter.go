package analyzing

import (
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
)

// FilterLines retorna as linhas que satisfazem a conjunção de todos os filtros.
// As linhas retornadas apontam para o snapshot compartilhado e não devem ser alteradas.
func FilterLines(lines []domain.SaleLine, filters domain.Filters) ([]*domain.SaleLine, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	var start, end time.Time
	if filters.StartDate != nil {
		start = domain.DateOf(*filters.StartDate)
	}
	if filters.EndDate != nil {
		end = domain.DateOf(*filters.EndDate)
	}

	stores := toSet(filters.Stores)
	channels := toSet(filters.Channels)
	weekdays := weekdaySet(filters.Weekdays)

	filtered := make([]*domain.SaleLine, 0)
	for i := range lines {
		line := &lines[i]
		day := line.Day()

		if filters.StartDate != nil && day.Before(start) {
			continue
		}
		if filters.EndDate != nil && day.After(end) {
			continue
		}
		if stores != nil {
			if _, ok := stores[line.StoreName]; !ok {
				continue
			}
		}
		if channels != nil {
			if _, ok := channels[line.ChannelName]; !ok {
				continue
			}
		}
		if weekdays != nil {
			if _, ok := weekdays[line.SaleDate.Weekday()]; !ok {
				continue
			}
		}

		filtered = append(filtered, line)
	}

	return filtered, nil
}

func toSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func weekdaySet(values []time.Weekday) map[time.Weekday]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[time.Weekday]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
