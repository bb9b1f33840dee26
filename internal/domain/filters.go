package domain

import (
	"fmt"
	"time"
)

// Filters representa as seleções da barra lateral.
// Conjuntos nil não restringem; conjuntos vazios não nil não aceitam nenhuma linha.
type Filters struct {
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	Stores    []string       `json:"stores,omitempty"`
	Channels  []string       `json:"channels,omitempty"`
	Weekdays  []time.Weekday `json:"weekdays,omitempty"`
}

// Validate verifica a combinação de filtros antes de qualquer cálculo
func (f *Filters) Validate() error {
	if f.StartDate != nil && f.EndDate != nil && DateOf(*f.StartDate).After(DateOf(*f.EndDate)) {
		return fmt.Errorf("%w: data de início (%s) não pode ser maior que a data de fim (%s)",
			ErrInvalidInput,
			f.StartDate.Format("02/01/2006"),
			f.EndDate.Format("02/01/2006"),
		)
	}
	return nil
}

// WithDefaults preenche o intervalo de datas ausente com os limites do snapshot
func (f Filters) WithDefaults(s *Snapshot) Filters {
	if f.StartDate == nil && s != nil && s.Len() > 0 {
		start := s.MinDate
		f.StartDate = &start
	}
	if f.EndDate == nil && s != nil && s.Len() > 0 {
		end := s.MaxDate
		f.EndDate = &end
	}
	return f
}
