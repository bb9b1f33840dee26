package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekdays lista os dias da semana na ordem do calendário comercial (segunda primeiro)
var Weekdays = []time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// WeekdayName retorna o nome do dia da semana em português
func WeekdayName(w time.Weekday) string {
	return weekdayNames[w]
}

// WeekdayNames retorna os nomes na ordem de Weekdays
func WeekdayNames() []string {
	names := make([]string, 0, len(Weekdays))
	for _, w := range Weekdays {
		names = append(names, WeekdayName(w))
	}
	return names
}

// ParseWeekday aceita o nome em português ou o nome em inglês (Monday, ...)
func ParseWeekday(name string) (time.Weekday, error) {
	name = strings.TrimSpace(name)
	for w, ptName := range weekdayNames {
		if strings.EqualFold(ptName, name) || strings.EqualFold(w.String(), name) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("%w: dia da semana desconhecido %q", ErrInvalidInput, name)
}

// weekdayRank posiciona um nome de dia na ordem de Weekdays; nomes desconhecidos vão para o fim
func weekdayRank(name string) int {
	w, err := ParseWeekday(name)
	if err != nil {
		return len(Weekdays)
	}
	return (int(w) + 6) % 7
}
