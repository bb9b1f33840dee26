package analyzing

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// formatMoney formata valores como no painel: R$ 1.234,56
func formatMoney(v float64) string {
	return printer.Sprintf("R$ %.2f", v)
}

func formatDay(t time.Time) string {
	return t.Format("02/01/2006")
}
