package analyzing

import (
	"fmt"
	"time"

	"github.com/vfg2006/nola-insights/internal/domain"
)

// SpikeFactor é o múltiplo da média diária a partir do qual um dia é tratado como evento especial
const SpikeFactor = 2.5

// heuristic recebe o conjunto filtrado, nunca vazio
type heuristic struct {
	name string
	run  func(lines []*domain.SaleLine) (domain.Insight, error)
}

var heuristics = []heuristic{
	{name: "peak_day", run: peakDayInsight},
	{name: "peak_hour", run: peakHourInsight},
	{name: "top_product", run: topProductInsight},
	{name: "top_channel", run: topChannelInsight},
}

// GenerateInsights executa as quatro heurísticas de forma independente.
// Conjunto vazio gera um único aviso; a falha de uma heurística não impede as demais.
func GenerateInsights(lines []*domain.SaleLine) ([]domain.Insight, map[string]error) {
	if len(lines) == 0 {
		return []domain.Insight{{
			Kind:    domain.InsightNoData,
			Message: "Não há dados no período selecionado para gerar insights.",
		}}, nil
	}

	insights := make([]domain.Insight, 0, len(heuristics))
	var failures map[string]error

	for _, h := range heuristics {
		insight, err := runHeuristic(h, lines)
		if err != nil {
			if failures == nil {
				failures = make(map[string]error)
			}
			failures[h.name] = err
			continue
		}
		insights = append(insights, insight)
	}

	return insights, failures
}

func runHeuristic(h heuristic, lines []*domain.SaleLine) (insight domain.Insight, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("heurística %s: %v", h.name, r)
		}
	}()
	return h.run(lines)
}

// DailyRevenue agrupa o faturamento por dia corrido entre o primeiro e o último dia com vendas.
// Dias sem vendas entram com zero na série.
func DailyRevenue(lines []*domain.SaleLine) ([]time.Time, []float64) {
	if len(lines) == 0 {
		return nil, nil
	}

	byDay := make(map[time.Time]float64)
	first := lines[0].Day()
	last := first
	for _, line := range lines {
		day := line.Day()
		byDay[day] += line.LineTotalAmount
		if day.Before(first) {
			first = day
		}
		if day.After(last) {
			last = day
		}
	}

	days := make([]time.Time, 0)
	values := make([]float64, 0)
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
		values = append(values, byDay[day])
	}
	return days, values
}

func peakDayInsight(lines []*domain.SaleLine) (domain.Insight, error) {
	days, values := DailyRevenue(lines)
	if len(days) == 0 {
		return domain.Insight{}, domain.ErrEmptyResult
	}

	peakIdx := 0
	var total float64
	for i, v := range values {
		total += v
		if v > values[peakIdx] {
			peakIdx = i
		}
	}
	mean := total / float64(len(values))
	peakDay, peakValue := days[peakIdx], values[peakIdx]

	if IsAnomalousSpike(peakValue, mean) {
		return domain.Insight{
			Kind: domain.InsightAnomalousSpike,
			Message: fmt.Sprintf(
				"Pico (Promoção): O dia %s teve um faturamento de %s, muito acima da média diária (%s). Isso indica um evento especial, como a Black Friday ou uma grande promoção.",
				formatDay(peakDay), formatMoney(peakValue), formatMoney(mean),
			),
			Label: peakDay.Format(time.DateOnly),
			Value: peakValue,
		}, nil
	}

	return domain.Insight{
		Kind:    domain.InsightPeakDay,
		Message: fmt.Sprintf("Pico (Dia): O dia de maior faturamento foi %s com %s.", formatDay(peakDay), formatMoney(peakValue)),
		Label:   peakDay.Format(time.DateOnly),
		Value:   peakValue,
	}, nil
}

// IsAnomalousSpike classifica o pico diário contra a média da série
func IsAnomalousSpike(peak, mean float64) bool {
	return mean > 0 && peak > mean*SpikeFactor
}

func peakHourInsight(lines []*domain.SaleLine) (domain.Insight, error) {
	series := HourlyRevenue(lines)

	peak := -1
	for _, point := range series {
		if peak < 0 || point.Revenue > series[peak].Revenue {
			peak = point.Hour
		}
	}
	if peak < 0 {
		return domain.Insight{}, domain.ErrEmptyResult
	}

	return domain.Insight{
		Kind:    domain.InsightPeakHour,
		Message: fmt.Sprintf("Horário: O horário de pico de vendas (maior faturamento) no período é às %dh.", peak),
		Label:   fmt.Sprintf("%02dh", peak),
		Value:   series[peak].Revenue,
	}, nil
}

func topProductInsight(lines []*domain.SaleLine) (domain.Insight, error) {
	revenue := make(map[string]float64)
	for _, line := range lines {
		revenue[line.ProductName] += line.LineTotalAmount
	}

	product, value, ok := argmax(revenue)
	if !ok {
		return domain.Insight{}, domain.ErrEmptyResult
	}

	return domain.Insight{
		Kind:    domain.InsightTopProduct,
		Message: fmt.Sprintf("Produto: O produto de maior faturamento no período foi %s.", product),
		Label:   product,
		Value:   value,
	}, nil
}

func topChannelInsight(lines []*domain.SaleLine) (domain.Insight, error) {
	orders := make(map[string]map[int64]struct{})
	revenue := make(map[string]float64)
	for _, line := range lines {
		if orders[line.ChannelName] == nil {
			orders[line.ChannelName] = make(map[int64]struct{})
		}
		orders[line.ChannelName][line.SaleID] = struct{}{}
		revenue[line.ChannelName] += line.LineTotalAmount
	}

	counts := make(map[string]float64, len(orders))
	for channel, sales := range orders {
		counts[channel] = float64(len(sales))
	}

	channel, _, ok := argmax(counts)
	if !ok {
		return domain.Insight{}, domain.ErrEmptyResult
	}

	return domain.Insight{
		Kind: domain.InsightTopChannel,
		Message: fmt.Sprintf("Canal: O canal com mais pedidos no período foi o %s, gerando %s.",
			channel, formatMoney(revenue[channel])),
		Label: channel,
		Value: revenue[channel],
	}, nil
}

// argmax retorna a chave de maior valor; empates ficam com a menor chave
func argmax(values map[string]float64) (string, float64, bool) {
	var bestKey string
	var bestValue float64
	found := false
	for k, v := range values {
		if !found || v > bestValue || (v == bestValue && k < bestKey) {
			bestKey, bestValue, found = k, v, true
		}
	}
	return bestKey, bestValue, found
}
