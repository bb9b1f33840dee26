package domain

import "fmt"

// Metric enumera as métricas da tabela dinâmica
type Metric int

const (
	MetricTotalValue Metric = iota + 1
	MetricOrderCount
	MetricAverageOrderValue
	MetricDeliveryTime
)

// Metrics lista as métricas na ordem exibida no seletor
var Metrics = []Metric{
	MetricTotalValue,
	MetricOrderCount,
	MetricAverageOrderValue,
	MetricDeliveryTime,
}

// Accumulator agrega as linhas de uma célula da tabela dinâmica
type Accumulator interface {
	Add(line *SaleLine)
	Value() float64
}

// MetricDescriptor liga uma métrica ao campo de origem e à agregação
type MetricDescriptor struct {
	Metric      Metric
	Key         string
	Label       string
	Aggregation string
	New         func() Accumulator
}

// Descriptor retorna a descrição da métrica
func (m Metric) Descriptor() (MetricDescriptor, error) {
	switch m {
	case MetricTotalValue:
		return MetricDescriptor{
			Metric:      m,
			Key:         "total_value",
			Label:       "Valor Total (R$)",
			Aggregation: "sum",
			New:         func() Accumulator { return &sumAccumulator{} },
		}, nil
	case MetricOrderCount:
		return MetricDescriptor{
			Metric:      m,
			Key:         "order_count",
			Label:       "Nº de Pedidos",
			Aggregation: "distinct_count",
			New:         func() Accumulator { return &distinctSalesAccumulator{sales: make(map[int64]struct{})} },
		}, nil
	case MetricAverageOrderValue:
		return MetricDescriptor{
			Metric:      m,
			Key:         "avg_order_value",
			Label:       "Ticket Médio (R$)",
			Aggregation: "mean",
			New:         func() Accumulator { return &saleTotalMeanAccumulator{sales: make(map[int64]struct{})} },
		}, nil
	case MetricDeliveryTime:
		return MetricDescriptor{
			Metric:      m,
			Key:         "delivery_time",
			Label:       "Tempo de Entrega (min)",
			Aggregation: "mean",
			New:         func() Accumulator { return &deliveryMeanAccumulator{} },
		}, nil
	}
	return MetricDescriptor{}, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
}

// ParseMetric converte a chave recebida na API
func ParseMetric(key string) (Metric, error) {
	for _, m := range Metrics {
		d, _ := m.Descriptor()
		if d.Key == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
}

func (m Metric) String() string {
	d, err := m.Descriptor()
	if err != nil {
		return "unknown"
	}
	return d.Key
}

// soma do valor total da linha de produto
type sumAccumulator struct {
	total float64
}

func (a *sumAccumulator) Add(line *SaleLine) { a.total += line.LineTotalAmount }
func (a *sumAccumulator) Value() float64     { return a.total }

// contagem distinta de vendas
type distinctSalesAccumulator struct {
	sales map[int64]struct{}
}

func (a *distinctSalesAccumulator) Add(line *SaleLine) { a.sales[line.SaleID] = struct{}{} }
func (a *distinctSalesAccumulator) Value() float64     { return float64(len(a.sales)) }

// média do valor total por venda distinta; cada venda pesa uma vez, independente do número de itens
type saleTotalMeanAccumulator struct {
	sales map[int64]struct{}
	total float64
}

func (a *saleTotalMeanAccumulator) Add(line *SaleLine) {
	if _, seen := a.sales[line.SaleID]; seen {
		return
	}
	a.sales[line.SaleID] = struct{}{}
	a.total += line.SaleTotalAmount
}

func (a *saleTotalMeanAccumulator) Value() float64 {
	if len(a.sales) == 0 {
		return 0
	}
	return a.total / float64(len(a.sales))
}

// média do tempo de entrega em minutos, com a mesma regra de DeliveryMinutes
type deliveryMeanAccumulator struct {
	total float64
	count int
}

func (a *deliveryMeanAccumulator) Add(line *SaleLine) {
	if minutes, ok := line.DeliveryMinutes(); ok {
		a.total += minutes
		a.count++
	}
}

func (a *deliveryMeanAccumulator) Value() float64 {
	if a.count == 0 {
		return 0
	}
	return a.total / float64(a.count)
}
