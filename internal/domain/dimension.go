package domain

import (
	"fmt"
	"sort"
	"strings"
)

// UnknownLabel agrupa linhas sem valor para a dimensão, quando permitido
const UnknownLabel = "Não informado"

// Dimension enumera os atributos categóricos usados como chave de agrupamento
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionProduct
	DimensionCategory
	DimensionStore
	DimensionChannel
	DimensionNeighborhood
	DimensionWeekday
)

// Dimensions lista as dimensões de linha na ordem exibida no seletor
var Dimensions = []Dimension{
	DimensionProduct,
	DimensionCategory,
	DimensionStore,
	DimensionChannel,
	DimensionNeighborhood,
	DimensionWeekday,
}

// DimensionDescriptor liga a dimensão à função que extrai o valor de uma linha
type DimensionDescriptor struct {
	Dimension Dimension
	Key       string
	Label     string

	// Value retorna false quando a linha não tem valor para a dimensão
	Value func(line *SaleLine) (string, bool)

	// Precondition, quando definida, é verificada antes da agregação
	Precondition func(lines []*SaleLine) error
	Hint         string

	less func(a, b string) bool
}

// Sort ordena rótulos da dimensão (dias da semana na ordem do calendário, demais em ordem alfabética)
func (d DimensionDescriptor) Sort(labels []string) {
	less := d.less
	if less == nil {
		less = func(a, b string) bool { return a < b }
	}
	sort.SliceStable(labels, func(i, j int) bool { return less(labels[i], labels[j]) })
}

// Descriptor retorna a descrição da dimensão
func (d Dimension) Descriptor() (DimensionDescriptor, error) {
	switch d {
	case DimensionProduct:
		return DimensionDescriptor{
			Dimension: d,
			Key:       "product",
			Label:     "Produto",
			Value:     func(l *SaleLine) (string, bool) { return l.ProductName, true },
		}, nil
	case DimensionCategory:
		return DimensionDescriptor{
			Dimension: d,
			Key:       "category",
			Label:     "Categoria",
			Value:     func(l *SaleLine) (string, bool) { return l.ProductCategory, true },
		}, nil
	case DimensionStore:
		return DimensionDescriptor{
			Dimension: d,
			Key:       "store",
			Label:     "Loja",
			Value:     func(l *SaleLine) (string, bool) { return l.StoreName, true },
		}, nil
	case DimensionChannel:
		return DimensionDescriptor{
			Dimension: d,
			Key:       "channel",
			Label:     "Canal",
			Value:     func(l *SaleLine) (string, bool) { return l.ChannelName, true },
		}, nil
	case DimensionNeighborhood:
		return DimensionDescriptor{
			Dimension:    d,
			Key:          "neighborhood",
			Label:        "Bairro",
			Value:        neighborhoodOf,
			Precondition: requireDeliveryAddress,
			Hint:         "'Bairro' só funciona bem se o filtro de Canal contiver apenas canais de entrega",
		}, nil
	case DimensionWeekday:
		return DimensionDescriptor{
			Dimension: d,
			Key:       "weekday",
			Label:     "Dia da Semana",
			Value:     func(l *SaleLine) (string, bool) { return WeekdayName(l.Weekday), true },
			less:      func(a, b string) bool { return weekdayRank(a) < weekdayRank(b) },
		}, nil
	}
	return DimensionDescriptor{}, fmt.Errorf("%w: %d", ErrUnknownDimension, int(d))
}

// ParseDimension converte a chave recebida na API. Vazio ou "none" significa nenhuma dimensão.
func ParseDimension(key string) (Dimension, error) {
	key = strings.TrimSpace(strings.ToLower(key))
	if key == "" || key == "none" {
		return DimensionNone, nil
	}
	for _, d := range Dimensions {
		desc, _ := d.Descriptor()
		if desc.Key == key {
			return d, nil
		}
	}
	return DimensionNone, fmt.Errorf("%w: %q", ErrUnknownDimension, key)
}

func (d Dimension) String() string {
	if d == DimensionNone {
		return "none"
	}
	desc, err := d.Descriptor()
	if err != nil {
		return "unknown"
	}
	return desc.Key
}

func neighborhoodOf(l *SaleLine) (string, bool) {
	if l.DeliveryNeighborhood == nil || strings.TrimSpace(*l.DeliveryNeighborhood) == "" {
		return "", false
	}
	return *l.DeliveryNeighborhood, true
}

// requireDeliveryAddress exige que todas as linhas tenham endereço de entrega
func requireDeliveryAddress(lines []*SaleLine) error {
	missing := 0
	for _, l := range lines {
		if _, ok := neighborhoodOf(l); !ok {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%w: %d de %d linhas sem bairro de entrega", ErrDimensionNotApplicable, missing, len(lines))
	}
	return nil
}
