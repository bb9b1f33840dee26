package domain

import (
	"errors"
	"fmt"
)

// Erros do analisador. Todos são locais à requisição e recuperáveis.
var (
	// ErrInvalidInput bloqueia o cálculo: combinação de filtros ou parâmetros inválida
	ErrInvalidInput = errors.New("parâmetros inválidos")

	// ErrEmptyResult é um aviso, não uma falha: os filtros não retornaram linhas
	ErrEmptyResult = errors.New("nenhum dado encontrado para os filtros selecionados")

	ErrSnapshotUnavailable    = errors.New("snapshot analítico indisponível")
	ErrUnknownMetric          = errors.New("métrica desconhecida")
	ErrUnknownDimension       = errors.New("dimensão desconhecida")
	ErrDimensionNotApplicable = errors.New("dimensão não aplicável aos dados filtrados")
)

// ComputationError é uma falha de agregação restrita a uma seção do painel
type ComputationError struct {
	Section string // kpis, insights, hourly, pivot
	Err     error
	Hint    string
}

func (e *ComputationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s (dica: %s)", e.Section, e.Err.Error(), e.Hint)
	}
	return fmt.Sprintf("%s: %s", e.Section, e.Err.Error())
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// NewComputationError cria um ComputationError
func NewComputationError(section string, err error, hint string) *ComputationError {
	return &ComputationError{
		Section: section,
		Err:     err,
		Hint:    hint,
	}
}
