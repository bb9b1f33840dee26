package extracting

import (
	"errors"
	"fmt"
)

// Estágios do extrator. Qualquer falha interrompe a execução sem publicar snapshot.
var (
	ErrConnection  = errors.New("error connecting to source database")
	ErrQuery       = errors.New("error querying completed sales")
	ErrPersistence = errors.New("error writing analytical snapshot")
)

// StageError é a falha de um estágio do extrator
type StageError struct {
	Stage error  // ErrConnection, ErrQuery ou ErrPersistence
	RunID string // execução em que a falha ocorreu
	Err   error  // causa original
}

// Error implementa a interface error
func (e *StageError) Error() string {
	return fmt.Sprintf("%s (run %s): %s", e.Stage.Error(), e.RunID, e.Err.Error())
}

// Unwrap retorna a causa original e o estágio, para errors.Is em ambos
func (e *StageError) Unwrap() []error {
	return []error{e.Stage, e.Err}
}

// NewStageError cria um novo StageError
func NewStageError(stage error, runID string, err error) *StageError {
	return &StageError{
		Stage: stage,
		RunID: runID,
		Err:   err,
	}
}
