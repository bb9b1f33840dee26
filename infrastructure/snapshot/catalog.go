package snapshot

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/vfg2006/nola-insights/internal/domain"
	"github.com/vfg2006/nola-insights/pkg/log"
)

// Reader é a origem do snapshot usada pelo catálogo
type Reader interface {
	Read(ctx context.Context) (*domain.Snapshot, error)
}

// Catalog mantém o snapshot atual em memória. Leitores concorrentes sempre veem uma
// versão completa; uma recarga troca o ponteiro inteiro.
type Catalog struct {
	reader  Reader
	current atomic.Pointer[domain.Snapshot]
	mu      sync.Mutex
}

func NewCatalog(reader Reader) *Catalog {
	return &Catalog{reader: reader}
}

// Load lê o snapshot e o publica. Em caso de falha a versão anterior continua valendo.
func (c *Catalog) Load(ctx context.Context) (*domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, err := c.reader.Read(ctx)
	if err != nil {
		return nil, err
	}

	c.current.Store(snapshot)

	log.L.WithFields(log.Fields{
		"run_id": snapshot.Metadata.RunID,
		"rows":   snapshot.Len(),
		"source": snapshot.Source,
	}).Info("Snapshot analítico carregado")

	return snapshot, nil
}

// Current retorna o snapshot carregado ou domain.ErrSnapshotUnavailable
func (c *Catalog) Current() (*domain.Snapshot, error) {
	snapshot := c.current.Load()
	if snapshot == nil {
		return nil, domain.ErrSnapshotUnavailable
	}
	return snapshot, nil
}
