// Package settings expone la configuración operativa como un snapshot de solo
// lectura por request. El refresco lo dispara una tarea programada externa
// llamando Refresh; los casos de uso nunca mutan el snapshot.
package settings

import (
	"context"
	"strconv"
	"sync"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Snapshot es la vista inmutable de la configuración vigente.
type Snapshot struct {
	// AddOnlyActiveUsers: solo usuarios con cuenta activa entran a grupos.
	// Sin fila en settings se asume true.
	AddOnlyActiveUsers bool
}

// Defaults devuelve el snapshot asumido cuando una clave no está persistida.
func Defaults() Snapshot {
	return Snapshot{AddOnlyActiveUsers: true}
}

// Provider entrega el snapshot vigente a los casos de uso.
type Provider interface {
	Current(ctx context.Context) Snapshot
}

// CachedProvider mantiene el snapshot en memoria (read-mostly). Current nunca
// toca la base; Refresh relee la tabla settings.
type CachedProvider struct {
	repo repository.SettingRepository

	mu   sync.RWMutex
	snap Snapshot
}

// NewCachedProvider construye el provider con los defaults; llamar Refresh al
// arrancar para cargar los valores persistidos.
func NewCachedProvider(repo repository.SettingRepository) *CachedProvider {
	return &CachedProvider{repo: repo, snap: Defaults()}
}

// Current devuelve el snapshot vigente.
func (p *CachedProvider) Current(_ context.Context) Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// Refresh relee la tabla settings y reemplaza el snapshot. Claves sin fila o
// con valor no parseable conservan su default.
func (p *CachedProvider) Refresh(_ context.Context) error {
	rows, err := p.repo.All()
	if err != nil {
		return err
	}
	snap := Defaults()
	for _, s := range rows {
		switch s.Key {
		case entity.SettingAddOnlyActiveUsers:
			if v, err := strconv.ParseBool(s.Value); err == nil {
				snap.AddOnlyActiveUsers = v
			}
		}
	}
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
	return nil
}
