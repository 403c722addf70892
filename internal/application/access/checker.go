// Package access implementa el filtrado por scope de autorización: "all" no
// filtra nada; "own" exige que cada recurso pase el chequeo de acceso (owner
// directo o membresía activa en un grupo vinculado). Operaciones en lote no
// fallan completas por un recurso denegado: el id se excluye y se reporta
// como error por item.
package access

import (
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// Scope efectivo de autorización del caller.
type Scope string

const (
	ScopeAll Scope = "all"
	ScopeOwn Scope = "own"
)

// ScopeForRole deriva el scope efectivo del rol del token.
func ScopeForRole(role string) Scope {
	if role == entity.RoleAdmin {
		return ScopeAll
	}
	return ScopeOwn
}

// Denied es el error por item de un recurso excluido por scope.
type Denied struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Checker aplica el chequeo de acceso sobre productos.
type Checker struct {
	repo repository.AccessRepository
}

// NewChecker construye el checker con el puerto de acceso.
func NewChecker(repo repository.AccessRepository) *Checker {
	return &Checker{repo: repo}
}

// CanAccess informa si el usuario puede operar el producto bajo el scope dado.
func (c *Checker) CanAccess(scope Scope, userID, productID string) (bool, error) {
	if scope == ScopeAll {
		return true, nil
	}
	return c.repo.CanAccessProduct(userID, productID)
}

// FilterProducts separa los ids en permitidos y denegados según el scope.
// Con scope "all" todos pasan sin consultar la base.
func (c *Checker) FilterProducts(scope Scope, userID string, productIDs []string) (allowed []string, denied []Denied, err error) {
	if scope == ScopeAll {
		return productIDs, nil, nil
	}
	for _, id := range productIDs {
		ok, err := c.repo.CanAccessProduct(userID, id)
		if err != nil {
			return nil, nil, err
		}
		if ok {
			allowed = append(allowed, id)
		} else {
			denied = append(denied, Denied{ID: id, Error: "Access denied to product " + id})
		}
	}
	return allowed, denied, nil
}
