package membership

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repos
// atados a esa tx. Todos los pasos posteriores a los chequeos de existencia
// (miembros activos, elegibilidad, inserts) corren en la misma transacción;
// cualquier fallo revierte todo lo insertado en la llamada.
type TxRunner interface {
	RunMembership(ctx context.Context, fn func(
		members repository.GroupMemberRepository,
		users repository.UserRepository,
	) error) error
}
