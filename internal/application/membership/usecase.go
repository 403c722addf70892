package membership

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/reconcile"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UseCase añade membresías grupo↔usuario en ambas direcciones: N usuarios a
// un grupo o un usuario a N grupos. Ids ya miembros o inelegibles se omiten y
// la respuesta reporta el manejo parcial; nunca es un fallo duro salvo que
// ningún id sea válido.
type UseCase struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	settings  settings.Provider
	tx        TxRunner
	sink      audit.Sink
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	settings settings.Provider,
	tx TxRunner,
	sink audit.Sink,
) *UseCase {
	return &UseCase{groupRepo: groupRepo, userRepo: userRepo, settings: settings, tx: tx, sink: sink}
}

// AddUsersToGroup añade los userIds al grupo. Valida que el grupo exista
// (NOT_FOUND), filtra ids inexistentes (VALIDATION si ninguno existe) y
// dentro de una transacción omite miembros ya activos, aplica la elegibilidad
// por account_status según el snapshot de settings e inserta el resto.
func (uc *UseCase) AddUsersToGroup(ctx context.Context, groupID string, in dto.AddUsersRequest) (*dto.MembershipResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "group.add_users", Actor: in.AddedBy, Resource: groupID,
		Outcome: audit.OutcomeEntry, Message: "añadir usuarios a grupo",
		Details: map[string]any{"requested": len(in.UserIDs)},
	})

	userIDs := reconcile.Dedupe(in.UserIDs)
	if len(userIDs) == 0 {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID,
			domain.NewError(domain.KindValidation, "userIds es requerido"))
	}

	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID, err)
	}
	if group == nil {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID,
			domain.NewErrorf(domain.KindNotFound, "grupo %s no encontrado", groupID))
	}

	existing, err := uc.userRepo.FilterExisting(userIDs)
	if err != nil {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID, err)
	}
	if len(existing) == 0 {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID,
			domain.NewError(domain.KindValidation, "ninguno de los usuarios solicitados existe"))
	}
	missing := len(userIDs) - len(existing)

	snap := uc.settings.Current(ctx)
	var added, alreadyMembers, ineligible int
	err = uc.tx.RunMembership(ctx, func(members repository.GroupMemberRepository, users repository.UserRepository) error {
		current, err := members.ActiveUserIDs(groupID)
		if err != nil {
			return err
		}
		toAdd, _ := reconcile.Diff(current, existing)
		alreadyMembers = len(existing) - len(toAdd)

		eligible, skipped, err := filterEligible(users, toAdd, snap)
		if err != nil {
			return err
		}
		ineligible = skipped

		now := time.Now().UTC()
		for _, userID := range eligible {
			if err := members.Insert(&entity.GroupMember{
				GroupID: groupID, UserID: userID, IsActive: true,
				JoinedAt: now, AddedBy: in.AddedBy,
			}); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "group.add_users", in.AddedBy, groupID, err)
	}

	if added > 0 {
		uc.sink.Publish(ctx, audit.Event{
			Action: "group.add_users", Actor: in.AddedBy, Resource: groupID,
			Outcome: audit.OutcomeAdded, Message: "membresías añadidas",
			Details: map[string]any{"count": added},
		})
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "group.add_users", Actor: in.AddedBy, Resource: groupID,
		Outcome: audit.OutcomeSuccess, Message: "añadir usuarios a grupo",
		Details: map[string]any{
			"added": added, "missing": missing,
			"already_members": alreadyMembers, "ineligible": ineligible,
		},
	})
	return &dto.MembershipResponse{
		Success: true,
		Message: membershipMessage(added, missing, alreadyMembers, ineligible),
		Count:   added,
	}, nil
}

// AddUserToGroups añade el usuario a los groupIds. Valida que el usuario
// exista (NOT_FOUND) y su elegibilidad por account_status; filtra grupos
// inexistentes (VALIDATION si ninguno existe) y dentro de una transacción
// omite membresías ya activas e inserta el resto.
func (uc *UseCase) AddUserToGroups(ctx context.Context, userID string, in dto.AddToGroupsRequest) (*dto.MembershipResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "user.add_to_groups", Actor: in.AddedBy, Resource: userID,
		Outcome: audit.OutcomeEntry, Message: "añadir usuario a grupos",
		Details: map[string]any{"requested": len(in.GroupIDs)},
	})

	groupIDs := reconcile.Dedupe(in.GroupIDs)
	if len(groupIDs) == 0 {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID,
			domain.NewError(domain.KindValidation, "groupIds es requerido"))
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID, err)
	}
	if user == nil {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID,
			domain.NewErrorf(domain.KindNotFound, "usuario %s no encontrado", userID))
	}
	snap := uc.settings.Current(ctx)
	if snap.AddOnlyActiveUsers && user.AccountStatus != entity.AccountActive {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID,
			domain.NewError(domain.KindValidation, "la cuenta del usuario no está activa"))
	}

	existing, err := uc.groupRepo.FilterExisting(groupIDs)
	if err != nil {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID, err)
	}
	if len(existing) == 0 {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID,
			domain.NewError(domain.KindValidation, "ninguno de los grupos solicitados existe"))
	}
	missing := len(groupIDs) - len(existing)

	var added, alreadyMembers int
	err = uc.tx.RunMembership(ctx, func(members repository.GroupMemberRepository, _ repository.UserRepository) error {
		current, err := members.ActiveGroupIDs(userID)
		if err != nil {
			return err
		}
		toAdd, _ := reconcile.Diff(current, existing)
		alreadyMembers = len(existing) - len(toAdd)

		now := time.Now().UTC()
		for _, groupID := range toAdd {
			if err := members.Insert(&entity.GroupMember{
				GroupID: groupID, UserID: userID, IsActive: true,
				JoinedAt: now, AddedBy: in.AddedBy,
			}); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return nil, uc.fail(ctx, "user.add_to_groups", in.AddedBy, userID, err)
	}

	if added > 0 {
		uc.sink.Publish(ctx, audit.Event{
			Action: "user.add_to_groups", Actor: in.AddedBy, Resource: userID,
			Outcome: audit.OutcomeAdded, Message: "membresías añadidas",
			Details: map[string]any{"count": added},
		})
	}
	uc.sink.Publish(ctx, audit.Event{
		Action: "user.add_to_groups", Actor: in.AddedBy, Resource: userID,
		Outcome: audit.OutcomeSuccess, Message: "añadir usuario a grupos",
		Details: map[string]any{"added": added, "missing": missing, "already_members": alreadyMembers},
	})
	return &dto.MembershipResponse{
		Success: true,
		Message: membershipMessage(added, missing, alreadyMembers, 0),
		Count:   added,
	}, nil
}

// filterEligible aplica la regla de elegibilidad: con AddOnlyActiveUsers
// activo (o sin fila en settings) solo cuentas 'active' entran al grupo.
func filterEligible(users repository.UserRepository, ids []string, snap settings.Snapshot) ([]string, int, error) {
	if !snap.AddOnlyActiveUsers || len(ids) == 0 {
		return ids, 0, nil
	}
	statuses, err := users.AccountStatuses(ids)
	if err != nil {
		return nil, 0, err
	}
	eligible := make([]string, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		if statuses[id] == entity.AccountActive {
			eligible = append(eligible, id)
		} else {
			skipped++
		}
	}
	return eligible, skipped, nil
}

// membershipMessage arma el mensaje, mencionando los omitidos cuando el
// manejo fue parcial.
func membershipMessage(added, missing, alreadyMembers, ineligible int) string {
	msg := fmt.Sprintf("se añadieron %d membresía(s)", added)
	skipped := missing + alreadyMembers + ineligible
	if skipped == 0 {
		return msg
	}
	return msg + fmt.Sprintf("; omitidos: %d inexistentes, %d ya miembros, %d inelegibles",
		missing, alreadyMembers, ineligible)
}

func (uc *UseCase) fail(ctx context.Context, action, actor, resource string, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: action, Actor: actor, Resource: resource,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
