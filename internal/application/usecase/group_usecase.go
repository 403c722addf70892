package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// GroupUseCase administra los grupos de especialistas: alta, listado y
// cambio de owner.
type GroupUseCase struct {
	groupRepo repository.GroupRepository
	userRepo  repository.UserRepository
	sink      audit.Sink
}

// NewGroupUseCase construye el caso de uso.
func NewGroupUseCase(groupRepo repository.GroupRepository, userRepo repository.UserRepository, sink audit.Sink) *GroupUseCase {
	return &GroupUseCase{groupRepo: groupRepo, userRepo: userRepo, sink: sink}
}

// Create da de alta un grupo activo con el owner indicado.
func (uc *GroupUseCase) Create(ctx context.Context, in dto.CreateGroupRequest) (*dto.GroupResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewError(domain.KindValidation, "name es requerido")
	}
	if in.OwnerID == "" {
		return nil, domain.NewError(domain.KindValidation, "ownerId es requerido")
	}
	owner, err := uc.userRepo.GetByID(in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, domain.NewErrorf(domain.KindNotFound, "usuario %s no encontrado", in.OwnerID)
	}

	group := &entity.Group{
		ID:      uuid.New().String(),
		Name:    in.Name,
		OwnerID: owner.ID,
		Status:  entity.GroupActive,
	}
	if err := uc.groupRepo.Create(group); err != nil {
		return nil, err
	}

	uc.sink.Publish(ctx, audit.Event{
		Action: "group.create", Actor: in.OwnerID, Resource: group.ID,
		Outcome: audit.OutcomeSuccess, Message: "grupo creado",
		Details: map[string]any{"name": group.Name},
	})
	return groupToResponse(group), nil
}

// GetByID obtiene un grupo; devuelve nil cuando no existe.
func (uc *GroupUseCase) GetByID(ctx context.Context, id string) (*dto.GroupResponse, error) {
	group, err := uc.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, nil
	}
	return groupToResponse(group), nil
}

// List devuelve grupos paginados.
func (uc *GroupUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.GroupListResponse, error) {
	page.DefaultPage()
	groups, err := uc.groupRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for _, g := range groups {
		items = append(items, *groupToResponse(g))
	}
	return &dto.GroupListResponse{
		Success: true, Items: items,
		Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ChangeOwner cambia el owner del grupo. Si el nuevo owner ya lo es, la
// operación es un no-op exitoso.
func (uc *GroupUseCase) ChangeOwner(ctx context.Context, groupID string, in dto.ChangeOwnerRequest) (*dto.ChangeOwnerResponse, error) {
	uc.sink.Publish(ctx, audit.Event{
		Action: "group.change_owner", Actor: in.ChangedBy, Resource: groupID,
		Outcome: audit.OutcomeEntry, Message: "cambiar owner de grupo",
	})

	group, err := uc.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, uc.fail(ctx, in.ChangedBy, groupID, err)
	}
	if group == nil {
		return nil, uc.fail(ctx, in.ChangedBy, groupID,
			domain.NewErrorf(domain.KindNotFound, "grupo %s no encontrado", groupID))
	}

	newOwner, err := uc.resolveOwner(in)
	if err != nil {
		return nil, uc.fail(ctx, in.ChangedBy, groupID, err)
	}
	if newOwner.ID == group.OwnerID {
		return &dto.ChangeOwnerResponse{
			Success: true, Message: "el usuario ya es owner del grupo", OldOwnerID: group.OwnerID,
		}, nil
	}

	rows, err := uc.groupRepo.SwapOwner(groupID, newOwner.ID, in.ChangedBy)
	if err != nil {
		return nil, uc.fail(ctx, in.ChangedBy, groupID, err)
	}
	if rows == 0 {
		return nil, uc.fail(ctx, in.ChangedBy, groupID,
			domain.NewError(domain.KindInternal, "el cambio de owner no afectó ninguna fila"))
	}

	uc.sink.Publish(ctx, audit.Event{
		Action: "group.change_owner", Actor: in.ChangedBy, Resource: groupID,
		Outcome: audit.OutcomeChanged, Message: "owner cambiado",
		Details: map[string]any{"old_owner": group.OwnerID, "new_owner": newOwner.ID},
	})
	uc.sink.Publish(ctx, audit.Event{
		Action: "group.change_owner", Actor: in.ChangedBy, Resource: groupID,
		Outcome: audit.OutcomeSuccess, Message: "cambiar owner de grupo",
	})
	return &dto.ChangeOwnerResponse{Success: true, Message: "owner actualizado", OldOwnerID: group.OwnerID}, nil
}

// resolveOwner encuentra el nuevo owner por id o username; con ambos gana el id.
func (uc *GroupUseCase) resolveOwner(in dto.ChangeOwnerRequest) (*entity.User, error) {
	switch {
	case in.NewOwnerID != "":
		user, err := uc.userRepo.GetByID(in.NewOwnerID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.NewErrorf(domain.KindNotFound, "usuario %s no encontrado", in.NewOwnerID)
		}
		return user, nil
	case in.NewOwnerUsername != "":
		user, err := uc.userRepo.GetByUsername(in.NewOwnerUsername)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.NewErrorf(domain.KindNotFound, "usuario '%s' no encontrado", in.NewOwnerUsername)
		}
		return user, nil
	default:
		return nil, domain.NewError(domain.KindValidation, "newOwnerId o newOwnerUsername es requerido")
	}
}

func groupToResponse(g *entity.Group) *dto.GroupResponse {
	return &dto.GroupResponse{
		ID: g.ID, Name: g.Name, OwnerID: g.OwnerID, Status: g.Status,
		CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt,
	}
}

func (uc *GroupUseCase) fail(ctx context.Context, actor, resource string, err error) error {
	uc.sink.Publish(ctx, audit.Event{
		Action: "group.change_owner", Actor: actor, Resource: resource,
		Outcome: audit.OutcomeError, Message: err.Error(),
	})
	return err
}
