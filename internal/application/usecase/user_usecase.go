package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// UserUseCase expone la búsqueda de usuarios para los selectores del UI.
type UserUseCase struct {
	userRepo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

// Search busca usuarios por username, email o nombre. El término se recorta y
// no puede quedar vacío; el límite se acota a 1..100 con default 20.
func (uc *UserUseCase) Search(ctx context.Context, in dto.SearchUsersRequest) (*dto.SearchUsersResponse, error) {
	in.Query = strings.TrimSpace(in.Query)
	if in.Query == "" {
		return nil, domain.NewError(domain.KindValidation, "el término de búsqueda es requerido")
	}
	in.ClampLimit()

	users, total, err := uc.userRepo.Search(in.Query, in.Limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserSearchItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserSearchItem{
			ID:       u.ID,
			Name:     u.FullName,
			Username: u.Username,
			UUID:     u.ID,
		})
	}
	return &dto.SearchUsersResponse{Success: true, Items: items, Total: total}, nil
}
