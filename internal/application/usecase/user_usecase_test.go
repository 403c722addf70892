package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/usecase"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// fakeSearchRepo captura los parámetros con los que se invoca Search.
type fakeSearchRepo struct {
	repository.UserRepository
	gotQuery string
	gotLimit int
	results  []*entity.User
	total    int
}

func (f *fakeSearchRepo) Search(query string, limit int) ([]*entity.User, int, error) {
	f.gotQuery = query
	f.gotLimit = limit
	return f.results, f.total, nil
}

func TestSearch_MapeaItemsConUUID(t *testing.T) {
	repo := &fakeSearchRepo{
		results: []*entity.User{
			{ID: "u1", FullName: "Ana Pérez", Username: "ana"},
		},
		total: 1,
	}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Search(context.Background(), dto.SearchUsersRequest{Query: "ana"})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "u1", out.Items[0].ID)
	assert.Equal(t, "u1", out.Items[0].UUID, "uuid replica el id")
	assert.Equal(t, "Ana Pérez", out.Items[0].Name)
	assert.Equal(t, "ana", out.Items[0].Username)
}

func TestSearch_LimiteDefault20(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Search(context.Background(), dto.SearchUsersRequest{Query: "ana"})

	require.NoError(t, err)
	assert.Equal(t, 20, repo.gotLimit)
}

func TestSearch_LimiteAcotadoA100(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Search(context.Background(), dto.SearchUsersRequest{Query: "ana", Limit: 5000})

	require.NoError(t, err)
	assert.Equal(t, 100, repo.gotLimit)
}

func TestSearch_TerminoVacio(t *testing.T) {
	uc := usecase.NewUserUseCase(&fakeSearchRepo{})

	_, err := uc.Search(context.Background(), dto.SearchUsersRequest{Query: "   "})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestSearch_RecortaElTermino(t *testing.T) {
	repo := &fakeSearchRepo{}
	uc := usecase.NewUserUseCase(repo)

	_, err := uc.Search(context.Background(), dto.SearchUsersRequest{Query: "  ana  "})

	require.NoError(t, err)
	assert.Equal(t, "ana", repo.gotQuery)
}
