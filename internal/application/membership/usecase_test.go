package membership_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/audit"
	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/application/membership"
	"github.com/jhoicas/backoffice-api/internal/application/settings"
	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	"github.com/jhoicas/backoffice-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeGroupRepo struct {
	repository.GroupRepository
	groups map[string]*entity.Group
}

func (f *fakeGroupRepo) GetByID(id string) (*entity.Group, error) {
	return f.groups[id], nil
}

func (f *fakeGroupRepo) FilterExisting(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := f.groups[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FilterExisting(ids []string) ([]string, error) {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := f.users[id]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) AccountStatuses(ids []string) (map[string]string, error) {
	statuses := make(map[string]string, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			statuses[id] = u.AccountStatus
		}
	}
	return statuses, nil
}

type fakeMemberRepo struct {
	repository.GroupMemberRepository
	activeByGroup map[string][]string
	activeByUser  map[string][]string
	inserted      []entity.GroupMember
}

func (f *fakeMemberRepo) ActiveUserIDs(groupID string) ([]string, error) {
	return f.activeByGroup[groupID], nil
}

func (f *fakeMemberRepo) ActiveGroupIDs(userID string) ([]string, error) {
	return f.activeByUser[userID], nil
}

func (f *fakeMemberRepo) Insert(m *entity.GroupMember) error {
	f.inserted = append(f.inserted, *m)
	return nil
}

type fakeTx struct {
	members repository.GroupMemberRepository
	users   repository.UserRepository
}

func (f fakeTx) RunMembership(_ context.Context, fn func(repository.GroupMemberRepository, repository.UserRepository) error) error {
	return fn(f.members, f.users)
}

type fixedSettings struct {
	snap settings.Snapshot
}

func (f fixedSettings) Current(context.Context) settings.Snapshot { return f.snap }

// ──────────────────────────────────────────────────────────────────────────────
// AddUsersToGroup
// ──────────────────────────────────────────────────────────────────────────────

// Tres usuarios solicitados: uno inexistente, uno ya miembro y uno elegible.
// Solo el elegible entra; el mensaje reporta el manejo parcial.
func TestAddUsersToGroup_ManejoParcial(t *testing.T) {
	groups := &fakeGroupRepo{groups: map[string]*entity.Group{
		"g1": {ID: "g1", Name: "Especialistas", Status: entity.GroupActive},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-activo":  {ID: "u-activo", AccountStatus: entity.AccountActive},
		"u-miembro": {ID: "u-miembro", AccountStatus: entity.AccountActive},
	}}
	members := &fakeMemberRepo{activeByGroup: map[string][]string{"g1": {"u-miembro"}}}
	uc := membership.NewUseCase(groups, users,
		fixedSettings{snap: settings.Defaults()},
		fakeTx{members: members, users: users}, audit.NopSink{})

	out, err := uc.AddUsersToGroup(context.Background(), "g1", dto.AddUsersRequest{
		UserIDs: []string{"u-activo", "u-miembro", "u-fantasma"},
		AddedBy: "admin-1",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Count, "solo u-activo debe añadirse")
	assert.Contains(t, out.Message, "omitidos", "el mensaje debe mencionar el manejo parcial")
	require.Len(t, members.inserted, 1)
	assert.Equal(t, "u-activo", members.inserted[0].UserID)
	assert.Equal(t, "admin-1", members.inserted[0].AddedBy)
	assert.True(t, members.inserted[0].IsActive)
}

// Con add_only_active_users activo (default), cuentas inactivas se omiten.
func TestAddUsersToGroup_OmiteCuentasInactivas(t *testing.T) {
	groups := &fakeGroupRepo{groups: map[string]*entity.Group{"g1": {ID: "g1"}}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-activo":   {ID: "u-activo", AccountStatus: entity.AccountActive},
		"u-inactivo": {ID: "u-inactivo", AccountStatus: entity.AccountInactive},
		"u-blocked":  {ID: "u-blocked", AccountStatus: entity.AccountBlocked},
	}}
	members := &fakeMemberRepo{}
	uc := membership.NewUseCase(groups, users,
		fixedSettings{snap: settings.Defaults()},
		fakeTx{members: members, users: users}, audit.NopSink{})

	out, err := uc.AddUsersToGroup(context.Background(), "g1", dto.AddUsersRequest{
		UserIDs: []string{"u-activo", "u-inactivo", "u-blocked"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
}

// Con el setting apagado cualquier cuenta existente entra.
func TestAddUsersToGroup_SettingApagadoAdmiteInactivos(t *testing.T) {
	groups := &fakeGroupRepo{groups: map[string]*entity.Group{"g1": {ID: "g1"}}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u-inactivo": {ID: "u-inactivo", AccountStatus: entity.AccountInactive},
	}}
	members := &fakeMemberRepo{}
	uc := membership.NewUseCase(groups, users,
		fixedSettings{snap: settings.Snapshot{AddOnlyActiveUsers: false}},
		fakeTx{members: members, users: users}, audit.NopSink{})

	out, err := uc.AddUsersToGroup(context.Background(), "g1", dto.AddUsersRequest{
		UserIDs: []string{"u-inactivo"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
}

func TestAddUsersToGroup_GrupoInexistente(t *testing.T) {
	uc := membership.NewUseCase(
		&fakeGroupRepo{groups: map[string]*entity.Group{}},
		&fakeUserRepo{users: map[string]*entity.User{"u1": {ID: "u1"}}},
		fixedSettings{snap: settings.Defaults()},
		fakeTx{}, audit.NopSink{})

	_, err := uc.AddUsersToGroup(context.Background(), "no-existe", dto.AddUsersRequest{
		UserIDs: []string{"u1"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestAddUsersToGroup_NingunUsuarioExiste(t *testing.T) {
	uc := membership.NewUseCase(
		&fakeGroupRepo{groups: map[string]*entity.Group{"g1": {ID: "g1"}}},
		&fakeUserRepo{users: map[string]*entity.User{}},
		fixedSettings{snap: settings.Defaults()},
		fakeTx{}, audit.NopSink{})

	_, err := uc.AddUsersToGroup(context.Background(), "g1", dto.AddUsersRequest{
		UserIDs: []string{"u-fantasma"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestAddUsersToGroup_SinUserIDs(t *testing.T) {
	uc := membership.NewUseCase(
		&fakeGroupRepo{}, &fakeUserRepo{},
		fixedSettings{snap: settings.Defaults()},
		fakeTx{}, audit.NopSink{})

	_, err := uc.AddUsersToGroup(context.Background(), "g1", dto.AddUsersRequest{})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ──────────────────────────────────────────────────────────────────────────────
// AddUserToGroups
// ──────────────────────────────────────────────────────────────────────────────

func TestAddUserToGroups_OmiteMembresiasActivas(t *testing.T) {
	groups := &fakeGroupRepo{groups: map[string]*entity.Group{
		"g1": {ID: "g1"}, "g2": {ID: "g2"},
	}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", AccountStatus: entity.AccountActive},
	}}
	members := &fakeMemberRepo{activeByUser: map[string][]string{"u1": {"g1"}}}
	uc := membership.NewUseCase(groups, users,
		fixedSettings{snap: settings.Defaults()},
		fakeTx{members: members, users: users}, audit.NopSink{})

	out, err := uc.AddUserToGroups(context.Background(), "u1", dto.AddToGroupsRequest{
		GroupIDs: []string{"g1", "g2"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Count, "solo g2 es membresía nueva")
	require.Len(t, members.inserted, 1)
	assert.Equal(t, "g2", members.inserted[0].GroupID)
}

// El usuario ancla inelegible corta la operación completa, a diferencia del
// flujo por grupo donde los inelegibles solo se omiten.
func TestAddUserToGroups_UsuarioAnclaInactivo(t *testing.T) {
	groups := &fakeGroupRepo{groups: map[string]*entity.Group{"g1": {ID: "g1"}}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"u1": {ID: "u1", AccountStatus: entity.AccountInactive},
	}}
	uc := membership.NewUseCase(groups, users,
		fixedSettings{snap: settings.Defaults()},
		fakeTx{}, audit.NopSink{})

	_, err := uc.AddUserToGroups(context.Background(), "u1", dto.AddToGroupsRequest{
		GroupIDs: []string{"g1"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "no está activa")
}

func TestAddUserToGroups_UsuarioInexistente(t *testing.T) {
	uc := membership.NewUseCase(
		&fakeGroupRepo{groups: map[string]*entity.Group{"g1": {ID: "g1"}}},
		&fakeUserRepo{users: map[string]*entity.User{}},
		fixedSettings{snap: settings.Defaults()},
		fakeTx{}, audit.NopSink{})

	_, err := uc.AddUserToGroups(context.Background(), "no-existe", dto.AddToGroupsRequest{
		GroupIDs: []string{"g1"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
