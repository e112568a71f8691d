package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mysticum/wms/internal/domain/identity"
	"github.com/mysticum/wms/internal/domain/shared"
	"github.com/mysticum/wms/internal/infrastructure/auth"
	"github.com/mysticum/wms/internal/infrastructure/config"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*identity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*identity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) FindByLogin(_ context.Context, login string) (*identity.User, error) {
	for _, u := range r.users {
		if u.Login == login {
			return u, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeUserRepo) Save(_ context.Context, u *identity.User) error {
	r.users[u.ID] = u
	return nil
}

func newAuthService(repo *fakeUserRepo) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "wms-test",
	})
	return NewAuthService(repo, jwtService, auth.NewPasswordHasher(4), zap.NewNop())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)
	warehouseID := uuid.New()

	user, err := svc.Register(context.Background(), RegisterUserRequest{
		Login:       "jkowalski",
		Password:    "tajnehaslo1",
		FirstName:   "Jan",
		LastName:    "Kowalski",
		Role:        "VED",
		WarehouseID: warehouseID,
	})
	require.NoError(t, err)
	assert.Equal(t, "VED", user.Role)

	resp, err := svc.Login(context.Background(), LoginRequest{Login: "jkowalski", Password: "tajnehaslo1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuthService_LoginRejectsBadPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterUserRequest{
		Login: "jkowalski", Password: "tajnehaslo1", Role: "PRC", WarehouseID: uuid.New(),
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), LoginRequest{Login: "jkowalski", Password: "wrong"})
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)

	// unknown logins fail the same way
	_, err = svc.Login(context.Background(), LoginRequest{Login: "ghost", Password: "whatever"})
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "UNAUTHORIZED", derr.Code)
}

func TestAuthService_LoginRejectsInactiveAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterUserRequest{
		Login: "jkowalski", Password: "tajnehaslo1", Role: "PRC", WarehouseID: uuid.New(),
	})
	require.NoError(t, err)
	repo.users[user.ID].Active = false

	_, err = svc.Login(context.Background(), LoginRequest{Login: "jkowalski", Password: "tajnehaslo1"})
	assert.Error(t, err)
}

func TestAuthService_RegisterRejectsDuplicateLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	req := RegisterUserRequest{Login: "jkowalski", Password: "tajnehaslo1", Role: "PRC", WarehouseID: uuid.New()}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "ALREADY_EXISTS", derr.Code)
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterUserRequest{
		Login: "jkowalski", Password: "tajnehaslo1", Role: "ZAM", WarehouseID: uuid.New(),
	})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), LoginRequest{Login: "jkowalski", Password: "tajnehaslo1"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "garbage"})
	assert.Error(t, err)
}
