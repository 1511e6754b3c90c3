package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	cp := *user
	m.byEmail[user.Email] = &cp
	return nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) CountAll(ctx context.Context) (int, error) {
	return len(m.byEmail), nil
}

func testConfig() JWTConfig {
	return JWTConfig{Secret: "secreto-de-test", ExpMinutes: 60, Issuer: "petcare-pro-test"}
}

func TestRegisterAndLogin(t *testing.T) {
	uc := NewUseCase(newMemUserRepo(), testConfig())

	user, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "s3creta", Name: "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, user.Role)
	assert.Equal(t, "active", user.Status)

	resp, err := uc.Login(context.Background(), dto.LoginRequest{
		Email: "ana@example.com", Password: "s3creta",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	uc := NewUseCase(newMemUserRepo(), testConfig())

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "s3creta",
	})
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{
		Email: "ana@example.com", Password: "otra",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginFailures(t *testing.T) {
	uc := NewUseCase(newMemUserRepo(), testConfig())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Register(context.Background(), dto.RegisterRequest{Email: "ana@example.com", Password: "s3creta"})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "ana@example.com", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
