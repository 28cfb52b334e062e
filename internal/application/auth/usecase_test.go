package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == strings.ToLower(u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(context.Context, repository.ListFilter) ([]*entity.User, int, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) SetActive(_ context.Context, id string, active bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	if active {
		u.Reactivate()
	} else {
		u.Deactivate(at)
	}
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), nil
}

func newAuth(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "almacen-test"}, nil)
}

func register(email, role string) dto.RegisterRequest {
	return dto.RegisterRequest{Email: email, Password: "secreto123", FirstName: "Ana", Role: role}
}

func TestRegister_PrimerUsuarioEsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuth(repo)

	out, err := uc.RegisterUser(context.Background(), register("Ana@Campus.mx", entity.RoleViewer), "")

	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
	assert.Equal(t, "ana@campus.mx", out.Email)
	assert.True(t, out.IsActive)
}

func TestRegister_SinAdminEsProhibido(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuth(repo)
	_, err := uc.RegisterUser(context.Background(), register("admin@campus.mx", ""), "")
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), register("otro@campus.mx", ""), "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.RegisterUser(context.Background(), register("otro@campus.mx", ""), entity.RoleEmployee)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_AdminRegistraConRolPorDefecto(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuth(repo)
	_, err := uc.RegisterUser(context.Background(), register("admin@campus.mx", ""), "")
	require.NoError(t, err)

	out, err := uc.RegisterUser(context.Background(), register("lector@campus.mx", ""), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, out.Role)

	out, err = uc.RegisterUser(context.Background(), register("empleado@campus.mx", entity.RoleEmployee), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, out.Role)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuth(repo)
	_, err := uc.RegisterUser(context.Background(), register("admin@campus.mx", ""), "")
	require.NoError(t, err)

	_, err = uc.RegisterUser(context.Background(), register("ADMIN@campus.mx", ""), entity.RoleAdmin)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_Validacion(t *testing.T) {
	uc := newAuth(newFakeUserRepo())

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Email: "sin-arroba", Password: "corta"}, "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "email")
	assert.Contains(t, err.Error(), "password")
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newAuth(repo)
	created, err := uc.RegisterUser(context.Background(), register("admin@campus.mx", ""), "")
	require.NoError(t, err)

	t.Run("credenciales correctas devuelven token con rol", func(t *testing.T) {
		out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@campus.mx", Password: "secreto123"})
		require.NoError(t, err)

		userID, role, err := pkgjwt.Parse(testSecret, out.Token)
		require.NoError(t, err)
		assert.Equal(t, created.ID, userID)
		assert.Equal(t, entity.RoleAdmin, role)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@campus.mx", Password: "otro-password"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("email en mayúsculas", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: " Admin@Campus.MX ", Password: "secreto123"})
		assert.NoError(t, err)
	})

	t.Run("campos vacíos", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  "})
		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "password")
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@campus.mx", Password: "secreto123"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inactivo", func(t *testing.T) {
		require.NoError(t, repo.SetActive(context.Background(), created.ID, false, time.Now()))
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@campus.mx", Password: "secreto123"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}
