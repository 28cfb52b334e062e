package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
)

// UserUseCase administración de usuarios (solo admin, ver policy.OpManageUsers).
type UserUseCase struct {
	repo repository.UserRepository
	now  Clock
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, clock Clock) *UserUseCase {
	return &UserUseCase{repo: repo, now: nowOr(clock)}
}

// Create crea un usuario con su único rol. La contraseña se guarda con bcrypt.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	u, err := NewUser(in.Email, in.Password, in.FirstName, in.LastName, in.Role, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(u), nil
}

// Update actualiza datos, rol o contraseña.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := strings.ToLower(validation.Text(*in.Email))
		in.Email = &email
	}
	in.FirstName = validation.TextPtr(in.FirstName)
	in.LastName = validation.TextPtr(in.LastName)
	if in.Password != nil && *in.Password == "" {
		in.Password = nil
	}
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return ToUserResponse(u), nil
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ListResponse[dto.UserResponse], error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, listFilter(page))
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva o reactiva un usuario. Un admin no puede desactivarse a sí mismo.
func (uc *UserUseCase) SetActive(ctx context.Context, actorID, id string, active bool) error {
	if !active && actorID == id {
		return domain.ErrConflict
	}
	return uc.repo.SetActive(ctx, id, active, uc.now())
}

// NewUser valida los datos y construye un usuario activo con la contraseña hasheada.
func NewUser(email, password, firstName, lastName, role string, now time.Time) (*entity.User, error) {
	in := dto.CreateUserRequest{
		Email:     strings.ToLower(validation.Text(email)),
		Password:  password,
		FirstName: validation.Text(firstName),
		LastName:  validation.Text(lastName),
		Role:      role,
	}
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u.ID = uuid.New().String()
	u.PasswordHash = string(hash)
	u.Lifecycle = entity.Active()
	u.CreatedAt, u.UpdatedAt = now, now
	return u, nil
}

// ToUserResponse mapea un usuario a su DTO (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Role:              u.Role,
		LifecycleResponse: lifecycleOf(u.Lifecycle, u.CreatedAt, u.UpdatedAt),
	}
}
