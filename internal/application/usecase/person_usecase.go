package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/domain/validation"
)

// PersonUseCase casos de uso para personas (estudiantes y proveedores).
type PersonUseCase struct {
	repo    repository.PersonRepository
	now     Clock
	changes changes
}

// NewPersonUseCase construye el caso de uso.
func NewPersonUseCase(repo repository.PersonRepository, clock Clock, opts ...Option) *PersonUseCase {
	return &PersonUseCase{repo: repo, now: nowOr(clock), changes: newChanges(opts)}
}

// Create crea una persona. Kind decide qué bloque (student o provider) es obligatorio.
func (uc *PersonUseCase) Create(ctx context.Context, in dto.CreatePersonRequest) (*dto.PersonResponse, error) {
	in.Kind = strings.ToUpper(strings.TrimSpace(in.Kind))
	in.FirstName = validation.Text(in.FirstName)
	in.LastName = validation.Text(in.LastName)
	in.Email = strings.ToLower(validation.Text(in.Email))
	in.PhoneNumber = validation.Text(in.PhoneNumber)
	in.Student = normalizeStudent(in.Student)
	in.Provider = normalizeProvider(in.Provider)
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	now := uc.now()
	p := &entity.Person{
		ID:          uuid.New().String(),
		Kind:        entity.PersonKind(in.Kind),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Lifecycle:   entity.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	switch p.Kind {
	case entity.PersonStudent:
		p.Student = &entity.StudentInfo{ControlNumber: in.Student.ControlNumber, Degree: in.Student.Degree}
	case entity.PersonProvider:
		p.Provider = &entity.ProviderInfo{RFC: in.Provider.RFC, NSS: in.Provider.NSS}
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "person", p.ID)
	return toPersonResponse(p), nil
}

// GetByID obtiene una persona por ID.
func (uc *PersonUseCase) GetByID(ctx context.Context, id string) (*dto.PersonResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPersonResponse(p), nil
}

// Update actualiza datos generales y del subtipo existente. Email vacío borra el correo.
func (uc *PersonUseCase) Update(ctx context.Context, id string, in dto.UpdatePersonRequest) (*dto.PersonResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	in.FirstName = validation.TextPtr(in.FirstName)
	in.LastName = validation.TextPtr(in.LastName)
	in.PhoneNumber = validation.TextPtr(in.PhoneNumber)
	in.Student = normalizeStudent(in.Student)
	in.Provider = normalizeProvider(in.Provider)
	clearEmail := false
	if in.Email != nil {
		email := strings.ToLower(validation.Text(*in.Email))
		in.Email = &email
		if email == "" {
			clearEmail, in.Email = true, nil
		}
	}
	errs, err := validation.Check(in)
	if err != nil {
		return nil, err
	}
	if in.Student != nil && p.Kind != entity.PersonStudent {
		errs.Add("student", "la persona no es estudiante")
	}
	if in.Provider != nil && p.Kind != entity.PersonProvider {
		errs.Add("provider", "la persona no es proveedor")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if in.FirstName != nil {
		p.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		p.LastName = *in.LastName
	}
	if in.Email != nil {
		p.Email = *in.Email
	} else if clearEmail {
		p.Email = ""
	}
	if in.PhoneNumber != nil {
		p.PhoneNumber = *in.PhoneNumber
	}
	if in.Student != nil {
		p.Student = &entity.StudentInfo{ControlNumber: in.Student.ControlNumber, Degree: in.Student.Degree}
	}
	if in.Provider != nil {
		p.Provider = &entity.ProviderInfo{RFC: in.Provider.RFC, NSS: in.Provider.NSS}
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.changes.notify(ctx, "person", p.ID)
	return toPersonResponse(p), nil
}

// List lista personas, opcionalmente de un subtipo.
func (uc *PersonUseCase) List(ctx context.Context, page dto.PageRequest, kind string) (*dto.ListResponse[dto.PersonResponse], error) {
	page.DefaultPage()
	k := entity.PersonKind(strings.ToUpper(kind))
	if k != "" && k != entity.PersonStudent && k != entity.PersonProvider {
		return nil, validation.Errors{"kind": "debe ser uno de: STUDENT, PROVIDER"}
	}
	list, total, err := uc.repo.List(ctx, repository.PersonFilter{ListFilter: listFilter(page), Kind: k})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PersonResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPersonResponse(p))
	}
	resp := dto.NewListResponse(items, page, total)
	return &resp, nil
}

// SetActive desactiva o reactiva una persona. Sus transacciones se conservan.
func (uc *PersonUseCase) SetActive(ctx context.Context, id string, active bool) error {
	if err := uc.repo.SetActive(ctx, id, active, uc.now()); err != nil {
		return err
	}
	uc.changes.notify(ctx, "person", id)
	return nil
}

func normalizeStudent(in *dto.StudentDTO) *dto.StudentDTO {
	if in == nil {
		return nil
	}
	return &dto.StudentDTO{
		ControlNumber: validation.Text(in.ControlNumber),
		Degree:        validation.Text(in.Degree),
	}
}

func normalizeProvider(in *dto.ProviderDTO) *dto.ProviderDTO {
	if in == nil {
		return nil
	}
	return &dto.ProviderDTO{
		RFC: strings.ToUpper(validation.Text(in.RFC)),
		NSS: validation.Text(in.NSS),
	}
}

func toPersonResponse(p *entity.Person) *dto.PersonResponse {
	resp := &dto.PersonResponse{
		ID:                p.ID,
		Kind:              string(p.Kind),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Email:             p.Email,
		PhoneNumber:       p.PhoneNumber,
		LifecycleResponse: lifecycleOf(p.Lifecycle, p.CreatedAt, p.UpdatedAt),
	}
	if p.Student != nil {
		resp.Student = &dto.StudentDTO{ControlNumber: p.Student.ControlNumber, Degree: p.Student.Degree}
	}
	if p.Provider != nil {
		resp.Provider = &dto.ProviderDTO{RFC: p.Provider.RFC, NSS: p.Provider.NSS}
	}
	return resp
}
