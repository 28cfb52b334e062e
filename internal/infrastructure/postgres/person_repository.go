package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.PersonRepository = (*PersonRepo)(nil)

const personColumns = `id, kind, first_name, last_name, email, phone_number,
	control_number, degree, rfc, nss, is_active, deleted_at, created_at, updated_at`

// PersonRepo guarda estudiantes y proveedores en una sola tabla discriminada por kind.
type PersonRepo struct {
	q Querier
}

// NewPersonRepository construye el adaptador de persistencia para personas.
func NewPersonRepository(q Querier) *PersonRepo {
	return &PersonRepo{q: q}
}

// Create persiste una persona con los datos de su subtipo.
func (r *PersonRepo) Create(ctx context.Context, p *entity.Person) error {
	controlNumber, degree, rfc, nss := personExtra(p)
	query := `
		INSERT INTO persons (id, kind, first_name, last_name, email, phone_number,
			control_number, degree, rfc, nss, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, string(p.Kind), p.FirstName, p.LastName, p.Email, p.PhoneNumber,
		controlNumber, degree, rfc, nss, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return writeError("insert person", err)
	}
	return nil
}

// GetByID obtiene una persona por ID. nil si no existe.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (*entity.Person, error) {
	p, err := scanPerson(r.q.QueryRow(ctx, `SELECT `+personColumns+` FROM persons WHERE id = $1`, id))
	if err != nil {
		missing, err := readError("get person", err)
		if missing {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

// Update actualiza datos generales y del subtipo. El subtipo (kind) no cambia.
func (r *PersonRepo) Update(ctx context.Context, p *entity.Person) error {
	controlNumber, degree, rfc, nss := personExtra(p)
	query := `
		UPDATE persons SET first_name = $2, last_name = $3, email = $4, phone_number = $5,
			control_number = $6, degree = $7, rfc = $8, nss = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.FirstName, p.LastName, p.Email, p.PhoneNumber,
		controlNumber, degree, rfc, nss, p.UpdatedAt,
	)
	if err != nil {
		return writeError("update person", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista personas, opcionalmente de un subtipo.
func (r *PersonRepo) List(ctx context.Context, f repository.PersonFilter) ([]*entity.Person, int, error) {
	var w where
	w.activeOnly(f.IncludeInactive, "is_active")
	w.addIf(f.Kind != "", "kind = ?", string(f.Kind))
	w.search(f.Search, "first_name", "last_name", "email", "control_number", "rfc")

	total, err := w.count(ctx, r.q, "persons")
	if err != nil {
		return nil, 0, err
	}
	pageSQL, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+personColumns+` FROM persons`+w.sql()+` ORDER BY last_name, first_name`+pageSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan person: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// SetActive activa o desactiva la persona.
func (r *PersonRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	return setActive(ctx, r.q, "persons", id, active, at)
}

func personExtra(p *entity.Person) (controlNumber, degree, rfc, nss any) {
	if p.Student != nil {
		controlNumber, degree = nullable(p.Student.ControlNumber), nullable(p.Student.Degree)
	}
	if p.Provider != nil {
		rfc, nss = nullable(p.Provider.RFC), nullable(p.Provider.NSS)
	}
	return
}

func scanPerson(row pgx.Row) (*entity.Person, error) {
	var p entity.Person
	var kind string
	var controlNumber, degree, rfc, nss *string
	if err := row.Scan(&p.ID, &kind, &p.FirstName, &p.LastName, &p.Email, &p.PhoneNumber,
		&controlNumber, &degree, &rfc, &nss, &p.IsActive, &p.DeletedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Kind = entity.PersonKind(kind)
	switch p.Kind {
	case entity.PersonStudent:
		p.Student = &entity.StudentInfo{ControlNumber: deref(controlNumber), Degree: deref(degree)}
	case entity.PersonProvider:
		p.Provider = &entity.ProviderInfo{RFC: deref(rfc), NSS: deref(nss)}
	}
	return &p, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
