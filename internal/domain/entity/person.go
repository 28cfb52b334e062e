package entity

import "time"

// PersonKind discrimina el subtipo de una persona.
type PersonKind string

// Subtipos de persona.
const (
	PersonStudent  PersonKind = "STUDENT"
	PersonProvider PersonKind = "PROVIDER"
)

// StudentInfo datos propios de un estudiante.
type StudentInfo struct {
	ControlNumber string
	Degree        string
}

// ProviderInfo datos propios de un proveedor.
type ProviderInfo struct {
	RFC string
	NSS string
}

// Person persona a la que se atribuye una transacción (estudiante o proveedor).
// Solo uno de Student/Provider está presente, según Kind.
type Person struct {
	ID          string
	Kind        PersonKind
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Student     *StudentInfo
	Provider    *ProviderInfo
	Lifecycle
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo para mostrar.
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
