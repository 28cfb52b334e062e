package dto

// StudentDTO datos de estudiante.
type StudentDTO struct {
	ControlNumber string `json:"control_number" validate:"required,max=20"`
	Degree        string `json:"degree" validate:"max=64,catalog_text"`
}

// ProviderDTO datos de proveedor.
type ProviderDTO struct {
	RFC string `json:"rfc" validate:"required,rfc"`
	NSS string `json:"nss" validate:"omitempty,nss"`
}

// CreatePersonRequest entrada para crear una persona. Kind: STUDENT o PROVIDER.
type CreatePersonRequest struct {
	Kind        string       `json:"kind" validate:"required,oneof=STUDENT PROVIDER"`
	FirstName   string       `json:"first_name" validate:"required,max=64,catalog_text"`
	LastName    string       `json:"last_name" validate:"max=64,catalog_text"`
	Email       string       `json:"email" validate:"omitempty,email"`
	PhoneNumber string       `json:"phone_number" validate:"max=20"`
	Student     *StudentDTO  `json:"student,omitempty" validate:"required_if=Kind STUDENT"`
	Provider    *ProviderDTO `json:"provider,omitempty" validate:"required_if=Kind PROVIDER"`
}

// UpdatePersonRequest entrada para actualizar una persona. El subtipo no cambia.
type UpdatePersonRequest struct {
	FirstName   *string      `json:"first_name" validate:"omitnil,min=1,max=64,catalog_text"`
	LastName    *string      `json:"last_name" validate:"omitnil,max=64,catalog_text"`
	Email       *string      `json:"email" validate:"omitnil,email"`
	PhoneNumber *string      `json:"phone_number" validate:"omitnil,max=20"`
	Student     *StudentDTO  `json:"student,omitempty"`
	Provider    *ProviderDTO `json:"provider,omitempty"`
}

// PersonResponse salida de una persona.
type PersonResponse struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email"`
	PhoneNumber string       `json:"phone_number"`
	Student     *StudentDTO  `json:"student,omitempty"`
	Provider    *ProviderDTO `json:"provider,omitempty"`
	LifecycleResponse
}
