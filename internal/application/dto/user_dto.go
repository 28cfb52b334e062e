package dto

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"min=8"`
	FirstName string `json:"first_name" validate:"max=64,catalog_text"`
	LastName  string `json:"last_name" validate:"max=64,catalog_text"`
	Role      string `json:"role" validate:"oneof=admin employee viewer"`
}

// UpdateUserRequest entrada para actualizar un usuario. Password vacío no cambia la contraseña.
type UpdateUserRequest struct {
	Email     *string `json:"email" validate:"omitnil,email"`
	Password  *string `json:"password" validate:"omitnil,min=8"`
	FirstName *string `json:"first_name" validate:"omitnil,max=64,catalog_text"`
	LastName  *string `json:"last_name" validate:"omitnil,max=64,catalog_text"`
	Role      *string `json:"role" validate:"omitnil,oneof=admin employee viewer"`
}

// RegisterRequest entrada para registro (auth). El primer usuario registrado es admin.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	LifecycleResponse
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
