package dto

import (
	"time"

	"github.com/jhoicas/guardias-api/internal/domain/entity"
)

// CreateUserRequest alta de usuario por un administrador (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Nombre       string `json:"nombre" validate:"required,min=1,max=100"`
	Apellidos    string `json:"apellidos" validate:"required,min=1,max=150"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	RolID        int64  `json:"rol_id" validate:"required,gt=0"`
	DelegacionID int64  `json:"delegacion_id" validate:"required,gt=0"`
	Activo       *bool  `json:"activo"`
}

// UpdateUserRequest edición de usuario por un administrador; solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Nombre        *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellidos     *string `json:"apellidos" validate:"omitempty,min=1,max=150"`
	Email         *string `json:"email" validate:"omitempty,email"`
	RolID         *int64  `json:"rol_id" validate:"omitempty,gt=0"`
	DelegacionID  *int64  `json:"delegacion_id" validate:"omitempty,gt=0"`
	Activo        *bool   `json:"activo"`
	RequiereReset *bool   `json:"requiere_reset"`
	Password      *string `json:"password" validate:"omitempty,min=8"`
}

// UpdateProfileRequest edición del perfil propio (solo campos seguros).
type UpdateProfileRequest struct {
	Nombre    *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	Apellidos *string `json:"apellidos" validate:"omitempty,min=1,max=150"`
}

// ChangePasswordRequest cambio de contraseña propia.
type ChangePasswordRequest struct {
	PasswordActual string `json:"password_actual" validate:"required,min=8"`
	PasswordNueva  string `json:"password_nueva" validate:"required,min=8"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID            int64      `json:"id"`
	Nombre        string     `json:"nombre"`
	Apellidos     string     `json:"apellidos"`
	Email         string     `json:"email"`
	RolID         int64      `json:"rol_id"`
	DelegacionID  int64      `json:"delegacion_id"`
	Activo        bool       `json:"activo"`
	RequiereReset bool       `json:"requiere_reset"`
	UltimoLogin   *time.Time `json:"ultimo_login,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// UserBrief usuario embebido en otras respuestas.
type UserBrief struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
}

// UserFromEntity mapea la entidad a la respuesta.
func UserFromEntity(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Nombre:        u.FirstName,
		Apellidos:     u.LastName,
		Email:         u.Email,
		RolID:         u.RoleID,
		DelegacionID:  u.DelegationID,
		Activo:        u.Active,
		RequiereReset: u.RequiresReset,
		UltimoLogin:   u.LastLogin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// UserBriefFromEntity devuelve nil si u es nil.
func UserBriefFromEntity(u *entity.User) *UserBrief {
	if u == nil {
		return nil
	}
	return &UserBrief{ID: u.ID, Nombre: u.FirstName, Apellidos: u.LastName, Email: u.Email}
}

// UsersBrief mapea una lista de usuarios.
func UsersBrief(list []*entity.User) []UserBrief {
	out := make([]UserBrief, 0, len(list))
	for _, u := range list {
		out = append(out, *UserBriefFromEntity(u))
	}
	return out
}
