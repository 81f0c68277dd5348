package dto

import (
	"strings"
	"time"

	"github.com/henry-diagnostics/taller-api/internal/domain/entity"
)

// NuevoClienteInput datos de alta de cliente (directa o inline en recepción).
type NuevoClienteInput struct {
	Nombre    string  `json:"nombre"`
	Telefono  string  `json:"telefono"`
	WhatsApp  string  `json:"whatsapp"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	RFC       *string `json:"rfc"`
}

// Validate valida los campos obligatorios del cliente nuevo.
func (in *NuevoClienteInput) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(in.Nombre) == "" {
		errs = append(errs, FieldError{Field: "nombre", Message: "el nombre es requerido"})
	}
	if strings.TrimSpace(in.Telefono) == "" {
		errs = append(errs, FieldError{Field: "telefono", Message: "el teléfono es requerido"})
	}
	return errs
}

// CustomerPatchRequest actualización parcial de cliente.
type CustomerPatchRequest struct {
	Nombre    *string `json:"nombre"`
	Telefono  *string `json:"telefono"`
	WhatsApp  *string `json:"whatsapp"`
	Email     *string `json:"email"`
	Direccion *string `json:"direccion"`
	RFC       *string `json:"rfc"`
}

// CustomerResponse cliente en respuestas de la API.
type CustomerResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	WhatsApp  string    `json:"whatsapp"`
	Email     *string   `json:"email,omitempty"`
	Direccion *string   `json:"direccion,omitempty"`
	RFC       *string   `json:"rfc,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CustomerFromEntity mapea la entidad a la respuesta.
func CustomerFromEntity(c *entity.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:        c.ID,
		Nombre:    c.Nombre,
		Telefono:  c.Telefono,
		WhatsApp:  c.WhatsApp,
		Email:     c.Email,
		Direccion: c.Direccion,
		RFC:       c.RFC,
		CreatedAt: c.CreatedAt,
	}
}
