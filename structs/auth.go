package structs

import (
	"time"

	"github.com/google/uuid"
)

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

type AuthClaims struct {
	Sub     uuid.UUID `json:"sub"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"is_admin"`
	Iat     time.Time `json:"iat"`
	Exp     time.Time `json:"exp"`
	Jti     uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
}

// Caller is the authenticated identity a request acts as. A nil *Caller is an anonymous request.
type Caller struct {
	UserID  uuid.UUID
	IsAdmin bool
}

func (c *AuthClaims) Caller() *Caller {
	return &Caller{UserID: c.Sub, IsAdmin: c.IsAdmin}
}
