package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Email        string    `json:"email" bun:"email,unique,notnull"`
	Name         string    `json:"name" bun:"name,notnull"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	IsAdmin      bool      `json:"isAdmin" bun:"is_admin,notnull,default:false"`
	CreatedAt    time.Time `json:"createdAt" bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `json:"updatedAt" bun:"updated_at,notnull,default:current_timestamp"`
}
