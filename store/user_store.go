package store

import (
	"car_configurator_server/database"
	"car_configurator_server/lib"
	"car_configurator_server/structs/tables"
	"context"
	"time"

	"github.com/google/uuid"
)

type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*tables.User, error) {
	return firstOrNotFound(ctx, database.Query[tables.User](s.db).Where("u.id", id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*tables.User, error) {
	return firstOrNotFound(ctx, s.byEmail(email))
}

// byEmail matches case-insensitively.
func (s *UserStore) byEmail(email string) *database.QueryBuilder[tables.User] {
	return database.Query[tables.User](s.db).WhereRaw("lower(u.email) = lower(?)", email)
}

func (s *UserStore) Create(ctx context.Context, user *tables.User) (*tables.User, error) {
	created, err := database.Query[tables.User](s.db).Insert(ctx, user)
	return created, lib.MapPgError(err)
}

func (s *UserStore) List(ctx context.Context) ([]tables.User, error) {
	users, err := database.Query[tables.User](s.db).OrderBy("u.created_at", database.DESC).All(ctx)
	return users, lib.MapPgError(err)
}

func (s *UserStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, email string) (*tables.User, error) {
	return s.update(ctx, id, map[string]any{"name": name, "email": email})
}

func (s *UserStore) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool) (*tables.User, error) {
	return s.update(ctx, id, map[string]any{"is_admin": isAdmin})
}

func (s *UserStore) update(ctx context.Context, id uuid.UUID, updates map[string]any) (*tables.User, error) {
	updates["updated_at"] = time.Now()
	n, err := database.Query[tables.User](s.db).Where("id", id).Update(ctx, updates)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if n == 0 {
		return nil, lib.ErrNotFound
	}
	return s.GetByID(ctx, id)
}

// Delete removes the user. Their quotes cascade.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[tables.User](ctx, s.db, "id", id)
}

func (s *UserStore) CountAdmins(ctx context.Context) (int, error) {
	n, err := s.admins().Count(ctx)
	return n, lib.MapPgError(err)
}

func (s *UserStore) admins() *database.QueryBuilder[tables.User] {
	return database.Query[tables.User](s.db).Where("u.is_admin", true)
}
