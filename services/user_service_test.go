package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/store/memory"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceRoles(t *testing.T) {
	admin := tables.User{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	member := tables.User{ID: uuid.New(), Email: "member@example.com"}
	users := memory.NewUsers(admin, member)
	svc := NewUserService(testLogger(), users)
	ctx := context.Background()
	caller := &structs.Caller{UserID: admin.ID, IsAdmin: true}

	_, err := svc.SetAdmin(ctx, admin.ID, false, caller)
	assert.True(t, lib.IsValidationError(err))

	promoted, err := svc.SetAdmin(ctx, member.ID, true, caller)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	// With two administrators the other one may be demoted again.
	demoted, err := svc.SetAdmin(ctx, member.ID, false, caller)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin)
}

func TestUserServiceDemotingLastAdmin(t *testing.T) {
	admin := tables.User{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	users := memory.NewUsers(admin)
	svc := NewUserService(testLogger(), users)

	_, err := svc.SetAdmin(context.Background(), admin.ID, false, &structs.Caller{UserID: uuid.New(), IsAdmin: true})
	assert.ErrorIs(t, err, lib.ErrLastAdmin)
}

func TestUserServiceDelete(t *testing.T) {
	admin := tables.User{ID: uuid.New(), Email: "admin@example.com", IsAdmin: true}
	member := tables.User{ID: uuid.New(), Email: "member@example.com"}
	users := memory.NewUsers(admin, member)
	svc := NewUserService(testLogger(), users)
	ctx := context.Background()
	caller := &structs.Caller{UserID: admin.ID, IsAdmin: true}

	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, caller), lib.ErrSelfDelete)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New(), caller), lib.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, member.ID, caller))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserServiceUpdateProfileConflict(t *testing.T) {
	a := tables.User{ID: uuid.New(), Email: "a@example.com"}
	b := tables.User{ID: uuid.New(), Email: "b@example.com"}
	svc := NewUserService(testLogger(), memory.NewUsers(a, b))

	_, err := svc.UpdateProfile(context.Background(), b.ID, &structs.UpdateUserRequest{Name: "B", Email: "A@example.com"})
	assert.ErrorIs(t, err, lib.ErrConflict)

	updated, err := svc.UpdateProfile(context.Background(), b.ID, &structs.UpdateUserRequest{Name: "Bee", Email: "bee@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Bee", updated.Name)
}
