package services

import (
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"car_configurator_server/structs/tables"
	"context"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// UserService holds the administrator operations on accounts.
type UserService struct {
	logger *gecho.Logger
	users  UserStore
}

func NewUserService(logger *gecho.Logger, users UserStore) *UserService {
	return &UserService{logger: logger, users: users}
}

func (us *UserService) List(ctx context.Context) ([]tables.User, error) {
	return us.users.List(ctx)
}

func (us *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *structs.UpdateUserRequest) (*tables.User, error) {
	user, err := us.users.UpdateProfile(ctx, id, req.Name, normalizeEmail(req.Email))
	if err != nil {
		if lib.IsConflict(err) {
			us.logger.Warn("Profile update rejected - email in use", gecho.Field("user_id", id))
		}
		return nil, err
	}
	return user, nil
}

// SetAdmin changes another user's admin flag. Administrators cannot change their own
// flag, and the last administrator cannot be demoted.
func (us *UserService) SetAdmin(ctx context.Context, id uuid.UUID, isAdmin bool, caller *structs.Caller) (*tables.User, error) {
	if caller.UserID == id {
		return nil, lib.NewValidationError("id", "administrators cannot change their own role")
	}

	user, err := us.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin == isAdmin {
		return user, nil
	}
	if !isAdmin {
		if err := guardLastAdmin(ctx, us.users, user); err != nil {
			return nil, err
		}
	}

	updated, err := us.users.SetAdmin(ctx, id, isAdmin)
	if err != nil {
		return nil, err
	}
	us.logger.Info("User role changed", gecho.Field("user_id", id), gecho.Field("is_admin", isAdmin), gecho.Field("by", caller.UserID))
	return updated, nil
}

// Delete removes another user's account. Administrators delete themselves through the self-service route.
func (us *UserService) Delete(ctx context.Context, id uuid.UUID, caller *structs.Caller) error {
	if caller.UserID == id {
		return lib.ErrSelfDelete
	}

	user, err := us.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := guardLastAdmin(ctx, us.users, user); err != nil {
		return err
	}

	if err := us.users.Delete(ctx, id); err != nil {
		return err
	}
	us.logger.Info("User deleted", gecho.Field("user_id", id), gecho.Field("by", caller.UserID))
	return nil
}
