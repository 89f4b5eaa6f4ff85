package users

import (
	"car_configurator_server/api/middleware"
	"car_configurator_server/handling"
	"car_configurator_server/lib"
	"car_configurator_server/structs"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (urm *UserRoutesManager) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := urm.userService.List(r.Context())
	if err != nil {
		handling.WriteError(err, "Unable to load users", urm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(users),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", urm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateUserRequest](r)
	if err != nil {
		handling.WriteError(err, "", urm.logger, w)
		return
	}

	user, err := urm.userService.UpdateProfile(r.Context(), id, body)
	if err != nil {
		handling.WriteError(err, "Unable to update user", urm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User updated successfully"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

// UpdateRole grants or revokes administrator rights.
func (urm *UserRoutesManager) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", urm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateRoleRequest](r)
	if err != nil {
		handling.WriteError(err, "", urm.logger, w)
		return
	}

	user, err := urm.userService.SetAdmin(r.Context(), id, *body.IsAdmin, middleware.CallerFromContext(r.Context()))
	if err != nil {
		handling.WriteError(err, "Unable to update user role", urm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User role updated successfully"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

func (urm *UserRoutesManager) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := lib.UUIDParam(r, "id")
	if err != nil {
		handling.WriteError(err, "", urm.logger, w)
		return
	}

	if err := urm.userService.Delete(r.Context(), id, middleware.CallerFromContext(r.Context())); err != nil {
		handling.WriteError(err, "Unable to delete user", urm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("User deleted successfully"),
		gecho.Send(),
	)
}
