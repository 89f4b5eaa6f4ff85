package structs

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type UpdateRoleRequest struct {
	IsAdmin *bool `json:"isAdmin" validate:"required"`
}
