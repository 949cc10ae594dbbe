package dto

import "catalog/internal/model"

// RoleDTO is the transfer shape for roles.
type RoleDTO struct {
	ID        uint   `json:"id"`
	Authority string `json:"authority"`
}

// UserDTO is the transfer shape for users. The password never round-trips
// out; inserts submit it through UserInsertDTO only.
type UserDTO struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstName" validate:"required"`
	LastName  string    `json:"lastName" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Roles     []RoleDTO `json:"roles"`
}

// UserInsertDTO is the creation payload: a UserDTO plus the plaintext
// password, hashed before it reaches the store.
type UserInsertDTO struct {
	UserDTO
	Password string `json:"password" validate:"required,min=6"`
}

// NewRoleDTO maps a persisted role to its transfer shape.
func NewRoleDTO(role *model.Role) RoleDTO {
	return RoleDTO{
		ID:        role.ID,
		Authority: role.Authority,
	}
}

// NewUserDTO maps a persisted user, including roles, to the transfer shape.
func NewUserDTO(user *model.User) UserDTO {
	roles := make([]RoleDTO, 0, len(user.Roles))
	for i := range user.Roles {
		roles = append(roles, NewRoleDTO(&user.Roles[i]))
	}
	return UserDTO{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Roles:     roles,
	}
}

// NewUserDTOs maps a slice of users.
func NewUserDTOs(users []model.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUserDTO(&users[i]))
	}
	return out
}
