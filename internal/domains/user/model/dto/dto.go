package dto

import (
	"rental/internal/domains/user/model"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/timezone"
)

type UpdateUserRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"omitempty"`
	Address  string `json:"address"   validate:"omitempty"`
}

func (u *UpdateUserRequest) ApplyTo(user *model.User) {
	user.FullName = u.FullName
	user.Email = u.Email
	user.Phone = u.Phone
	user.Address = u.Address
}

type UserResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	FullName         string `json:"full_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	Role             string `json:"role"`
	RegistrationDate string `json:"registration_date"`
}

func (u *UserResponse) FromModel(user model.User) {
	u.ID = user.ID
	u.Username = user.Username
	u.FullName = user.FullName
	u.Email = user.Email
	u.Phone = user.Phone
	u.Address = user.Address
	u.Role = user.Role
	u.RegistrationDate = timezone.Format(user.RegistrationDate, constant.DateTimeFormat)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	Total     int            `json:"total"`
	TotalPage int            `json:"total_page"`
}

func (g *GetUsersResponse) FromModels(users []model.User, total, limit int) {
	g.Users = make([]UserResponse, 0, len(users))

	for _, user := range users {
		response := UserResponse{}
		response.FromModel(user)
		g.Users = append(g.Users, response)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
