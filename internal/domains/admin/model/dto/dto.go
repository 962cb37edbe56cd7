package dto

import (
	"rental/internal/domains/admin/model"
	"rental/shared"
	"rental/shared/constant"
	"rental/shared/record"
)

type CreateAdminRequest struct {
	Username    string   `json:"username"    validate:"required,min=3"`
	Password    string   `json:"password"    validate:"required,min=6"`
	FullName    string   `json:"full_name"   validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
}

func (c *CreateAdminRequest) ToModel(hashedPassword string) model.Admin {
	return model.Admin{
		ID:          record.NewID(),
		Username:    c.Username,
		Password:    hashedPassword,
		FullName:    c.FullName,
		Email:       c.Email,
		Role:        constant.RoleAdmin,
		Permissions: c.Permissions,
	}
}

type UpdateAdminRequest struct {
	FullName    string   `json:"full_name"   validate:"required"`
	Email       string   `json:"email"       validate:"required,email"`
	Permissions []string `json:"permissions" validate:"required,min=1"`
}

func (u *UpdateAdminRequest) ApplyTo(admin *model.Admin) {
	admin.FullName = u.FullName
	admin.Email = u.Email
	admin.Permissions = u.Permissions
}

type AdminResponse struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

func (a *AdminResponse) FromModel(admin model.Admin) {
	a.ID = admin.ID
	a.Username = admin.Username
	a.FullName = admin.FullName
	a.Email = admin.Email
	a.Role = admin.Role
	a.Permissions = admin.Permissions
}

type GetAdminsResponse struct {
	Admins    []AdminResponse `json:"admins"`
	Total     int             `json:"total"`
	TotalPage int             `json:"total_page"`
}

func (g *GetAdminsResponse) FromModels(admins []model.Admin, total, limit int) {
	g.Admins = make([]AdminResponse, 0, len(admins))

	for _, admin := range admins {
		response := AdminResponse{}
		response.FromModel(admin)
		g.Admins = append(g.Admins, response)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
