package dto

import (
	"roombook/internal/domains/user/model"
	"roombook/shared"
	gDto "roombook/shared/dto"
)

type UserResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Role         string `json:"role"`
	IsVerified   bool   `json:"is_verified"`
	Active       bool   `json:"active"`
	gDto.Metadata
}

func (u *UserResponse) FromModel(model model.User) {
	u.ID = model.ID
	u.Name = model.Name
	u.Email = model.Email
	u.MobileNumber = model.MobileNumber
	u.Role = model.Role
	u.IsVerified = model.IsVerified
	u.Active = model.Active
	u.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
