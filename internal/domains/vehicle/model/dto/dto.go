package dto

import (
	"rental/internal/domains/vehicle/model"
	"rental/shared"
	"rental/shared/record"
)

type CreateVehicleRequest struct {
	Type               string   `json:"type"                validate:"required"`
	Make               string   `json:"make"                validate:"required"`
	Model              string   `json:"model"               validate:"required"`
	Year               int      `json:"year"                validate:"required,gte=1900"`
	RegistrationNumber string   `json:"registration_number" validate:"required"`
	DailyRate          float64  `json:"daily_rate"          validate:"required,gt=0"`
	ImageURL           string   `json:"image_url"           validate:"omitempty,url"`
	Description        string   `json:"description"         validate:"omitempty"`
	Features           []string `json:"features"            validate:"omitempty"`
	Seats              int      `json:"seats"               validate:"omitempty,gt=0"`
	FuelType           string   `json:"fuel_type"           validate:"omitempty"`
	Transmission       string   `json:"transmission"        validate:"omitempty"`
}

func (c *CreateVehicleRequest) ToModel() model.Vehicle {
	return model.Vehicle{
		ID:                 record.NewID(),
		Type:               c.Type,
		Make:               c.Make,
		Model:              c.Model,
		Year:               c.Year,
		RegistrationNumber: c.RegistrationNumber,
		DailyRate:          c.DailyRate,
		Status:             model.StatusAvailable,
		ImageURL:           c.ImageURL,
		Description:        c.Description,
		Features:           c.Features,
		Seats:              c.Seats,
		FuelType:           c.FuelType,
		Transmission:       c.Transmission,
	}
}

type UpdateVehicleRequest struct {
	Type               string   `json:"type"                validate:"required"`
	Make               string   `json:"make"                validate:"required"`
	Model              string   `json:"model"               validate:"required"`
	Year               int      `json:"year"                validate:"required,gte=1900"`
	RegistrationNumber string   `json:"registration_number" validate:"required"`
	DailyRate          float64  `json:"daily_rate"          validate:"required,gt=0"`
	ImageURL           string   `json:"image_url"           validate:"omitempty,url"`
	Description        string   `json:"description"         validate:"omitempty"`
	Features           []string `json:"features"            validate:"omitempty"`
	Seats              int      `json:"seats"               validate:"omitempty,gt=0"`
	FuelType           string   `json:"fuel_type"           validate:"omitempty"`
	Transmission       string   `json:"transmission"        validate:"omitempty"`
}

func (u *UpdateVehicleRequest) ApplyTo(vehicle *model.Vehicle) {
	vehicle.Type = u.Type
	vehicle.Make = u.Make
	vehicle.Model = u.Model
	vehicle.Year = u.Year
	vehicle.RegistrationNumber = u.RegistrationNumber
	vehicle.DailyRate = u.DailyRate
	vehicle.ImageURL = u.ImageURL
	vehicle.Description = u.Description
	vehicle.Features = u.Features
	vehicle.Seats = u.Seats
	vehicle.FuelType = u.FuelType
	vehicle.Transmission = u.Transmission
}

type UpdateVehicleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available rented maintenance"`
}

type VehicleResponse struct {
	ID                 string   `json:"id"`
	Type               string   `json:"type"`
	Make               string   `json:"make"`
	Model              string   `json:"model"`
	Year               int      `json:"year"`
	RegistrationNumber string   `json:"registration_number"`
	DailyRate          float64  `json:"daily_rate"`
	Status             string   `json:"status"`
	ImageURL           string   `json:"image_url"`
	Description        string   `json:"description"`
	Features           []string `json:"features"`
	Seats              int      `json:"seats"`
	FuelType           string   `json:"fuel_type"`
	Transmission       string   `json:"transmission"`
	AverageRating      float64  `json:"average_rating"`
	ReviewCount        int      `json:"review_count"`
}

func (v *VehicleResponse) FromModel(vehicle model.Vehicle) {
	v.ID = vehicle.ID
	v.Type = vehicle.Type
	v.Make = vehicle.Make
	v.Model = vehicle.Model
	v.Year = vehicle.Year
	v.RegistrationNumber = vehicle.RegistrationNumber
	v.DailyRate = vehicle.DailyRate
	v.Status = vehicle.Status
	v.ImageURL = vehicle.ImageURL
	v.Description = vehicle.Description
	v.Features = vehicle.Features
	v.Seats = vehicle.Seats
	v.FuelType = vehicle.FuelType
	v.Transmission = vehicle.Transmission
	v.AverageRating = vehicle.AverageRating
	v.ReviewCount = vehicle.ReviewCount
}

type GetVehiclesResponse struct {
	Vehicles  []VehicleResponse `json:"vehicles"`
	Total     int               `json:"total"`
	TotalPage int               `json:"total_page"`
}

func (g *GetVehiclesResponse) FromModels(vehicles []model.Vehicle, total, limit int) {
	g.Vehicles = make([]VehicleResponse, 0, len(vehicles))

	for _, vehicle := range vehicles {
		response := VehicleResponse{}
		response.FromModel(vehicle)
		g.Vehicles = append(g.Vehicles, response)
	}

	g.Total = total
	g.TotalPage = shared.CalculateTotalPage(total, limit)
}
