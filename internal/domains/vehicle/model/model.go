package model

import (
	"strings"

	"rental/shared/constant"
	"rental/shared/record"
)

const (
	FileName   = "vehicles.txt"
	EntityName = "vehicle"
	Delimiter  = record.DelimiterComma

	minFields = 8

	featureSeparator = ";"
)

const (
	StatusAvailable   = "available"
	StatusRented      = "rented"
	StatusMaintenance = "maintenance"
)

type Vehicle struct {
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
	Features           []string `json:"features,omitempty"`
	Seats              int      `json:"seats"`
	FuelType           string   `json:"fuel_type"`
	Transmission       string   `json:"transmission"`

	// Derived from reviews, never persisted with the record.
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int     `json:"review_count"`
}

func (v Vehicle) Available() bool {
	return v.Status == StatusAvailable
}

// Encode serializes the vehicle to one comma-delimited line:
// id,type,make,model,year,registrationNumber,dailyRate,status,imageURL,description,features,seats,fuelType,transmission
func Encode(v Vehicle) string {
	features := make([]string, 0, len(v.Features))
	for _, feature := range v.Features {
		features = append(features, record.Clean(Delimiter, strings.ReplaceAll(feature, featureSeparator, " ")))
	}

	seats := constant.Empty
	if v.Seats > 0 {
		seats = record.FormatInt(v.Seats)
	}

	return record.Join(Delimiter,
		v.ID,
		record.Clean(Delimiter, v.Type),
		record.Clean(Delimiter, v.Make),
		record.Clean(Delimiter, v.Model),
		record.FormatInt(v.Year),
		record.Clean(Delimiter, v.RegistrationNumber),
		record.FormatFloat(v.DailyRate),
		v.Status,
		record.Clean(Delimiter, v.ImageURL),
		record.Clean(Delimiter, v.Description),
		strings.Join(features, featureSeparator),
		seats,
		record.Clean(Delimiter, v.FuelType),
		record.Clean(Delimiter, v.Transmission),
	)
}

func Decode(line string) (Vehicle, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return Vehicle{}, err
	}

	var features []string
	if raw := fields.Get(10); raw != constant.Empty {
		features = strings.Split(raw, featureSeparator)
	}

	vehicle := Vehicle{
		ID:                 fields.Get(0),
		Type:               fields.Get(1),
		Make:               fields.Get(2),
		Model:              fields.Get(3),
		Year:               fields.Int(4),
		RegistrationNumber: fields.Get(5),
		DailyRate:          fields.Float(6),
		Status:             fields.Get(7),
		ImageURL:           fields.Get(8),
		Description:        fields.Get(9),
		Features:           features,
		Seats:              fields.OptionalInt(11),
		FuelType:           fields.Get(12),
		Transmission:       fields.Get(13),
	}

	if err := fields.Err(); err != nil {
		return Vehicle{}, err
	}

	return vehicle, nil
}
