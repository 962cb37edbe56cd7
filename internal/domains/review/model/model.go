package model

import (
	"time"

	"rental/shared/record"
)

const (
	FileName   = "reviews.txt"
	EntityName = "review"

	// Reviews carry free-text comments, so they use the pipe-delimited
	// generation of the data files rather than the comma one.
	Delimiter = record.DelimiterPipe

	minFields = 6
)

const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	VehicleID  string    `json:"vehicle_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	ReviewDate time.Time `json:"review_date"`
}

// Encode serializes the review to one pipe-delimited line:
// id|userId|vehicleId|rating|comment|reviewDate
func Encode(r Review) string {
	return record.Join(Delimiter,
		r.ID,
		r.UserID,
		r.VehicleID,
		record.FormatInt(r.Rating),
		record.Clean(Delimiter, r.Comment),
		record.FormatTime(r.ReviewDate),
	)
}

func Decode(line string) (Review, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return Review{}, err
	}

	review := Review{
		ID:         fields.Get(0),
		UserID:     fields.Get(1),
		VehicleID:  fields.Get(2),
		Rating:     fields.Int(3),
		Comment:    fields.Get(4),
		ReviewDate: fields.Time(5),
	}

	if err := fields.Err(); err != nil {
		return Review{}, err
	}

	return review, nil
}
