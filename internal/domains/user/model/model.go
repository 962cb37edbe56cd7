package model

import (
	"time"

	"rental/shared/record"
)

const (
	FileName   = "users.txt"
	EntityName = "user"
	Delimiter  = record.DelimiterComma

	minFields = 9
)

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Password         string    `json:"-"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	Role             string    `json:"role"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Encode serializes the user to one comma-delimited line:
// id,username,password,fullName,email,phone,address,role,registrationDate
func Encode(u User) string {
	return record.Join(Delimiter,
		u.ID,
		record.Clean(Delimiter, u.Username),
		record.Clean(Delimiter, u.Password),
		record.Clean(Delimiter, u.FullName),
		record.Clean(Delimiter, u.Email),
		record.Clean(Delimiter, u.Phone),
		record.Clean(Delimiter, u.Address),
		u.Role,
		record.FormatTime(u.RegistrationDate),
	)
}

func Decode(line string) (User, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:               fields.Get(0),
		Username:         fields.Get(1),
		Password:         fields.Get(2),
		FullName:         fields.Get(3),
		Email:            fields.Get(4),
		Phone:            fields.Get(5),
		Address:          fields.Get(6),
		Role:             fields.Get(7),
		RegistrationDate: fields.Time(8),
	}

	if err := fields.Err(); err != nil {
		return User{}, err
	}

	return user, nil
}
