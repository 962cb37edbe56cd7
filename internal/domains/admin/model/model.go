package model

import (
	"slices"
	"strings"

	"rental/shared/constant"
	"rental/shared/record"
)

const (
	FileName   = "admins.txt"
	EntityName = "admin"
	Delimiter  = record.DelimiterPipe

	minFields = 6

	permissionSeparator = ","
)

type Admin struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Password    string   `json:"-"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether the admin carries the given permission token.
// The ALL token grants everything.
func (a Admin) HasPermission(permission string) bool {
	return slices.Contains(a.Permissions, constant.PermissionAll) ||
		slices.Contains(a.Permissions, permission)
}

// Encode serializes the admin to one pipe-delimited line:
// id|username|password|fullName|email|role|permissions
func Encode(a Admin) string {
	permissions := make([]string, 0, len(a.Permissions))
	for _, permission := range a.Permissions {
		permissions = append(permissions, record.Clean(Delimiter, strings.ReplaceAll(permission, permissionSeparator, " ")))
	}

	return record.Join(Delimiter,
		a.ID,
		record.Clean(Delimiter, a.Username),
		record.Clean(Delimiter, a.Password),
		record.Clean(Delimiter, a.FullName),
		record.Clean(Delimiter, a.Email),
		a.Role,
		strings.Join(permissions, permissionSeparator),
	)
}

func Decode(line string) (Admin, error) {
	fields, err := record.Split(line, Delimiter, minFields)
	if err != nil {
		return Admin{}, err
	}

	var permissions []string
	if raw := fields.Get(6); raw != constant.Empty {
		permissions = strings.Split(raw, permissionSeparator)
	}

	admin := Admin{
		ID:          fields.Get(0),
		Username:    fields.Get(1),
		Password:    fields.Get(2),
		FullName:    fields.Get(3),
		Email:       fields.Get(4),
		Role:        fields.Get(5),
		Permissions: permissions,
	}

	if err := fields.Err(); err != nil {
		return Admin{}, err
	}

	return admin, nil
}
