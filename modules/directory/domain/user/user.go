package user

import "strings"

type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Role           string `json:"role"`
	DepartmentName string `json:"department_name"`
	Phone          string `json:"phone"`
	IsActive       bool   `json:"is_active"`
	DateJoined     string `json:"date_joined"`
}

// DisplayName prefers the server's full_name, then "last first" as
// Vietnamese names are written, then the username.
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.FullName); n != "" {
		return n
	}
	if n := strings.TrimSpace(u.LastName + " " + u.FirstName); n != "" {
		return n
	}
	return u.Username
}
