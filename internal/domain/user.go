package domain

import "time"

type UserRole string

const (
	UserRoleUser    UserRole = "USER"
	UserRoleCompany UserRole = "COMPANY"
	UserRoleAdmin   UserRole = "ADMIN"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CompanyID    string    `json:"company_id,omitempty"` // set for COMPANY users
	CreatedOn    time.Time `json:"created_on"`
}
