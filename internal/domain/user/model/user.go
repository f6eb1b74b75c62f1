package model

import (
	baseModel "github.com/Bange254/Bttshoes/pkg/model"
)

// Roles.
const (
	RoleUser  = 1
	RoleAdmin = 2
)

// User is a storefront account. Guest checkout is allowed, so orders
// may exist without one.
type User struct {
	baseModel.BaseModel
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // bcrypt hash, never serialised
	Phone    string `json:"phone"`
	Role     int    `gorm:"default:1" json:"role"`
}
