package model

import (
	"time"

	"roombook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                = "id"
	FieldName              = "name"
	FieldEmail             = "email"
	FieldPassword          = "password"
	FieldMobileNumber      = "mobile_number"
	FieldRole              = "role"
	FieldIsVerified        = "is_verified"
	FieldVerificationToken = "verification_token"
	FieldLastLogin         = "last_login"
	FieldActive            = "active"
)

type User struct {
	ID                string     `db:"id"`
	Name              string     `db:"name"`
	Email             string     `db:"email"`
	Password          string     `db:"password"`
	MobileNumber      string     `db:"mobile_number"`
	Role              string     `db:"role"`
	IsVerified        bool       `db:"is_verified"`
	VerificationToken *string    `db:"verification_token"`
	LastLogin         *time.Time `db:"last_login"`
	Active            bool       `db:"active"`
	model.Metadata
}
