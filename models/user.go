package models

import (
	"strings"
	"unicode/utf16"

	"go.mongodb.org/mongo-driver/bson"
)

const MinPasswordLength = 8

const (
	FieldID              = "_id"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldUserName        = "userName"
	FieldUsernameAlt     = "username"
	FieldCreatedAt       = "createdAt"
	FieldUpdatedAt       = "updatedAt"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupProblem returns the validation message for a signup payload, or "".
func SignupProblem(user bson.M) string {
	password, _ := user[FieldPassword].(string)
	if passwordLength(password) < MinPasswordLength {
		return "Password must be at least 8 characters"
	}
	email, _ := user[FieldEmail].(string)
	if email == "" || !strings.Contains(email, "@") {
		return "Invalid email format"
	}
	if confirm, ok := user[FieldConfirmPassword].(string); !ok || confirm != password {
		return "Passwords do not match"
	}
	return ""
}

// passwordLength counts UTF-16 code units.
func passwordLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// DisplayName prefers userName and falls back to username.
func DisplayName(user bson.M) any {
	if v := user[FieldUserName]; Truthy(v) {
		return v
	}
	return user[FieldUsernameAlt]
}
