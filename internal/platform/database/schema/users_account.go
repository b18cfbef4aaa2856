// Copyright (c) 2026 Inkwell. All rights reserved.

// Package schema holds table and column name definitions so query builders
// never hardcode identifier strings.
package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Username     string
	Email        string
	PasswordHash string
	DisplayName  string
	Bio          string
	CreatedAt    string
	UpdatedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Username:     "username",
	Email:        "email",
	PasswordHash: "password_hash",
	DisplayName:  "display_name",
	Bio:          "bio",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Username, t.Email, t.PasswordHash, t.DisplayName, t.Bio,
		t.CreatedAt, t.UpdatedAt,
	}
}
