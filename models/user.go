// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User represents a directory account.
//
// Roles is a derived view reconstructed from the user_roles table on every
// read and is never persisted on the users row. A nil Roles slice means
// "no role set provided" (update leaves assignments untouched), while an
// empty non-nil slice means "no roles" (update removes every assignment).
type User struct {
	// UserID is the generated identifier, stable once assigned.
	UserID int64 `json:"userId"`

	// Username is the account login name.
	Username string `json:"username"`

	// Email is the contact address of the account.
	Email string `json:"email"`

	// PasswordHash is stored as provided; hashing policy belongs to the caller.
	PasswordHash string `json:"passwordHash"`

	// FirstName is optional and serialized as null when absent.
	FirstName *string `json:"firstName"`

	// LastName is optional and serialized as null when absent.
	LastName *string `json:"lastName"`

	// Active reports whether the account is enabled. Defaults to true on create.
	Active bool `json:"active"`

	// CreatedAt is assigned by the storage engine on insert.
	CreatedAt Timestamp `json:"createdAt"`

	// UpdatedAt is assigned by the storage engine on insert and update.
	UpdatedAt Timestamp `json:"updatedAt"`

	// Roles holds the roles currently assigned to the user.
	Roles []Role `json:"roles,omitzero"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RoleIDs returns the distinct identifiers of the roles carried by u in
// first-seen order.
func (u User) RoleIDs() []int64 {
	ids := make([]int64, 0, len(u.Roles))
	seen := make(map[int64]struct{}, len(u.Roles))
	for _, role := range u.Roles {
		if _, ok := seen[role.RoleID]; ok {
			continue
		}
		seen[role.RoleID] = struct{}{}
		ids = append(ids, role.RoleID)
	}

	return ids
}
