// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is a named permission group that can be assigned to many users.
//
// RoleName is unique by convention only; the storage layer does not enforce it.
type Role struct {
	RoleID      int64     `json:"roleId"`
	RoleName    string    `json:"roleName"`
	Description *string   `json:"description"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the Role model.
func (r Role) TableName() string {
	return "roles"
}
