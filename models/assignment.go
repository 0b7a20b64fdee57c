package models

// Assignment links one User to one Role. The pair (UserID, RoleID) is the
// identity of the row; at most one assignment exists per pair.
type Assignment struct {
	UserID     int64     `json:"userId"`
	RoleID     int64     `json:"roleId"`
	AssignedAt Timestamp `json:"assignedAt"`
}

// TableName returns the name of the association table.
func (a Assignment) TableName() string {
	return "user_roles"
}
