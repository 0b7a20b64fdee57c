package store

import "github.com/MKhiriev/go-user-roles/models"

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser reads one row laid out as userColumns.
func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

// scanRole reads one row laid out as roleColumns.
func scanRole(row rowScanner) (models.Role, error) {
	var role models.Role
	err := row.Scan(
		&role.RoleID,
		&role.RoleName,
		&role.Description,
		&role.CreatedAt,
		&role.UpdatedAt,
	)
	return role, err
}

func scanAssignment(row rowScanner) (models.Assignment, error) {
	var a models.Assignment
	err := row.Scan(&a.UserID, &a.RoleID, &a.AssignedAt)
	return a, err
}
