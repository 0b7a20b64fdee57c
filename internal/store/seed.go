package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-roles/models"
)

func ptr(s string) *string { return &s }

var (
	seedUsers = []models.User{
		{Username: "admin", Email: "admin@example.com", PasswordHash: "hashed_password", FirstName: ptr("Admin"), LastName: ptr("User"), Active: true},
		{Username: "user1", Email: "user1@example.com", PasswordHash: "hashed_password", FirstName: ptr("Regular"), LastName: ptr("User"), Active: true},
		{Username: "manager", Email: "manager@example.com", PasswordHash: "hashed_password", FirstName: ptr("Manager"), LastName: ptr("User"), Active: true},
	}

	seedRoles = []models.Role{
		{RoleName: "ADMIN", Description: ptr("Administrator role with full access")},
		{RoleName: "USER", Description: ptr("Regular user with limited access")},
		{RoleName: "MANAGER", Description: ptr("Manager with department access")},
	}
)

// seed inserts the demonstration users and roles and assigns the i-th role
// to the i-th user. It does nothing unless both tables are empty.
func seed(ctx context.Context, db *DB, q Querier) error {
	empty, err := tablesEmpty(ctx, db, q, models.User{}.TableName(), models.Role{}.TableName())
	if err != nil || !empty {
		return err
	}

	userIDs := make([]int64, 0, len(seedUsers))
	for _, user := range seedUsers {
		created, err := insertUser(ctx, db, q, user)
		if err != nil {
			return err
		}
		userIDs = append(userIDs, created.UserID)
	}

	roleIDs := make([]int64, 0, len(seedRoles))
	for _, role := range seedRoles {
		created, err := insertRole(ctx, db, q, role)
		if err != nil {
			return err
		}
		roleIDs = append(roleIDs, created.RoleID)
	}

	for i := range userIDs {
		if err := insertAssignment(ctx, db, q, userIDs[i], roleIDs[i]); err != nil {
			return err
		}
	}

	db.logger.Info().Str("func", "seed").
		Int("users", len(userIDs)).
		Int("roles", len(roleIDs)).
		Msg("demonstration data seeded")
	return nil
}

func tablesEmpty(ctx context.Context, db *DB, q Querier, tables ...string) (bool, error) {
	for _, table := range tables {
		query, args, err := buildCountRowsQuery(db.builder, table)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		var count int64
		if err = q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
			return false, db.classify(ErrExecutingQuery, err)
		}
		if count > 0 {
			return false, nil
		}
	}

	return true, nil
}
