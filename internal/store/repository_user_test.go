package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/models"
)

var (
	userRowColumns = []string{"user_id", "username", "email", "password_hash", "first_name", "last_name", "active", "created_at", "updated_at"}
	roleRowColumns = []string{"role_id", "role_name", "description", "created_at", "updated_at"}

	selectUserRolesSQL = regexp.QuoteMeta("FROM roles r JOIN user_roles ur ON ur.role_id = r.role_id WHERE ur.user_id = $1 ORDER BY r.role_id")
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	g, mock := newMockGateway(t)
	repo := NewUserRepository(g, logger.Nop()).(*userRepository)
	return repo, mock
}

func TestUserRepository_GetAll_AttachesRoles(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users ORDER BY user_id")).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "admin", "admin@example.com", "h", "Admin", "User", true, now, now).
			AddRow(2, "user1", "user1@example.com", "h", nil, nil, false, now, now))
	mock.ExpectQuery(selectUserRolesSQL).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roleRowColumns).AddRow(1, "ADMIN", "full access", now, now))
	mock.ExpectQuery(selectUserRolesSQL).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows(roleRowColumns))

	users, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, int64(1), users[0].UserID)
	assert.Equal(t, "Admin", *users[0].FirstName)
	require.Len(t, users[0].Roles, 1)
	assert.Equal(t, "ADMIN", users[0].Roles[0].RoleName)

	assert.Nil(t, users[1].FirstName)
	assert.False(t, users[1].Active)
	assert.NotNil(t, users[1].Roles)
	assert.Empty(t, users[1].Roles)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAll_QueryError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users").WillReturnError(errors.New("boom"))

	_, err := repo.GetAll(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE user_id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_DBError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("FROM users WHERE user_id").
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScanningRow)
	assert.False(t, errors.Is(err, ErrUserNotFound))
}

func TestUserRepository_GetByUsername_PicksLowestID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1 ORDER BY user_id LIMIT 1")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "admin", "admin@example.com", "h", nil, nil, true, now, now))
	mock.ExpectQuery(selectUserRolesSQL).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(roleRowColumns))

	user, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_WithRoles(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now().UTC()

	user := models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    strPtr("Alice"),
		Active:       true,
		Roles:        []models.Role{{RoleID: 1}, {RoleID: 2}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username,email,password_hash,first_name,last_name,active) VALUES ($1,$2,$3,$4,$5,$6) RETURNING user_id, created_at, updated_at")).
		WithArgs("alice", "alice@example.com", "hash", "Alice", nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(10, now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles (user_id,role_id) VALUES ($1,$2)")).
		WithArgs(int64(10), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_roles")).
		WithArgs(int64(10), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectUserRolesSQL).WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows(roleRowColumns).
			AddRow(1, "ADMIN", nil, now, now).
			AddRow(2, "USER", nil, now, now))
	mock.ExpectCommit()

	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(10), created.UserID)
	assert.Equal(t, now, created.CreatedAt.Time)
	assert.Equal(t, []int64{1, 2}, created.RoleIDs())
	assert.Equal(t, "ADMIN", created.Roles[0].RoleName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_AssignmentFailureRollsBack(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}).AddRow(11, now, now))
	mock.ExpectExec("INSERT INTO user_roles").
		WithArgs(int64(11), int64(404)).
		WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.User{
		Username: "bob", Email: "bob@example.com", PasswordHash: "h", Active: true,
		Roles: []models.Role{{RoleID: 404}},
	})

	assert.ErrorIs(t, err, ErrForeignKeyViolation)
	assert.ErrorIs(t, err, ErrConstraintViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_NothingCreated(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at", "updated_at"}))
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), models.User{Username: "carol"})
	assert.ErrorIs(t, err, ErrNothingCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_WithoutRoleSet(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET username = $1, email = $2, password_hash = $3, first_name = $4, last_name = $5, active = $6, updated_at = CURRENT_TIMESTAMP WHERE user_id = $7")).
		WithArgs("alice", "a@example.com", "h", nil, nil, false, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), models.User{
		UserID: 3, Username: "alice", Email: "a@example.com", PasswordHash: "h",
	})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_ReplacesRoleSet(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO user_roles").WithArgs(int64(3), int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_roles").WithArgs(int64(3), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), models.User{
		UserID: 3,
		Roles:  []models.Role{{RoleID: 2}, {RoleID: 3}, {RoleID: 2}},
	})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_EmptyRoleSetClearsAssignments(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM user_roles WHERE user_id").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), models.User{UserID: 3, Roles: []models.Role{}})
	require.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update_MissingRowSkipsRoles(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	updated, err := repo.Update(context.Background(), models.User{UserID: 77, Roles: []models.Role{{RoleID: 1}}})
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "existing user", affected: 1, want: true},
		{name: "missing user", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE user_id = $1")).
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE user_id = $1")).
				WithArgs(int64(5)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))
			mock.ExpectCommit()

			removed, err := repo.Delete(context.Background(), 5)
			require.NoError(t, err)
			assert.Equal(t, tt.want, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_AssignRole_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "duplicate pair", dbErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrDuplicateAssignment},
		{name: "dangling identity", dbErr: pgError(pgerrcode.ForeignKeyViolation), wantErr: ErrForeignKeyViolation},
		{name: "other failure", dbErr: sql.ErrConnDone, wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestUserRepo(t)

			mock.ExpectExec("INSERT INTO user_roles").
				WithArgs(int64(1), int64(2)).
				WillReturnError(tt.dbErr)

			err := repo.AssignRole(context.Background(), 1, 2)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserRepository_RemoveRole(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	// squirrel orders equality keys alphabetically
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_roles WHERE role_id = $1 AND user_id = $2")).
		WithArgs(int64(2), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.RemoveRole(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetAssignments(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, role_id, assigned_at FROM user_roles WHERE user_id = $1 ORDER BY role_id")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "role_id", "assigned_at"}).
			AddRow(1, 1, now).
			AddRow(1, 3, now))

	assignments, err := repo.GetAssignments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, int64(3), assignments[1].RoleID)
	assert.Equal(t, now, assignments[0].AssignedAt.Time)
}
