package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-roles/models"
)

var (
	userColumns = []string{
		"user_id",
		"username",
		"email",
		"password_hash",
		"first_name",
		"last_name",
		"active",
		"created_at",
		"updated_at",
	}

	roleColumns = []string{
		"role_id",
		"role_name",
		"description",
		"created_at",
		"updated_at",
	}
)

func qualified(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

// ── users ─────────────────────────────────────────────────────────────────────

func buildSelectUsersQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select(userColumns...).
		From("users").
		OrderBy("user_id").
		ToSql()
}

func buildSelectUserByIDQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildSelectUserByUsernameQuery picks the lowest user_id when several rows
// share the username.
func buildSelectUserByUsernameQuery(sb sq.StatementBuilderType, username string) (string, []any, error) {
	return sb.Select(userColumns...).
		From("users").
		Where(sq.Eq{"username": username}).
		OrderBy("user_id").
		Limit(1).
		ToSql()
}

func buildInsertUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Insert("users").
		Columns("username", "email", "password_hash", "first_name", "last_name", "active").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Active).
		Suffix("RETURNING user_id, created_at, updated_at").
		ToSql()
}

func buildUpdateUserQuery(sb sq.StatementBuilderType, user models.User) (string, []any, error) {
	return sb.Update("users").
		Set("username", user.Username).
		Set("email", user.Email).
		Set("password_hash", user.PasswordHash).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("active", user.Active).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"user_id": user.UserID}).
		ToSql()
}

func buildDeleteUserQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Delete("users").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildCountRowsQuery(sb sq.StatementBuilderType, table string) (string, []any, error) {
	return sb.Select("COUNT(*)").
		From(table).
		ToSql()
}

// ── roles ─────────────────────────────────────────────────────────────────────

func buildSelectRolesQuery(sb sq.StatementBuilderType) (string, []any, error) {
	return sb.Select(roleColumns...).
		From("roles").
		OrderBy("role_id").
		ToSql()
}

func buildSelectRoleByIDQuery(sb sq.StatementBuilderType, roleID int64) (string, []any, error) {
	return sb.Select(roleColumns...).
		From("roles").
		Where(sq.Eq{"role_id": roleID}).
		ToSql()
}

// buildSelectRoleByNameQuery picks the lowest role_id when several rows share
// the name.
func buildSelectRoleByNameQuery(sb sq.StatementBuilderType, name string) (string, []any, error) {
	return sb.Select(roleColumns...).
		From("roles").
		Where(sq.Eq{"role_name": name}).
		OrderBy("role_id").
		Limit(1).
		ToSql()
}

func buildInsertRoleQuery(sb sq.StatementBuilderType, role models.Role) (string, []any, error) {
	return sb.Insert("roles").
		Columns("role_name", "description").
		Values(role.RoleName, role.Description).
		Suffix("RETURNING role_id, created_at, updated_at").
		ToSql()
}

func buildUpdateRoleQuery(sb sq.StatementBuilderType, role models.Role) (string, []any, error) {
	return sb.Update("roles").
		Set("role_name", role.RoleName).
		Set("description", role.Description).
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"role_id": role.RoleID}).
		ToSql()
}

func buildDeleteRoleQuery(sb sq.StatementBuilderType, roleID int64) (string, []any, error) {
	return sb.Delete("roles").
		Where(sq.Eq{"role_id": roleID}).
		ToSql()
}

// ── assignments ───────────────────────────────────────────────────────────────

func buildSelectUserRolesQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Select(qualified("r", roleColumns)...).
		From("roles r").
		Join("user_roles ur ON ur.role_id = r.role_id").
		Where(sq.Eq{"ur.user_id": userID}).
		OrderBy("r.role_id").
		ToSql()
}

func buildSelectRoleUsersQuery(sb sq.StatementBuilderType, roleID int64) (string, []any, error) {
	return sb.Select(qualified("u", userColumns)...).
		From("users u").
		Join("user_roles ur ON ur.user_id = u.user_id").
		Where(sq.Eq{"ur.role_id": roleID}).
		OrderBy("u.user_id").
		ToSql()
}

func buildSelectAssignmentsQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Select("user_id", "role_id", "assigned_at").
		From("user_roles").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("role_id").
		ToSql()
}

func buildInsertAssignmentQuery(sb sq.StatementBuilderType, userID, roleID int64) (string, []any, error) {
	return sb.Insert("user_roles").
		Columns("user_id", "role_id").
		Values(userID, roleID).
		ToSql()
}

func buildDeleteAssignmentQuery(sb sq.StatementBuilderType, userID, roleID int64) (string, []any, error) {
	return sb.Delete("user_roles").
		Where(sq.Eq{"user_id": userID, "role_id": roleID}).
		ToSql()
}

func buildDeleteUserAssignmentsQuery(sb sq.StatementBuilderType, userID int64) (string, []any, error) {
	return sb.Delete("user_roles").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeleteRoleAssignmentsQuery(sb sq.StatementBuilderType, roleID int64) (string, []any, error) {
	return sb.Delete("user_roles").
		Where(sq.Eq{"role_id": roleID}).
		ToSql()
}
