package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles the "users" table and the user side of "user_roles".
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger  *logger.Logger
	gateway *Gateway
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// gateway and logger.
func NewUserRepository(gateway *Gateway, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		gateway: gateway,
		logger:  logger,
	}
}

// GetAll returns every user ordered by user_id, each with its roles.
func (r *userRepository) GetAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectUsersQuery(db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users, err := queryUsers(ctx, db, db, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAll").Msg("error selecting users")
		return nil, err
	}

	// roles are loaded after the user rows are released
	for i := range users {
		users[i].Roles, err = selectUserRoles(ctx, db, db, users[i].UserID)
		if err != nil {
			log.Err(err).Str("func", "*userRepository.GetAll").Int64("user_id", users[i].UserID).Msg("error selecting user roles")
			return nil, err
		}
	}

	return users, nil
}

// GetByID returns the user with the given id and its roles, or
// [ErrUserNotFound].
func (r *userRepository) GetByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := buildSelectUserByIDQuery(db.builder, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := r.getOne(ctx, db, query, args...)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.GetByID").Int64("user_id", userID).Msg("error getting user")
		}
		return models.User{}, err
	}

	return user, nil
}

// GetByUsername returns the user with the lowest user_id among those named
// username, or [ErrUserNotFound].
func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.User{}, err
	}

	query, args, err := buildSelectUserByUsernameQuery(db.builder, username)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := r.getOne(ctx, db, query, args...)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			log.Err(err).Str("func", "*userRepository.GetByUsername").Str("username", username).Msg("error getting user")
		}
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) getOne(ctx context.Context, db *DB, query string, args ...any) (models.User, error) {
	user, err := scanUser(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, db.classify(ErrScanningRow, err)
	}

	user.Roles, err = selectUserRoles(ctx, db, db, user.UserID)
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Create inserts the user and assigns every role it carries in one
// transaction. The returned user holds the generated id, the server
// timestamps and the role set as stored.
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.User{}, err
	}

	var created models.User
	err = r.gateway.WithTx(ctx, func(q Querier) error {
		created, err = insertUser(ctx, db, q, user)
		if err != nil {
			return err
		}

		for _, roleID := range user.RoleIDs() {
			if err = insertAssignment(ctx, db, q, created.UserID, roleID); err != nil {
				return err
			}
		}

		created.Roles, err = selectUserRoles(ctx, db, q, created.UserID)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Str("username", user.Username).Msg("error creating user")
		return models.User{}, err
	}

	return created, nil
}

// Update replaces the mutable attributes of the user and, when user.Roles is
// non-nil and the row exists, replaces its whole role set. Both happen in one
// transaction. Reports whether the users row was updated.
func (r *userRepository) Update(ctx context.Context, user models.User) (bool, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return false, err
	}

	var updated bool
	err = r.gateway.WithTx(ctx, func(q Querier) error {
		query, args, err := buildUpdateUserQuery(db.builder, user)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		updated, err = execAffected(ctx, db, q, query, args...)
		if err != nil || !updated || user.Roles == nil {
			return err
		}

		query, args, err = buildDeleteUserAssignmentsQuery(db.builder, user.UserID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = execAffected(ctx, db, q, query, args...); err != nil {
			return err
		}

		for _, roleID := range user.RoleIDs() {
			if err = insertAssignment(ctx, db, q, user.UserID, roleID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Int64("user_id", user.UserID).Msg("error updating user")
		return false, err
	}

	return updated, nil
}

// Delete removes every assignment of the user and then the user row in one
// transaction. Reports whether the users row was removed.
func (r *userRepository) Delete(ctx context.Context, userID int64) (bool, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return false, err
	}

	var removed bool
	err = r.gateway.WithTx(ctx, func(q Querier) error {
		query, args, err := buildDeleteUserAssignmentsQuery(db.builder, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = execAffected(ctx, db, q, query, args...); err != nil {
			return err
		}

		query, args, err = buildDeleteUserQuery(db.builder, userID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		removed, err = execAffected(ctx, db, q, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Int64("user_id", userID).Msg("error deleting user")
		return false, err
	}

	return removed, nil
}

// AssignRole inserts one assignment. A repeated pair yields
// [ErrDuplicateAssignment]; a missing user or role yields
// [ErrForeignKeyViolation].
func (r *userRepository) AssignRole(ctx context.Context, userID, roleID int64) error {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return err
	}

	if err = insertAssignment(ctx, db, db, userID, roleID); err != nil {
		log.Err(err).Str("func", "*userRepository.AssignRole").
			Int64("user_id", userID).
			Int64("role_id", roleID).
			Msg("error assigning role")
		return err
	}

	return nil
}

// RemoveRole deletes one assignment and reports whether it existed.
func (r *userRepository) RemoveRole(ctx context.Context, userID, roleID int64) (bool, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := buildDeleteAssignmentQuery(db.builder, userID, roleID)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	removed, err := execAffected(ctx, db, db, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RemoveRole").
			Int64("user_id", userID).
			Int64("role_id", roleID).
			Msg("error removing role")
		return false, err
	}

	return removed, nil
}

// GetAssignments returns the raw assignment rows of the user ordered by
// role_id.
func (r *userRepository) GetAssignments(ctx context.Context, userID int64) ([]models.Assignment, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectAssignmentsQuery(db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetAssignments").Int64("user_id", userID).Msg("error selecting assignments")
		return nil, db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	assignments := make([]models.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, db.classify(ErrScanningRow, err)
		}
		assignments = append(assignments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, db.classify(ErrScanningRows, err)
	}

	return assignments, nil
}

// ── shared statements ─────────────────────────────────────────────────────────

func insertUser(ctx context.Context, db *DB, q Querier, user models.User) (models.User, error) {
	query, args, err := buildInsertUserQuery(db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = q.QueryRowContext(ctx, query, args...).Scan(&user.UserID, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNothingCreated
	}
	if err != nil {
		return models.User{}, db.classify(ErrExecutingStatement, err)
	}

	user.Roles = nil
	return user, nil
}

func insertAssignment(ctx context.Context, db *DB, q Querier, userID, roleID int64) error {
	query, args, err := buildInsertAssignmentQuery(db.builder, userID, roleID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = q.ExecContext(ctx, query, args...); err != nil {
		return db.classify(ErrExecutingStatement, err)
	}

	return nil
}

// execAffected executes a DML statement and reports whether it touched a row.
func execAffected(ctx context.Context, db *DB, q Querier, query string, args ...any) (bool, error) {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return false, db.classify(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, db.classify(ErrExecutingStatement, err)
	}

	return n > 0, nil
}

// queryUsers reads every row of a users query before returning, so the
// connection is free for follow-up statements.
func queryUsers(ctx context.Context, db *DB, q Querier, query string, args ...any) ([]models.User, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, db.classify(ErrScanningRow, err)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, db.classify(ErrScanningRows, err)
	}

	return users, nil
}

// selectUserRoles returns the roles assigned to the user ordered by role_id.
// The result is never nil.
func selectUserRoles(ctx context.Context, db *DB, q Querier, userID int64) ([]models.Role, error) {
	query, args, err := buildSelectUserRolesQuery(db.builder, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, db.classify(ErrScanningRow, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		return nil, db.classify(ErrScanningRows, err)
	}

	return roles, nil
}
