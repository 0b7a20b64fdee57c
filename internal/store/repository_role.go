package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-roles/internal/logger"
	"github.com/MKhiriev/go-user-roles/models"
)

// roleRepository is the SQL-backed implementation of [RoleRepository].
type roleRepository struct {
	logger  *logger.Logger
	gateway *Gateway
}

// NewRoleRepository constructs a [RoleRepository] backed by the provided
// gateway and logger.
func NewRoleRepository(gateway *Gateway, logger *logger.Logger) RoleRepository {
	logger.Debug().Msg("creating role repository")
	return &roleRepository{
		gateway: gateway,
		logger:  logger,
	}
}

func (r *roleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectRolesQuery(db.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.GetAll").Msg("error selecting roles")
		return nil, db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	roles := make([]models.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			log.Err(err).Str("func", "*roleRepository.GetAll").Msg("error scanning role")
			return nil, db.classify(ErrScanningRow, err)
		}
		roles = append(roles, role)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*roleRepository.GetAll").Msg("error iterating roles")
		return nil, db.classify(ErrScanningRows, err)
	}

	return roles, nil
}

// GetByID returns the role with the given id or [ErrRoleNotFound].
func (r *roleRepository) GetByID(ctx context.Context, roleID int64) (models.Role, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.Role{}, err
	}

	query, args, err := buildSelectRoleByIDQuery(db.builder, roleID)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	role, err := getRole(ctx, db, query, args...)
	if err != nil && !errors.Is(err, ErrRoleNotFound) {
		log.Err(err).Str("func", "*roleRepository.GetByID").Int64("role_id", roleID).Msg("error getting role")
	}

	return role, err
}

// GetByName returns the role with the lowest role_id among those named name,
// or [ErrRoleNotFound].
func (r *roleRepository) GetByName(ctx context.Context, name string) (models.Role, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.Role{}, err
	}

	query, args, err := buildSelectRoleByNameQuery(db.builder, name)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	role, err := getRole(ctx, db, query, args...)
	if err != nil && !errors.Is(err, ErrRoleNotFound) {
		log.Err(err).Str("func", "*roleRepository.GetByName").Str("role_name", name).Msg("error getting role")
	}

	return role, err
}

func (r *roleRepository) Create(ctx context.Context, role models.Role) (models.Role, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return models.Role{}, err
	}

	created, err := insertRole(ctx, db, db, role)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.Create").Str("role_name", role.RoleName).Msg("error creating role")
		return models.Role{}, err
	}

	return created, nil
}

// Update replaces role_name and description and reports whether the row
// exists.
func (r *roleRepository) Update(ctx context.Context, role models.Role) (bool, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return false, err
	}

	query, args, err := buildUpdateRoleQuery(db.builder, role)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := execAffected(ctx, db, db, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.Update").Int64("role_id", role.RoleID).Msg("error updating role")
		return false, err
	}

	return updated, nil
}

// Delete removes every assignment of the role and then the role row. Both
// statements commit or roll back together. Reports whether the role row was
// removed.
func (r *roleRepository) Delete(ctx context.Context, roleID int64) (bool, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return false, err
	}

	var removed bool
	err = r.gateway.WithTx(ctx, func(q Querier) error {
		query, args, err := buildDeleteRoleAssignmentsQuery(db.builder, roleID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = execAffected(ctx, db, q, query, args...); err != nil {
			return err
		}

		query, args, err = buildDeleteRoleQuery(db.builder, roleID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		removed, err = execAffected(ctx, db, q, query, args...)
		return err
	})
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.Delete").Int64("role_id", roleID).Msg("error deleting role, transaction rolled back")
		return false, err
	}

	return removed, nil
}

// GetUsersByRoleID returns the users assigned to the role ordered by
// user_id. Only base attributes are loaded; Roles stays nil.
func (r *roleRepository) GetUsersByRoleID(ctx context.Context, roleID int64) ([]models.User, error) {
	log := logger.FromContext(ctx)

	db, err := r.gateway.Open(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := buildSelectRoleUsersQuery(db.builder, roleID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users, err := queryUsers(ctx, db, db, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*roleRepository.GetUsersByRoleID").Int64("role_id", roleID).Msg("error selecting role users")
		return nil, err
	}

	return users, nil
}

func getRole(ctx context.Context, db *DB, query string, args ...any) (models.Role, error) {
	role, err := scanRole(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrRoleNotFound
	}
	if err != nil {
		return models.Role{}, db.classify(ErrScanningRow, err)
	}

	return role, nil
}

func insertRole(ctx context.Context, db *DB, q Querier, role models.Role) (models.Role, error) {
	query, args, err := buildInsertRoleQuery(db.builder, role)
	if err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = q.QueryRowContext(ctx, query, args...).Scan(&role.RoleID, &role.CreatedAt, &role.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Role{}, ErrNothingCreated
	}
	if err != nil {
		return models.Role{}, db.classify(ErrExecutingStatement, err)
	}

	return role, nil
}
