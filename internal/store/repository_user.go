package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"

	"github.com/pagesmith/pagesmith/internal/logger"
	"github.com/pagesmith/pagesmith/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup and session token bookkeeping
// against the "users" table.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new user record and returns the fully populated
// [models.User] with the server-assigned ID.
//
// Unlike page/module/category creation, user creation is strict:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.PasswordHash)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameTaken
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.AuthToken); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameTaken
		}
		log.Err(err).Str("func", "*userRepository.Create").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// GetByUsername retrieves a user record by its unique username.
// Returns [ErrNotFound] when no such user exists.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByUsername, username)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.AuthToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetByUsername").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// GetByID retrieves a user record by primary key.
// Returns [ErrNotFound] when no such user exists.
func (r *userRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByID, id)
	if err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.AuthToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNotFound
		}
		log.Err(err).Str("func", "*userRepository.GetByID").Msg("error scanning user row")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

// Update overwrites username and password hash of a user row and reports
// the number of affected rows. The session token is left untouched;
// callers that rotate it use UpdateToken.
func (r *userRepository) Update(ctx context.Context, id int64, user models.User) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(id, user)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error building update query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error updating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return 0, ErrUsernameTaken
		default:
			return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return result.RowsAffected()
}

// UpdateToken stores the given session token (or nil to log the user
// out) against the user identified by username. All authenticated
// requests compare their bearer token verbatim against this value.
func (r *userRepository) UpdateToken(ctx context.Context, username string, token *string) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserToken, token, username)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateToken").Msg("error updating user token")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}

// Delete removes a user by id and reports the number of affected rows.
func (r *userRepository) Delete(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, id)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Delete").Msg("error deleting user")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return result.RowsAffected()
}
