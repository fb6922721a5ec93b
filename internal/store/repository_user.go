package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
	"github.com/jackc/pgerrcode"
)

// psql builds all queries with PostgreSQL dollar placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation and lookup against the "users" table.
//
// Uniqueness of e-mail and normalized username is enforced by the database
// (unique index on email, unique expression index on lower(btrim(username))),
// which closes the check-then-insert race two concurrent registrations would
// otherwise hit.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	uuid   *utils.UUIDGenerator
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		uuid:   utils.NewUUIDGenerator(),
		logger: logger,
	}
}

// userColumns is the canonical column order scanned by all user queries.
var userColumns = []string{"id", "email", "username", "password", "created_at"}

// CreateUser persists a new account record and returns the fully populated
// [models.User] with the server-assigned CreatedAt.
//
// Error handling:
//   - unique_violation (23505) on the e-mail index → [ErrEmailAlreadyExists].
//   - unique_violation on the username index → [ErrUsernameAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	user.ID = r.uuid.Generate()

	query, args, err := psql.
		Insert(user.TableName()).
		Columns("id", "email", "username", "password").
		Values(user.ID, user.Email, user.Username, user.Password).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building insert query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	var created models.User
	if err := row.Scan(&created.ID, &created.Email, &created.Username, &created.Password, &created.CreatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error creating user")

		if postgresError(err) == pgerrcode.UniqueViolation {
			switch postgresConstraint(err) {
			case "users_email_key":
				return models.User{}, ErrEmailAlreadyExists
			default:
				return models.User{}, ErrUsernameAlreadyExists
			}
		}

		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByID retrieves the account with the given opaque identifier.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"id": userID})
}

// FindUserByEmail retrieves the account whose e-mail matches exactly
// (case-sensitive, as stored).
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

// FindUserByUsername retrieves the account whose normalized username
// matches the supplied (already normalized) value.
func (r *userRepository) FindUserByUsername(ctx context.Context, normalizedUsername string) (models.User, error) {
	return r.findOne(ctx, sq.Expr("lower(btrim(username)) = ?", normalizedUsername))
}

// FindUserByPassword retrieves an account whose stored password equals the
// supplied value exactly. Mock directory semantics for the reset flow.
func (r *userRepository) FindUserByPassword(ctx context.Context, password string) (models.User, error) {
	return r.findOne(ctx, sq.Eq{"password": password})
}

func (r *userRepository) findOne(ctx context.Context, where any) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.findOne").Msg("error building select query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&found.ID, &found.Email, &found.Username, &found.Password, &found.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.findOne").Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return found, nil
}

// UpdatePassword replaces the stored password of the account with the given ID.
func (r *userRepository) UpdatePassword(ctx context.Context, userID string, newPassword string) error {
	return r.updateColumn(ctx, userID, "password", newPassword)
}

// UpdateUsername replaces the stored username of the account with the given ID.
// A unique-violation on the username index is mapped to [ErrUsernameAlreadyExists].
func (r *userRepository) UpdateUsername(ctx context.Context, userID string, username string) error {
	err := r.updateColumn(ctx, userID, "username", username)
	if postgresError(err) == pgerrcode.UniqueViolation {
		return ErrUsernameAlreadyExists
	}

	return err
}

func (r *userRepository) updateColumn(ctx context.Context, userID, column, value string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Update(models.User{}.TableName()).
		Set(column, value).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.updateColumn").Msg("error building update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.updateColumn").Str("column", column).Msg("error executing update")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes the account record with the given ID.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := psql.
		Delete(models.User{}.TableName()).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
