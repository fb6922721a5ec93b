package store

import (
	"context"
	"sync"
	"time"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"github.com/avelasq/accountgate/models"
)

// memoryUserRepository is the in-memory implementation of [UserRepository].
// It backs the mock-session engine: a small seeded record set queried by
// linear scan, mirroring the reference directory the account flows were
// specified against.
//
// All mutating operations take the write lock so that the
// uniqueness-check-then-insert sequence in CreateUser is serialized; two
// concurrent registrations with the same normalized username cannot both
// succeed.
type memoryUserRepository struct {
	logger *logger.Logger
	uuid   *utils.UUIDGenerator

	mu      sync.RWMutex
	records map[string]models.User
}

// NewMemoryUserRepository constructs an in-memory [UserRepository] seeded
// with the given records. Seed records missing an ID get one assigned.
func NewMemoryUserRepository(seed []models.User, logger *logger.Logger) UserRepository {
	logger.Debug().Int("seed", len(seed)).Msg("creating in-memory user repository")

	repo := &memoryUserRepository{
		logger:  logger,
		uuid:    utils.NewUUIDGenerator(),
		records: make(map[string]models.User, len(seed)),
	}

	for _, user := range seed {
		if user.ID == "" {
			user.ID = repo.uuid.Generate()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now()
		}
		repo.records[user.ID] = user
	}

	return repo
}

// DemoSeed returns the reference account the mock directory ships with.
func DemoSeed() []models.User {
	return []models.User{
		{
			Email:    "exists@gmail.com",
			Username: "exists",
			Password: "H3Ll0$aM",
		},
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	normalized := user.NormalizedUsername()
	for _, existing := range r.records {
		if existing.Email == user.Email {
			log.Error().Str("email", user.Email).Msg("email collision on create")
			return models.User{}, ErrEmailAlreadyExists
		}
		if existing.NormalizedUsername() == normalized {
			log.Error().Str("username", user.Username).Msg("username collision on create")
			return models.User{}, ErrUsernameAlreadyExists
		}
	}

	user.ID = r.uuid.Generate()
	user.CreatedAt = time.Now()
	r.records[user.ID] = user

	return user, nil
}

func (r *memoryUserRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.records[userID]
	if !ok {
		return models.User{}, ErrNoUserWasFound
	}

	return user, nil
}

func (r *memoryUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// linear scan; duplicates cannot exist per the uniqueness invariant
	for _, user := range r.records {
		if user.Email == email {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *memoryUserRepository) FindUserByUsername(ctx context.Context, normalizedUsername string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.records {
		if user.NormalizedUsername() == normalizedUsername {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *memoryUserRepository) FindUserByPassword(ctx context.Context, password string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.records {
		if user.Password == password {
			return user, nil
		}
	}

	return models.User{}, ErrNoUserWasFound
}

func (r *memoryUserRepository) UpdatePassword(ctx context.Context, userID string, newPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.records[userID]
	if !ok {
		return ErrNoUserWasFound
	}

	user.Password = newPassword
	r.records[userID] = user

	return nil
}

func (r *memoryUserRepository) UpdateUsername(ctx context.Context, userID string, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.records[userID]
	if !ok {
		return ErrNoUserWasFound
	}

	normalized := models.NormalizeUsername(username)
	for id, existing := range r.records {
		if id != userID && existing.NormalizedUsername() == normalized {
			return ErrUsernameAlreadyExists
		}
	}

	user.Username = username
	r.records[userID] = user

	return nil
}

func (r *memoryUserRepository) DeleteUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[userID]; !ok {
		return ErrNoUserWasFound
	}
	delete(r.records, userID)

	return nil
}
