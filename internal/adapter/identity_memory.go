package adapter

import (
	"context"
	"errors"
	"sync"

	"github.com/avelasq/accountgate/internal/logger"
	"github.com/avelasq/accountgate/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type identityAccount struct {
	id           string
	email        string
	passwordHash []byte
	displayName  string
}

// memoryIdentityProvider is an in-memory [IdentityProvider]. Passwords are
// stored as bcrypt hashes, matching what a hosted provider would do, so the
// rest of the code never sees plaintext after account creation.
type memoryIdentityProvider struct {
	logger *logger.Logger
	uuid   *utils.UUIDGenerator

	mu       sync.RWMutex
	byEmail  map[string]*identityAccount
	accounts map[string]*identityAccount
}

// NewMemoryIdentityProvider constructs an empty in-memory identity backend.
func NewMemoryIdentityProvider(logger *logger.Logger) IdentityProvider {
	return &memoryIdentityProvider{
		logger:   logger,
		uuid:     utils.NewUUIDGenerator(),
		byEmail:  make(map[string]*identityAccount),
		accounts: make(map[string]*identityAccount),
	}
}

func (p *memoryIdentityProvider) CreateAccount(ctx context.Context, email string, password string) (string, error) {
	log := logger.FromContext(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		log.Error().Str("email", email).Msg("account already registered")
		return "", ErrAccountExists
	}

	account := &identityAccount{
		id:           p.uuid.Generate(),
		email:        email,
		passwordHash: hash,
	}
	p.byEmail[email] = account
	p.accounts[account.id] = account

	return account.id, nil
}

func (p *memoryIdentityProvider) Authenticate(ctx context.Context, email string, password string) (string, error) {
	p.mu.RLock()
	account, ok := p.byEmail[email]
	p.mu.RUnlock()

	if !ok {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(account.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	return account.id, nil
}

func (p *memoryIdentityProvider) UpdatePassword(ctx context.Context, accountID string, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	account, ok := p.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	account.passwordHash = hash

	return nil
}

func (p *memoryIdentityProvider) UpdateProfile(ctx context.Context, accountID string, displayName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	account, ok := p.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	account.displayName = displayName

	return nil
}

func (p *memoryIdentityProvider) DeleteAccount(ctx context.Context, accountID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	account, ok := p.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}

	delete(p.byEmail, account.email)
	delete(p.accounts, accountID)

	return nil
}
