// Package registry holds the users known to the running process.
package registry

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"ml_billing/internal/domain"

	"github.com/shopspring/decimal"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Registry is an in-memory user store keyed by id and by lower-cased email
type Registry struct {
	mu                sync.RWMutex
	nextID            uint
	byID              map[uint]*domain.User
	byEmail           map[string]*domain.User
	minPasswordLength int
}

// New returns an empty registry enforcing minPasswordLength on new users
func New(minPasswordLength int) *Registry {
	return &Registry{
		nextID:            1,
		byID:              make(map[uint]*domain.User),
		byEmail:           make(map[string]*domain.User),
		minPasswordLength: minPasswordLength,
	}
}

// Create validates and stores a new user with an empty wallet
func (r *Registry) Create(email, password string) (*domain.User, error) {
	return r.CreateWithBalance(email, password, decimal.Zero)
}

// CreateWithBalance stores a new user whose wallet opens with balance. The password is
// hashed before the registry lock is taken, so lookups are not held up by bcrypt.
func (r *Registry) CreateWithBalance(email, password string, balance decimal.Decimal) (*domain.User, error) {
	key := strings.ToLower(email)

	r.mu.RLock()
	_, taken := r.byEmail[key]
	r.mu.RUnlock()
	if taken {
		return nil, ErrUserExists
	}

	u, err := domain.NewUser(0, email, password, r.minPasswordLength, balance)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Another registration may have won the race while we were hashing
	if _, ok := r.byEmail[key]; ok {
		return nil, ErrUserExists
	}
	u.ID = r.nextID
	r.nextID++
	r.byID[u.ID] = u
	r.byEmail[key] = u
	return u, nil
}

// Get returns the user with id
func (r *Registry) Get(id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// GetByEmail looks a user up case-insensitively
func (r *Registry) GetByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Authenticate returns the user when email and password match
func (r *Registry) Authenticate(email, password string) (*domain.User, error) {
	u, err := r.GetByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Promote grants the admin role
func (r *Registry) Promote(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Role = domain.RoleAdmin
	return nil
}

// Role returns the current role of the user with id
func (r *Registry) Role(id uint) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return "", ErrUserNotFound
	}
	return u.Role, nil
}

// IsAdmin reports whether the user with id currently holds the admin role
func (r *Registry) IsAdmin(id uint) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return false, ErrUserNotFound
	}
	return u.IsAdmin(), nil
}

// List returns every user ordered by id
func (r *Registry) List() []*domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
