package user

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
	ErrRateLimited        = errors.New("too many login attempts")
	ErrDuplicateUser      = errors.New("user already exists")
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleOperator Role = "operator"
)

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	PasswordHash []byte
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser is a User without its password hash.
type SafeUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u User) Sanitize() SafeUser {
	return SafeUser{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Directory holds the known users. Email lookups ignore case.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]*User
	cost    int
}

func NewDirectory(bcryptCost int) *Directory {
	return &Directory{
		byID:    make(map[string]*User),
		byEmail: make(map[string]*User),
		cost:    bcryptCost,
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Add hashes password and stores the user.
func (d *Directory) Add(u User, password string) (SafeUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return SafeUser{}, fmt.Errorf("hash password for %s: %w", u.Email, err)
	}
	u.PasswordHash = hash

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byID[u.ID]; ok {
		return SafeUser{}, fmt.Errorf("user %s: %w", u.ID, ErrDuplicateUser)
	}
	if _, ok := d.byEmail[emailKey(u.Email)]; ok {
		return SafeUser{}, fmt.Errorf("user %s: %w", u.Email, ErrDuplicateUser)
	}

	stored := u
	d.byID[stored.ID] = &stored
	d.byEmail[emailKey(stored.Email)] = &stored
	return stored.Sanitize(), nil
}

func (d *Directory) FindByID(id string) (SafeUser, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	u, ok := d.byID[id]
	if !ok {
		return SafeUser{}, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	return u.Sanitize(), nil
}

// VerifyPassword returns the user when email and password match. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (d *Directory) VerifyPassword(email, password string) (SafeUser, error) {
	d.mu.RLock()
	u, ok := d.byEmail[emailKey(email)]
	var hash []byte
	var safe SafeUser
	if ok {
		hash = u.PasswordHash
		safe = u.Sanitize()
	}
	d.mu.RUnlock()

	if !ok {
		return SafeUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return SafeUser{}, ErrInvalidCredentials
	}
	return safe, nil
}

func (d *Directory) RecordLogin(id string, at time.Time) (SafeUser, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	u, ok := d.byID[id]
	if !ok {
		return SafeUser{}, fmt.Errorf("user %s: %w", id, ErrUserNotFound)
	}
	u.LastLogin = &at
	return u.Sanitize(), nil
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byID)
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// SeedDemoUsers registers the demo accounts of the warehouse.
func SeedDemoUsers(d *Directory) error {
	demo := []struct {
		user     User
		password string
	}{
		{User{ID: "1", Email: "admin@warehouse.com", Name: "System Administrator", Role: RoleAdmin, CreatedAt: date("2024-01-01"), UpdatedAt: date("2024-01-01")}, "admin123"},
		{User{ID: "2", Email: "manager@warehouse.com", Name: "Warehouse Manager", Role: RoleManager, CreatedAt: date("2024-01-15"), UpdatedAt: date("2024-01-15")}, "manager123"},
		{User{ID: "3", Email: "operator@warehouse.com", Name: "Warehouse Operator", Role: RoleOperator, CreatedAt: date("2024-02-01"), UpdatedAt: date("2024-02-01")}, "operator123"},
		{User{ID: "4", Email: "demo@warehouse.com", Name: "Demo User", Role: RoleManager, CreatedAt: date("2024-03-01"), UpdatedAt: date("2024-03-01")}, "demo"},
	}
	for _, entry := range demo {
		if _, err := d.Add(entry.user, entry.password); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	return nil
}
