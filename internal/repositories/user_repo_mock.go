package repositories

import (
	"fmt"
	"slices"
	"sync"

	"storefront/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[int]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[int]models.User),
	}
}

// GetAll returns all users ordered by ID.
func (r *MockUserRepository) GetAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	userList := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		userList = append(userList, u)
	}
	slices.SortFunc(userList, func(a, b models.User) int { return a.ID - b.ID })
	return userList, nil
}

// GetByID returns a user by ID.
func (r *MockUserRepository) GetByID(id int) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %d %w", id, ErrNotFound)
	}
	return &user, nil
}

// GetByEmail returns the user registered under email.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user with email %s %w", email, ErrNotFound)
}

// Create adds a new user, assigning the next free ID when none is set.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(user.Email, 0) {
		return fmt.Errorf("email %s already registered: %w", user.Email, ErrConflict)
	}
	if user.ID == 0 {
		for id := range r.users {
			user.ID = max(user.ID, id)
		}
		user.ID++
	}
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("user with ID %d already exists: %w", user.ID, ErrConflict)
	}
	r.users[user.ID] = *user
	return nil
}

// Update replaces an existing user record.
func (r *MockUserRepository) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user with ID %d %w", user.ID, ErrNotFound)
	}
	if r.emailTaken(user.Email, user.ID) {
		return fmt.Errorf("email %s already registered: %w", user.Email, ErrConflict)
	}
	r.users[user.ID] = *user
	return nil
}

// Delete removes a user by ID.
func (r *MockUserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user with ID %d %w", id, ErrNotFound)
	}
	delete(r.users, id)
	return nil
}

// emailTaken must be called with r.mu held.
func (r *MockUserRepository) emailTaken(email string, exceptID int) bool {
	for id, u := range r.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}
