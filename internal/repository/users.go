package repository

import (
	"context"

	"timeclock/internal/domain"
	"timeclock/internal/store"
)

// UserRepository holds the users collection.
type UserRepository struct {
	c *collection[domain.User]
}

// NewUserRepository creates a user repository over the given store.
func NewUserRepository(s store.Collection[domain.User]) *UserRepository {
	return &UserRepository{
		c: newCollection(s, "users", func(u domain.User) string { return u.ID }),
	}
}

// Load hydrates the repository from the durable store.
func (r *UserRepository) Load(ctx context.Context) error {
	return r.c.load(ctx)
}

// All returns a copy of every user in collection order.
func (r *UserRepository) All() []domain.User {
	return r.c.snapshot()
}

// Count returns the number of users.
func (r *UserRepository) Count() int {
	return r.c.count()
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(id string) (domain.User, bool) {
	return r.c.findByID(id)
}

// FindByPIN returns the user with the given PIN.
func (r *UserRepository) FindByPIN(pin string) (domain.User, bool) {
	return r.c.find(func(u domain.User) bool { return u.PIN == pin })
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(email string) (domain.User, bool) {
	return r.c.find(func(u domain.User) bool { return u.Email == email })
}

// CountByRole returns the number of users holding the given role.
func (r *UserRepository) CountByRole(role domain.Role) int {
	return len(r.c.filter(func(u domain.User) bool { return u.Role == role }))
}

// Insert adds a user and persists the collection.
func (r *UserRepository) Insert(ctx context.Context, user domain.User) error {
	return r.c.insert(ctx, user)
}

// Update replaces the stored user with the same id and persists the
// collection. It reports false when the user does not exist.
func (r *UserRepository) Update(ctx context.Context, user domain.User) (bool, error) {
	return r.c.update(ctx, user)
}

// Remove deletes the user with the given id and persists the collection.
// It reports false when the user does not exist.
func (r *UserRepository) Remove(ctx context.Context, id string) (bool, error) {
	return r.c.remove(ctx, id)
}

// ReplaceAll swaps in a whole new users collection and persists it.
func (r *UserRepository) ReplaceAll(ctx context.Context, users []domain.User) error {
	return r.c.replaceAll(ctx, users)
}
