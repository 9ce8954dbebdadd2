package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// UserService validates user records and applies them to a UserStore.
//
// The uniqueness scan and the following write are not atomic: two concurrent
// requests carrying the same email can both pass validation.
type UserService struct {
	store UserStore
	now   func() time.Time
	newID func() (uuid.UUID, error)
}

// Option configures a UserService
type Option func(*UserService)

// WithClock sets the clock used for the age check
func WithClock(now func() time.Time) Option {
	return func(service *UserService) {
		service.now = now
	}
}

// WithIDGenerator sets the generator used for new user ids
func WithIDGenerator(newID func() (uuid.UUID, error)) Option {
	return func(service *UserService) {
		service.newID = newID
	}
}

// NewUserService returns a user service backed by store
func NewUserService(store UserStore, opts ...Option) *UserService {
	service := &UserService{
		store: store,
		now:   time.Now,
		newID: uuid.NewV7,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CreateUser validates user and stores it under a fresh time-ordered id
func (service *UserService) CreateUser(ctx context.Context, user *User) (*User, error) {
	existing, err := service.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}

	normalized, err := ValidateNewUser(user, existing, service.now())
	if err != nil {
		return nil, err
	}

	id, err := service.newID()
	if err != nil {
		return nil, fmt.Errorf("cannot generate a new user ID: %w", err)
	}
	normalized.ID = id

	err = service.store.Add(ctx, id, normalized)
	if err != nil {
		return nil, fmt.Errorf("cannot save user to the store: %w", err)
	}

	log.Info().Str("id", id.String()).Msg("created user")
	return normalized, nil
}

// UpdateUser validates user and replaces the stored record with the same id
func (service *UserService) UpdateUser(ctx context.Context, user *User) (*User, error) {
	existing, err := service.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}

	normalized, err := ValidateUserUpdate(user, existing, service.now())
	if err != nil {
		return nil, err
	}

	_, err = service.store.Get(ctx, normalized.ID)
	if err != nil {
		return nil, err
	}

	err = service.store.Update(ctx, normalized.ID, normalized)
	if err != nil {
		return nil, fmt.Errorf("cannot update user in the store: %w", err)
	}

	log.Info().Str("id", normalized.ID.String()).Msg("updated user")
	return normalized, nil
}

// GetUser finds a user by id
func (service *UserService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	if id == uuid.Nil {
		return nil, requiredField(FieldID)
	}

	return service.store.Get(ctx, id)
}

// ListUsers returns all stored users
func (service *UserService) ListUsers(ctx context.Context) ([]*User, error) {
	return service.store.GetAll(ctx)
}

// DeleteUser removes a user by id. Unknown ids are not an error.
func (service *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return requiredField(FieldID)
	}

	err := service.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("cannot delete user from the store: %w", err)
	}

	log.Info().Str("id", id.String()).Msg("deleted user")
	return nil
}

// ParseUserID parses a user id from its string form
func ParseUserID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, requiredField(FieldID)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalidFormat(FieldID)
	}
	if id == uuid.Nil {
		return uuid.Nil, requiredField(FieldID)
	}

	return id, nil
}
