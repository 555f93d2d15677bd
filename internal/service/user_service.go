package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"article-hub/internal/domain"
	"article-hub/internal/repository"
)

// UserInput carries the writable fields of a user account.
type UserInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UserService describes user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, in UserInput) (*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int64, in UserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	users repository.UserRepository
	cost  int
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{
		users: users,
		cost:  bcrypt.DefaultCost,
	}
}

// Register creates a self-service account, which always gets the user role.
func (s *userService) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	in.Role = domain.RoleUser
	return s.Create(ctx, in)
}

func (s *userService) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	in = normalizeUserInput(in)
	if err := validateUserInput(in); err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, invalid("password is required")
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, invalid("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// Update overwrites the profile fields and role. The password is re-hashed
// only when a new one is supplied.
func (s *userService) Update(ctx context.Context, id int64, in UserInput) (*domain.User, error) {
	in = normalizeUserInput(in)
	if err := validateUserInput(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Username = in.Username
	user.Email = in.Email
	user.Role = in.Role
	if in.Password != "" {
		hash, err := s.hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}

func (s *userService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeUserInput(in UserInput) UserInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = domain.Role(strings.ToLower(strings.TrimSpace(string(in.Role))))
	return in
}

func validateUserInput(in UserInput) error {
	switch {
	case in.Name == "":
		return invalid("name is required")
	case in.Username == "":
		return invalid("username is required")
	case in.Email == "":
		return invalid("email is required")
	case !in.Role.Valid():
		return invalid(fmt.Sprintf("role must be %q or %q", domain.RoleAdmin, domain.RoleUser))
	}
	// bare mailbox only, no display name
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Name != "" || addr.Address != in.Email {
		return invalid("email is invalid")
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	return &clean
}
