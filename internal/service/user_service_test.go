package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-hub/internal/domain"
)

func validInput(username string) UserInput {
	return UserInput{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
		Role:     domain.RoleUser,
	}
}

func TestRegisterForcesUserRole(t *testing.T) {
	f := newFixture(t)
	in := validInput("alice")
	in.Role = domain.RoleAdmin

	user, err := f.users.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.Empty(t, user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*UserInput)
	}{
		{"missing name", func(in *UserInput) { in.Name = " " }},
		{"missing username", func(in *UserInput) { in.Username = "" }},
		{"missing email", func(in *UserInput) { in.Email = "" }},
		{"bad email", func(in *UserInput) { in.Email = "not-an-email" }},
		{"missing password", func(in *UserInput) { in.Password = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput("bob")
			tt.mutate(&in)
			_, err := f.users.Register(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	in := validInput("bob")
	in.Role = "superuser"
	_, err := f.users.Create(ctx, in)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, validInput("alice"))
	require.NoError(t, err)

	sameUsername := validInput("alice")
	sameUsername.Email = "other@example.com"
	_, err = f.users.Register(ctx, sameUsername)
	assert.ErrorIs(t, err, ErrConflict)

	sameEmail := validInput("carol")
	sameEmail.Email = "alice@example.com"
	_, err = f.users.Register(ctx, sameEmail)
	assert.ErrorIs(t, err, ErrConflict)

	upperEmail := validInput("dave")
	upperEmail.Email = "Alice@Example.COM"
	_, err = f.users.Register(ctx, upperEmail)
	assert.ErrorIs(t, err, ErrConflict)

	for _, email := range []string{
		"Mallory <alice@example.com>",
		"<alice@example.com>",
		"alice@example.com (Alice)",
	} {
		named := validInput("mallory")
		named.Email = email
		_, err = f.users.Register(ctx, named)
		assert.ErrorIs(t, err, ErrInvalidInput, email)
	}

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterStoresNormalizedEmail(t *testing.T) {
	f := newFixture(t)
	in := validInput("alice")
	in.Email = "  Alice@Example.com "

	user, err := f.users.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.users.Register(ctx, validInput("alice"))
	require.NoError(t, err)

	user, err := f.users.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = f.users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Authenticate(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.users.Create(ctx, validInput("alice"))
	require.NoError(t, err)

	in := validInput("alice")
	in.Name = "Alice Admin"
	in.Role = domain.RoleAdmin
	in.Password = ""
	updated, err := f.users.Update(ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Alice Admin", updated.Name)
	assert.Equal(t, domain.RoleAdmin, updated.Role)

	// the old password still works when none is supplied
	_, err = f.users.Authenticate(ctx, "alice", "secret")
	require.NoError(t, err)

	in.Password = "changed"
	_, err = f.users.Update(ctx, created.ID, in)
	require.NoError(t, err)
	_, err = f.users.Authenticate(ctx, "alice", "changed")
	require.NoError(t, err)

	_, err = f.users.Update(ctx, 999, in)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.users.Delete(ctx, 999), ErrNotFound)

	users, err := f.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
}
