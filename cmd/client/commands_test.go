package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-user-roles/internal/adapter"
	"github.com/MKhiriev/go-user-roles/models"
)

// fakeDirectory implements only the calls exercised below; any other call
// panics on the nil embedded interface.
type fakeDirectory struct {
	adapter.DirectoryAdapter

	createdUser models.User
	updatedUser models.User
	createdRole models.Role
	assigned    [2]int64
	deletedRole int64
}

func (f *fakeDirectory) Version(context.Context) (string, error) { return "1.0.0", nil }

func (f *fakeDirectory) ListUsers(context.Context) ([]models.User, error) {
	return []models.User{{UserID: 1, Username: "admin"}}, nil
}

func (f *fakeDirectory) FindUsersByUsername(_ context.Context, username string) ([]models.User, error) {
	return []models.User{{UserID: 2, Username: username}}, nil
}

func (f *fakeDirectory) GetUser(_ context.Context, userID int64) (models.User, error) {
	return models.User{}, errors.New("not found")
}

func (f *fakeDirectory) CreateUser(_ context.Context, user models.User) (models.User, error) {
	f.createdUser = user
	user.UserID = 9
	return user, nil
}

func (f *fakeDirectory) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	f.updatedUser = user
	return user, nil
}

func (f *fakeDirectory) AssignRole(_ context.Context, userID, roleID int64) error {
	f.assigned = [2]int64{userID, roleID}
	return nil
}

func (f *fakeDirectory) CreateRole(_ context.Context, role models.Role) (models.Role, error) {
	f.createdRole = role
	return role, nil
}

func (f *fakeDirectory) DeleteRole(_ context.Context, roleID int64) error {
	f.deletedRole = roleID
	return nil
}

func newTestCLI() (*commandLine, *fakeDirectory, *bytes.Buffer) {
	dir := &fakeDirectory{}
	out := &bytes.Buffer{}
	return &commandLine{directory: dir, buildInfo: models.NewAppBuildInfo("0.1.0", "", ""), out: out}, dir, out
}

func TestCommandLine_Usage(t *testing.T) {
	cli, _, _ := newTestCLI()

	for _, args := range [][]string{
		nil,
		{"bogus"},
		{"users"},
		{"users", "get"},
		{"users", "get", "abc"},
		{"users", "assign", "1"},
		{"roles", "delete", "-4"},
	} {
		err := cli.run(context.Background(), args)
		assert.ErrorIs(t, err, errUsage, "args %v", args)
	}
}

func TestCommandLine_Version(t *testing.T) {
	cli, _, out := newTestCLI()

	require.NoError(t, cli.run(context.Background(), []string{"version"}))
	assert.Contains(t, out.String(), "Build version: 0.1.0")
	assert.Contains(t, out.String(), "Server version: 1.0.0")
}

func TestCommandLine_Users(t *testing.T) {
	ctx := context.Background()

	t.Run("list prints json", func(t *testing.T) {
		cli, _, out := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "list"}))
		assert.Contains(t, out.String(), `"username": "admin"`)
	})

	t.Run("list with username filter", func(t *testing.T) {
		cli, _, out := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "list", "-username", "manager"}))
		assert.Contains(t, out.String(), `"username": "manager"`)
	})

	t.Run("get propagates adapter error", func(t *testing.T) {
		cli, _, _ := newTestCLI()
		err := cli.run(ctx, []string{"users", "get", "5"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, errUsage)
	})

	t.Run("create without roles flag leaves role set nil", func(t *testing.T) {
		cli, dir, _ := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "create",
			"-username", "bob", "-email", "bob@example.com", "-password-hash", "h", "-first-name", "Bob"}))

		assert.Equal(t, "bob", dir.createdUser.Username)
		assert.True(t, dir.createdUser.Active)
		require.NotNil(t, dir.createdUser.FirstName)
		assert.Equal(t, "Bob", *dir.createdUser.FirstName)
		assert.Nil(t, dir.createdUser.LastName)
		assert.Nil(t, dir.createdUser.Roles)
	})

	t.Run("update with empty roles clears assignments", func(t *testing.T) {
		cli, dir, _ := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "update", "3",
			"-username", "bob", "-email", "b@example.com", "-password-hash", "h", "-inactive", "-roles", ""}))

		assert.Equal(t, int64(3), dir.updatedUser.UserID)
		assert.False(t, dir.updatedUser.Active)
		assert.NotNil(t, dir.updatedUser.Roles)
		assert.Empty(t, dir.updatedUser.Roles)
	})

	t.Run("update parses role list", func(t *testing.T) {
		cli, dir, _ := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "update", "3", "-roles", "1,,2"}))

		assert.Equal(t, []int64{1, 2}, dir.updatedUser.RoleIDs())
	})

	t.Run("assign", func(t *testing.T) {
		cli, dir, out := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"users", "assign", "2", "3"}))
		assert.Equal(t, [2]int64{2, 3}, dir.assigned)
		assert.Equal(t, "role assigned\n", out.String())
	})
}

func TestCommandLine_Roles(t *testing.T) {
	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		cli, dir, _ := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"roles", "create", "-name", "AUDITOR"}))
		assert.Equal(t, "AUDITOR", dir.createdRole.RoleName)
		assert.Nil(t, dir.createdRole.Description)
	})

	t.Run("delete", func(t *testing.T) {
		cli, dir, out := newTestCLI()
		require.NoError(t, cli.run(ctx, []string{"roles", "delete", "7"}))
		assert.Equal(t, int64(7), dir.deletedRole)
		assert.Equal(t, "role deleted\n", out.String())
	})
}
