package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/MKhiriev/go-user-roles/internal/adapter"
	"github.com/MKhiriev/go-user-roles/models"
)

const usage = `usage: client <command> [args]

  version
  users list [-username NAME]
  users get ID
  users create -username U -email E -password-hash H [-first-name F] [-last-name L] [-inactive] [-roles 1,2]
  users update ID [same flags as create]
  users delete ID
  users assignments ID
  users assign USER_ID ROLE_ID
  users unassign USER_ID ROLE_ID
  roles list [-name NAME]
  roles get ID
  roles create -name N [-description D]
  roles update ID -name N [-description D]
  roles delete ID
  roles users ID`

var errUsage = errors.New("usage")

type commandLine struct {
	directory adapter.DirectoryAdapter
	buildInfo models.AppBuildInfo
	out       io.Writer
}

func (c *commandLine) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "version":
		serverVersion, err := c.directory.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s\nServer version: %s\n", c.buildInfo, serverVersion)
		return nil
	case "users":
		return c.users(ctx, args[1:])
	case "roles":
		return c.roles(ctx, args[1:])
	default:
		return errUsage
	}
}

func (c *commandLine) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		fs := flag.NewFlagSet("users list", flag.ContinueOnError)
		username := fs.String("username", "", "exact username to look up")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		if *username != "" {
			return c.print(c.directory.FindUsersByUsername(ctx, *username))
		}
		return c.print(c.directory.ListUsers(ctx))

	case "get":
		userID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.GetUser(ctx, userID))

	case "create":
		user, err := parseUser(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.CreateUser(ctx, user))

	case "update":
		if len(rest) == 0 {
			return errUsage
		}
		userID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		user, err := parseUser(rest[1:])
		if err != nil {
			return err
		}
		user.UserID = userID
		return c.print(c.directory.UpdateUser(ctx, user))

	case "delete":
		userID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.done(c.directory.DeleteUser(ctx, userID), "user deleted")

	case "assignments":
		userID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.ListUserAssignments(ctx, userID))

	case "assign", "unassign":
		if len(rest) != 2 {
			return errUsage
		}
		userID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		roleID, err := parseID(rest[1])
		if err != nil {
			return err
		}
		if cmd == "assign" {
			return c.done(c.directory.AssignRole(ctx, userID, roleID), "role assigned")
		}
		return c.done(c.directory.UnassignRole(ctx, userID, roleID), "role unassigned")

	default:
		return errUsage
	}
}

func (c *commandLine) roles(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		fs := flag.NewFlagSet("roles list", flag.ContinueOnError)
		name := fs.String("name", "", "exact role name to look up")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		if *name != "" {
			return c.print(c.directory.FindRolesByName(ctx, *name))
		}
		return c.print(c.directory.ListRoles(ctx))

	case "get":
		roleID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.GetRole(ctx, roleID))

	case "create":
		role, err := parseRole(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.CreateRole(ctx, role))

	case "update":
		if len(rest) == 0 {
			return errUsage
		}
		roleID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		role, err := parseRole(rest[1:])
		if err != nil {
			return err
		}
		role.RoleID = roleID
		return c.print(c.directory.UpdateRole(ctx, role))

	case "delete":
		roleID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.done(c.directory.DeleteRole(ctx, roleID), "role deleted")

	case "users":
		roleID, err := oneID(rest)
		if err != nil {
			return err
		}
		return c.print(c.directory.ListRoleUsers(ctx, roleID))

	default:
		return errUsage
	}
}

func (c *commandLine) print(v any, err error) error {
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *commandLine) done(err error, msg string) error {
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.out, msg)
	return err
}

func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	return parseID(args[0])
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: invalid id %q", errUsage, raw)
	}
	return id, nil
}

func parseUser(args []string) (models.User, error) {
	fs := flag.NewFlagSet("user", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	username := fs.String("username", "", "login name")
	email := fs.String("email", "", "contact address")
	passwordHash := fs.String("password-hash", "", "stored password hash")
	firstName := fs.String("first-name", "", "optional first name")
	lastName := fs.String("last-name", "", "optional last name")
	inactive := fs.Bool("inactive", false, "create the account disabled")
	roles := fs.String("roles", "", "comma-separated role ids; empty string clears roles on update")

	if err := fs.Parse(args); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	user := models.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: *passwordHash,
		Active:       !*inactive,
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "first-name":
			user.FirstName = firstName
		case "last-name":
			user.LastName = lastName
		}
	})

	roleSet, visited, err := parseRoleSet(fs, *roles)
	if err != nil {
		return models.User{}, err
	}
	if visited {
		user.Roles = roleSet
	}

	return user, nil
}

// parseRoleSet turns "-roles 1,2" into role references. visited is false when
// the flag was absent, so an update leaves assignments untouched.
func parseRoleSet(fs *flag.FlagSet, raw string) ([]models.Role, bool, error) {
	visited := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "roles" {
			visited = true
		}
	})
	if !visited {
		return nil, false, nil
	}

	roles := []models.Role{}
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i < len(raw) && raw[i] != ',' {
			continue
		}
		if part := raw[start:i]; part != "" {
			roleID, err := parseID(part)
			if err != nil {
				return nil, true, err
			}
			roles = append(roles, models.Role{RoleID: roleID})
		}
		start = i + 1
	}

	return roles, true, nil
}

func parseRole(args []string) (models.Role, error) {
	fs := flag.NewFlagSet("role", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	name := fs.String("name", "", "role name")
	description := fs.String("description", "", "optional description")

	if err := fs.Parse(args); err != nil {
		return models.Role{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	role := models.Role{RoleName: *name}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "description" {
			role.Description = description
		}
	})

	return role, nil
}
