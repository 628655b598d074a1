package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/notes"
)

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	var email, name string
	if len(args) > 0 {
		email = args[0]
	}
	if len(args) > 1 {
		name = args[1]
	}

	email, err := c.promptIfEmpty(email, "Email: ")
	if err != nil {
		return err
	}
	name, err = c.promptIfEmpty(name, "Name: ")
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := c.store.Register(ctx, email, password, name)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	c.io.Println("✓ Registration successful!")
	c.io.Printf("User ID: %s\n", user.ID)
	c.io.Printf("Logged in as %s <%s>\n", user.Name, user.Email)

	return nil
}

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	var email string
	if len(args) > 0 {
		email = args[0]
	}

	email, err := c.promptIfEmpty(email, "Email: ")
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	user, err := c.store.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	c.io.Printf("✓ Logged in as %s <%s>\n", user.Name, user.Email)

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if c.store.Session() == nil {
		c.io.Println("Not logged in.")
		return nil
	}

	if err := c.store.Logout(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}

	c.io.Println("✓ Logged out")

	return nil
}

func (c *Cli) runStatus() error {
	c.io.Println("=== Status ===")
	c.io.Println()

	user := c.store.Session()
	if user == nil {
		c.io.Println("Status: Not authenticated")
		c.io.Println()
		c.io.Println("Run 'quicknotes login' to authenticate.")
	} else {
		c.io.Println("Status: Authenticated")
		c.io.Printf("User:   %s <%s>\n", user.Name, user.Email)
		c.io.Printf("Notes:  %d\n", len(c.store.FilteredNotes(models.ViewAll)))
	}

	c.printFilters()
	c.io.Printf("Theme:  %s\n", themeName(c.store.DarkMode()))

	return nil
}

func (c *Cli) runProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	name := fs.String("name", "", "display name")
	avatar := fs.String("avatar", "", "avatar URL")
	email := fs.String("email", "", "email")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}

	var update notes.ProfileUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = name
		case "avatar":
			update.Avatar = avatar
		case "email":
			update.Email = email
		}
	})

	user := c.store.Session()
	if user == nil {
		return notes.ErrNotAuthenticated
	}

	if update != (notes.ProfileUpdate{}) {
		var err error
		user, err = c.store.UpdateProfile(ctx, update)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		c.io.Println("✓ Profile updated")
		c.io.Println()
	}

	c.io.Println("=== Profile ===")
	c.io.Printf("ID:      %s\n", user.ID)
	c.io.Printf("Name:    %s\n", user.Name)
	c.io.Printf("Email:   %s\n", user.Email)
	if user.Avatar != "" {
		c.io.Printf("Avatar:  %s\n", user.Avatar)
	}
	c.io.Printf("Since:   %s\n", user.CreatedAt.In(c.loc).Format("2006-01-02"))

	return nil
}

func (c *Cli) runPasswd(ctx context.Context) error {
	if c.store.Session() == nil {
		return notes.ErrNotAuthenticated
	}

	oldPassword, err := c.getPassword("Current password: ")
	if err != nil {
		return err
	}

	newPassword, err := c.io.ReadPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm new password: ")
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.store.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	c.io.Println("✓ Password changed")

	return nil
}
