package notes

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/iudanet/quicknotes/internal/models"
	"github.com/iudanet/quicknotes/internal/validation"
)

// ProfileUpdate describes a partial profile change. nil fields are kept.
type ProfileUpdate struct {
	Name   *string
	Avatar *string
	Email  *string
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// Register creates a new account and opens a session for it.
func (s *Store) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, invalid(err)
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	if findCredential(creds, email) >= 0 {
		return nil, ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cred := &models.Credential{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		CreatedAt:    s.clock.Now(),
	}

	users, err := credentialsRecord(append(creds, cred))
	if err != nil {
		return nil, err
	}

	user := cred.User()
	err = s.mutate(ctx, func(st *models.AppState) error {
		st.User = user
		st.Notes = []*models.Note{}
		return nil
	}, users)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return user.Clone(), nil
}

// Login opens a session for the account matching email and password and
// loads its notes.
func (s *Store) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	idx := findCredential(creds, email)
	if idx < 0 {
		s.hasher.Burn(password)
		return nil, ErrInvalidCredentials
	}

	cred := creds[idx]
	if err := s.hasher.Verify(password, cred.PasswordHash); err != nil {
		s.logger.Debug("password verification failed", "user_id", cred.ID, "error", err)
		return nil, ErrInvalidCredentials
	}

	notes, err := s.loadUserNotes(ctx, cred.ID)
	if err != nil {
		return nil, err
	}

	user := cred.User()
	err = s.mutate(ctx, func(st *models.AppState) error {
		st.User = user
		st.Notes = notes
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return user.Clone(), nil
}

// Logout closes the session. The notes stay in storage under the user's key.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mutate(ctx, func(st *models.AppState) error {
		st.User = nil
		st.Notes = []*models.Note{}
		return nil
	})
}

// UpdateProfile merges u into the session user and its credential record.
func (s *Store) UpdateProfile(ctx context.Context, u ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return nil, ErrNotAuthenticated
	}

	var name, email string
	if u.Name != nil {
		name = strings.TrimSpace(*u.Name)
		if err := validation.ValidateName(name); err != nil {
			return nil, invalid(err)
		}
	}
	if u.Email != nil {
		email = strings.TrimSpace(*u.Email)
		if err := validation.ValidateEmail(email); err != nil {
			return nil, invalid(err)
		}
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return nil, err
	}

	userID := s.state.User.ID
	idx := slices.IndexFunc(creds, func(c *models.Credential) bool { return c.ID == userID })
	if idx < 0 {
		// Сессия ссылается на удаленную запись - считаем, что входа нет
		return nil, ErrNotAuthenticated
	}

	if u.Email != nil && email != creds[idx].Email {
		if findCredential(creds, email) >= 0 {
			return nil, ErrUserAlreadyExists
		}
	}

	cred := *creds[idx]
	if u.Name != nil {
		cred.Name = name
	}
	if u.Avatar != nil {
		cred.Avatar = strings.TrimSpace(*u.Avatar)
	}
	if u.Email != nil {
		cred.Email = email
	}

	updated := slices.Clone(creds)
	updated[idx] = &cred
	users, err := credentialsRecord(updated)
	if err != nil {
		return nil, err
	}

	user := cred.User()
	err = s.mutate(ctx, func(st *models.AppState) error {
		st.User = user
		return nil
	}, users)
	if err != nil {
		return nil, err
	}

	return user.Clone(), nil
}

// ChangePassword re-hashes the session user's password with a fresh salt
// after checking the old one.
func (s *Store) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return invalid(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.User == nil {
		return ErrNotAuthenticated
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return err
	}

	userID := s.state.User.ID
	idx := slices.IndexFunc(creds, func(c *models.Credential) bool { return c.ID == userID })
	if idx < 0 {
		return ErrNotAuthenticated
	}

	cred := *creds[idx]
	if err := s.hasher.Verify(oldPassword, cred.PasswordHash); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	cred.PasswordHash = hash

	updated := slices.Clone(creds)
	updated[idx] = &cred
	users, err := credentialsRecord(updated)
	if err != nil {
		return err
	}

	return s.writeRecords(ctx, []record{users})
}

// findCredential returns the index of the credential with exactly this email, or -1.
func findCredential(creds []*models.Credential, email string) int {
	return slices.IndexFunc(creds, func(c *models.Credential) bool { return c.Email == email })
}
