package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tahmid/focusflow/internal/apperror"
	"github.com/tahmid/focusflow/internal/auth"
	"github.com/tahmid/focusflow/internal/model"
	"github.com/tahmid/focusflow/internal/repository"
)

// UserService handles registration, login and account management.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	tokens    *auth.TokenService
	logger    *slog.Logger
}

func NewUserService(users repository.UserRepository, passwords *auth.PasswordService, tokens *auth.TokenService, logger *slog.Logger) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		logger:    logger,
	}
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// TokenResponse is what a successful login returns.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new active account. Email and username must be
// unique; the pre-checks give friendly errors, the database UNIQUE
// constraints catch the race.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	if err := validateEmail(in.Email); err != nil {
		return nil, err
	}
	if err := validateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, apperror.Conflict("email", "email already registered")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByUsername(ctx, in.Username); err == nil {
		return nil, apperror.Conflict("username", "username already taken")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:          in.Email,
		Username:       in.Username,
		FullName:       in.FullName,
		HashedPassword: hash,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies the credentials and issues an access token.
//
// Every failure mode — unknown email, wrong password, deactivated
// account — returns the same Unauthorized error, so the response does
// not reveal which accounts exist.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	const failed = "incorrect email or password"

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(failed)
		}
		return nil, err
	}

	if err := s.passwords.Verify(user.HashedPassword, password); err != nil {
		return nil, apperror.Unauthorized(failed)
	}
	if !user.IsActive {
		return nil, apperror.Unauthorized(failed)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Get returns the caller's own account.
func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

// Update applies a partial update to the caller's own account. A new
// email or username must not collide with another account; a new
// password is re-hashed.
func (s *UserService) Update(ctx context.Context, userID string, patch model.UserPatch) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil && *patch.Email != user.Email {
		if err := validateEmail(*patch.Email); err != nil {
			return nil, err
		}
		if other, err := s.users.GetByEmail(ctx, *patch.Email); err == nil && other.ID != userID {
			return nil, apperror.Conflict("email", "email already registered")
		} else if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.Username != nil && *patch.Username != user.Username {
		if err := validateUsername(*patch.Username); err != nil {
			return nil, err
		}
		if other, err := s.users.GetByUsername(ctx, *patch.Username); err == nil && other.ID != userID {
			return nil, apperror.Conflict("username", "username already taken")
		} else if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		user.Username = *patch.Username
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Password != nil {
		if err := validatePassword(*patch.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(*patch.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the caller's account and, via the cascade rules,
// everything it owned.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func validateEmail(email string) error {
	// Deliberately loose: one @ with something on both sides and a dot
	// in the domain. Real validation is the confirmation email's job.
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return apperror.ValidationFailed("email", "invalid email address")
	}
	return nil
}

func validateUsername(username string) error {
	if len(username) < 3 {
		return apperror.ValidationFailed("username", "username must be at least 3 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return apperror.ValidationFailed("password", "password must be at least 8 characters")
	}
	// bcrypt silently ignores everything past 72 bytes, so refuse
	// instead of hashing a truncated secret.
	if len(password) > 72 {
		return apperror.ValidationFailed("password", "password must be 72 bytes or fewer")
	}
	return nil
}
