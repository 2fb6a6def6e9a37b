package service

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/issue-tracker/internal/auth"
	"github.com/spec-kit/issue-tracker/internal/config"
	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/repository"
	"github.com/spec-kit/issue-tracker/internal/storage"
	apperrors "github.com/spec-kit/issue-tracker/pkg/util"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

const (
	msgInvalidCredentials = "Invalid username or password"
	msgAccountInactive    = "Your account is inactive. Please contact an administrator for assistance."
	msgPasswordWeak       = "Password must be at least 8 characters and include uppercase, lowercase, and numbers"
)

// AccountService coordinates signup, login, profile and password flows.
type AccountService struct {
	users      repository.UserRepository
	images     *storage.ProfileImageStore
	bcryptCost int
}

// AccountDependencies bundles requirements for the account service.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	ImageStore *storage.ProfileImageStore
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		images:     deps.ImageStore,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// SignupInput carries the registration form fields.
type SignupInput struct {
	Username        string
	Password        string
	ConfirmPassword string
	Email           string
	FirstName       string
	LastName        string
	Location        string
}

// Signup validates the registration form and creates a visitor account.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*domain.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Location = strings.TrimSpace(input.Location)

	fieldErrors := map[string]any{}
	if !usernamePattern.MatchString(input.Username) {
		fieldErrors["username"] = "Username must be 3-20 characters and contain only letters, numbers, underscores, and hyphens"
	}
	if !emailPattern.MatchString(input.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}
	if !auth.StrongPassword(input.Password) {
		fieldErrors["password"] = msgPasswordWeak
	}
	if input.FirstName == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if input.LastName == "" {
		fieldErrors["last_name"] = "Last name is required"
	}
	if input.Location == "" {
		fieldErrors["location"] = "Location is required"
	}
	if input.Password != input.ConfirmPassword {
		fieldErrors["confirm_password"] = "Passwords do not match"
	}
	if len(fieldErrors) > 0 {
		return nil, apperrors.NewValidationError("signup validation failed", fieldErrors)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewValidationError("signup validation failed",
			map[string]any{"username": "Username already exists"})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewValidationError("signup validation failed",
			map[string]any{"email": "Email already registered"})
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Location:     input.Location,
		Role:         domain.RoleVisitor,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.NewDomainError("ACCOUNT_CREATE_FAILED", "Failed to create account",
			http.StatusInternalServerError, nil)
	}
	return user, nil
}

// Login authenticates by username. Inactive accounts are rejected with a
// message distinct from bad credentials, even when the password matches.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewDomainError("ACCOUNT_INACTIVE", msgAccountInactive,
			http.StatusForbidden, nil)
	}
	return user, nil
}

// ProfileUpdateInput carries the profile form fields. Password fields are
// optional; a non-empty NewPassword requests an inline password change.
type ProfileUpdateInput struct {
	FirstName       string
	LastName        string
	Email           string
	Location        string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdateProfile validates and applies profile field changes for the user.
func (s *AccountService) UpdateProfile(ctx context.Context, user *domain.User, input ProfileUpdateInput) error {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.TrimSpace(input.Email)
	input.Location = strings.TrimSpace(input.Location)

	fieldErrors := map[string]any{}
	if input.FirstName == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if input.LastName == "" {
		fieldErrors["last_name"] = "Last name is required"
	}
	if input.Location == "" {
		fieldErrors["location"] = "Location is required"
	}
	if input.Email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !emailPattern.MatchString(input.Email) {
		fieldErrors["email"] = "Invalid email format"
	}

	if input.Email != user.Email && fieldErrors["email"] == nil {
		if other, err := s.users.GetByEmail(ctx, input.Email); err == nil && other.ID != user.ID {
			fieldErrors["email"] = "Email is already in use"
		} else if err != nil && err != pgx.ErrNoRows {
			return apperrors.MapError(err)
		}
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			fieldErrors["current_password"] = "Current password is required to set a new password"
		} else if err := auth.ComparePassword(user.PasswordHash, input.CurrentPassword); err != nil {
			fieldErrors["current_password"] = "Current password is incorrect"
		}
		if !auth.StrongPassword(input.NewPassword) {
			fieldErrors["new_password"] = msgPasswordWeak
		}
		if input.NewPassword != input.ConfirmPassword {
			fieldErrors["confirm_password"] = "Passwords do not match"
		}
	}

	if len(fieldErrors) > 0 {
		return apperrors.NewValidationError("profile validation failed", fieldErrors)
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Location = input.Location
	if err := s.users.UpdateProfile(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	if input.NewPassword != "" {
		hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
		if err != nil {
			return apperrors.MapError(err)
		}
		if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
			return apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}
	return nil
}

// ChangePassword verifies the current password, forbids reusing it, and
// re-validates strength before updating.
func (s *AccountService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewValidationError("Current password is incorrect", nil)
	}
	if auth.ComparePassword(user.PasswordHash, newPassword) == nil {
		return apperrors.NewValidationError("New password cannot be the same as current password", nil)
	}
	if !auth.StrongPassword(newPassword) {
		return apperrors.NewValidationError(msgPasswordWeak, nil)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// SetProfileImage replaces the user's profile image: the previous file is
// deleted first, the new one stored under a username-derived name, and
// the reference persisted.
func (s *AccountService) SetProfileImage(ctx context.Context, user *domain.User, originalFilename string, r io.Reader) (string, error) {
	if !storage.AllowedFile(originalFilename) {
		return "", apperrors.NewValidationError("invalid file format",
			map[string]any{"profile_image": "Invalid file format"})
	}
	if user.ProfileImage != nil {
		if err := s.images.Delete(*user.ProfileImage); err != nil {
			return "", apperrors.MapError(err)
		}
	}
	filename, err := s.images.Save(user.Username, originalFilename, r)
	if err != nil {
		return "", apperrors.MapError(err)
	}
	if err := s.users.UpdateProfileImage(ctx, user.ID, &filename); err != nil {
		return "", apperrors.MapError(err)
	}
	user.ProfileImage = &filename
	return filename, nil
}

// RemoveProfileImage deletes the stored file and clears the reference.
// A missing file on disk is not an error.
func (s *AccountService) RemoveProfileImage(ctx context.Context, user *domain.User) error {
	if user.ProfileImage == nil {
		return nil
	}
	if err := s.images.Delete(*user.ProfileImage); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.UpdateProfileImage(ctx, user.ID, nil); err != nil {
		return apperrors.MapError(err)
	}
	user.ProfileImage = nil
	return nil
}

// GetUser loads an account by ID.
func (s *AccountService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
