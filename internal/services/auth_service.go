package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdatePasswordHash(userID uint, passwordHash string) error
}

type RegisterInput struct {
	Email         string
	Password      string
	PasswordAgain string
	Name          string
	Nickname      string
	About         string
}

type AuthService struct {
	users AuthUserRepository
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register validates the form, rejects duplicate emails and stores the user with a bcrypt hash.
func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(input.Email, input.Password)
	if err != nil {
		return models.User{}, err
	}
	if password != strings.TrimSpace(input.PasswordAgain) {
		return models.User{}, ErrPasswordMismatch
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrEmailExists
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowUTC()
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(input.Name),
		Nickname:     strings.TrimSpace(input.Nickname),
		About:        strings.TrimSpace(input.About),
		ModifiedDate: now,
		CreatedAt:    now,
	}
	if err := service.users.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailExists
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies the credentials. Imported legacy hashes are replaced with bcrypt on success.
func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	matched, needsRehash, err := VerifyPasswordHash(user.PasswordHash, password)
	if err != nil && !errors.Is(err, ErrUnsupportedPasswordHash) {
		return models.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !matched {
		return models.User{}, ErrInvalidCredentials
	}

	if needsRehash {
		if rehashed, err := HashPassword(password); err == nil {
			if err := service.users.UpdatePasswordHash(user.ID, rehashed); err != nil {
				return models.User{}, fmt.Errorf("upgrade password hash: %w", err)
			}
			user.PasswordHash = rehashed
		}
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ResetPassword stores a new bcrypt hash for the user with the given email.
func (service *AuthService) ResetPassword(emailRaw string, password string) (models.User, error) {
	email := NormalizeAuthEmail(emailRaw)
	if email == "" || strings.TrimSpace(password) == "" {
		return models.User{}, ErrAuthCredentialsInvalid
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePasswordHash(user.ID, passwordHash); err != nil {
		return models.User{}, fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = passwordHash
	return user, nil
}
