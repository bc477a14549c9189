package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

const (
	MaxPhotoBytes         = 5 << 20
	maxProfileFieldLength = 128
)

var (
	ErrProfileInvalid = errors.New("profile invalid")
	ErrPhotoInvalid   = errors.New("photo invalid")
	ErrPhotoTooLarge  = errors.New("photo too large")
)

var allowedPhotoExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type ProfileUserRepository interface {
	FindByID(userID uint) (models.User, error)
	List() ([]models.User, error)
	EmailTakenByOther(email string, userID uint) (bool, error)
	UpdateByID(userID uint, updates map[string]any) error
	HabitIDs(userID uint) ([]uint, error)
	HabitIDsForUsers(userIDs []uint) (map[uint][]uint, error)
	DeleteAccountAndRelatedData(userID uint) error
}

// PhotoStore persists an uploaded photo and returns the path it is served from.
type PhotoStore interface {
	Save(ctx context.Context, extension string, contentType string, data []byte) (string, error)
}

// ProfilePatch carries optional profile updates; nil fields are left untouched.
type ProfilePatch struct {
	Name     *string
	Surname  *string
	Nickname *string
	Age      *int
	Status   *string
	About    *string
	Email    *string
	CityFrom *string
}

type ProfileService struct {
	users  ProfileUserRepository
	photos PhotoStore
}

func NewProfileService(users ProfileUserRepository, photos PhotoStore) *ProfileService {
	return &ProfileService{users: users, photos: photos}
}

func (service *ProfileService) FindUser(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (service *ProfileService) ListUsers() ([]models.User, error) {
	return service.users.List()
}

func (service *ProfileService) HabitIDs(userID uint) ([]uint, error) {
	return service.users.HabitIDs(userID)
}

func (service *ProfileService) HabitIDsForUsers(userIDs []uint) (map[uint][]uint, error) {
	return service.users.HabitIDsForUsers(userIDs)
}

// UpdateProfile applies the patch. A new email must be valid and not owned by another user.
func (service *ProfileService) UpdateProfile(userID uint, patch ProfilePatch) error {
	updates, err := service.profileUpdates(userID, patch)
	if err != nil {
		return err
	}
	return service.applyProfileUpdates(userID, updates)
}

// UpdateProfileWithPhoto stores the photo before any column is written, so a rejected or
// failed upload leaves the profile as it was. Fields and photo path land in one UPDATE.
func (service *ProfileService) UpdateProfileWithPhoto(ctx context.Context, userID uint, patch ProfilePatch, filename string, photo []byte) (string, error) {
	updates, err := service.profileUpdates(userID, patch)
	if err != nil {
		return "", err
	}

	photoPath, err := service.storePhoto(ctx, filename, photo)
	if err != nil {
		return "", err
	}
	updates["photo_path"] = photoPath
	if err := service.applyProfileUpdates(userID, updates); err != nil {
		return "", err
	}
	return photoPath, nil
}

func (service *ProfileService) profileUpdates(userID uint, patch ProfilePatch) (map[string]any, error) {
	updates := map[string]any{}
	for column, value := range map[string]*string{
		"name":      patch.Name,
		"surname":   patch.Surname,
		"nickname":  patch.Nickname,
		"status":    patch.Status,
		"about":     patch.About,
		"city_from": patch.CityFrom,
	} {
		if value == nil {
			continue
		}
		clean := strings.TrimSpace(*value)
		if utf8.RuneCountInString(clean) > maxProfileFieldLength && column != "about" {
			return nil, ErrProfileInvalid
		}
		updates[column] = clean
	}

	if patch.Age != nil {
		if *patch.Age < 0 || *patch.Age > 150 {
			return nil, ErrProfileInvalid
		}
		updates["age"] = *patch.Age
	}

	if patch.Email != nil {
		email := NormalizeAuthEmail(*patch.Email)
		if email == "" {
			return nil, ErrProfileInvalid
		}
		taken, err := service.users.EmailTakenByOther(email, userID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailExists
		}
		updates["email"] = email
	}
	return updates, nil
}

func (service *ProfileService) applyProfileUpdates(userID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	updates["modified_date"] = nowUTC()
	if err := service.users.UpdateByID(userID, updates); err != nil {
		// A concurrent request can claim the email between the check and the write.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

// ValidatePhoto checks the upload by size, extension and sniffed content type. It returns
// the extension and content type the photo is stored with.
func ValidatePhoto(filename string, data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", ErrPhotoInvalid
	}
	if len(data) > MaxPhotoBytes {
		return "", "", ErrPhotoTooLarge
	}

	extension := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	if _, ok := allowedPhotoExtensions[extension]; !ok {
		return "", "", ErrPhotoInvalid
	}
	contentType := http.DetectContentType(data)
	switch contentType {
	case "image/jpeg":
		if extension != ".jpeg" {
			extension = ".jpg"
		}
	case "image/png":
		extension = ".png"
	default:
		return "", "", ErrPhotoInvalid
	}
	return extension, contentType, nil
}

func (service *ProfileService) storePhoto(ctx context.Context, filename string, data []byte) (string, error) {
	extension, contentType, err := ValidatePhoto(filename, data)
	if err != nil {
		return "", err
	}
	if service.photos == nil {
		return "", errors.New("photo store is not configured")
	}

	photoPath, err := service.photos.Save(ctx, extension, contentType, data)
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return photoPath, nil
}

func (service *ProfileService) DeleteAccount(actorID uint, userID uint) error {
	if actorID != userID {
		return ErrForbidden
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
