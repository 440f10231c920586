package service

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// maxUsernameWidth is measured in display units: CJK characters count
	// as 2, everything else as 1.
	maxUsernameWidth = 20
	maxAvatarBytes   = 2 * 1024 * 1024
	minPasswordLen   = 6
)

var allowedAvatarExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

// AccountService covers registration, authentication, credential changes,
// avatar management and account deletion.
type AccountService interface {
	Register(username, password, avatarFilename string, avatar []byte) (uint, error)
	Authenticate(username, password string) (*model.User, error)
	ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error
	DeleteAccount(userID uint, confirmUsername, confirmPassword string) error
	SetAvatar(userID uint, filename string, avatar []byte) error
	Avatar(userID uint) ([]byte, error)
}

type accountService struct {
	userRepo repository.UserRepository
	db       *gorm.DB // credential checks and their writes share a transaction
}

func NewAccountService(userRepo repository.UserRepository, db *gorm.DB) AccountService {
	return &accountService{userRepo: userRepo, db: db}
}

// usernameWidth returns the display width of a username. Characters in the
// CJK Unified Ideographs block (U+4E00..U+9FFF) count double.
func usernameWidth(username string) int {
	width := 0
	for _, r := range username {
		if r >= 0x4E00 && r <= 0x9FFF {
			width += 2
		} else {
			width++
		}
	}
	return width
}

func validateAvatar(filename string, avatar []byte) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExtensions[ext] {
		return apperr.ErrInvalidAvatar
	}
	if len(avatar) > maxAvatarBytes {
		return apperr.ErrAvatarTooLarge
	}
	return nil
}

func (s *accountService) Register(username, password, avatarFilename string, avatar []byte) (uint, error) {
	if username == "" || password == "" {
		return 0, apperr.ErrEmptyField
	}
	if usernameWidth(username) > maxUsernameWidth {
		return 0, apperr.ErrUsernameTooLong
	}
	if avatarFilename != "" {
		if err := validateAvatar(avatarFilename, avatar); err != nil {
			return 0, err
		}
	} else {
		avatar = nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Register: failed to hash password")
		return 0, fmt.Errorf("hash password: %w", apperr.ErrStore)
	}

	user := model.User{
		Username:     username,
		PasswordHash: string(hash),
		AvatarBlob:   avatar,
	}
	// Uniqueness is enforced by the unique index, so a concurrent duplicate
	// registration loses cleanly instead of racing a read-then-write check.
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, apperr.ErrUsernameTaken
		}
		log.Error().Err(err).Str("username", username).Msg("Register: failed to create user")
		return 0, fmt.Errorf("create user: %w", apperr.ErrStore)
	}

	log.Info().Uint("userID", user.ID).Str("username", username).Msg("User registered")
	return user.ID, nil
}

func (s *accountService) Authenticate(username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		log.Error().Err(err).Str("username", username).Msg("Authenticate: lookup failed")
		return nil, fmt.Errorf("find user: %w", apperr.ErrStore)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrInvalidCredential
	}
	return user, nil
}

func (s *accountService) ChangePassword(userID uint, currentPassword, newPassword, confirmPassword string) error {
	if currentPassword == "" || newPassword == "" || confirmPassword == "" {
		return apperr.ErrEmptyField
	}
	if newPassword != confirmPassword {
		return apperr.ErrPasswordMismatch
	}
	if len(newPassword) < minPasswordLen {
		return apperr.ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("ChangePassword: failed to hash password")
		return fmt.Errorf("hash password: %w", apperr.ErrStore)
	}

	// Verify and rotate inside one transaction. The UPDATE re-checks the
	// hash that was verified, so a credential rotated by a concurrent
	// request makes this one fail instead of silently clobbering it.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
			return apperr.ErrInvalidCredential
		}
		res := tx.Model(&model.User{}).
			Where("id = ? AND password = ?", userID, user.PasswordHash).
			Update("password", string(hash))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrInvalidCredential
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrUserNotFound
	case errors.Is(err, apperr.ErrInvalidCredential):
		return apperr.ErrInvalidCredential
	default:
		log.Error().Err(err).Uint("userID", userID).Msg("ChangePassword: transaction failed, rolled back")
		return fmt.Errorf("change password: %w", apperr.ErrStore)
	}

	log.Info().Uint("userID", userID).Msg("Password changed")
	return nil
}

// DeleteAccount removes the user and everything they own. Confirmation
// check and the three deletes run inside one transaction in foreign-key
// order: answer records, explorations, then the user row.
func (s *accountService) DeleteAccount(userID uint, confirmUsername, confirmPassword string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if user.Username != confirmUsername {
			return apperr.ErrUnauthorized
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(confirmPassword)); err != nil {
			return apperr.ErrUnauthorized
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.AnswerRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.CityExploration{}).Error; err != nil {
			return err
		}
		// Re-checks the verified hash, so a concurrent credential rotation
		// aborts the whole deletion via rollback.
		res := tx.Where("id = ? AND password = ?", userID, user.PasswordHash).Delete(&model.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrUnauthorized
		}
		return nil
	})
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrUserNotFound
	case errors.Is(err, apperr.ErrUnauthorized):
		return apperr.ErrUnauthorized
	default:
		log.Error().Err(err).Uint("userID", userID).Msg("DeleteAccount: transaction failed, rolled back")
		return fmt.Errorf("delete account: %w", apperr.ErrStore)
	}

	log.Info().Uint("userID", userID).Str("username", confirmUsername).Msg("Account deleted")
	return nil
}

func (s *accountService) SetAvatar(userID uint, filename string, avatar []byte) error {
	if len(avatar) == 0 {
		return apperr.ErrEmptyFile
	}
	if err := validateAvatar(filename, avatar); err != nil {
		return err
	}
	if err := s.userRepo.UpdateAvatar(userID, avatar); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("SetAvatar: update failed")
		return fmt.Errorf("update avatar: %w", apperr.ErrStore)
	}
	return nil
}

func (s *accountService) Avatar(userID uint) ([]byte, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		log.Error().Err(err).Uint("userID", userID).Msg("Avatar: lookup failed")
		return nil, fmt.Errorf("find user: %w", apperr.ErrStore)
	}
	if len(user.AvatarBlob) == 0 {
		return nil, apperr.ErrNotFound
	}
	return user.AvatarBlob, nil
}
