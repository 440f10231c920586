package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAccountService(t *testing.T) (AccountService, *gorm.DB) {
	db := newTestDB(t)
	return NewAccountService(repository.NewUserRepository(db), db), db
}

func TestUsernameWidth(t *testing.T) {
	assert.Equal(t, 4, usernameWidth("abcd"))
	assert.Equal(t, 4, usernameWidth("福州"))
	assert.Equal(t, 11, usernameWidth("福州小明abc"))
	assert.Equal(t, 0, usernameWidth(""))
}

func TestRegisterUsernameWidthLimit(t *testing.T) {
	svc, _ := newAccountService(t)

	// 10 CJK characters = 20 display units, right at the limit.
	atLimit := strings.Repeat("福", 10)
	_, err := svc.Register(atLimit, "secret123", "", nil)
	assert.NoError(t, err)

	// One extra ASCII character pushes the width to 21.
	_, err = svc.Register(atLimit+"a", "secret123", "", nil)
	assert.ErrorIs(t, err, apperr.ErrUsernameTooLong)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	_, err = svc.Register("小明", "othersecret", "", nil)
	assert.ErrorIs(t, err, apperr.ErrUsernameTaken)
}

func TestRegisterEmptyFields(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register("", "secret123", "", nil)
	assert.ErrorIs(t, err, apperr.ErrEmptyField)
	_, err = svc.Register("小明", "", "", nil)
	assert.ErrorIs(t, err, apperr.ErrEmptyField)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	svc, db := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	var user model.User
	require.NoError(t, db.First(&user, id).Error)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"))
}

func TestRegisterAvatarValidation(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register("用户一", "secret123", "avatar.bmp", []byte{1, 2, 3})
	assert.ErrorIs(t, err, apperr.ErrInvalidAvatar)

	huge := bytes.Repeat([]byte{0xFF}, 2*1024*1024+1)
	_, err = svc.Register("用户二", "secret123", "avatar.png", huge)
	assert.ErrorIs(t, err, apperr.ErrAvatarTooLarge)

	_, err = svc.Register("用户三", "secret123", "avatar.PNG", []byte{0x89, 0x50})
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	user, err := svc.Authenticate("小明", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "小明", user.Username)

	_, err = svc.Authenticate("小明", "wrongpass")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredential)

	_, err = svc.Authenticate("不存在", "secret123")
	assert.ErrorIs(t, err, apperr.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	t.Run("empty fields rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ChangePassword(id, "", "newpass1", "newpass1"), apperr.ErrEmptyField)
		assert.ErrorIs(t, svc.ChangePassword(id, "secret123", "", ""), apperr.ErrEmptyField)
	})

	t.Run("mismatched confirmation rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ChangePassword(id, "secret123", "newpass1", "newpass2"), apperr.ErrPasswordMismatch)
	})

	t.Run("short password rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ChangePassword(id, "secret123", "abc", "abc"), apperr.ErrPasswordTooShort)
	})

	t.Run("wrong current password rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.ChangePassword(id, "wrongpass", "newpass1", "newpass1"), apperr.ErrInvalidCredential)
	})

	t.Run("success rotates the credential", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(id, "secret123", "newpass1", "newpass1"))

		_, err := svc.Authenticate("小明", "secret123")
		assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
		_, err = svc.Authenticate("小明", "newpass1")
		assert.NoError(t, err)
	})
}

func TestChangePasswordStaleCredentialLoses(t *testing.T) {
	svc, _ := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	// Two callers both verified against the original password. The first
	// rotation wins; the second still presents the old password and must
	// fail instead of clobbering the winner's credential.
	require.NoError(t, svc.ChangePassword(id, "secret123", "firstpass", "firstpass"))
	assert.ErrorIs(t, svc.ChangePassword(id, "secret123", "secondpass", "secondpass"), apperr.ErrInvalidCredential)

	_, err = svc.Authenticate("小明", "firstpass")
	assert.NoError(t, err)
	_, err = svc.Authenticate("小明", "secondpass")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredential)
}

func TestDeleteAccountStaleCredentialLoses(t *testing.T) {
	svc, db := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)
	q := seedQuestion(t, db, "鼓浪屿属于福建省哪个城市？", "C")
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: id, QuestionID: q.ID, UserAnswer: "C", IsCorrect: true}).Error)

	// The credential rotates between the confirmation dialog and the delete.
	require.NoError(t, svc.ChangePassword(id, "secret123", "newpass1", "newpass1"))
	assert.ErrorIs(t, svc.DeleteAccount(id, "小明", "secret123"), apperr.ErrUnauthorized)

	var users, answers int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.AnswerRecord{}).Count(&answers).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), answers)
}

func TestDeleteAccountRollsBackOnStoreFailure(t *testing.T) {
	svc, db := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)
	q := seedQuestion(t, db, "土楼主要分布在福建省的哪些地区？", "C")
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: id, QuestionID: q.ID, UserAnswer: "C", IsCorrect: true}).Error)
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: id, QuestionID: q.ID, UserAnswer: "A", IsCorrect: false}).Error)

	// Knock out the explorations table so the second delete fails after the
	// answer records were already deleted inside the transaction.
	require.NoError(t, db.Migrator().DropTable(&model.CityExploration{}))

	err = svc.DeleteAccount(id, "小明", "secret123")
	assert.ErrorIs(t, err, apperr.ErrStore)

	// Rolled back: the user and both answer records survive intact.
	var users, answers int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.AnswerRecord{}).Count(&answers).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(2), answers)
}

func TestDeleteAccountRequiresExactConfirmation(t *testing.T) {
	svc, _ := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAccount(id, "小红", "secret123"), apperr.ErrUnauthorized)
	assert.ErrorIs(t, svc.DeleteAccount(id, "小明", "wrongpass"), apperr.ErrUnauthorized)
}

func TestDeleteAccountCascades(t *testing.T) {
	svc, db := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	q := seedQuestion(t, db, "福建省的省会是哪个城市？", "B")
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: id, QuestionID: q.ID, UserAnswer: "B", IsCorrect: true}).Error)
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: id, QuestionID: q.ID, UserAnswer: "A", IsCorrect: false}).Error)
	require.NoError(t, db.Create(&model.CityExploration{UserID: id, CityName: "福州"}).Error)

	require.NoError(t, svc.DeleteAccount(id, "小明", "secret123"))

	var users, answers, explorations int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.AnswerRecord{}).Count(&answers).Error)
	require.NoError(t, db.Model(&model.CityExploration{}).Count(&explorations).Error)
	assert.Zero(t, users)
	assert.Zero(t, answers)
	assert.Zero(t, explorations)
}

func TestSetAvatar(t *testing.T) {
	svc, _ := newAccountService(t)

	id, err := svc.Register("小明", "secret123", "", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetAvatar(id, "avatar.png", nil), apperr.ErrEmptyFile)
	assert.ErrorIs(t, svc.SetAvatar(id, "avatar.txt", []byte{1}), apperr.ErrInvalidAvatar)
	assert.ErrorIs(t, svc.SetAvatar(id, "avatar.gif", bytes.Repeat([]byte{1}, 2*1024*1024+1)), apperr.ErrAvatarTooLarge)

	// No avatar stored yet: lookup reports not found.
	_, err = svc.Avatar(id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	blob := []byte{0x89, 0x50, 0x4E, 0x47}
	require.NoError(t, svc.SetAvatar(id, "avatar.png", blob))

	stored, err := svc.Avatar(id)
	require.NoError(t, err)
	assert.Equal(t, blob, stored)
}
