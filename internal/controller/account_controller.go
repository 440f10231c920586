package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// placeholderAvatar is served when a user has not uploaded an avatar and no
// default image is available.
const placeholderAvatar = `<svg width="100" height="100" xmlns="http://www.w3.org/2000/svg">
    <circle cx="50" cy="50" r="40" fill="#8B7355"/>
    <circle cx="50" cy="40" r="15" fill="#D2B48C"/>
    <circle cx="40" cy="35" r="3" fill="white"/>
    <circle cx="60" cy="35" r="3" fill="white"/>
    <path d="M35,65 Q50,75 65,65" stroke="white" stroke-width="2" fill="none"/>
</svg>`

type AccountController struct {
	accounts service.AccountService
}

func NewAccountController(accounts service.AccountService) *AccountController {
	return &AccountController{accounts: accounts}
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description All three fields are required; the new password must be at least 6 characters and match its confirmation.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Passwords"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/change-password [post]
func (c *AccountController) ChangePassword(ctx *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	userID, _ := currentUserID(ctx)
	if err := c.accounts.ChangePassword(userID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// DeleteAccount godoc
// @Summary Delete the current user's account
// @Description Requires re-typing username and password. Removes all answer records and explorations with the user atomically and ends the session.
// @Tags Account
// @Accept json
// @Produce json
// @Param request body dto.DeleteAccountRequest true "Confirmation"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/delete-account [post]
func (c *AccountController) DeleteAccount(ctx *gin.Context) {
	var req dto.DeleteAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	userID, _ := currentUserID(ctx)
	if err := c.accounts.DeleteAccount(userID, req.ConfirmUsername, req.ConfirmPassword); err != nil {
		respondError(ctx, err)
		return
	}

	clearSession(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// UploadAvatar godoc
// @Summary Upload or replace the current user's avatar
// @Description png/jpg/jpeg/gif up to 2MB; empty files are rejected.
// @Tags Account
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /upload-avatar [post]
func (c *AccountController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("avatar")
	if err != nil || file.Filename == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "no file selected"})
		return
	}

	f, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read uploaded file"})
		return
	}
	defer f.Close()
	avatar, err := io.ReadAll(f)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read uploaded file"})
		return
	}

	userID, _ := currentUserID(ctx)
	if err := c.accounts.SetAvatar(userID, file.Filename, avatar); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("UploadAvatar rejected")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// GetAvatar godoc
// @Summary Fetch the current user's avatar
// @Description Falls back to an inline SVG placeholder when no avatar is stored.
// @Tags Account
// @Produce png
// @Success 200 {file} binary
// @Failure 401 {object} dto.ErrorResponse
// @Router /get-avatar [get]
func (c *AccountController) GetAvatar(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	avatar, err := c.accounts.Avatar(userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			ctx.Data(http.StatusOK, "image/svg+xml", []byte(placeholderAvatar))
			return
		}
		respondError(ctx, err)
		return
	}
	ctx.Data(http.StatusOK, "image/jpeg", avatar)
}
