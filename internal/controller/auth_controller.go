package controller

import (
	"io"
	"net/http"

	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	accounts service.AccountService
}

func NewAuthController(accounts service.AccountService) *AuthController {
	return &AuthController{accounts: accounts}
}

// Register godoc
// @Summary Register a new account
// @Description Creates a user. Username display width is capped at 20 (CJK characters count as 2); the avatar is optional, png/jpg/jpeg/gif up to 2MB.
// @Tags Auth
// @Accept mpfd
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file false "Avatar image"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	username := ctx.PostForm("username")
	password := ctx.PostForm("password")

	var avatarFilename string
	var avatar []byte
	if file, err := ctx.FormFile("avatar"); err == nil && file.Filename != "" {
		f, err := file.Open()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read uploaded file"})
			return
		}
		defer f.Close()
		avatar, err = io.ReadAll(f)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "could not read uploaded file"})
			return
		}
		avatarFilename = file.Filename
	}

	userID, err := c.accounts.Register(username, password, avatarFilename, avatar)
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Register rejected")
		respondError(ctx, err)
		return
	}

	log.Info().Uint("userID", userID).Msg("Register: account created")
	ctx.JSON(http.StatusCreated, dto.SuccessResponse{Success: true})
}

// Login godoc
// @Summary Log in
// @Description Authenticates and establishes a signed session cookie. Unknown user and wrong password return distinct messages.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginStatusResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := setSessionUser(ctx, user.ID, user.Username); err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to save session")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to establish session"})
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: true, Username: user.Username})
}

// Logout godoc
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	clearSession(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CheckLogin godoc
// @Summary Report current session state
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.LoginStatusResponse
// @Router /api/check-login [get]
func (c *AuthController) CheckLogin(ctx *gin.Context) {
	if _, ok := currentUserID(ctx); !ok {
		ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: false, Username: ""})
		return
	}
	ctx.JSON(http.StatusOK, dto.LoginStatusResponse{LoggedIn: true, Username: currentUsername(ctx)})
}
