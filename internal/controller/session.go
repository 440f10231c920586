package controller

import (
	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// SessionName is the cookie holding the signed session.
const SessionName = "minpaixinyu_session"

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
)

// RequireAuth rejects requests without a valid session. Handlers behind it
// may call currentUserID without checking the ok flag.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := currentUserID(ctx); !ok {
			ctx.AbortWithStatusJSON(apperr.Status(apperr.ErrUnauthenticated),
				dto.ErrorResponse{Error: apperr.ErrUnauthenticated.Error()})
			return
		}
		ctx.Next()
	}
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	id, ok := sessions.Default(ctx).Get(sessionUserIDKey).(uint)
	return id, ok
}

func currentUsername(ctx *gin.Context) string {
	name, _ := sessions.Default(ctx).Get(sessionUsernameKey).(string)
	return name
}

func setSessionUser(ctx *gin.Context, userID uint, username string) error {
	session := sessions.Default(ctx)
	session.Set(sessionUserIDKey, userID)
	session.Set(sessionUsernameKey, username)
	return session.Save()
}

func clearSession(ctx *gin.Context) {
	session := sessions.Default(ctx)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Warn().Err(err).Msg("Failed to clear session")
	}
}

// respondError maps a service error onto the taxonomy status and the uniform
// error envelope.
func respondError(ctx *gin.Context, err error) {
	ctx.JSON(apperr.Status(err), dto.ErrorResponse{Error: err.Error()})
}
