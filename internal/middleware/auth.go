package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/JRBelisario/livro-caixa-mei/internal/models"
	"github.com/JRBelisario/livro-caixa-mei/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey is the gin context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// RequireSession validates the session cookie against the sessions table and
// puts the authenticated user into the context. Expired rows are deleted on
// the spot so the table does not accumulate garbage.
func RequireSession(db *gorm.DB, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			util.Error(c, http.StatusUnauthorized, "Não autenticado. Faça login para continuar.")
			c.Abort()
			return
		}

		var sess models.Session
		if err := db.First(&sess, "id = ?", token).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, "Sessão inválida. Faça login novamente.")
			} else {
				util.Error(c, http.StatusInternalServerError, "Erro interno ao validar sessão.")
			}
			c.Abort()
			return
		}

		if time.Now().After(sess.ExpiresAt) {
			_ = db.Delete(&models.Session{}, "id = ?", sess.ID).Error
			util.Error(c, http.StatusUnauthorized, "Sessão expirada. Faça login novamente.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, sess.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Error(c, http.StatusUnauthorized, "Usuário não encontrado.")
			} else {
				util.Error(c, http.StatusInternalServerError, "Erro interno ao validar sessão.")
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user placed by RequireSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
