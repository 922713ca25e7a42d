package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/JRBelisario/livro-caixa-mei/internal/config"
	"github.com/JRBelisario/livro-caixa-mei/internal/models"
	"github.com/JRBelisario/livro-caixa-mei/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// invalidCredentials is deliberately identical for unknown e-mail and wrong
// password so the endpoint cannot be used to enumerate accounts.
const invalidCredentials = "E-mail ou senha inválidos."

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthHandler implements registration, login, logout and session checks.
type AuthHandler struct {
	DB         *gorm.DB
	CookieName string
	TTL        time.Duration
	Secure     bool
	BcryptCost int
	Log        zerolog.Logger
}

func NewAuthHandler(db *gorm.DB, sess config.SessionConfig, bcryptCost int, log zerolog.Logger) *AuthHandler {
	ttlHours := sess.TTLHours
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		CookieName: sess.CookieName,
		TTL:        time.Duration(ttlHours) * time.Hour,
		Secure:     sess.Secure,
		BcryptCost: bcryptCost,
		Log:        log,
	}
}

type credentialsReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. The plaintext password is hashed with
// bcrypt and never stored or logged.
func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "E-mail e senha são obrigatórios.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "E-mail e senha são obrigatórios.")
		return
	}
	if !emailRe.MatchString(email) {
		util.Error(c, http.StatusBadRequest, "E-mail inválido.")
		return
	}
	if len(req.Password) < 6 {
		util.Error(c, http.StatusBadRequest, "A senha deve ter pelo menos 6 caracteres.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		h.Log.Error().Err(err).Msg("falha ao gerar hash de senha")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao registrar usuário.")
		return
	}

	// the unique index on email decides duplicates, so two concurrent
	// registrations cannot both pass a pre-check
	user := models.User{Email: email, PasswordHash: string(hash)}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusConflict, "E-mail já cadastrado.")
			return
		}
		h.Log.Error().Err(err).Msg("falha ao criar usuário")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao registrar usuário.")
		return
	}

	util.OK(c, http.StatusCreated, gin.H{
		"message": "Usuário registrado com sucesso!",
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

// Login validates credentials and establishes a cookie-backed session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "E-mail e senha são obrigatórios.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "E-mail e senha são obrigatórios.")
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusBadRequest, invalidCredentials)
		} else {
			h.Log.Error().Err(err).Msg("falha ao consultar usuário")
			util.Error(c, http.StatusInternalServerError, "Erro interno ao efetuar login.")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, invalidCredentials)
		return
	}

	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(h.TTL),
	}
	if err := h.DB.Create(&sess).Error; err != nil {
		h.Log.Error().Err(err).Msg("falha ao criar sessão")
		util.Error(c, http.StatusInternalServerError, "Erro interno ao efetuar login.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, sess.ID, int(h.TTL.Seconds()), "/", "", h.Secure, true)

	util.OK(c, http.StatusOK, gin.H{
		"message": "Login realizado com sucesso!",
		"user":    gin.H{"id": user.ID, "email": user.Email},
	})
}

// Logout destroys the current session, if any. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.CookieName); err == nil && token != "" {
		if err := h.DB.Delete(&models.Session{}, "id = ?", token).Error; err != nil {
			h.Log.Error().Err(err).Msg("falha ao remover sessão")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, "", -1, "/", "", h.Secure, true)

	util.OK(c, http.StatusOK, gin.H{"message": "Sessão encerrada."})
}

// CheckAuth reports whether the request carries a valid session. It is
// side-effect free: expired rows are left for RequireSession to clean up.
func (h *AuthHandler) CheckAuth(c *gin.Context) {
	token, err := c.Cookie(h.CookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	var sess models.Session
	if err := h.DB.First(&sess, "id = ?", token).Error; err != nil || time.Now().After(sess.ExpiresAt) {
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"isAuthenticated": true,
		"userId":          sess.UserID,
	})
}
