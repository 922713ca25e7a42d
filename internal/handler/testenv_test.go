package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JRBelisario/livro-caixa-mei/internal/config"
	"github.com/JRBelisario/livro-caixa-mei/internal/database"
	"github.com/JRBelisario/livro-caixa-mei/internal/logger"
	"github.com/JRBelisario/livro-caixa-mei/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testCookieName = "lc_session"

// newTestServer wires the full router against a fresh in-memory database.
func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Session: config.SessionConfig{
			CookieName: testCookieName,
			TTLHours:   1,
		},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
	}
	log := logger.NewWithWriter(io.Discard)

	return router.Setup(cfg, db, log), db
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// sessionCookie extracts the session cookie from a login response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == testCookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

// loginAs registers a user and logs in, returning the session cookie.
func loginAs(t *testing.T, r *gin.Engine, email, password string) *http.Cookie {
	t.Helper()

	creds := map[string]string{"email": email, "password": password}
	w := doJSON(t, r, http.MethodPost, "/api/register", creds)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/login", creds)
	require.Equal(t, http.StatusOK, w.Code)
	return sessionCookie(t, w)
}

// criarLancamento posts one lançamento and returns its id.
func criarLancamento(t *testing.T, r *gin.Engine, ck *http.Cookie, body map[string]any) uint {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/lancamentos", body, ck)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeBody(t, w)
	return uint(resp["id"].(float64))
}
