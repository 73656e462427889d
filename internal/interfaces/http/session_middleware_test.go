package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/auth"
	"github.com/memimo/crm-api/internal/domain/entity"
	apphttp "github.com/memimo/crm-api/internal/interfaces/http"
	"github.com/memimo/crm-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (las justas para armar un SessionService real)
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }
func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *stubUserRepo) Update(ctx context.Context, u *entity.User) error            { return nil }
func (r *stubUserRepo) SetActive(ctx context.Context, id string, active bool) error { return nil }
func (r *stubUserRepo) TouchLastAccess(ctx context.Context, id string) error        { return nil }
func (r *stubUserRepo) List(ctx context.Context) ([]*entity.User, error)            { return nil, nil }

type stubSessionRepo struct {
	sessions map[string]*entity.Session
}

func (r *stubSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	r.sessions[s.Token] = s
	return nil
}
func (r *stubSessionRepo) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	return r.sessions[token], nil
}
func (r *stubSessionRepo) Delete(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}
func (r *stubSessionRepo) DeleteByUser(ctx context.Context, userID string) error { return nil }
func (r *stubSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubAuthLogRepo struct{}

func (stubAuthLogRepo) Insert(ctx context.Context, log *entity.AuthLog) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminUserID    = "00000000-0000-0000-0000-000000000001"
	standardUserID = "00000000-0000-0000-0000-000000000002"
	adminToken     = "11111111-1111-1111-1111-111111111111"
	standardToken  = "22222222-2222-2222-2222-222222222222"
	expiredToken   = "33333333-3333-3333-3333-333333333333"
)

// buildTestApp arma una aplicación Fiber con una ruta protegida por sesión y
// otra restringida a admin, respaldadas por un SessionService real sobre
// repositorios en memoria.
func buildTestApp() (*fiber.App, *stubSessionRepo) {
	users := &stubUserRepo{users: map[string]*entity.User{
		adminUserID:    {ID: adminUserID, Email: "admin@memimo.pe", RoleName: entity.RoleAdmin, Active: true},
		standardUserID: {ID: standardUserID, Email: "cajero@memimo.pe", RoleName: entity.RoleEstandar, Active: true},
	}}
	sessions := &stubSessionRepo{sessions: map[string]*entity.Session{
		adminToken:    {Token: adminToken, UserID: adminUserID, ExpiresAt: time.Now().Add(time.Hour)},
		standardToken: {Token: standardToken, UserID: standardUserID, ExpiresAt: time.Now().Add(time.Hour)},
		expiredToken:  {Token: expiredToken, UserID: adminUserID, ExpiresAt: time.Now().Add(-time.Hour)},
	}}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	svc := auth.NewSessionService(users, sessions, stubAuthLogRepo{}, auth.Config{}, log)

	app := fiber.New()
	protected := app.Group("/", apphttp.SessionMiddleware(svc))
	protected.Get("/protegida", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"usuario": apphttp.GetUserID(c)})
	})
	protected.Get("/solo-admin", apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app, sessions
}

func doGet(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SessionMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionMiddleware_SesionValidaPasa(t *testing.T) {
	app, _ := buildTestApp()
	resp := doGet(t, app, "/protegida", adminToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, adminUserID, body["usuario"], "el perfil debe quedar en locals")
}

func TestSessionMiddleware_SinHeader(t *testing.T) {
	app, _ := buildTestApp()
	resp := doGet(t, app, "/protegida", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

func TestSessionMiddleware_TokenDesconocido(t *testing.T) {
	app, _ := buildTestApp()
	resp := doGet(t, app, "/protegida", "un-token-inventado")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_SESSION", errorCode(t, resp))
}

// La sesión expirada se rechaza Y se elimina de la tabla en la misma petición.
func TestSessionMiddleware_SesionExpirada(t *testing.T) {
	app, sessions := buildTestApp()
	resp := doGet(t, app, "/protegida", expiredToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotContains(t, sessions.sessions, expiredToken,
		"la verificación debe borrar la sesión vencida")
}

// Revocar la sesión (logout en otro dispositivo, desactivación) surte efecto en
// la petición siguiente: no hay validez local del token.
func TestSessionMiddleware_RevocacionInmediata(t *testing.T) {
	app, sessions := buildTestApp()

	resp := doGet(t, app, "/protegida", standardToken)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	delete(sessions.sessions, standardToken)

	resp = doGet(t, app, "/protegida", standardToken)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"el mismo token debe morir en la petición siguiente a la revocación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminPasa(t *testing.T) {
	app, _ := buildTestApp()
	resp := doGet(t, app, "/solo-admin", adminToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_EstandarRechazado(t *testing.T) {
	app, _ := buildTestApp()
	resp := doGet(t, app, "/solo-admin", standardToken)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}
