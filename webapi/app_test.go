package webapi_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carteiralabs/carteira/internal/fixtures"
	"github.com/carteiralabs/carteira/pkg/config"
	"github.com/carteiralabs/carteira/pkg/domain/user"
	"github.com/carteiralabs/carteira/pkg/dto"
	authsvc "github.com/carteiralabs/carteira/pkg/service/auth"
	usersvc "github.com/carteiralabs/carteira/pkg/service/user"
	walletsvc "github.com/carteiralabs/carteira/pkg/service/wallet"
	"github.com/carteiralabs/carteira/pkg/utils"
	"github.com/carteiralabs/carteira/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *fixtures.MemoryUoW) {
	t.Helper()
	cfg := &config.AppConfig{
		Jwt: config.JwtConfig{Secret: "test-secret", Expiry: time.Hour},
	}
	uow := fixtures.NewMemoryUoW()
	logger := slog.Default()
	userSvc := usersvc.New(uow, logger)
	authSvc := authsvc.New(uow, cfg.Jwt, logger)
	walletSvc := walletsvc.New(uow, logger)
	return webapi.NewApp(userSvc, authSvc, walletSvc, cfg), uow
}

func seedAccount(uow *fixtures.MemoryUoW, name, document, email, password string, role user.Role, status user.Status) {
	hash, _ := utils.HashPassword(password)
	uow.SeedUser(dto.UserRead{
		ID:             uuid.New(),
		Name:           name,
		Document:       document,
		Email:          email,
		HashedPassword: hash,
		Role:           int(role),
		Status:         string(status),
		Balance:        decimal.Zero,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie string) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: cookie})
	}
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() }) //nolint: errcheck
	return resp
}

// jwtCookie returns the session cookie set by resp, or "" when none was set.
func jwtCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

func login(t *testing.T, app *fiber.App, document, password string) string {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"document": document,
		"password": password,
	}, "")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	token := jwtCookie(resp)
	require.NotEmpty(t, token)
	return token
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestPublicPages(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/login", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/register", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Landing pages demand a session.
	resp = doJSON(t, app, http.MethodGet, "/", nil, "")
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRegisterApproveLoginFlow(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Admin", "99999999999", "admin@example.com", "admin-pass", user.RoleAdmin, user.StatusApproved)

	resp := doJSON(t, app, http.MethodPost, "/auth/register", fiber.Map{
		"name":                      "Erica Souza",
		"document":                  "11122233344",
		"email":                     "erica@example.com",
		"password":                  "password123",
		"confirm-password-register": "password123",
	}, "")
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// A pending account gets its status back instead of a session.
	resp = doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"document": "11122233344",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, jwtCookie(resp))
	body := decodeBody(t, resp)
	assert.Equal(t, "Account waiting for approval", body["message"])

	adminCookie := login(t, app, "99999999999", "admin-pass")
	resp = doJSON(t, app, http.MethodGet, "/user/api/approve/erica@example.com", nil, adminCookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Approving twice is a conflict.
	resp = doJSON(t, app, http.MethodGet, "/user/api/approve/erica@example.com", nil, adminCookie)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	cookie := login(t, app, "11122233344", "password123")
	resp = doJSON(t, app, http.MethodGet, "/", nil, cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"document": "11122233344",
		"password": "wrong",
	}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, jwtCookie(resp))
}

func TestLogin_BlockedAccountGetsNoCookie(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusBlocked)

	resp := doJSON(t, app, http.MethodPost, "/auth/login", fiber.Map{
		"document": "11122233344",
		"password": "password123",
	}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, jwtCookie(resp))
	body := decodeBody(t, resp)
	assert.Equal(t, "Account blocked", body["message"])
}

func TestWalletFlow(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	seedAccount(uow, "Fabio Lima", "55566677788", "fabio@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodPost, "/wallet/Deposit", fiber.Map{"value": "50"}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/wallet/Transfer", fiber.Map{
		"value": "20",
		"to":    "fabio@example.com",
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.True(t, uow.UserByDocument("11122233344").Balance.Equal(decimal.NewFromInt(30)))
	assert.True(t, uow.UserByDocument("55566677788").Balance.Equal(decimal.NewFromInt(20)))

	resp = doJSON(t, app, http.MethodGet, "/wallet/extract/complet", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	extract := data["extract"].([]any)
	require.Len(t, extract, 2)
	newest := extract[0].(map[string]any)
	assert.Equal(t, "Transfer", newest["kind"])

	// Reverse the transfer and verify the money went back.
	resp = doJSON(t, app, http.MethodPost, "/wallet/revert/"+newest["id"].(string), nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, uow.UserByDocument("11122233344").Balance.Equal(decimal.NewFromInt(50)))
	assert.True(t, uow.UserByDocument("55566677788").Balance.IsZero())

	// A second reversal of the same entry is a conflict.
	resp = doJSON(t, app, http.MethodPost, "/wallet/revert/"+newest["id"].(string), nil, cookie)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestTransfer_InsufficientFundsOverHTTP(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	seedAccount(uow, "Fabio Lima", "55566677788", "fabio@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodPost, "/wallet/Transfer", fiber.Map{
		"value": "20",
		"to":    "fabio@example.com",
	}, cookie)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, uow.Entries())
}

func TestMovement_UnknownType(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodPost, "/wallet/Withdraw", fiber.Map{"value": "10"}, cookie)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRevert_InvalidID(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodPost, "/wallet/revert/not-a-uuid", nil, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRecipientLookup(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	seedAccount(uow, "Fabio Lima", "55566677788", "fabio@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodGet, "/user/api/findNameKeyBen/fabio@example.com", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Fabio Lima", data["name"])

	// Looking yourself up is rejected.
	resp = doJSON(t, app, http.MethodGet, "/user/api/findNameKeyBen/11122233344", nil, cookie)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminHome_ListsPendingAccounts(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Admin", "99999999999", "admin@example.com", "admin-pass", user.RoleAdmin, user.StatusApproved)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusWaitingForApproval)
	cookie := login(t, app, "99999999999", "admin-pass")

	resp := doJSON(t, app, http.MethodGet, "/adm", nil, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	pending := data["allUsers"].([]any)
	require.Len(t, pending, 1)
	assert.Equal(t, "erica@example.com", pending[0].(map[string]any)["email"])
}

func TestExit_ClearsSession(t *testing.T) {
	t.Parallel()
	app, uow := newTestApp(t)
	seedAccount(uow, "Erica Souza", "11122233344", "erica@example.com", "password123", user.RoleOrdinary, user.StatusApproved)
	cookie := login(t, app, "11122233344", "password123")

	resp := doJSON(t, app, http.MethodGet, "/exit", nil, cookie)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "jwt" {
			assert.Empty(t, c.Value)
			assert.True(t, c.Expires.Before(time.Now()))
		}
	}
}
