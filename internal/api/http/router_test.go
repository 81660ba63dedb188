package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/fusaf/role-request-service/internal/api/http"
	"github.com/fusaf/role-request-service/internal/api/http/handlers"
	"github.com/fusaf/role-request-service/internal/auth"
	"github.com/fusaf/role-request-service/internal/config"
	"github.com/fusaf/role-request-service/internal/domain"
	"github.com/fusaf/role-request-service/internal/events"
	"github.com/fusaf/role-request-service/internal/observability"
	"github.com/fusaf/role-request-service/internal/persistence"
	"github.com/fusaf/role-request-service/internal/repository"
	"github.com/fusaf/role-request-service/internal/service"
	"github.com/fusaf/role-request-service/internal/store"
)

// fakeAccountRepo is an in-memory stand-in for the Postgres accounts table.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
}

var _ repository.AccountRepository = (*fakeAccountRepo)(nil)

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account.ID = uuid.NewString()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *account
	r.accounts[account.ID] = &clone
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if acc, ok := r.accounts[id]; ok {
		clone := *acc
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.accounts {
		if acc.Email == email {
			clone := *acc
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) idByEmail(email string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, acc := range r.accounts {
		if acc.Email == email {
			return id
		}
	}
	return ""
}

func (r *fakeAccountRepo) grantAdmin(email string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, acc := range r.accounts {
		if acc.Email == email {
			acc.Roles = append(acc.Roles, domain.RoleAdmin)
		}
	}
}

type testEnv struct {
	app      *fiber.App
	repo     *fakeAccountRepo
	requests *store.Store
}

func newTestEnv(t *testing.T, seed []domain.RoleRequest) *testEnv {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "role-request-service-test", Version: "test"},
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 5,
			BcryptCost:            4,
		},
		RoleRequest: config.RoleRequestConfig{
			DefaultCurrentRole: domain.RoleAthlete,
			MinReasonLength:    10,
		},
	}

	repo := newFakeAccountRepo()
	requestStore := store.New(seed)
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, repo)
	roleRequestService := service.NewRoleRequestService(requestStore, dispatcher, cfg.RoleRequest)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), repo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, requestStore, &persistence.Postgres{}, &persistence.Redis{}),
		Accounts:       handlers.NewAccountsHandler(authService),
		RoleRequests:   handlers.NewRoleRequestsHandler(roleRequestService),
		AuthMiddleware: authMiddleware,
	})

	return &testEnv{app: app, repo: repo, requests: requestStore}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()

	resp := e.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Data struct {
			Auth struct {
				Token string `json:"token"`
			} `json:"auth"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.Data.Auth.Token)
	return body.Data.Auth.Token
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t, store.Seed())

	resp := env.do(t, http.MethodGet, "/health/live", "", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeJSON(t, resp)
	counts := body["role_requests"].(map[string]any)
	assert.Equal(t, float64(3), counts["total"])
	assert.Equal(t, float64(1), counts["pending"])
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	env := newTestEnv(t, nil)

	resp := env.do(t, http.MethodPost, "/role-requests/", "", map[string]string{
		"requested_role": domain.RoleClubOwner,
		"reason":         "I want to start a club for my city",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitLifecycle(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t, "Anna", "anna@x.com")

	resp := env.do(t, http.MethodPost, "/role-requests/", token, map[string]string{
		"requested_role": domain.RoleClubOwner,
		"reason":         "I want to start a club for my city",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeJSON(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, "anna@x.com", data["user_email"])
	assert.Equal(t, domain.RoleAthlete, data["current_role"])

	// duplicate submission conflicts while the first is pending
	resp = env.do(t, http.MethodPost, "/role-requests/", token, map[string]string{
		"requested_role": domain.RoleCoachJudge,
		"reason":         "I would also like to judge competitions",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// own status reflects the outstanding request
	resp = env.do(t, http.MethodGet, "/role-requests/status", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	status := decodeJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, true, status["has_active_request"])
	require.NotNil(t, status["role_request"])
}

func TestSubmitValidationErrors(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t, "Bob", "bob@x.com")

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{
			name: "short reason",
			payload: map[string]string{
				"requested_role": domain.RoleClubOwner,
				"reason":         "short",
			},
		},
		{
			name: "ineligible role",
			payload: map[string]string{
				"requested_role": "admin",
				"reason":         "let me administrate everything",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/role-requests/", token, tt.payload)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
	assert.Equal(t, 0, env.requests.Stats().Total)
}

func TestAdminEndpointsForbiddenForMembers(t *testing.T) {
	env := newTestEnv(t, store.Seed())
	token := env.register(t, "Carol", "carol@x.com")

	for _, ep := range []struct{ method, path string }{
		{http.MethodGet, "/role-requests/"},
		{http.MethodGet, "/role-requests/stats"},
		{http.MethodPut, "/role-requests/seed-1"},
	} {
		resp := env.do(t, ep.method, ep.path, token, map[string]string{"status": "approved"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s %s", ep.method, ep.path)
	}
}

func TestAdminListAndFilter(t *testing.T) {
	env := newTestEnv(t, store.Seed())
	adminToken := env.register(t, "Admin", "admin@federation.example")
	env.repo.grantAdmin("admin@federation.example")

	resp := env.do(t, http.MethodGet, "/role-requests/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(3), data["total"])

	resp = env.do(t, http.MethodGet, "/role-requests/?status=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = decodeJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
}

func TestAdminReviewFlow(t *testing.T) {
	env := newTestEnv(t, store.Seed())
	adminToken := env.register(t, "Admin", "admin@federation.example")
	env.repo.grantAdmin("admin@federation.example")

	resp := env.do(t, http.MethodPut, "/role-requests/seed-1", adminToken, map[string]string{
		"status":  "approved",
		"comment": "documents verified",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, "approved", data["status"])
	assert.Equal(t, "admin@federation.example", data["reviewed_by"])

	// terminal: a second review conflicts
	resp = env.do(t, http.MethodPut, "/role-requests/seed-1", adminToken, map[string]string{
		"status": "rejected",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// unknown id
	resp = env.do(t, http.MethodPut, "/role-requests/"+uuid.NewString(), adminToken, map[string]string{
		"status": "approved",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/role-requests/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decodeJSON(t, resp)["data"].(map[string]any)
	assert.Equal(t, float64(3), stats["total"])
	assert.Equal(t, float64(0), stats["pending"])
	assert.Equal(t, float64(2), stats["approved"])
	assert.Equal(t, float64(1), stats["rejected"])
}

func TestAccountSuspensionFlow(t *testing.T) {
	env := newTestEnv(t, nil)
	adminToken := env.register(t, "Admin", "admin@federation.example")
	env.repo.grantAdmin("admin@federation.example")
	memberToken := env.register(t, "Eve", "eve@x.com")
	memberID := env.repo.idByEmail("eve@x.com")
	require.NotEmpty(t, memberID)

	// members cannot change account status
	resp := env.do(t, http.MethodPut, "/accounts/"+memberID+"/status", memberToken, map[string]string{"status": "SUSPENDED"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/accounts/"+memberID+"/status", adminToken, map[string]string{"status": "SUSPENDED"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// a suspended member's token no longer authenticates
	resp = env.do(t, http.MethodGet, "/role-requests/status", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/accounts/"+memberID+"/status", adminToken, map[string]string{"status": "banned"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// reactivation restores access
	resp = env.do(t, http.MethodPut, "/accounts/"+memberID+"/status", adminToken, map[string]string{"status": "ACTIVE"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/role-requests/status", memberToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorEnvelopeShape(t *testing.T) {
	env := newTestEnv(t, nil)
	token := env.register(t, "Dave", "dave@x.com")

	resp := env.do(t, http.MethodPost, "/role-requests/", token, map[string]string{
		"requested_role": domain.RoleClubOwner,
		"reason":         "short",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeJSON(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
	assert.NotEmpty(t, errObj["message"])
}

