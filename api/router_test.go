package api

import (
	"bytes"
	"car_configurator_server/config"
	"car_configurator_server/services"
	"car_configurator_server/structs"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	router chi.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Cache.Enabled = false
	cfg.Email.Enabled = false
	cfg.RateLimit.Enabled = false
	cfg.Auth.AccessTokenSecret = "router-test-secret"
	cfg.Auth.AdminEmail = "admin@example.com"
	cfg.Auth.AdminPassword = "admin-password"

	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	sm := services.NewInMemoryServiceManager(logger, cfg)
	sm.AuthService.WithArgonParams(&structs.ArgonParams{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16})
	require.NoError(t, sm.AuthService.EnsureAdmin(context.Background()))

	return &testServer{t: t, router: NewRouter(cfg, sm)}
}

func (ts *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

func (ts *testServer) login(email, password string) string {
	ts.t.Helper()
	rec, env := ts.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(ts.t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(ts.t, auth.Token)
	return auth.Token
}

func (ts *testServer) register(email string) string {
	ts.t.Helper()
	rec, _ := ts.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "password1",
		"name":     "Test User",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return ts.login(email, "password1")
}

type quoteBody struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Total     int64  `json:"total"`
	Car       *struct {
		Name  string `json:"name"`
		Brand string `json:"brand"`
	} `json:"car"`
}

func sampleQuote() map[string]any {
	return map[string]any{
		"carId":          1,
		"colorCode":      "PEARL",
		"optionCodes":    []string{"SUNROOF", "SEATS"},
		"discountName":   "Launch",
		"discountAmount": 1_000_000,
		"deliveryRegion": "Seoul",
		"deliveryFee":    150_000,
		"subtotal":       32_500_000,
		"total":          31_650_000,
	}
}

func (ts *testServer) createQuote(token string) quoteBody {
	ts.t.Helper()
	rec, env := ts.do(http.MethodPost, "/api/quotes", token, sampleQuote())
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())

	var q quoteBody
	require.NoError(ts.t, json.Unmarshal(env.Data, &q))
	return q
}

func TestRootAndUnknownRoute(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec, env := ts.do(http.MethodGet, "/api/cars", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cars []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &cars))
	assert.Len(t, cars, 2)

	rec, _ = ts.do(http.MethodGet, "/api/cars/1/available-colors", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/cars/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/cars/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnonymousQuoteLifecycle(t *testing.T) {
	ts := newTestServer(t)

	q := ts.createQuote("")
	assert.Regexp(t, `^Q-[A-Z0-9]{6}$`, q.Reference)
	assert.Equal(t, int64(31_650_000), q.Total)

	rec, _ := ts.do(http.MethodGet, "/api/quotes/"+q.ID, "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Mutations always need a signed-in caller
	rec, _ = ts.do(http.MethodDelete, "/api/quotes/"+q.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Anonymous quotes belong to nobody, so regular users cannot change them
	user := ts.register("someone@example.com")
	rec, _ = ts.do(http.MethodDelete, "/api/quotes/"+q.ID, user, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin := ts.login("admin@example.com", "admin-password")
	rec, _ = ts.do(http.MethodDelete, "/api/quotes/"+q.ID, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/quotes/"+q.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnedQuoteAccess(t *testing.T) {
	ts := newTestServer(t)
	owner := ts.register("owner@example.com")
	other := ts.register("other@example.com")

	q := ts.createQuote(owner)

	rec, env := ts.do(http.MethodGet, "/api/quotes/"+q.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched quoteBody
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	require.NotNil(t, fetched.Car)
	assert.Equal(t, "Sedan", fetched.Car.Name)

	rec, _ = ts.do(http.MethodGet, "/api/quotes/"+q.ID, "", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/quotes/"+q.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(http.MethodDelete, "/api/quotes/"+q.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env = ts.do(http.MethodGet, "/api/quotes/my", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []quoteBody
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, q.ID, mine[0].ID)
	require.NotNil(t, mine[0].Car)
	assert.Equal(t, "Sedan", mine[0].Car.Name)
	assert.Equal(t, "Hyundai", mine[0].Car.Brand)

	rec, env = ts.do(http.MethodGet, "/api/quotes/my", other, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Empty(t, mine)

	update := sampleQuote()
	update["carId"] = 2
	update["colorCode"] = "BLACK"
	update["optionCodes"] = []string{"SUNROOF"}
	update["subtotal"] = 46_200_000
	update["total"] = 44_400_000
	rec, env = ts.do(http.MethodPut, "/api/quotes/"+q.ID, owner, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated quoteBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, q.Reference, updated.Reference)
	assert.Equal(t, int64(44_400_000), updated.Total)
	require.NotNil(t, updated.Car)
	assert.Equal(t, "SUV", updated.Car.Name)
}

func TestMyQuotesRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(http.MethodGet, "/api/quotes/my", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/quotes/my", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestQuoteValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing car", map[string]any{"colorCode": "PEARL"}},
		{"negative fee", map[string]any{"carId": 1, "colorCode": "PEARL", "deliveryFee": -1}},
		{"unknown color", map[string]any{"carId": 1, "colorCode": "NOPE"}},
		{"unknown option", map[string]any{"carId": 1, "colorCode": "PEARL", "optionCodes": []string{"JETPACK"}}},
		{"unknown field", map[string]any{"carId": 1, "colorCode": "PEARL", "colour": "red"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := ts.do(http.MethodPost, "/api/quotes", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			assert.False(t, env.Success)
		})
	}

	rec, _ := ts.do(http.MethodGet, "/api/quotes/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register("plain@example.com")
	admin := ts.login("admin@example.com", "admin-password")

	paths := []string{"/api/admin/quotes", "/api/admin/users", "/api/users", "/api/faqs/admin/all"}
	for _, path := range paths {
		rec, _ := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

		rec, _ = ts.do(http.MethodGet, path, user, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, path)

		rec, _ = ts.do(http.MethodGet, path, admin, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec, _ := ts.do(http.MethodPost, "/api/cars/admin", user, map[string]any{"name": "Coupe", "basePrice": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/api/cars/admin", admin, map[string]any{"name": "Coupe", "basePrice": 1})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestAdminQuoteListing(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login("admin@example.com", "admin-password")

	for range 3 {
		ts.createQuote("")
	}

	rec, env := ts.do(http.MethodGet, "/api/admin/quotes?page=1&page_size=2", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var page struct {
		Data       []quoteBody `json:"data"`
		Pagination struct {
			Total      int `json:"total"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 3, page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.TotalPages)

	rec, _ = ts.do(http.MethodGet, "/api/admin/quotes?page=0", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("flow@example.com")

	rec, _ := ts.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "FLOW@example.com", "password": "password1", "name": "Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "flow@example.com", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := ts.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "flow@example.com", me["email"])
	assert.NotContains(t, me, "passwordHash")

	rec, _ = ts.do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login("admin@example.com", "admin-password")

	rec, env := ts.do(http.MethodGet, "/api/auth/me", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))

	rec, _ = ts.do(http.MethodDelete, "/api/admin/users/"+me.ID, admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The only administrator cannot leave either
	rec, _ = ts.do(http.MethodDelete, "/api/auth/me", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestContentRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.login("admin@example.com", "admin-password")

	rec, _ := ts.do(http.MethodGet, "/api/brands", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = ts.do(http.MethodPost, "/api/brands/admin", admin, map[string]any{"name": "Hyundai", "tagline": "New thinking"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, _ = ts.do(http.MethodGet, "/api/brands", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	inactive := false
	rec, _ = ts.do(http.MethodPost, "/api/faqs/admin", admin, map[string]any{
		"category": "payment", "question": "Cash?", "answer": "No", "isActive": inactive,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec, _ = ts.do(http.MethodPost, "/api/faqs/admin", admin, map[string]any{
		"category": "payment", "question": "Card?", "answer": "Yes",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := ts.do(http.MethodGet, "/api/faqs?category=payment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var faqs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &faqs))
	require.Len(t, faqs, 1)
	assert.Equal(t, "Card?", faqs[0]["question"])

	rec, _ = ts.do(http.MethodPost, "/api/showrooms/admin", admin, map[string]any{"name": "Gangnam", "address": "1 Main St", "region": "Seoul"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env = ts.do(http.MethodGet, "/api/showrooms?region=Busan", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var showrooms []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &showrooms))
	assert.Empty(t, showrooms)
}

func TestHealthRoutes(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/api/health/server", "/api/health/database", "/api/health/cache"} {
		rec, _ := ts.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec, _ := ts.do(http.MethodGet, "/api/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRootHealthAliases(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(http.MethodGet, "/health/server", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = ts.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
