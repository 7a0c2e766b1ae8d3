package wire

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clothing-shop/internal/data/entity"
	"clothing-shop/internal/data/repository"
	"clothing-shop/internal/data/repository/repotest"
	"clothing-shop/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router   http.Handler
	products *repotest.Collection[entity.Product]
	users    *repotest.Collection[entity.User]
	orders   *repotest.Collection[entity.Order]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		products: repotest.NewCollection[entity.Product](repository.ProductsCollection, "id"),
		users:    repotest.NewCollection[entity.User](repository.UsersCollection, "id"),
		orders:   repotest.NewCollection[entity.Order](repository.OrdersCollection, "id"),
	}
	repo := &repository.Repository{
		Account: repotest.NewCollection[entity.Account](repository.AccountsCollection, "email"),
		Product: env.products,
		User:    env.users,
		Order:   env.orders,
		Scraped: repotest.NewCollection[entity.ScrapedProduct](repository.ScrapedProductsCollection),
	}

	cfg, err := utils.LoadConfig("")
	require.NoError(t, err)
	cfg.JWT.Secret = "test-secret"

	env.router = Wiring(repo, cfg, zap.NewNop(), Options{}).Router
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	creds := map[string]string{"email": "a@x.com", "password": "pw"}

	rec := env.do(t, http.MethodPost, "/api/auth/register", creds, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, decodeBody[map[string]string](t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "a@x.com", "password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decodeBody[map[string]string](t, rec)["message"])

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "nobody@x.com", "password": "pw"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", creds, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody[map[string]string](t, rec)["access_token"]
	require.NotEmpty(t, token)

	rec = env.do(t, http.MethodGet, "/api/auth/protected", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logged_in_as":"a@x.com"}`, rec.Body.String())

	t.Run("ProtectedWithoutToken", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/auth/protected", nil, "").Code)
	})

	t.Run("ProtectedWithTamperedToken", func(t *testing.T) {
		tampered := token[:len(token)-2] + "xx"
		assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/auth/protected", nil, tampered).Code)
	})

	t.Run("ProtectedWithExpiredToken", func(t *testing.T) {
		expired, err := utils.GenerateToken("test-secret", "a@x.com", -time.Minute)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/api/auth/protected", nil, expired).Code)
	})

	t.Run("RegisterReportsFieldErrors", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/auth/register", map[string]string{"email": "not-an-email"}, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := decodeBody[struct {
			Message string            `json:"message"`
			Errors  map[string]string `json:"errors"`
		}](t, rec)
		assert.Equal(t, "Validation failed", body.Message)
		assert.Equal(t, map[string]string{
			"Email":    "Invalid email format",
			"Password": "This field is required",
		}, body.Errors)
	})

	t.Run("DuplicateRegisterIsGenericFailure", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, env.do(t, http.MethodPost, "/api/auth/register", creds, "").Code)
	})
}

func TestProductRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/products", map[string]any{
		"id": 1, "product_name": "Denim Jacket", "price": 79.5, "stock": 3, "brand": "Acme",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("RejectsUnknownFields", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products", map[string]any{"id": 2, "product_name": "X", "colour": "red"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 1, env.products.Len())
	})

	t.Run("RejectsNegativeStock", func(t *testing.T) {
		rec := env.do(t, http.MethodPost, "/api/products", map[string]any{"id": 2, "product_name": "X", "stock": -1}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Must be at least 0", decodeBody[struct {
			Errors map[string]string `json:"errors"`
		}](t, rec).Errors["Stock"])
	})

	rec = env.do(t, http.MethodPut, "/api/products/Denim%20Jacket", map[string]any{"price": 59.0}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/products", nil, "")
	products := decodeBody[[]map[string]any](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, 59.0, products[0]["price"])
	assert.Equal(t, "Acme", products[0]["brand"])
	assert.NotContains(t, products[0], "_id")

	t.Run("UpdateMissingStill200", func(t *testing.T) {
		rec := env.do(t, http.MethodPut, "/api/products/Ghost", map[string]any{"price": 1.0}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("DeleteMissingStill200", func(t *testing.T) {
		rec := env.do(t, http.MethodDelete, "/api/products/Ghost", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, env.products.Len())
	})

	rec = env.do(t, http.MethodDelete, "/api/products/Denim%20Jacket", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, env.products.Len())
}

func TestListRoutes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.users.Insert(ctx, &entity.User{
		ID: 1, FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.com",
		Address: entity.Address{City: "London"},
	}))
	require.NoError(t, env.orders.Insert(ctx, &entity.Order{
		ID: 10, UserID: 1, Status: "shipped",
		Products: []entity.OrderItem{{ProductID: 1, Quantity: 2, Price: 9.5}},
	}))

	rec := env.do(t, http.MethodGet, "/api/users", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	users := decodeBody[[]entity.User](t, rec)
	require.Len(t, users, 1)
	assert.Equal(t, "London", users[0].Address.City)

	rec = env.do(t, http.MethodGet, "/api/orders", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decodeBody[[]entity.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, []entity.OrderItem{{ProductID: 1, Quantity: 2, Price: 9.5}}, orders[0].Products)
}

func TestHomeAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Online Clothing Shop API!"}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/metrics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
