package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/winter-cloth-service/internal/api/http"
	"github.com/spec-kit/winter-cloth-service/internal/api/http/handlers"
	"github.com/spec-kit/winter-cloth-service/internal/auth"
	"github.com/spec-kit/winter-cloth-service/internal/config"
	"github.com/spec-kit/winter-cloth-service/internal/domain"
	"github.com/spec-kit/winter-cloth-service/internal/observability"
	"github.com/spec-kit/winter-cloth-service/internal/repository"
	"github.com/spec-kit/winter-cloth-service/internal/service"
)

type memUserRepository struct {
	byEmail map[string]*domain.User
}

func (r *memUserRepository) Create(_ context.Context, user *domain.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	user.ID = bson.NewObjectID().Hex()
	user.CreatedAt = time.Now()
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *memUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	found := *user
	return &found, nil
}

type memClothRepository struct {
	docs    []bson.M
	listErr error
}

func (r *memClothRepository) List(_ context.Context, limit int64) ([]bson.M, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if limit > 0 && limit < int64(len(r.docs)) {
		return append([]bson.M{}, r.docs[:limit]...), nil
	}
	return append([]bson.M{}, r.docs...), nil
}

func (r *memClothRepository) GetByID(_ context.Context, id bson.ObjectID) (bson.M, error) {
	for _, doc := range r.docs {
		if doc["_id"] == id {
			return doc, nil
		}
	}
	return nil, repository.ErrClothNotFound
}

func (r *memClothRepository) Create(_ context.Context, payload map[string]any) (bson.ObjectID, error) {
	doc := bson.M{"_id": bson.NewObjectID()}
	for k, v := range payload {
		if k == "_id" {
			continue
		}
		doc[k] = v
	}
	r.docs = append(r.docs, doc)
	return doc["_id"].(bson.ObjectID), nil
}

func (r *memClothRepository) DeleteByID(_ context.Context, id bson.ObjectID) (int64, error) {
	for i, doc := range r.docs {
		if doc["_id"] == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type testEnv struct {
	app     *fiber.App
	auth    *service.AuthService
	cloths  *memClothRepository
	metrics *observability.Metrics
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := config.Config{
		App: config.AppConfig{Name: "winter-cloth-service"},
		Auth: config.AuthConfig{
			JWTSecret:  "test-secret",
			TokenTTL:   time.Hour,
			BcryptCost: 4,
		},
	}

	users := &memUserRepository{byEmail: make(map[string]*domain.User)}
	cloths := &memClothRepository{}

	authService := service.NewAuthService(cfg, users, nil)
	catalogService := service.NewCatalogService(cloths, nil, nil)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, nil),
		Users:          handlers.NewUsersHandler(authService),
		Cloths:         handlers.NewClothsHandler(catalogService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})

	return &testEnv{app: app, auth: authService, cloths: cloths, metrics: metrics}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
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

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	require.NoError(t, e.auth.Register(context.Background(), "Alice", "alice@example.com", "hunter2"))
	token, _, err := e.auth.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	return token
}

func TestStatusRoute(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Server is running smoothly", body["message"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"name": "Alice", "email": "alice@example.com", "password": "hunter2"}
	resp, body := env.request(t, http.MethodPost, "/api/v1/register", "", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "User registered successfully", body["message"])

	resp, body = env.request(t, http.MethodPost, "/api/v1/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "User already exists", body["message"])
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/register", "", map[string]any{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	resp, body := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email": "alice@example.com", "password": "hunter2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])
}

func TestLoginFailuresShareOneShape(t *testing.T) {
	env := newTestEnv(t)
	env.login(t)

	respWrong, bodyWrong := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email": "alice@example.com", "password": "nope",
	})
	respUnknown, bodyUnknown := env.request(t, http.MethodPost, "/api/v1/login", "", map[string]any{
		"email": "bob@example.com", "password": "hunter2",
	})

	assert.Equal(t, http.StatusUnauthorized, respWrong.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respUnknown.StatusCode)
	assert.Equal(t, map[string]any{"message": "Invalid email or password"}, bodyWrong)
	assert.Equal(t, bodyWrong, bodyUnknown)
}

func TestListWithLimit(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	for i := 0; i < 5; i++ {
		resp, _ := env.request(t, http.MethodPost, "/winter-cloth", token, map[string]any{"n": i})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, body := env.request(t, http.MethodGet, "/winter-cloth?limit=2", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 2)

	resp, body = env.request(t, http.MethodGet, "/winter-cloth", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 5)

	// A junk limit behaves like no limit at all.
	resp, body = env.request(t, http.MethodGet, "/winter-cloth?limit=abc", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"], 5)
}

func TestCreateThenGetByID(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp, body := env.request(t, http.MethodPost, "/winter-cloth", token, map[string]any{"color": "red"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	insertedID := data["insertedId"].(string)
	require.NotEmpty(t, insertedID)

	resp, body = env.request(t, http.MethodGet, "/winter-cloth/"+insertedID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	doc := body["data"].(map[string]any)
	assert.Equal(t, "red", doc["color"])
	assert.Equal(t, insertedID, doc["_id"])
}

func TestGetMalformedID(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/winter-cloth/not-hex", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "invalid winter cloth id", body["message"])
}

func TestGetMissingID(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/winter-cloth/"+bson.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "winter cloth not found", body["message"])
}

func TestDeleteMissingReportsZeroCount(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	resp, body := env.request(t, http.MethodDelete, "/winter-cloth/"+bson.NewObjectID().Hex(), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(0), data["deletedCount"])
}

func TestMutationsRequireToken(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodPost, "/winter-cloth", "", map[string]any{"color": "red"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = env.request(t, http.MethodDelete, "/winter-cloth/"+bson.NewObjectID().Hex(), "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStorageFailureMapsTo500(t *testing.T) {
	env := newTestEnv(t)
	env.cloths.listErr = errors.New("connection reset")

	resp, body := env.request(t, http.MethodGet, "/winter-cloth", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "internal server error", body["message"])
}

func TestUnknownRouteIs404(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "Cannot GET")
}

func TestAccessLogRecordsTranslatedStatus(t *testing.T) {
	env := newTestEnv(t)
	env.cloths.listErr = errors.New("connection reset")

	resp, _ := env.request(t, http.MethodGet, "/winter-cloth", "", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// The request counter must see the status the client received, not the
	// pre-translation 200.
	assert.Equal(t, int64(1), env.metrics.RequestCount("/winter-cloth", http.MethodGet, http.StatusInternalServerError))
	assert.Zero(t, env.metrics.RequestCount("/winter-cloth", http.MethodGet, http.StatusOK))
}

func TestReadinessWithoutDependencies(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.request(t, http.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body["status"])
}
