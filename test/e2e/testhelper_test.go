package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/identity-service/internal/adapter/handler"
	"github.com/marcos-nsantos/identity-service/internal/container"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/config"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/identity-service/internal/infrastructure/server"
)

const (
	testJWTSecret = "test-secret-key-for-e2e-tests"
	apiBasePath   = "/api/v1"
)

type TestApp struct {
	Server     *httptest.Server
	Registry   *container.Container
	BaseURL    string
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	gin.SetMode(gin.TestMode)

	registry := container.New(&config.Config{
		JWT:    config.JWTConfig{SecretKey: testJWTSecret, TokenTTL: 15 * time.Minute},
		Hasher: config.HasherConfig{BcryptCost: 4}, // Lower cost for faster tests
	})

	userSvc := registry.UserService()
	userHandler := handler.NewUserHandler(userSvc)
	authMiddleware := middleware.NewAuthMiddleware(registry.TokenService(), userSvc)

	logger, _ := zap.NewDevelopment()
	router := server.NewRouter(server.RouterConfig{
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
		Logger:         logger,
		Environment:    "test",
	})

	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:   ts,
		Registry: registry,
		BaseURL:  ts.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()
	app.Server.Close()
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, app.BaseURL+apiBasePath+path, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}
