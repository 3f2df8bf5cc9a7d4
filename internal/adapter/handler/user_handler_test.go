package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/marcos-nsantos/identity-service/internal/adapter/handler"
	"github.com/marcos-nsantos/identity-service/internal/adapter/repository"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/domain/entity"
	"github.com/marcos-nsantos/identity-service/internal/mocks"
	"github.com/marcos-nsantos/identity-service/internal/usecase/user"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withClaim mimics the auth middleware for handlers that require a subject.
func withClaim(claim *entity.TokenClaim) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("claim", claim)
		c.Next()
	}
}

func TestUserHandler_Register(t *testing.T) {
	t.Run("registers user successfully", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		userSvc.EXPECT().Register(gomock.Any(), user.RegisterInput{
			Email:    "ann@x.com",
			Name:     "Ann",
			Password: "secret1",
		}).Return(&user.AuthResult{
			User:  &entity.PublicUser{ID: "user-1", Email: "ann@x.com", Name: "Ann"},
			Token: "issued-token",
		}, nil)

		body := `{"email":"ann@x.com","name":"Ann","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "issued-token", resp["token"])
		userObj := resp["user"].(map[string]any)
		assert.Equal(t, "ann@x.com", userObj["email"])
		assert.NotContains(t, userObj, "passwordHash")
	})

	t.Run("returns conflict for existing email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		userSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, domain.ErrUserAlreadyExists)

		body := `{"email":"ann@x.com","name":"Ann","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("maps core validation errors to bad request", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.POST("/register", h.Register)

		userSvc.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidEmail)

		body := `{"email":"bad","name":"Ann","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_Login(t *testing.T) {
	t.Run("logs in successfully", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		userSvc.EXPECT().Authenticate(gomock.Any(), user.Credentials{
			Email:    "ann@x.com",
			Password: "secret1",
		}).Return(&user.AuthResult{
			User:  &entity.PublicUser{ID: "user-1", Email: "ann@x.com"},
			Token: "fresh-token",
		}, nil)

		body := `{"email":"ann@x.com","password":"secret1"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("returns unauthorized for bad credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.POST("/login", h.Login)

		userSvc.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidCredentials)

		body := `{"email":"ann@x.com","password":"wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_Profile(t *testing.T) {
	claim := &entity.TokenClaim{UserID: "user-1", Email: "ann@x.com"}

	t.Run("returns the authenticated user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.GET("/profile", withClaim(claim), h.GetProfile)

		userSvc.EXPECT().GetUserByID(gomock.Any(), "user-1").
			Return(&entity.PublicUser{ID: "user-1", Email: "ann@x.com", Name: "Ann"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("updates the profile partially", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.PUT("/profile", withClaim(claim), h.UpdateProfile)

		userSvc.EXPECT().UpdateUser(gomock.Any(), "user-1", user.UpdateInput{Name: "Annette"}).
			Return(&entity.PublicUser{ID: "user-1", Email: "ann@x.com", Name: "Annette"}, nil)

		body := `{"name":"Annette"}`
		req := httptest.NewRequest(http.MethodPut, "/profile", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deletes the account", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.DELETE("/profile", withClaim(claim), h.DeleteProfile)

		userSvc.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(true, nil)

		req := httptest.NewRequest(http.MethodDelete, "/profile", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing claim is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.GET("/profile", h.GetProfile)

		req := httptest.NewRequest(http.MethodGet, "/profile", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	claim := &entity.TokenClaim{UserID: "user-1", Email: "ann@x.com"}

	t.Run("changes the password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.PUT("/change-password", withClaim(claim), h.ChangePassword)

		userSvc.EXPECT().ChangePassword(gomock.Any(), "user-1", "old-secret", "new-secret").Return(nil)

		body := `{"currentPassword":"old-secret","newPassword":"new-secret"}`
		req := httptest.NewRequest(http.MethodPut, "/change-password", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("wrong current password is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.PUT("/change-password", withClaim(claim), h.ChangePassword)

		userSvc.EXPECT().ChangePassword(gomock.Any(), "user-1", "wrong", "new-secret").
			Return(domain.ErrInvalidCredentials)

		body := `{"currentPassword":"wrong","newPassword":"new-secret"}`
		req := httptest.NewRequest(http.MethodPut, "/change-password", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserHandler_ListAndGet(t *testing.T) {
	t.Run("lists users with a count", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.GET("/users", h.ListUsers)

		userSvc.EXPECT().GetAllUsers(gomock.Any()).Return([]entity.PublicUser{
			{ID: "user-1", Email: "ann@x.com"},
			{ID: "user-2", Email: "bob@x.com"},
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(2), resp["count"])
	})

	t.Run("unknown user id is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		userSvc := mocks.NewMockUserService(ctrl)
		h := handler.NewUserHandler(userSvc)

		router := setupRouter()
		router.GET("/users/:id", h.GetUser)

		userSvc.EXPECT().GetUserByID(gomock.Any(), "missing").Return(nil, domain.ErrUserNotFound)

		req := httptest.NewRequest(http.MethodGet, "/users/missing", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userSvc := mocks.NewMockUserService(ctrl)
	h := handler.NewUserHandler(userSvc)

	router := setupRouter()
	router.GET("/stats", h.Stats)

	userSvc.EXPECT().Stats(gomock.Any()).
		Return(&repository.Stats{TotalUsers: 5, CreatedToday: 2}, nil)

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(5), resp["total_users"])
	assert.Equal(t, float64(2), resp["created_today"])
}
