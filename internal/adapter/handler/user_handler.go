package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marcos-nsantos/identity-service/internal/adapter/handler/dto/request"
	"github.com/marcos-nsantos/identity-service/internal/adapter/handler/dto/response"
	"github.com/marcos-nsantos/identity-service/internal/domain"
	"github.com/marcos-nsantos/identity-service/internal/pkg/httputil"
	"github.com/marcos-nsantos/identity-service/internal/usecase/user"
)

type UserHandler struct {
	userSvc UserService
}

func NewUserHandler(userSvc UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account and return it with a bearer token
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.RegisterRequest	true	"Registration data"
//	@Success		201		{object}	response.AuthResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		409		{object}	httputil.ErrorResponse	"Email already registered"
//	@Router			/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	result, err := h.userSvc.Register(c.Request.Context(), user.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.Created(c, response.AuthResponse{
		User:  response.UserFromEntity(result.User),
		Token: result.Token,
	})
}

// Login godoc
//
//	@Summary		Authenticate a user
//	@Description	Verify credentials and return a fresh bearer token
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		request.LoginRequest	true	"Credentials"
//	@Success		200		{object}	response.AuthResponse
//	@Failure		400		{object}	httputil.ErrorResponse
//	@Failure		401		{object}	httputil.ErrorResponse	"Invalid credentials"
//	@Router			/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	result, err := h.userSvc.Authenticate(c.Request.Context(), user.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.AuthResponse{
		User:  response.UserFromEntity(result.User),
		Token: result.Token,
	})
}

// GetProfile godoc
//
//	@Summary	Get the authenticated user's profile
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	response.UserResponse
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	claim := httputil.GetClaim(c)
	if claim == nil {
		httputil.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.userSvc.GetUserByID(c.Request.Context(), claim.UserID)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// UpdateProfile godoc
//
//	@Summary	Update the authenticated user's profile
//	@Tags		users
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		request.UpdateProfileRequest	true	"Fields to update"
//	@Success	200		{object}	response.UserResponse
//	@Failure	400		{object}	httputil.ErrorResponse
//	@Failure	409		{object}	httputil.ErrorResponse	"Email already taken"
//	@Router		/users/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claim := httputil.GetClaim(c)
	if claim == nil {
		httputil.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	u, err := h.userSvc.UpdateUser(c.Request.Context(), claim.UserID, user.UpdateInput{
		Email: req.Email,
		Name:  req.Name,
	})
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// ChangePassword godoc
//
//	@Summary	Change the authenticated user's password
//	@Tags		users
//	@Security	BearerAuth
//	@Accept		json
//	@Success	204	"No content"
//	@Failure	400	{object}	httputil.ErrorResponse
//	@Failure	401	{object}	httputil.ErrorResponse	"Wrong current password"
//	@Router		/users/change-password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	claim := httputil.GetClaim(c)
	if claim == nil {
		httputil.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	if err := h.userSvc.ChangePassword(c.Request.Context(), claim.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.NoContent(c)
}

// DeleteProfile godoc
//
//	@Summary	Delete the authenticated user's account
//	@Tags		users
//	@Security	BearerAuth
//	@Success	204	"No content"
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/profile [delete]
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	claim := httputil.GetClaim(c)
	if claim == nil {
		httputil.Error(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	deleted, err := h.userSvc.DeleteUser(c.Request.Context(), claim.UserID)
	if err != nil {
		httputil.HandleError(c, err)
		return
	}
	if !deleted {
		httputil.HandleError(c, domain.ErrUserNotFound)
		return
	}

	httputil.NoContent(c)
}

// ListUsers godoc
//
//	@Summary	List all users
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	response.UserListResponse
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Router		/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.GetAllUsers(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UserListResponse{
		Users: response.UsersFromEntities(users),
		Count: len(users),
	})
}

// GetUser godoc
//
//	@Summary	Get a user by id
//	@Tags		users
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"User id"
//	@Success	200	{object}	response.UserResponse
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Failure	404	{object}	httputil.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.userSvc.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httputil.Error(c, http.StatusNotFound, "user not found")
			return
		}
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.UserFromEntity(u))
}

// Stats godoc
//
//	@Summary	Directory statistics
//	@Tags		stats
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{object}	response.StatsResponse
//	@Failure	401	{object}	httputil.ErrorResponse
//	@Router		/stats [get]
func (h *UserHandler) Stats(c *gin.Context) {
	stats, err := h.userSvc.Stats(c.Request.Context())
	if err != nil {
		httputil.HandleError(c, err)
		return
	}

	httputil.OK(c, response.StatsResponse{
		TotalUsers:   stats.TotalUsers,
		CreatedToday: stats.CreatedToday,
	})
}
