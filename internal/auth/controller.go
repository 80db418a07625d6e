package auth

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"skybook/internal/shared/middleware"
	"skybook/internal/shared/utils/response"
	"skybook/internal/shared/utils/validation"
	"skybook/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var allowedImageTypes = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type Controller struct {
	service       Service
	validator     *validator.Validate
	maxUploadSize int64
}

func NewController(service Service, maxUploadSize int64) *Controller {
	return &Controller{
		service:       service,
		validator:     validation.New(),
		maxUploadSize: maxUploadSize,
	}
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Credentials"
// @Success 200 {object} response.StandardApiResponse
// @Failure 401 {object} response.StandardApiResponse
// @Router /auth/login [post]
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := validation.Check(c.validator, &req); err != nil {
		middleware.RespondError(ctx, err, "Validation failed")
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), middleware.CurrentSession(ctx), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid email or password", nil, nil)
			return
		}
		middleware.RespondError(ctx, err, "Failed to login")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

// Register godoc
// @Summary Create a customer account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Account details"
// @Success 201 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Router /auth/register [post]
func (c *Controller) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := validation.Check(c.validator, &req); err != nil {
		middleware.RespondError(ctx, err, "Validation failed")
		return
	}

	user, err := c.service.Register(ctx.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(ctx, err, "Failed to register user")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", user, nil)
}

func (c *Controller) Logout(ctx *gin.Context) {
	if err := c.service.Logout(ctx.Request.Context(), middleware.CurrentSession(ctx)); err != nil {
		// identity is already gone; stale wizard snapshots expire on their own
		logger.GetDefault().WarnContext(ctx.Request.Context(), "Failed to clear booking snapshots on logout", "error", err)
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Logged out successfully", gin.H{"redirectTo": "/login"}, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully",
		c.service.Me(middleware.CurrentSession(ctx)), nil)
}

func (c *Controller) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := validation.Check(c.validator, &req); err != nil {
		middleware.RespondError(ctx, err, "Validation failed")
		return
	}

	user, err := c.service.UpdateProfile(ctx.Request.Context(), middleware.CurrentSession(ctx), &req)
	if err != nil {
		middleware.RespondError(ctx, err, "Failed to update profile")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile updated successfully", user, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	var req ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := validation.Check(c.validator, &req); err != nil {
		middleware.RespondError(ctx, err, "Validation failed")
		return
	}

	if err := c.service.ChangePassword(ctx.Request.Context(), middleware.CurrentSession(ctx), &req); err != nil {
		middleware.RespondError(ctx, err, "Failed to change password")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

// UploadProfilePicture godoc
// @Summary Upload a profile picture
// @Tags auth
// @Accept multipart/form-data
// @Produce json
// @Param profilePicture formData file true "Image file"
// @Success 200 {object} response.StandardApiResponse
// @Failure 400 {object} response.StandardApiResponse
// @Failure 413 {object} response.StandardApiResponse
// @Router /auth/profile-picture [post]
func (c *Controller) UploadProfilePicture(ctx *gin.Context) {
	header, err := ctx.FormFile("profilePicture")
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Please choose an image to upload", nil, err.Error())
		return
	}

	if c.maxUploadSize > 0 && header.Size > c.maxUploadSize {
		response.RespondJSON(ctx, "error", http.StatusRequestEntityTooLarge, "Image is too large", nil, nil)
		return
	}
	if !allowedImageTypes[strings.ToLower(filepath.Ext(header.Filename))] {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Only JPG, PNG, GIF or WEBP images are allowed", nil, nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Could not read the uploaded image", nil, err.Error())
		return
	}
	defer file.Close()

	user, err := c.service.UploadProfilePicture(ctx.Request.Context(), middleware.CurrentSession(ctx), header.Filename, file)
	if err != nil {
		middleware.RespondError(ctx, err, "Failed to upload profile picture")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Profile picture updated", user, nil)
}

func (c *Controller) ListUsers(ctx *gin.Context) {
	users, err := c.service.ListUsers(ctx.Request.Context(), middleware.CurrentSession(ctx))
	if err != nil {
		middleware.RespondError(ctx, err, "Failed to retrieve users")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Users retrieved successfully", UserListResponse{
		Users: users,
		Count: len(users),
	}, nil)
}
