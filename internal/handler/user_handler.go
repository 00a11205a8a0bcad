package handler

import (
	"net/http"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/service"
	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UploadAvatar godoc
// @Summary Upload a profile picture
// @Tags users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]string
// @Router /profile/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "image file is required")
		return
	}

	url, err := h.userService.UploadAvatar(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusOK, []models.SearchResultResponse{})
		return
	}

	results, err := h.userService.Search(c.Request.Context(), middleware.UserID(c), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
