package handler

import (
	"net/http"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/service"
	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Feed(c *gin.Context) {
	posts, err := h.postService.Feed(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) UserPosts(c *gin.Context) {
	posts, err := h.postService.UserPosts(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) LikedPosts(c *gin.Context) {
	posts, err := h.postService.LikedPosts(c.Request.Context(), middleware.UserID(c), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *PostHandler) Like(c *gin.Context) {
	if err := h.postService.Like(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	if err := h.postService.Unlike(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	comment, err := h.postService.AddComment(c.Request.Context(), middleware.UserID(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *PostHandler) Comments(c *gin.Context) {
	comments, err := h.postService.Comments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}
