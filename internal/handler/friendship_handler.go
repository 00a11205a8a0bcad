package handler

import (
	"net/http"

	"campusnet/internal/middleware"
	"campusnet/internal/models"
	"campusnet/internal/service"
	"campusnet/pkg/response"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	friendshipService *service.FriendshipService
	presenceService   *service.PresenceService
}

func NewFriendshipHandler(friendshipService *service.FriendshipService, presenceService *service.PresenceService) *FriendshipHandler {
	return &FriendshipHandler{
		friendshipService: friendshipService,
		presenceService:   presenceService,
	}
}

// Request godoc
// @Summary Send a friend request
// @Description Creates a pending friendship. Any existing relationship for the pair, in either direction, is a conflict.
// @Tags friendships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.FriendshipRequest true "Receiver"
// @Success 201 {object} models.Friendship
// @Failure 400 {object} response.ErrorBody "Self-referential request"
// @Failure 404 {object} response.ErrorBody "Receiver does not exist"
// @Failure 409 {object} response.ErrorBody "Relationship already exists"
// @Router /friendships [post]
func (h *FriendshipHandler) Request(c *gin.Context) {
	var req models.FriendshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		return
	}

	f, err := h.friendshipService.Request(c.Request.Context(), middleware.UserID(c), req.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, f)
}

// Accept godoc
// @Summary Accept a pending friend request
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friendship ID"
// @Success 200 {object} models.Friendship
// @Failure 403 {object} response.ErrorBody "Acting user is not the receiver"
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody "Not in pending state"
// @Router /friendships/{id}/accept [put]
func (h *FriendshipHandler) Accept(c *gin.Context) {
	f, err := h.friendshipService.Accept(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, f)
}

// Reject godoc
// @Summary Reject a pending friend request
// @Description Removes the record entirely; the requester may ask again later.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friendship ID"
// @Success 204
// @Router /friendships/{id}/reject [put]
func (h *FriendshipHandler) Reject(c *gin.Context) {
	if err := h.friendshipService.Reject(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Break godoc
// @Summary Break an accepted friendship
// @Description Either party may break it. Derived privileges (chat) are revoked immediately.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param id path string true "Friendship ID"
// @Success 204
// @Router /friendships/{id} [delete]
func (h *FriendshipHandler) Break(c *gin.Context) {
	if err := h.friendshipService.Break(c.Request.Context(), c.Param("id"), middleware.UserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Relation godoc
// @Summary Friendship status between two users
// @Description Projection for the UI: status from user1's viewpoint plus which row accept/reject act on.
// @Tags friendships
// @Produce json
// @Security BearerAuth
// @Param user1 query string true "Viewing user"
// @Param user2 query string true "Target user"
// @Success 200 {object} models.RelationResponse
// @Router /friendships [get]
func (h *FriendshipHandler) Relation(c *gin.Context) {
	user1 := c.Query("user1")
	user2 := c.Query("user2")
	if user1 == "" || user2 == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "user1 and user2 are required")
		return
	}

	relation, err := h.friendshipService.Relation(c.Request.Context(), user1, user2)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, relation)
}

func (h *FriendshipHandler) Friends(c *gin.Context) {
	friends, err := h.friendshipService.Friends(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

func (h *FriendshipHandler) PendingRequests(c *gin.Context) {
	requests, err := h.friendshipService.PendingIncoming(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *FriendshipHandler) OnlineFriends(c *gin.Context) {
	online, err := h.presenceService.OnlineFriends(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, online)
}
