package handler

import (
	"net/http"
	"strconv"

	"github.com/fitmatch-app/backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.UseCase
}

func NewMatchHandler(matchUseCase *match.UseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// LikeRequest represents a like on another user
type LikeRequest struct {
	TargetUserID int `json:"target_user_id" binding:"required"`
}

// LikeResponse is returned for both one-sided and mutual likes
type LikeResponse struct {
	MatchID int    `json:"match_id"`
	Status  string `json:"status"`
	Score   int    `json:"match_score"`
	Mutual  bool   `json:"mutual"`
	ChatID  string `json:"chat_id,omitempty"`
}

// Like records a like; a reciprocal like completes the match and opens a chat
func (h *MatchHandler) Like(c *gin.Context) {
	var req LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	userID := c.GetInt("user_id")
	result, err := h.matchUseCase.Like(c.Request.Context(), userID, req.TargetUserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LikeResponse{
		MatchID: result.Match.ID,
		Status:  string(result.Match.Status),
		Score:   result.Match.Score,
		Mutual:  result.Mutual,
		ChatID:  result.ChatID,
	})
}

// Reject turns down a pending match
func (h *MatchHandler) Reject(c *gin.Context) {
	matchID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid match id"})
		return
	}

	userID := c.GetInt("user_id")
	if err := h.matchUseCase.Reject(c.Request.Context(), userID, matchID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMutual returns the caller's accepted matches
func (h *MatchHandler) ListMutual(c *gin.Context) {
	userID := c.GetInt("user_id")
	matches, err := h.matchUseCase.ListMutual(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// Nearby returns scored candidates within matching range
func (h *MatchHandler) Nearby(c *gin.Context) {
	userID := c.GetInt("user_id")
	candidates, err := h.matchUseCase.Nearby(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates})
}
