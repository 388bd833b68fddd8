package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmedarov/villageride/internal/service"
)

// BoardHandler handles the public board and search endpoints.
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a new BoardHandler.
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// BoardResponse is the initial board payload: upcoming active rides and
// open requests.
type BoardResponse struct {
	Rides    []RideResponse    `json:"rides"`
	Requests []RequestResponse `json:"requests"`
}

// Index handles GET /
func (h *BoardHandler) Index(c *gin.Context) {
	rides, requests, err := h.boardService.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BoardResponse{
		Rides:    toRideResponses(rides),
		Requests: toRequestResponses(requests),
	})
}

// SearchRides handles GET /search_rides
func (h *BoardHandler) SearchRides(c *gin.Context) {
	rides, err := h.boardService.SearchRides(c.Request.Context(), service.RideSearch{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
		Type: c.Query("type"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRideResponses(rides))
}

// SearchRequests handles GET /search_requests
func (h *BoardHandler) SearchRequests(c *gin.Context) {
	requests, err := h.boardService.SearchRequests(c.Request.Context(), service.RequestSearch{
		From:   c.Query("from"),
		To:     c.Query("to"),
		Date:   c.Query("date"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRequestResponses(requests))
}
