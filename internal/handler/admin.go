package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmedarov/villageride/internal/config"
	"github.com/dmedarov/villageride/internal/domain"
	"github.com/dmedarov/villageride/internal/middleware"
	"github.com/dmedarov/villageride/internal/service"
)

// AdminHandler handles admin authentication and the moderation views.
type AdminHandler struct {
	adminService *service.AdminService
	boardService *service.BoardService
	cfg          config.AdminConfig
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *service.AdminService, boardService *service.BoardService, cfg config.AdminConfig) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		boardService: boardService,
		cfg:          cfg,
	}
}

// LoginRequest is the HTTP request body for admin login.
type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.adminService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := middleware.NewAdminSession(h.cfg.SessionSecret, user.Username, h.cfg.SessionTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(middleware.AdminSessionCookie, token, int(h.cfg.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Успешен вход в админ панела."})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	c.SetCookie(middleware.AdminSessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Излязохте от админ панела."})
}

// DashboardResponse carries the admin dashboard aggregate counts.
type DashboardResponse struct {
	TotalRides     int `json:"total_rides"`
	RidesToday     int `json:"rides_today"`
	UpcomingRides  int `json:"upcoming_rides"`
	ActiveRequests int `json:"active_requests"`
	RequestsToday  int `json:"requests_today"`
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{
		TotalRides:     stats.TotalRides,
		RidesToday:     stats.RidesToday,
		UpcomingRides:  stats.UpcomingRides,
		ActiveRequests: stats.ActiveRequests,
		RequestsToday:  stats.RequestsToday,
	})
}

// Rides handles GET /admin/rides
func (h *AdminHandler) Rides(c *gin.Context) {
	rides, err := h.boardService.AdminRides(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRideResponses(rides))
}

// Requests handles GET /admin/requests
func (h *AdminHandler) Requests(c *gin.Context) {
	requests, err := h.boardService.AdminRequests(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRequestResponses(requests))
}

// AuditLogResponse is the serialized form of one audit entry.
type AuditLogResponse struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	RideID    *int64 `json:"ride_id"`
	RequestID *int64 `json:"request_id"`
	AdminUser string `json:"admin_user,omitempty"`
}

// Logs handles GET /admin/logs
func (h *AdminHandler) Logs(c *gin.Context) {
	entries, err := h.adminService.AuditLog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, auditLogResponse(e))
	}
	c.JSON(http.StatusOK, response)
}

func auditLogResponse(e *domain.AuditEntry) AuditLogResponse {
	return AuditLogResponse{
		ID:        e.ID,
		Timestamp: formatTimestamp(e.Timestamp),
		Action:    e.Action,
		RideID:    e.RideID,
		RequestID: e.RequestID,
		AdminUser: e.AdminUser,
	}
}
