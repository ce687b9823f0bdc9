package handlers

import (
	"net/http"

	"github.com/anonto42/linkup/backend/internal/services"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ConnectionHandler serves the connection graph: follow, unfollow and graph queries
type ConnectionHandler struct {
	connectionService *services.ConnectionService
	graphService      *services.GraphService
	log               *zap.Logger
}

// NewConnectionHandler creates a new ConnectionHandler
func NewConnectionHandler(connectionService *services.ConnectionService, graphService *services.GraphService, log *zap.Logger) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
		graphService:      graphService,
		log:               log,
	}
}

// RegisterConnectionRoutes registers connection-related routes
func (h *ConnectionHandler) RegisterConnectionRoutes(g *echo.Group) {
	g.GET("/connections", h.GetConnections)
	g.GET("/connections/requests", h.GetRequests)
	g.GET("/connections/suggestions", h.GetSuggestions)
	g.GET("/connections/stats", h.GetNetworkStats)
	g.POST("/connections/:id/follow", h.Follow)
	g.POST("/connections/:id/unfollow", h.Unfollow)
	g.GET("/connections/:id/mutual", h.GetMutualConnections)
}

func (h *ConnectionHandler) GetConnections(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	connections, err := h.connectionService.Connections(c.Request().Context(), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, connections)
}

// GetRequests always returns an empty list; following needs no acceptance
func (h *ConnectionHandler) GetRequests(c echo.Context) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	return success(c, http.StatusOK, []interface{}{})
}

func (h *ConnectionHandler) GetSuggestions(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	suggestions, err := h.graphService.Suggestions(c.Request().Context(), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, suggestions)
}

func (h *ConnectionHandler) GetNetworkStats(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	stats, err := h.graphService.NetworkStats(c.Request().Context(), userID)
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, stats)
}

// Follow adds :id to the caller's connections
func (h *ConnectionHandler) Follow(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	result, err := h.connectionService.Follow(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, result)
}

// Unfollow removes :id from the caller's connections
func (h *ConnectionHandler) Unfollow(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.connectionService.Unfollow(c.Request().Context(), userID, c.Param("id")); err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, echo.Map{"following": false})
}

func (h *ConnectionHandler) GetMutualConnections(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	mutual, err := h.graphService.MutualConnections(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return serviceError(h.log, err)
	}
	return success(c, http.StatusOK, mutual)
}
