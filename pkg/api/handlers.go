package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/gameday/pkg/core/attendance"
	"github.com/jakechorley/gameday/pkg/core/model"
	"github.com/jakechorley/gameday/pkg/core/services"
)

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) handleHealthz(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "db": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": true})
}

// loadMatrix builds a fresh snapshot for the request. Loading per request
// means two concurrent writers can briefly disagree; the next load heals
// any drift.
func (s *Server) loadMatrix(c *gin.Context) (*attendance.Matrix, bool) {
	matrix, err := services.LoadMatrix(c.Request.Context(), s.store, s.logger)
	if err != nil {
		matrixLoads.WithLabelValues("error").Inc()
		s.writeError(c, err)
		return nil, false
	}
	matrixLoads.WithLabelValues("ok").Inc()
	return matrix, true
}

func (s *Server) handleListDates(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"dates": matrix.Dates()})
}

func (s *Server) handleRoster(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	opts := attendance.FilterOptions{
		SearchText:      c.Query("search"),
		Department:      c.Query("department"),
		IncludeInactive: c.Query("include_inactive") == "true",
	}

	filtered := attendance.FilterVolunteers(matrix.Volunteers(), opts)

	views := make([]interface{}, 0, len(filtered))
	for _, vol := range filtered {
		views = append(views, matrix.View(vol.ID))
	}

	c.JSON(http.StatusOK, gin.H{
		"dates":      matrix.Dates(),
		"volunteers": views,
	})
}

func (s *Server) handleRosterByDepartment(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	groups := attendance.GroupByDepartment(matrix.Volunteers())
	c.JSON(http.StatusOK, gin.H{"departments": groups})
}

func (s *Server) handleGetVolunteer(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	view := matrix.View(c.Param("id"))
	if view == nil {
		s.writeError(c, attendance.ErrNotFound("volunteer %s not found", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleSetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, attendance.ErrValidation("invalid request body: %v", err))
		return
	}

	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	view, err := matrix.SetStatus(c.Request.Context(), c.Param("id"), c.Param("dateID"), model.AttendanceStatus(req.Status))
	recordMutation("set_status", err)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleClearStatus(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	view, err := matrix.ClearStatus(c.Request.Context(), c.Param("id"), c.Param("dateID"))
	recordMutation("clear_status", err)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (s *Server) handleToggleActive(c *gin.Context) {
	matrix, ok := s.loadMatrix(c)
	if !ok {
		return
	}

	vol, err := matrix.ToggleActive(c.Request.Context(), c.Param("id"))
	recordMutation("toggle_active", err)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, vol)
}

// writeError maps the attendance error taxonomy onto HTTP statuses
func (s *Server) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch attendance.KindOf(err) {
	case attendance.KindValidation:
		status = http.StatusBadRequest
	case attendance.KindNotFound:
		status = http.StatusNotFound
	case attendance.KindConstraintViolation:
		status = http.StatusConflict
	case attendance.KindStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("Request rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
