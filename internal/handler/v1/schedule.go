package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/schedule"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type ScheduleHandler struct {
	schedules *service.ScheduleService
	log       *zap.Logger
}

func NewScheduleHandler(schedules *service.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, log: log}
}

type shiftPayload struct {
	Username   string    `json:"username" binding:"required"`
	StartsAt   time.Time `json:"start" binding:"required"`
	EndsAt     time.Time `json:"end" binding:"required"`
	Department string    `json:"department"`
}

func (p shiftPayload) form() schedule.ShiftForm {
	return schedule.ShiftForm{
		StaffUsername: p.Username,
		StartsAt:      p.StartsAt,
		EndsAt:        p.EndsAt,
		Department:    p.Department,
	}
}

type createShiftsRequest struct {
	Shifts []shiftPayload `json:"shifts" binding:"required"`
}

func (h *ScheduleHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req createShiftsRequest
	if !bindJSON(c, &req) {
		return
	}

	forms := make([]schedule.ShiftForm, len(req.Shifts))
	for i, p := range req.Shifts {
		forms[i] = p.form()
	}

	if err := h.schedules.Create(c.Request.Context(), claims.HospitalID, forms); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: "shifts created"})
}

type updateShiftPayload struct {
	Username string       `json:"username" binding:"required"`
	StartsAt time.Time    `json:"start" binding:"required"`
	New      shiftPayload `json:"new" binding:"required"`
}

type updateShiftsRequest struct {
	Shifts []updateShiftPayload `json:"shifts" binding:"required"`
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req updateShiftsRequest
	if !bindJSON(c, &req) {
		return
	}

	updates := make([]schedule.ShiftUpdate, len(req.Shifts))
	for i, p := range req.Shifts {
		updates[i] = schedule.ShiftUpdate{
			ID:  schedule.ShiftID{StaffUsername: p.Username, StartsAt: p.StartsAt},
			New: p.New.form(),
		}
	}

	if err := h.schedules.Update(c.Request.Context(), claims.HospitalID, updates); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "shifts updated"})
}

type deleteShiftPayload struct {
	Username string    `json:"username" binding:"required"`
	StartsAt time.Time `json:"start" binding:"required"`
}

type deleteShiftsRequest struct {
	Shifts []deleteShiftPayload `json:"shifts" binding:"required"`
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req deleteShiftsRequest
	if !bindJSON(c, &req) {
		return
	}

	ids := make([]schedule.ShiftID, len(req.Shifts))
	for i, p := range req.Shifts {
		ids[i] = schedule.ShiftID{StaffUsername: p.Username, StartsAt: p.StartsAt}
	}

	if err := h.schedules.Delete(c.Request.Context(), claims.HospitalID, ids); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "shifts deleted"})
}

func (h *ScheduleHandler) Find(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid from, expected RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid to, expected RFC 3339"})
		return
	}

	shifts, err := h.schedules.Find(c.Request.Context(), schedule.Query{
		HospitalID:    claims.HospitalID,
		StaffUsername: c.Query("username"),
		From:          from,
		To:            to,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shifts": shifts})
}
