package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type WardHandler struct {
	wards *service.WardService
	audit *service.AuditService
	log   *zap.Logger
}

func NewWardHandler(wards *service.WardService, audit *service.AuditService, log *zap.Logger) *WardHandler {
	return &WardHandler{wards: wards, audit: audit, log: log}
}

type equipmentPayload struct {
	SerialNo         string `json:"serialNo" binding:"required"`
	Name             string `json:"name" binding:"required"`
	UnderMaintenance bool   `json:"underMaintenance"`
}

type roomRequest struct {
	Name       string             `json:"roomName" binding:"required"`
	Department string             `json:"department" binding:"required"`
	Beds       int                `json:"beds"`
	Equipment  []equipmentPayload `json:"equipment"`
}

func equipmentForms(payloads []equipmentPayload) []ward.EquipmentForm {
	forms := make([]ward.EquipmentForm, len(payloads))
	for i, p := range payloads {
		forms[i] = ward.EquipmentForm{
			SerialNo:         p.SerialNo,
			Name:             p.Name,
			UnderMaintenance: p.UnderMaintenance,
		}
	}
	return forms
}

func (h *WardHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req roomRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.wards.CreateRoom(c.Request.Context(), claims.HospitalID, ward.CreateRoomCommand{
		Name:       req.Name,
		Department: req.Department,
		Beds:       req.Beds,
		Equipment:  equipmentForms(req.Equipment),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.recordAudit(c, claims, domain.ActionCreate, req.Name)
	c.JSON(http.StatusCreated, messageResponse{Message: "room created"})
}

func (h *WardHandler) Get(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	details, err := h.wards.GetRoom(c.Request.Context(), claims.HospitalID, c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *WardHandler) List(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	rooms, err := h.wards.ListRooms(c.Request.Context(), claims.HospitalID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h *WardHandler) Update(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req roomRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = c.Param("name")

	err := h.wards.UpdateRoom(c.Request.Context(), claims.HospitalID, ward.UpdateRoomCommand{
		Name:       req.Name,
		Department: req.Department,
		Beds:       req.Beds,
		Equipment:  equipmentForms(req.Equipment),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.recordAudit(c, claims, domain.ActionUpdate, req.Name)
	c.JSON(http.StatusOK, messageResponse{Message: "room updated"})
}

func (h *WardHandler) Delete(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)
	name := c.Param("name")

	if err := h.wards.DeleteRoom(c.Request.Context(), claims.HospitalID, name); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.recordAudit(c, claims, domain.ActionDelete, name)
	c.JSON(http.StatusOK, messageResponse{Message: "room deleted"})
}

func (h *WardHandler) recordAudit(c *gin.Context, claims *domain.Claims, action domain.AuditAction, room string) {
	h.audit.Record(domain.AuditLog{
		Username:     claims.Username,
		HospitalID:   claims.HospitalID,
		UserRole:     claims.Role,
		IPAddress:    c.ClientIP(),
		Action:       action,
		ResourceType: "room",
		ResourceID:   room,
		RequestID:    middleware.RequestIDFrom(c),
	})
}
