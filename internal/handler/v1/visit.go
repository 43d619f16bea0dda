package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/visit"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type VisitHandler struct {
	visits *service.VisitService
	audit  *service.AuditService
	log    *zap.Logger
}

func NewVisitHandler(visits *service.VisitService, audit *service.AuditService, log *zap.Logger) *VisitHandler {
	return &VisitHandler{visits: visits, audit: audit, log: log}
}

type admitRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *VisitHandler) Admit(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req admitRequest
	if !bindJSON(c, &req) {
		return
	}

	v, err := h.visits.Admit(c.Request.Context(), claims.HospitalID, visit.AdmitCommand{
		PatientID: req.PatientID,
		Reason:    req.Reason,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.recordAudit(c, claims, domain.ActionCreate, req.PatientID)
	c.JSON(http.StatusCreated, v)
}

type dischargeRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	Summary   string `json:"summary"`
}

func (h *VisitHandler) Discharge(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req dischargeRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.Discharge(c.Request.Context(), claims.HospitalID, visit.DischargeCommand{
		PatientID: req.PatientID,
		Summary:   req.Summary,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.recordAudit(c, claims, domain.ActionUpdate, req.PatientID)
	c.JSON(http.StatusOK, messageResponse{Message: "patient discharged"})
}

type assignRoomRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	RoomName  string `json:"roomName" binding:"required"`
}

func (h *VisitHandler) AssignRoom(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req assignRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.AssignRoom(c.Request.Context(), claims.HospitalID, visit.AssignRoomCommand{
		PatientID: req.PatientID,
		RoomName:  req.RoomName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "room assigned"})
}

type releaseRoomRequest struct {
	PatientID uint `json:"patientId" binding:"required"`
}

func (h *VisitHandler) ReleaseRoom(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req releaseRoomRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.ReleaseRoom(c.Request.Context(), claims.HospitalID, req.PatientID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "room released"})
}

type addServiceRequest struct {
	PatientID   uint   `json:"patientId" binding:"required"`
	ServiceName string `json:"service" binding:"required"`
}

func (h *VisitHandler) AddService(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req addServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.AddService(c.Request.Context(), claims.HospitalID, visit.AddServiceCommand{
		PatientID:   req.PatientID,
		PerformedBy: claims.Username,
		ServiceName: req.ServiceName,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: "service recorded"})
}

type addDrugRequest struct {
	PatientID uint  `json:"patientId" binding:"required"`
	NDC       int64 `json:"ndc" binding:"required"`
	Quantity  int   `json:"quantity"`
}

func (h *VisitHandler) AddDrug(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req addDrugRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.AddDrug(c.Request.Context(), claims.HospitalID, visit.AddDrugCommand{
		PatientID:      req.PatientID,
		AdministeredBy: claims.Username,
		NDC:            req.NDC,
		Quantity:       req.Quantity,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, messageResponse{Message: "drug recorded"})
}

type noteRequest struct {
	PatientID uint   `json:"patientId" binding:"required"`
	Note      string `json:"note"`
}

func (h *VisitHandler) SetNote(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req noteRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.visits.SetNote(c.Request.Context(), claims.HospitalID, req.PatientID, req.Note)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "note saved"})
}

func (h *VisitHandler) ListActive(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	visits, err := h.visits.ListActive(c.Request.Context(), claims.HospitalID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visits": visits})
}

// Timeline resolves a specific visit by patient id and admission instant and
// returns its chronological event list.
func (h *VisitHandler) Timeline(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	patientID, ok := parseUintParam(c, "patientId")
	if !ok {
		return
	}
	admittedAt, err := time.Parse(time.RFC3339Nano, c.Param("admittedAt"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid admittedAt, expected RFC 3339"})
		return
	}

	id := visit.VisitID{HospitalID: claims.HospitalID, PatientID: patientID, AdmittedAt: admittedAt}

	v, err := h.visits.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	timeline, err := h.visits.Timeline(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"visit": v, "timeline": timeline})
}

func (h *VisitHandler) recordAudit(c *gin.Context, claims *domain.Claims, action domain.AuditAction, patientID uint) {
	h.audit.Record(domain.AuditLog{
		Username:     claims.Username,
		HospitalID:   claims.HospitalID,
		UserRole:     claims.Role,
		IPAddress:    c.ClientIP(),
		Action:       action,
		ResourceType: "visit",
		ResourceID:   "patient:" + strconv.FormatUint(uint64(patientID), 10),
		RequestID:    middleware.RequestIDFrom(c),
	})
}
