package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/patient"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type PatientHandler struct {
	patients *service.PatientService
	audit    *service.AuditService
	log      *zap.Logger
}

func NewPatientHandler(patients *service.PatientService, audit *service.AuditService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{patients: patients, audit: audit, log: log}
}

type createPatientRequest struct {
	FirstName             string    `json:"firstName" binding:"required"`
	LastName              string    `json:"lastName" binding:"required"`
	DateOfBirth           time.Time `json:"dateOfBirth" binding:"required"`
	Gender                string    `json:"gender" binding:"required"`
	BloodType             string    `json:"bloodType"`
	HeightCm              *int      `json:"heightCm"`
	WeightKg              *int      `json:"weightKg"`
	Phone                 string    `json:"phone"`
	AddressLine1          string    `json:"addressLine1" binding:"required"`
	AddressLine2          string    `json:"addressLine2"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Postal                string    `json:"postal" binding:"required"`
	Country               string    `json:"country" binding:"required"`
	EmergencyContactName  string    `json:"emergencyContactName"`
	EmergencyContactPhone string    `json:"emergencyContactPhone"`
}

func (h *PatientHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req createPatientRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.patients.Create(c.Request.Context(), patient.CreatePatientCommand{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		DateOfBirth:           req.DateOfBirth,
		Gender:                patient.Gender(req.Gender),
		BloodType:             patient.BloodType(req.BloodType),
		HeightCm:              req.HeightCm,
		WeightKg:              req.WeightKg,
		Phone:                 req.Phone,
		AddressLine1:          req.AddressLine1,
		AddressLine2:          req.AddressLine2,
		City:                  req.City,
		State:                 req.State,
		Postal:                req.Postal,
		Country:               req.Country,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.audit.Record(domain.AuditLog{
		Username:     claims.Username,
		HospitalID:   claims.HospitalID,
		UserRole:     claims.Role,
		IPAddress:    c.ClientIP(),
		Action:       domain.ActionCreate,
		ResourceType: "patient",
		ResourceID:   strconv.FormatUint(uint64(p.ID), 10),
		RequestID:    middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusCreated, p)
}

func (h *PatientHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.patients.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

type updatePatientRequest struct {
	BloodType             *string `json:"bloodType"`
	HeightCm              *int    `json:"heightCm"`
	WeightKg              *int    `json:"weightKg"`
	Phone                 *string `json:"phone"`
	AddressLine1          *string `json:"addressLine1"`
	AddressLine2          *string `json:"addressLine2"`
	City                  *string `json:"city"`
	State                 *string `json:"state"`
	Postal                *string `json:"postal"`
	Country               *string `json:"country"`
	EmergencyContactName  *string `json:"emergencyContactName"`
	EmergencyContactPhone *string `json:"emergencyContactPhone"`
	MedicalNotes          *string `json:"medicalNotes"`
}

func (h *PatientHandler) Update(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}

	var req updatePatientRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := patient.UpdatePatientCommand{
		ID:                    id,
		HeightCm:              req.HeightCm,
		WeightKg:              req.WeightKg,
		Phone:                 req.Phone,
		AddressLine1:          req.AddressLine1,
		AddressLine2:          req.AddressLine2,
		City:                  req.City,
		State:                 req.State,
		Postal:                req.Postal,
		Country:               req.Country,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		MedicalNotes:          req.MedicalNotes,
	}
	if req.BloodType != nil {
		bt := patient.BloodType(*req.BloodType)
		cmd.BloodType = &bt
	}

	p, err := h.patients.Update(c.Request.Context(), cmd)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.audit.Record(domain.AuditLog{
		Username:     claims.Username,
		HospitalID:   claims.HospitalID,
		UserRole:     claims.Role,
		IPAddress:    c.ClientIP(),
		Action:       domain.ActionUpdate,
		ResourceType: "patient",
		ResourceID:   strconv.FormatUint(uint64(p.ID), 10),
		RequestID:    middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusOK, p)
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid " + name + " parameter"})
		return 0, false
	}
	return uint(v), true
}
