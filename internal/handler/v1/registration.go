package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/service"
)

type RegistrationHandler struct {
	registration *service.RegistrationService
	log          *zap.Logger
}

func NewRegistrationHandler(registration *service.RegistrationService, log *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{registration: registration, log: log}
}

type registerRequest struct {
	Hospital struct {
		Name         string `json:"name" binding:"required"`
		AddressLine1 string `json:"addressLine1" binding:"required"`
		AddressLine2 string `json:"addressLine2"`
		City         string `json:"city"`
		State        string `json:"state"`
		Postal       string `json:"postal"`
		Telephone    string `json:"telephone" binding:"required"`
		Type         string `json:"type"`
		TraumaLevel  string `json:"traumaLevel"`
		HasHelipad   bool   `json:"hasHelipad"`
	} `json:"hospital" binding:"required"`
	Admin struct {
		Username    string    `json:"username" binding:"required"`
		Password    string    `json:"password" binding:"required"`
		FirstName   string    `json:"firstName" binding:"required"`
		LastName    string    `json:"lastName" binding:"required"`
		Email       string    `json:"email"`
		Phone       string    `json:"phone"`
		DateOfBirth time.Time `json:"dateOfBirth"`
	} `json:"admin" binding:"required"`
}

type registerResponse struct {
	HospitalID uint   `json:"hospitalId"`
	Message    string `json:"message"`
}

func (h *RegistrationHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	created, err := h.registration.Register(c.Request.Context(), service.RegisterCommand{
		Hospital: hospital.CreateHospitalCommand{
			Name:         req.Hospital.Name,
			AddressLine1: req.Hospital.AddressLine1,
			AddressLine2: req.Hospital.AddressLine2,
			City:         req.Hospital.City,
			State:        req.Hospital.State,
			Postal:       req.Hospital.Postal,
			Telephone:    req.Hospital.Telephone,
			Type:         req.Hospital.Type,
			TraumaLevel:  hospital.TraumaLevel(req.Hospital.TraumaLevel),
			HasHelipad:   req.Hospital.HasHelipad,
		},
		Admin: staff.CreateStaffCommand{
			Username:    req.Admin.Username,
			Password:    req.Admin.Password,
			FirstName:   req.Admin.FirstName,
			LastName:    req.Admin.LastName,
			Email:       req.Admin.Email,
			Phone:       req.Admin.Phone,
			DateOfBirth: req.Admin.DateOfBirth,
		},
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, registerResponse{
		HospitalID: created.ID,
		Message:    "hospital registered",
	})
}
