package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type StaffHandler struct {
	staff *service.StaffService
	audit *service.AuditService
	log   *zap.Logger
}

func NewStaffHandler(staffSvc *service.StaffService, audit *service.AuditService, log *zap.Logger) *StaffHandler {
	return &StaffHandler{staff: staffSvc, audit: audit, log: log}
}

type createStaffRequest struct {
	Username        string    `json:"username" binding:"required"`
	Password        string    `json:"password" binding:"required"`
	Role            string    `json:"role" binding:"required"`
	FirstName       string    `json:"firstName" binding:"required"`
	LastName        string    `json:"lastName" binding:"required"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	AddressLine1    string    `json:"addressLine1"`
	AddressLine2    string    `json:"addressLine2"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Postal          string    `json:"postal"`
	Country         string    `json:"country"`
	Specialty       string    `json:"specialty"`
	YearsExperience int       `json:"yearsExperience"`
}

type staffResponse struct {
	Username        string    `json:"username"`
	Role            string    `json:"role"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	DateOfBirth     time.Time `json:"dateOfBirth,omitempty"`
	Specialty       string    `json:"specialty,omitempty"`
	YearsExperience int       `json:"yearsExperience"`
}

func toStaffResponse(m *staff.Staff) staffResponse {
	return staffResponse{
		Username:        m.Username,
		Role:            string(m.Role),
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		Email:           m.Email,
		Phone:           m.Phone,
		DateOfBirth:     m.DateOfBirth,
		Specialty:       m.Specialty,
		YearsExperience: m.YearsExperience,
	}
}

func (h *StaffHandler) Create(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req createStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.staff.Create(c.Request.Context(), claims.HospitalID, claims.Role, staff.CreateStaffCommand{
		Username:        req.Username,
		Password:        req.Password,
		Role:            domain.Role(req.Role),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		DateOfBirth:     req.DateOfBirth,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		Postal:          req.Postal,
		Country:         req.Country,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
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
		ResourceType: "staff",
		ResourceID:   member.Username,
		RequestID:    middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusCreated, toStaffResponse(member))
}

func (h *StaffHandler) Get(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	member, err := h.staff.Get(c.Request.Context(), claims.HospitalID, c.Param("username"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toStaffResponse(member))
}

func (h *StaffHandler) List(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var (
		members []*staff.Staff
		err     error
	)
	if role := c.Query("role"); role != "" {
		members, err = h.staff.ListByRole(c.Request.Context(), claims.HospitalID, domain.Role(role))
	} else {
		members, err = h.staff.List(c.Request.Context(), claims.HospitalID)
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toStaffResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"staff": out})
}

// ListDoctors is the clinical-side lookup used when picking a performer for
// visit ledger entries.
func (h *StaffHandler) ListDoctors(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	members, err := h.staff.ListByRole(c.Request.Context(), claims.HospitalID, domain.RoleDoctor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]staffResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toStaffResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"doctors": out})
}

type updateStaffRequest struct {
	Role            *string `json:"role"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	AddressLine1    *string `json:"addressLine1"`
	AddressLine2    *string `json:"addressLine2"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	Postal          *string `json:"postal"`
	Country         *string `json:"country"`
	Specialty       *string `json:"specialty"`
	YearsExperience *int    `json:"yearsExperience"`
}

func (h *StaffHandler) Update(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req updateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	cmd := staff.UpdateStaffCommand{
		Username:        c.Param("username"),
		Email:           req.Email,
		Phone:           req.Phone,
		AddressLine1:    req.AddressLine1,
		AddressLine2:    req.AddressLine2,
		City:            req.City,
		State:           req.State,
		Postal:          req.Postal,
		Country:         req.Country,
		Specialty:       req.Specialty,
		YearsExperience: req.YearsExperience,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		cmd.Role = &role
	}

	member, err := h.staff.Update(c.Request.Context(), claims.HospitalID, claims.Role, cmd)
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
		ResourceType: "staff",
		ResourceID:   member.Username,
		RequestID:    middleware.RequestIDFrom(c),
	})
	c.JSON(http.StatusOK, toStaffResponse(member))
}
