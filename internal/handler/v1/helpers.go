package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/catalog"
	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/patient"
	"github.com/syncura360/api/internal/domain/schedule"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/domain/visit"
	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/internal/service"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError translates service errors to HTTP statuses. Unknown errors
// become opaque 500s; their detail goes to the log, never the client.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}

	if status, ok := statusFor(err); ok {
		c.JSON(status, errorResponse{Error: err.Error()})
		return
	}

	log.Error("unhandled service error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, hospital.ErrHospitalNotFound),
		errors.Is(err, staff.ErrStaffNotFound),
		errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, ward.ErrRoomNotFound),
		errors.Is(err, ward.ErrBedNotFound),
		errors.Is(err, visit.ErrVisitNotFound),
		errors.Is(err, catalog.ErrDrugNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, schedule.ErrShiftNotFound):
		return http.StatusNotFound, true

	case errors.Is(err, hospital.ErrAddressTaken),
		errors.Is(err, hospital.ErrTelephoneTaken),
		errors.Is(err, staff.ErrUsernameTaken),
		errors.Is(err, patient.ErrPatientAlreadyExists),
		errors.Is(err, ward.ErrRoomAlreadyExists),
		errors.Is(err, ward.ErrRoomHasOccupiedBeds),
		errors.Is(err, ward.ErrBedNotVacant),
		errors.Is(err, ward.ErrInvalidBedTransition),
		errors.Is(err, ward.ErrInsufficientVacantBeds),
		errors.Is(err, ward.ErrNoVacantBeds),
		errors.Is(err, visit.ErrVisitAlreadyActive),
		errors.Is(err, visit.ErrVisitNotActive),
		errors.Is(err, visit.ErrAlreadyAssigned),
		errors.Is(err, visit.ErrNotAssigned),
		errors.Is(err, catalog.ErrDrugAlreadyExists),
		errors.Is(err, catalog.ErrServiceAlreadyExists),
		errors.Is(err, catalog.ErrInsufficientInventory),
		errors.Is(err, schedule.ErrShiftAlreadyExists):
		return http.StatusConflict, true

	case errors.Is(err, hospital.ErrInvalidTrauma),
		errors.Is(err, staff.ErrInvalidRole),
		errors.Is(err, patient.ErrInvalidGender),
		errors.Is(err, patient.ErrInvalidBloodType),
		errors.Is(err, patient.ErrInvalidDateOfBirth),
		errors.Is(err, ward.ErrNegativeBedCount),
		errors.Is(err, catalog.ErrNegativeQuantity),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, schedule.ErrInvalidShiftRange):
		return http.StatusBadRequest, true

	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, true
	case errors.Is(err, service.ErrAccountLocked):
		return http.StatusLocked, true
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, true
	}
	return 0, false
}

// bindJSON decodes the body and reports malformed payloads as 400s.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	return true
}

type messageResponse struct {
	Message string `json:"message"`
}
