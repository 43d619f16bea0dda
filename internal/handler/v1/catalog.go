package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/catalog"
	"github.com/syncura360/api/internal/middleware"
	"github.com/syncura360/api/internal/service"
)

type CatalogHandler struct {
	drugs    *service.DrugService
	services *service.ServiceCatalog
	log      *zap.Logger
}

func NewCatalogHandler(drugs *service.DrugService, services *service.ServiceCatalog, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{drugs: drugs, services: services, log: log}
}

type createDrugRequest struct {
	NDC         int64   `json:"ndc" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Strength    string  `json:"strength"`
	PPQ         int     `json:"ppq"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (h *CatalogHandler) AddDrug(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req createDrugRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.drugs.Add(c.Request.Context(), claims.HospitalID, catalog.CreateDrugCommand{
		NDC:         req.NDC,
		Name:        req.Name,
		Category:    catalog.DrugCategory(req.Category),
		Description: req.Description,
		Strength:    req.Strength,
		PPQ:         req.PPQ,
		Quantity:    req.Quantity,
		Price:       req.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

type updateDrugRequest struct {
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

func (h *CatalogHandler) UpdateDrug(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	ndc, err := strconv.ParseInt(c.Param("ndc"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid ndc parameter"})
		return
	}

	var req updateDrugRequest
	if !bindJSON(c, &req) {
		return
	}

	d, err := h.drugs.Update(c.Request.Context(), claims.HospitalID, catalog.UpdateDrugCommand{
		NDC:      ndc,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *CatalogHandler) RemoveDrug(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	ndc, err := strconv.ParseInt(c.Param("ndc"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid ndc parameter"})
		return
	}

	if err := h.drugs.Remove(c.Request.Context(), claims.HospitalID, ndc); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "drug removed"})
}

func (h *CatalogHandler) ListDrugs(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	drugs, err := h.drugs.List(c.Request.Context(), claims.HospitalID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drugs": drugs})
}

type serviceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}

	svc, err := h.services.Create(c.Request.Context(), claims.HospitalID, catalog.UpsertServiceCommand{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var req serviceRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Name = c.Param("name")

	svc, err := h.services.Update(c.Request.Context(), claims.HospitalID, catalog.UpsertServiceCommand{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Cost:        req.Cost,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	if err := h.services.Delete(c.Request.Context(), claims.HospitalID, c.Param("name")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "service deleted"})
}

func (h *CatalogHandler) ListServices(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	services, err := h.services.List(c.Request.Context(), claims.HospitalID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
