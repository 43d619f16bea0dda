package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/catalog"
)

// DrugService manages the hospital formulary. Inventory decrements happen in
// the visit flow; here quantities only change through explicit restocks.
type DrugService struct {
	drugs catalog.DrugRepository
	log   *zap.Logger
}

func NewDrugService(drugs catalog.DrugRepository, log *zap.Logger) *DrugService {
	return &DrugService{drugs: drugs, log: log}
}

// Add registers a drug in the hospital's formulary. A non-positive starting
// quantity is stored as one unit.
func (s *DrugService) Add(ctx context.Context, hospitalID uint, cmd catalog.CreateDrugCommand) (*catalog.Drug, error) {
	var v validator
	v.require("name", cmd.Name)
	if cmd.NDC <= 0 {
		v.add("ndc", "must be a positive national drug code")
	}
	if err := v.err(); err != nil {
		return nil, err
	}
	if cmd.Category != "" && !cmd.Category.IsValid() {
		v.add("category", "unknown drug category")
		return nil, v.err()
	}
	if cmd.Price < 0 {
		return nil, catalog.ErrNegativePrice
	}

	qty := cmd.Quantity
	if qty <= 0 {
		qty = 1
	}

	id := catalog.DrugID{HospitalID: hospitalID, NDC: cmd.NDC}
	exists, err := s.drugs.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, catalog.ErrDrugAlreadyExists
	}

	d := &catalog.Drug{
		HospitalID:  hospitalID,
		NDC:         cmd.NDC,
		Name:        cmd.Name,
		Category:    cmd.Category,
		Description: cmd.Description,
		Strength:    cmd.Strength,
		PPQ:         cmd.PPQ,
		Quantity:    qty,
		Price:       cmd.Price,
	}
	if err := s.drugs.Create(ctx, d); err != nil {
		return nil, err
	}

	s.log.Info("drug added",
		zap.Uint("hospital_id", hospitalID),
		zap.Int64("ndc", cmd.NDC),
	)
	return d, nil
}

// Update restocks and reprices an existing formulary entry.
func (s *DrugService) Update(ctx context.Context, hospitalID uint, cmd catalog.UpdateDrugCommand) (*catalog.Drug, error) {
	if cmd.Quantity < 0 {
		return nil, catalog.ErrNegativeQuantity
	}
	if cmd.Price < 0 {
		return nil, catalog.ErrNegativePrice
	}

	d, err := s.drugs.Get(ctx, catalog.DrugID{HospitalID: hospitalID, NDC: cmd.NDC})
	if err != nil {
		return nil, err
	}

	d.Quantity = cmd.Quantity
	d.Price = cmd.Price
	if err := s.drugs.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DrugService) Remove(ctx context.Context, hospitalID uint, ndc int64) error {
	return s.drugs.Delete(ctx, catalog.DrugID{HospitalID: hospitalID, NDC: ndc})
}

func (s *DrugService) List(ctx context.Context, hospitalID uint) ([]*catalog.Drug, error) {
	return s.drugs.ListByHospital(ctx, hospitalID)
}

// ServiceCatalog manages the billable service price list.
type ServiceCatalog struct {
	services catalog.ServiceRepository
	log      *zap.Logger
}

func NewServiceCatalog(services catalog.ServiceRepository, log *zap.Logger) *ServiceCatalog {
	return &ServiceCatalog{services: services, log: log}
}

func (s *ServiceCatalog) Create(ctx context.Context, hospitalID uint, cmd catalog.UpsertServiceCommand) (*catalog.Service, error) {
	var v validator
	v.require("name", cmd.Name)
	if err := v.err(); err != nil {
		return nil, err
	}
	if cmd.Cost < 0 {
		return nil, catalog.ErrNegativePrice
	}

	id := catalog.ServiceID{HospitalID: hospitalID, Name: cmd.Name}
	exists, err := s.services.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, catalog.ErrServiceAlreadyExists
	}

	svc := &catalog.Service{
		HospitalID:  hospitalID,
		Name:        cmd.Name,
		Category:    cmd.Category,
		Description: cmd.Description,
		Cost:        cmd.Cost,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, err
	}

	s.log.Info("service added",
		zap.Uint("hospital_id", hospitalID),
		zap.String("service", cmd.Name),
	)
	return svc, nil
}

func (s *ServiceCatalog) Update(ctx context.Context, hospitalID uint, cmd catalog.UpsertServiceCommand) (*catalog.Service, error) {
	if cmd.Cost < 0 {
		return nil, catalog.ErrNegativePrice
	}

	svc, err := s.services.Get(ctx, catalog.ServiceID{HospitalID: hospitalID, Name: cmd.Name})
	if err != nil {
		return nil, err
	}

	svc.Category = cmd.Category
	svc.Description = cmd.Description
	svc.Cost = cmd.Cost
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *ServiceCatalog) Delete(ctx context.Context, hospitalID uint, name string) error {
	return s.services.Delete(ctx, catalog.ServiceID{HospitalID: hospitalID, Name: name})
}

func (s *ServiceCatalog) List(ctx context.Context, hospitalID uint) ([]*catalog.Service, error) {
	return s.services.ListByHospital(ctx, hospitalID)
}
