package service

import (
	"context"
	"sync"

	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/catalog"
	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/patient"
	"github.com/syncura360/api/internal/domain/schedule"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/domain/visit"
	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/internal/events"
)

// fakeTx runs the closure without a real transaction.
type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakePublisher collects events for assertions.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.ADTEvent
}

func (p *fakePublisher) Publish(ev events.ADTEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) Events() []events.ADTEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.ADTEvent, len(p.events))
	copy(out, p.events)
	return out
}

type fakeVisitRepo struct {
	CreateFn              func(ctx context.Context, v *visit.Visit) error
	GetFn                 func(ctx context.Context, id visit.VisitID) (*visit.Visit, error)
	FindActiveFn          func(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error)
	FindActiveForUpdateFn func(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error)
	UpdateFn              func(ctx context.Context, v *visit.Visit) error
	ListActiveFn          func(ctx context.Context, hospitalID uint) ([]*visit.Visit, error)
}

func (f *fakeVisitRepo) Create(ctx context.Context, v *visit.Visit) error { return f.CreateFn(ctx, v) }
func (f *fakeVisitRepo) Get(ctx context.Context, id visit.VisitID) (*visit.Visit, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeVisitRepo) FindActive(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error) {
	return f.FindActiveFn(ctx, hospitalID, patientID)
}
func (f *fakeVisitRepo) FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*visit.Visit, error) {
	return f.FindActiveForUpdateFn(ctx, hospitalID, patientID)
}
func (f *fakeVisitRepo) Update(ctx context.Context, v *visit.Visit) error { return f.UpdateFn(ctx, v) }
func (f *fakeVisitRepo) ListActive(ctx context.Context, hospitalID uint) ([]*visit.Visit, error) {
	return f.ListActiveFn(ctx, hospitalID)
}

type fakeAssignmentRepo struct {
	CreateFn              func(ctx context.Context, a *visit.RoomAssignment) error
	FindActiveFn          func(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error)
	FindActiveForUpdateFn func(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error)
	MarkRemovedFn         func(ctx context.Context, a *visit.RoomAssignment) error
	ListForVisitFn        func(ctx context.Context, id visit.VisitID) ([]visit.RoomAssignment, error)
}

func (f *fakeAssignmentRepo) Create(ctx context.Context, a *visit.RoomAssignment) error {
	return f.CreateFn(ctx, a)
}
func (f *fakeAssignmentRepo) FindActive(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error) {
	return f.FindActiveFn(ctx, hospitalID, patientID)
}
func (f *fakeAssignmentRepo) FindActiveForUpdate(ctx context.Context, hospitalID, patientID uint) (*visit.RoomAssignment, error) {
	return f.FindActiveForUpdateFn(ctx, hospitalID, patientID)
}
func (f *fakeAssignmentRepo) MarkRemoved(ctx context.Context, a *visit.RoomAssignment) error {
	return f.MarkRemovedFn(ctx, a)
}
func (f *fakeAssignmentRepo) ListForVisit(ctx context.Context, id visit.VisitID) ([]visit.RoomAssignment, error) {
	return f.ListForVisitFn(ctx, id)
}

type fakeLedgerRepo struct {
	AddServiceFn       func(ctx context.Context, e *visit.ServiceProvided) error
	AddDrugFn          func(ctx context.Context, e *visit.DrugAdministered) error
	ServicesForVisitFn func(ctx context.Context, id visit.VisitID) ([]visit.ServiceProvided, error)
	DrugsForVisitFn    func(ctx context.Context, id visit.VisitID) ([]visit.DrugAdministered, error)
}

func (f *fakeLedgerRepo) AddService(ctx context.Context, e *visit.ServiceProvided) error {
	return f.AddServiceFn(ctx, e)
}
func (f *fakeLedgerRepo) AddDrug(ctx context.Context, e *visit.DrugAdministered) error {
	return f.AddDrugFn(ctx, e)
}
func (f *fakeLedgerRepo) ServicesForVisit(ctx context.Context, id visit.VisitID) ([]visit.ServiceProvided, error) {
	return f.ServicesForVisitFn(ctx, id)
}
func (f *fakeLedgerRepo) DrugsForVisit(ctx context.Context, id visit.VisitID) ([]visit.DrugAdministered, error) {
	return f.DrugsForVisitFn(ctx, id)
}

type fakeRoomRepo struct {
	CreateFn         func(ctx context.Context, r *ward.Room) error
	GetFn            func(ctx context.Context, id ward.RoomID) (*ward.Room, error)
	ExistsFn         func(ctx context.Context, id ward.RoomID) (bool, error)
	UpdateFn         func(ctx context.Context, r *ward.Room) error
	DeleteFn         func(ctx context.Context, id ward.RoomID) error
	ListByHospitalFn func(ctx context.Context, hospitalID uint) ([]*ward.Room, error)
}

func (f *fakeRoomRepo) Create(ctx context.Context, r *ward.Room) error { return f.CreateFn(ctx, r) }
func (f *fakeRoomRepo) Get(ctx context.Context, id ward.RoomID) (*ward.Room, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeRoomRepo) Exists(ctx context.Context, id ward.RoomID) (bool, error) {
	return f.ExistsFn(ctx, id)
}
func (f *fakeRoomRepo) Update(ctx context.Context, r *ward.Room) error { return f.UpdateFn(ctx, r) }
func (f *fakeRoomRepo) Delete(ctx context.Context, id ward.RoomID) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeRoomRepo) ListByHospital(ctx context.Context, hospitalID uint) ([]*ward.Room, error) {
	return f.ListByHospitalFn(ctx, hospitalID)
}

type fakeBedRepo struct {
	CreateBatchFn            func(ctx context.Context, room ward.RoomID, n int) error
	CountByRoomFn            func(ctx context.Context, room ward.RoomID) (int, error)
	CountByRoomAndStatusFn   func(ctx context.Context, room ward.RoomID, status ward.BedStatus) (int, error)
	CountsFn                 func(ctx context.Context, room ward.RoomID) (ward.BedCounts, error)
	DeleteVacantFn           func(ctx context.Context, room ward.RoomID, n int) (int, error)
	DeleteAllInRoomFn        func(ctx context.Context, room ward.RoomID) error
	FirstByStatusForUpdateFn func(ctx context.Context, room ward.RoomID, status ward.BedStatus) (*ward.Bed, error)
	SetStatusFn              func(ctx context.Context, b *ward.Bed, status ward.BedStatus) error
}

func (f *fakeBedRepo) CreateBatch(ctx context.Context, room ward.RoomID, n int) error {
	return f.CreateBatchFn(ctx, room, n)
}
func (f *fakeBedRepo) CountByRoom(ctx context.Context, room ward.RoomID) (int, error) {
	return f.CountByRoomFn(ctx, room)
}
func (f *fakeBedRepo) CountByRoomAndStatus(ctx context.Context, room ward.RoomID, status ward.BedStatus) (int, error) {
	return f.CountByRoomAndStatusFn(ctx, room, status)
}
func (f *fakeBedRepo) Counts(ctx context.Context, room ward.RoomID) (ward.BedCounts, error) {
	return f.CountsFn(ctx, room)
}
func (f *fakeBedRepo) DeleteVacant(ctx context.Context, room ward.RoomID, n int) (int, error) {
	return f.DeleteVacantFn(ctx, room, n)
}
func (f *fakeBedRepo) DeleteAllInRoom(ctx context.Context, room ward.RoomID) error {
	return f.DeleteAllInRoomFn(ctx, room)
}
func (f *fakeBedRepo) FirstByStatusForUpdate(ctx context.Context, room ward.RoomID, status ward.BedStatus) (*ward.Bed, error) {
	return f.FirstByStatusForUpdateFn(ctx, room, status)
}
func (f *fakeBedRepo) SetStatus(ctx context.Context, b *ward.Bed, status ward.BedStatus) error {
	return f.SetStatusFn(ctx, b, status)
}

type fakeEquipmentRepo struct {
	ListByRoomFn     func(ctx context.Context, room ward.RoomID) ([]ward.Equipment, error)
	ReplaceForRoomFn func(ctx context.Context, room ward.RoomID, items []ward.EquipmentForm) error
	DeleteForRoomFn  func(ctx context.Context, room ward.RoomID) error
}

func (f *fakeEquipmentRepo) ListByRoom(ctx context.Context, room ward.RoomID) ([]ward.Equipment, error) {
	return f.ListByRoomFn(ctx, room)
}
func (f *fakeEquipmentRepo) ReplaceForRoom(ctx context.Context, room ward.RoomID, items []ward.EquipmentForm) error {
	return f.ReplaceForRoomFn(ctx, room, items)
}
func (f *fakeEquipmentRepo) DeleteForRoom(ctx context.Context, room ward.RoomID) error {
	return f.DeleteForRoomFn(ctx, room)
}

type fakePatientRepo struct {
	CreateFn             func(ctx context.Context, p *patient.PatientInfo) error
	GetByIDFn            func(ctx context.Context, id uint) (*patient.PatientInfo, error)
	UpdateFn             func(ctx context.Context, p *patient.PatientInfo) error
	ExistsByIDFn         func(ctx context.Context, id uint) (bool, error)
	ExistsByNaturalKeyFn func(ctx context.Context, key patient.NaturalKey) (bool, error)
	ListFn               func(ctx context.Context) ([]*patient.PatientInfo, error)
}

func (f *fakePatientRepo) Create(ctx context.Context, p *patient.PatientInfo) error {
	return f.CreateFn(ctx, p)
}
func (f *fakePatientRepo) GetByID(ctx context.Context, id uint) (*patient.PatientInfo, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakePatientRepo) Update(ctx context.Context, p *patient.PatientInfo) error {
	return f.UpdateFn(ctx, p)
}
func (f *fakePatientRepo) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return f.ExistsByIDFn(ctx, id)
}
func (f *fakePatientRepo) ExistsByNaturalKey(ctx context.Context, key patient.NaturalKey) (bool, error) {
	return f.ExistsByNaturalKeyFn(ctx, key)
}
func (f *fakePatientRepo) List(ctx context.Context) ([]*patient.PatientInfo, error) {
	return f.ListFn(ctx)
}

type fakeStaffRepo struct {
	CreateFn                func(ctx context.Context, s *staff.Staff) error
	GetByUsernameFn         func(ctx context.Context, username string) (*staff.Staff, error)
	UpdateFn                func(ctx context.Context, s *staff.Staff) error
	UpdatePasswordFn        func(ctx context.Context, username, hash string) error
	ExistsByUsernameFn      func(ctx context.Context, username string) (bool, error)
	ListByHospitalFn        func(ctx context.Context, hospitalID uint) ([]*staff.Staff, error)
	ListByHospitalAndRoleFn func(ctx context.Context, hospitalID uint, role domain.Role) ([]*staff.Staff, error)
}

func (f *fakeStaffRepo) Create(ctx context.Context, s *staff.Staff) error { return f.CreateFn(ctx, s) }
func (f *fakeStaffRepo) GetByUsername(ctx context.Context, username string) (*staff.Staff, error) {
	return f.GetByUsernameFn(ctx, username)
}
func (f *fakeStaffRepo) Update(ctx context.Context, s *staff.Staff) error { return f.UpdateFn(ctx, s) }
func (f *fakeStaffRepo) UpdatePassword(ctx context.Context, username, hash string) error {
	return f.UpdatePasswordFn(ctx, username, hash)
}
func (f *fakeStaffRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return f.ExistsByUsernameFn(ctx, username)
}
func (f *fakeStaffRepo) ListByHospital(ctx context.Context, hospitalID uint) ([]*staff.Staff, error) {
	return f.ListByHospitalFn(ctx, hospitalID)
}
func (f *fakeStaffRepo) ListByHospitalAndRole(ctx context.Context, hospitalID uint, role domain.Role) ([]*staff.Staff, error) {
	return f.ListByHospitalAndRoleFn(ctx, hospitalID, role)
}

type fakeDrugRepo struct {
	CreateFn         func(ctx context.Context, d *catalog.Drug) error
	GetFn            func(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error)
	GetForUpdateFn   func(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error)
	ExistsFn         func(ctx context.Context, id catalog.DrugID) (bool, error)
	UpdateFn         func(ctx context.Context, d *catalog.Drug) error
	DeleteFn         func(ctx context.Context, id catalog.DrugID) error
	ListByHospitalFn func(ctx context.Context, hospitalID uint) ([]*catalog.Drug, error)
}

func (f *fakeDrugRepo) Create(ctx context.Context, d *catalog.Drug) error { return f.CreateFn(ctx, d) }
func (f *fakeDrugRepo) Get(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeDrugRepo) GetForUpdate(ctx context.Context, id catalog.DrugID) (*catalog.Drug, error) {
	return f.GetForUpdateFn(ctx, id)
}
func (f *fakeDrugRepo) Exists(ctx context.Context, id catalog.DrugID) (bool, error) {
	return f.ExistsFn(ctx, id)
}
func (f *fakeDrugRepo) Update(ctx context.Context, d *catalog.Drug) error { return f.UpdateFn(ctx, d) }
func (f *fakeDrugRepo) Delete(ctx context.Context, id catalog.DrugID) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeDrugRepo) ListByHospital(ctx context.Context, hospitalID uint) ([]*catalog.Drug, error) {
	return f.ListByHospitalFn(ctx, hospitalID)
}

type fakeServiceRepo struct {
	CreateFn         func(ctx context.Context, s *catalog.Service) error
	GetFn            func(ctx context.Context, id catalog.ServiceID) (*catalog.Service, error)
	ExistsFn         func(ctx context.Context, id catalog.ServiceID) (bool, error)
	UpdateFn         func(ctx context.Context, s *catalog.Service) error
	DeleteFn         func(ctx context.Context, id catalog.ServiceID) error
	ListByHospitalFn func(ctx context.Context, hospitalID uint) ([]*catalog.Service, error)
}

func (f *fakeServiceRepo) Create(ctx context.Context, s *catalog.Service) error {
	return f.CreateFn(ctx, s)
}
func (f *fakeServiceRepo) Get(ctx context.Context, id catalog.ServiceID) (*catalog.Service, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeServiceRepo) Exists(ctx context.Context, id catalog.ServiceID) (bool, error) {
	return f.ExistsFn(ctx, id)
}
func (f *fakeServiceRepo) Update(ctx context.Context, s *catalog.Service) error {
	return f.UpdateFn(ctx, s)
}
func (f *fakeServiceRepo) Delete(ctx context.Context, id catalog.ServiceID) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeServiceRepo) ListByHospital(ctx context.Context, hospitalID uint) ([]*catalog.Service, error) {
	return f.ListByHospitalFn(ctx, hospitalID)
}

type fakeHospitalRepo struct {
	CreateFn               func(ctx context.Context, h *hospital.Hospital) error
	GetByIDFn              func(ctx context.Context, id uint) (*hospital.Hospital, error)
	UpdateFn               func(ctx context.Context, h *hospital.Hospital) error
	ExistsByAddressLine1Fn func(ctx context.Context, addressLine1 string) (bool, error)
	ExistsByTelephoneFn    func(ctx context.Context, telephone string) (bool, error)
}

func (f *fakeHospitalRepo) Create(ctx context.Context, h *hospital.Hospital) error {
	return f.CreateFn(ctx, h)
}
func (f *fakeHospitalRepo) GetByID(ctx context.Context, id uint) (*hospital.Hospital, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeHospitalRepo) Update(ctx context.Context, h *hospital.Hospital) error {
	return f.UpdateFn(ctx, h)
}
func (f *fakeHospitalRepo) ExistsByAddressLine1(ctx context.Context, addressLine1 string) (bool, error) {
	return f.ExistsByAddressLine1Fn(ctx, addressLine1)
}
func (f *fakeHospitalRepo) ExistsByTelephone(ctx context.Context, telephone string) (bool, error) {
	return f.ExistsByTelephoneFn(ctx, telephone)
}

type fakeScheduleRepo struct {
	CreateFn func(ctx context.Context, s *schedule.Shift) error
	GetFn    func(ctx context.Context, id schedule.ShiftID) (*schedule.Shift, error)
	ExistsFn func(ctx context.Context, id schedule.ShiftID) (bool, error)
	DeleteFn func(ctx context.Context, id schedule.ShiftID) error
	FindFn   func(ctx context.Context, q schedule.Query) ([]*schedule.Shift, error)
}

func (f *fakeScheduleRepo) Create(ctx context.Context, s *schedule.Shift) error {
	return f.CreateFn(ctx, s)
}
func (f *fakeScheduleRepo) Get(ctx context.Context, id schedule.ShiftID) (*schedule.Shift, error) {
	return f.GetFn(ctx, id)
}
func (f *fakeScheduleRepo) Exists(ctx context.Context, id schedule.ShiftID) (bool, error) {
	return f.ExistsFn(ctx, id)
}
func (f *fakeScheduleRepo) Delete(ctx context.Context, id schedule.ShiftID) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeScheduleRepo) Find(ctx context.Context, q schedule.Query) ([]*schedule.Shift, error) {
	return f.FindFn(ctx, q)
}
