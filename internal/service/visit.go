package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/syncura360/api/internal/domain/catalog"
	"github.com/syncura360/api/internal/domain/patient"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/domain/visit"
	"github.com/syncura360/api/internal/domain/ward"
	"github.com/syncura360/api/internal/events"
	"github.com/syncura360/api/internal/repository"
	"github.com/syncura360/api/pkg/metrics"
)

// VisitService owns the admission lifecycle: admit, room movement, the
// service and drug ledgers, and discharge. Every mutation runs in one
// transaction with row locks on the contended rows, so concurrent requests
// for the same patient, bed, or drug serialize instead of double-applying.
type VisitService struct {
	visits      visit.Repository
	assignments visit.AssignmentRepository
	ledger      visit.LedgerRepository
	rooms       ward.RoomRepository
	beds        ward.BedRepository
	patients    patient.Repository
	staff       staff.Repository
	drugs       catalog.DrugRepository
	services    catalog.ServiceRepository
	tx          repository.TxManager
	publisher   events.Publisher
	log         *zap.Logger
	metrics     *metrics.Metrics

	now func() time.Time
}

func NewVisitService(
	visits visit.Repository,
	assignments visit.AssignmentRepository,
	ledger visit.LedgerRepository,
	rooms ward.RoomRepository,
	beds ward.BedRepository,
	patients patient.Repository,
	staffRepo staff.Repository,
	drugs catalog.DrugRepository,
	services catalog.ServiceRepository,
	tx repository.TxManager,
	publisher events.Publisher,
	log *zap.Logger,
	m *metrics.Metrics,
) *VisitService {
	return &VisitService{
		visits:      visits,
		assignments: assignments,
		ledger:      ledger,
		rooms:       rooms,
		beds:        beds,
		patients:    patients,
		staff:       staffRepo,
		drugs:       drugs,
		services:    services,
		tx:          tx,
		publisher:   publisher,
		log:         log,
		metrics:     m,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Admit opens a visit for the patient. At most one active visit may exist
// per (hospital, patient); the row lock on the active-visit probe plus the
// partial unique index make the check race-proof.
func (s *VisitService) Admit(ctx context.Context, hospitalID uint, cmd visit.AdmitCommand) (*visit.Visit, error) {
	exists, err := s.patients.ExistsByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, patient.ErrPatientNotFound
	}

	var created *visit.Visit
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		_, err := s.visits.FindActiveForUpdate(ctx, hospitalID, cmd.PatientID)
		if err == nil {
			return visit.ErrVisitAlreadyActive
		}
		if !errors.Is(err, visit.ErrVisitNotFound) {
			return err
		}

		created = &visit.Visit{
			HospitalID: hospitalID,
			PatientID:  cmd.PatientID,
			AdmittedAt: s.now(),
			Reason:     cmd.Reason,
		}
		return s.visits.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("patient admitted",
		zap.Uint("hospital_id", hospitalID),
		zap.Uint("patient_id", cmd.PatientID),
	)
	s.metrics.AdmissionsTotal.WithLabelValues(strconv.FormatUint(uint64(hospitalID), 10)).Inc()
	s.publisher.Publish(events.ADTEvent{
		Type:       events.PatientAdmitted,
		HospitalID: hospitalID,
		PatientID:  cmd.PatientID,
		OccurredAt: created.AdmittedAt,
	})
	return created, nil
}

// Discharge closes the active visit, releasing the patient's room first so
// the bed returns to the pool in the same transaction.
func (s *VisitService) Discharge(ctx context.Context, hospitalID uint, cmd visit.DischargeCommand) error {
	var releasedRoom string

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		v, err := s.visits.FindActiveForUpdate(ctx, hospitalID, cmd.PatientID)
		if err != nil {
			return err
		}

		room, err := s.releaseActiveAssignment(ctx, hospitalID, cmd.PatientID)
		if err != nil && !errors.Is(err, visit.ErrNotAssigned) {
			return err
		}
		releasedRoom = room

		if err := v.Discharge(cmd.Summary, s.now()); err != nil {
			return err
		}
		return s.visits.Update(ctx, v)
	})
	if err != nil {
		return err
	}

	s.log.Info("patient discharged",
		zap.Uint("hospital_id", hospitalID),
		zap.Uint("patient_id", cmd.PatientID),
	)
	s.metrics.DischargesTotal.WithLabelValues(strconv.FormatUint(uint64(hospitalID), 10)).Inc()
	if releasedRoom != "" {
		s.publisher.Publish(events.ADTEvent{
			Type:       events.RoomReleased,
			HospitalID: hospitalID,
			PatientID:  cmd.PatientID,
			Room:       releasedRoom,
			OccurredAt: s.now(),
		})
	}
	s.publisher.Publish(events.ADTEvent{
		Type:       events.PatientDischarged,
		HospitalID: hospitalID,
		PatientID:  cmd.PatientID,
		OccurredAt: s.now(),
	})
	return nil
}

// AssignRoom places the patient in the lowest-numbered vacant bed of the
// requested room. The bed row stays locked from selection to status flip, so
// two assignments racing for the last vacant bed cannot both win it.
func (s *VisitService) AssignRoom(ctx context.Context, hospitalID uint, cmd visit.AssignRoomCommand) error {
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		v, err := s.visits.FindActive(ctx, hospitalID, cmd.PatientID)
		if err != nil {
			return err
		}

		roomID := ward.RoomID{HospitalID: hospitalID, Name: cmd.RoomName}
		if _, err := s.rooms.Get(ctx, roomID); err != nil {
			return err
		}

		_, err = s.assignments.FindActiveForUpdate(ctx, hospitalID, cmd.PatientID)
		if err == nil {
			return visit.ErrAlreadyAssigned
		}
		if !errors.Is(err, visit.ErrNotAssigned) {
			return err
		}

		bed, err := s.beds.FirstByStatusForUpdate(ctx, roomID, ward.BedVacant)
		if errors.Is(err, ward.ErrBedNotFound) {
			return ward.ErrNoVacantBeds
		}
		if err != nil {
			return err
		}

		if !bed.Status.CanTransitionTo(ward.BedOccupied) {
			return ward.ErrInvalidBedTransition
		}
		if err := s.beds.SetStatus(ctx, bed, ward.BedOccupied); err != nil {
			return err
		}

		return s.assignments.Create(ctx, &visit.RoomAssignment{
			HospitalID:      hospitalID,
			PatientID:       cmd.PatientID,
			VisitAdmittedAt: v.AdmittedAt,
			AssignedAt:      s.now(),
			RoomName:        cmd.RoomName,
		})
	})
	if err != nil {
		return err
	}

	s.log.Info("room assigned",
		zap.Uint("hospital_id", hospitalID),
		zap.Uint("patient_id", cmd.PatientID),
		zap.String("room", cmd.RoomName),
	)
	s.publisher.Publish(events.ADTEvent{
		Type:       events.RoomAssigned,
		HospitalID: hospitalID,
		PatientID:  cmd.PatientID,
		Room:       cmd.RoomName,
		OccurredAt: s.now(),
	})
	return nil
}

// ReleaseRoom frees the patient's current room, returning one bed to the
// vacant pool. Releasing an unassigned patient succeeds without effect.
func (s *VisitService) ReleaseRoom(ctx context.Context, hospitalID, patientID uint) error {
	var releasedRoom string

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		if _, err := s.visits.FindActive(ctx, hospitalID, patientID); err != nil {
			return err
		}

		room, err := s.releaseActiveAssignment(ctx, hospitalID, patientID)
		if err != nil && !errors.Is(err, visit.ErrNotAssigned) {
			return err
		}
		releasedRoom = room
		return nil
	})
	if err != nil {
		return err
	}
	if releasedRoom == "" {
		return nil
	}

	s.log.Info("room released",
		zap.Uint("hospital_id", hospitalID),
		zap.Uint("patient_id", patientID),
		zap.String("room", releasedRoom),
	)
	s.publisher.Publish(events.ADTEvent{
		Type:       events.RoomReleased,
		HospitalID: hospitalID,
		PatientID:  patientID,
		Room:       releasedRoom,
		OccurredAt: s.now(),
	})
	return nil
}

// releaseActiveAssignment soft-removes the patient's current assignment and
// vacates one occupied bed in that room. Runs inside the caller's
// transaction. Returns the released room name.
func (s *VisitService) releaseActiveAssignment(ctx context.Context, hospitalID, patientID uint) (string, error) {
	a, err := s.assignments.FindActiveForUpdate(ctx, hospitalID, patientID)
	if err != nil {
		return "", err
	}

	if err := s.assignments.MarkRemoved(ctx, a); err != nil {
		return "", err
	}

	roomID := ward.RoomID{HospitalID: hospitalID, Name: a.RoomName}
	bed, err := s.beds.FirstByStatusForUpdate(ctx, roomID, ward.BedOccupied)
	if err != nil {
		return "", err
	}
	if err := s.beds.SetStatus(ctx, bed, ward.BedVacant); err != nil {
		return "", err
	}
	return a.RoomName, nil
}

// AddService appends a billable service entry to the active visit's ledger.
// The performer must be staff of the same hospital.
func (s *VisitService) AddService(ctx context.Context, hospitalID uint, cmd visit.AddServiceCommand) error {
	var v validator
	v.require("service", cmd.ServiceName)
	v.require("performedBy", cmd.PerformedBy)
	if err := v.err(); err != nil {
		return err
	}

	return s.tx.Do(ctx, func(ctx context.Context) error {
		active, err := s.visits.FindActive(ctx, hospitalID, cmd.PatientID)
		if err != nil {
			return err
		}

		if err := s.verifyPerformer(ctx, hospitalID, cmd.PerformedBy); err != nil {
			return err
		}

		svcID := catalog.ServiceID{HospitalID: hospitalID, Name: cmd.ServiceName}
		if _, err := s.services.Get(ctx, svcID); err != nil {
			return err
		}

		return s.ledger.AddService(ctx, &visit.ServiceProvided{
			HospitalID:      hospitalID,
			PatientID:       cmd.PatientID,
			VisitAdmittedAt: active.AdmittedAt,
			PerformedAt:     s.now(),
			ServiceName:     cmd.ServiceName,
			PerformedBy:     cmd.PerformedBy,
		})
	})
}

// AddDrug appends a drug administration entry and decrements the formulary
// inventory in the same transaction. The drug row stays locked across the
// check and decrement, so stock never goes negative. A non-positive quantity
// administers one unit.
func (s *VisitService) AddDrug(ctx context.Context, hospitalID uint, cmd visit.AddDrugCommand) error {
	var v validator
	v.require("administeredBy", cmd.AdministeredBy)
	if err := v.err(); err != nil {
		return err
	}

	qty := cmd.Quantity
	if qty <= 0 {
		qty = 1
	}

	err := s.tx.Do(ctx, func(ctx context.Context) error {
		active, err := s.visits.FindActive(ctx, hospitalID, cmd.PatientID)
		if err != nil {
			return err
		}

		if err := s.verifyPerformer(ctx, hospitalID, cmd.AdministeredBy); err != nil {
			return err
		}

		drug, err := s.drugs.GetForUpdate(ctx, catalog.DrugID{HospitalID: hospitalID, NDC: cmd.NDC})
		if err != nil {
			return err
		}
		if drug.Quantity < qty {
			return catalog.ErrInsufficientInventory
		}

		drug.Quantity -= qty
		if err := s.drugs.Update(ctx, drug); err != nil {
			return err
		}

		return s.ledger.AddDrug(ctx, &visit.DrugAdministered{
			HospitalID:      hospitalID,
			PatientID:       cmd.PatientID,
			VisitAdmittedAt: active.AdmittedAt,
			AdministeredAt:  s.now(),
			NDC:             cmd.NDC,
			Quantity:        qty,
			AdministeredBy:  cmd.AdministeredBy,
		})
	})
	if err != nil {
		return err
	}

	s.metrics.DrugsDispensed.WithLabelValues(strconv.FormatUint(uint64(hospitalID), 10)).Add(float64(qty))
	return nil
}

func (s *VisitService) verifyPerformer(ctx context.Context, hospitalID uint, username string) error {
	member, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !member.WorksAt(hospitalID) {
		// Staff of another hospital is indistinguishable from unknown staff.
		return staff.ErrStaffNotFound
	}
	return nil
}

// SetNote replaces the free-text note on the patient's active visit.
func (s *VisitService) SetNote(ctx context.Context, hospitalID, patientID uint, note string) error {
	return s.tx.Do(ctx, func(ctx context.Context) error {
		v, err := s.visits.FindActiveForUpdate(ctx, hospitalID, patientID)
		if err != nil {
			return err
		}
		v.Note = note
		return s.visits.Update(ctx, v)
	})
}

func (s *VisitService) Get(ctx context.Context, id visit.VisitID) (*visit.Visit, error) {
	return s.visits.Get(ctx, id)
}

func (s *VisitService) ListActive(ctx context.Context, hospitalID uint) ([]*visit.Visit, error) {
	return s.visits.ListActive(ctx, hospitalID)
}

// Timeline merges the visit's room movements and ledger entries into one
// chronological view.
func (s *VisitService) Timeline(ctx context.Context, id visit.VisitID) ([]visit.TimelineEntry, error) {
	if _, err := s.visits.Get(ctx, id); err != nil {
		return nil, err
	}

	services, err := s.ledger.ServicesForVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	drugs, err := s.ledger.DrugsForVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignments.ListForVisit(ctx, id)
	if err != nil {
		return nil, err
	}

	entries := make([]visit.TimelineEntry, 0, len(services)+len(drugs)+2*len(assignments))
	for _, e := range services {
		entries = append(entries, visit.TimelineEntry{
			At:     e.PerformedAt,
			Kind:   "service",
			Detail: e.ServiceName,
			Staff:  e.PerformedBy,
		})
	}
	for _, e := range drugs {
		entries = append(entries, visit.TimelineEntry{
			At:     e.AdministeredAt,
			Kind:   "drug",
			Detail: strconv.FormatInt(e.NDC, 10) + " x" + strconv.Itoa(e.Quantity),
			Staff:  e.AdministeredBy,
		})
	}
	for _, a := range assignments {
		entries = append(entries, visit.TimelineEntry{
			At:     a.AssignedAt,
			Kind:   "room_assigned",
			Detail: a.RoomName,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].At.Before(entries[j].At) })
	return entries, nil
}
