package visit

import "time"

// VisitID is the composite natural key of a visit: the patient, the hospital
// they were admitted to, and the admission instant.
type VisitID struct {
	HospitalID uint
	PatientID  uint
	AdmittedAt time.Time
}

// Visit is the admission record. A visit is active while DischargedAt is
// nil; at most one active visit may exist per (hospital, patient). Visits
// are never hard-deleted.
type Visit struct {
	HospitalID uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	PatientID  uint      `gorm:"column:patient_id;primaryKey;autoIncrement:false"`
	AdmittedAt time.Time `gorm:"column:admitted_at;primaryKey"`

	DischargedAt *time.Time `gorm:"column:discharged_at;index"`
	Reason       string     `gorm:"column:reason;type:text"`
	Summary      string     `gorm:"column:summary;type:text"`
	Note         string     `gorm:"column:note;type:text"`
}

func (Visit) TableName() string {
	return "clinical.visits"
}

func (v *Visit) ID() VisitID {
	return VisitID{HospitalID: v.HospitalID, PatientID: v.PatientID, AdmittedAt: v.AdmittedAt}
}

func (v *Visit) Active() bool {
	return v.DischargedAt == nil
}

// Discharge closes the visit. Discharged is a terminal state; a second
// discharge returns ErrVisitNotActive.
func (v *Visit) Discharge(summary string, at time.Time) error {
	if !v.Active() {
		return ErrVisitNotActive
	}
	v.DischargedAt = &at
	v.Summary = summary
	return nil
}

// RoomAssignment links an active visit to a room. Assignments are
// soft-released: IsRemoved flips to true on discharge or room change, the
// row stays for the visit timeline.
type RoomAssignment struct {
	HospitalID      uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	PatientID       uint      `gorm:"column:patient_id;primaryKey;autoIncrement:false"`
	VisitAdmittedAt time.Time `gorm:"column:visit_admitted_at;primaryKey"`
	AssignedAt      time.Time `gorm:"column:assigned_at;primaryKey"`

	RoomName  string `gorm:"column:room_name;type:varchar(100);not null"`
	IsRemoved bool   `gorm:"column:is_removed;not null;default:false"`
}

func (RoomAssignment) TableName() string {
	return "clinical.room_assignments"
}

// ServiceProvided is an append-only ledger entry for a billable service
// performed during a visit.
type ServiceProvided struct {
	HospitalID      uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	PatientID       uint      `gorm:"column:patient_id;primaryKey;autoIncrement:false"`
	VisitAdmittedAt time.Time `gorm:"column:visit_admitted_at;primaryKey"`
	PerformedAt     time.Time `gorm:"column:performed_at;primaryKey"`

	ServiceName string `gorm:"column:service_name;type:varchar(150);not null"`
	PerformedBy string `gorm:"column:performed_by;type:varchar(50);not null"`
}

func (ServiceProvided) TableName() string {
	return "clinical.services_provided"
}

// DrugAdministered is an append-only ledger entry for a drug given during a
// visit. Quantity is the amount consumed from the hospital's inventory.
type DrugAdministered struct {
	HospitalID      uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	PatientID       uint      `gorm:"column:patient_id;primaryKey;autoIncrement:false"`
	VisitAdmittedAt time.Time `gorm:"column:visit_admitted_at;primaryKey"`
	AdministeredAt  time.Time `gorm:"column:administered_at;primaryKey"`

	NDC            int64  `gorm:"column:ndc;not null"`
	Quantity       int    `gorm:"column:quantity;not null"`
	AdministeredBy string `gorm:"column:administered_by;type:varchar(50);not null"`
}

func (DrugAdministered) TableName() string {
	return "clinical.drugs_administered"
}

// TimelineEntry is one event in a visit's history, used by the visit detail
// read model. Kind is one of "service", "drug", "room_assigned",
// "room_released".
type TimelineEntry struct {
	At     time.Time `json:"at"`
	Kind   string    `json:"kind"`
	Detail string    `json:"detail"`
	Staff  string    `json:"staff,omitempty"`
}

type AdmitCommand struct {
	PatientID uint
	Reason    string
}

type DischargeCommand struct {
	PatientID uint
	Summary   string
}

type AssignRoomCommand struct {
	PatientID uint
	RoomName  string
}

type AddServiceCommand struct {
	PatientID   uint
	PerformedBy string
	ServiceName string
}

type AddDrugCommand struct {
	PatientID      uint
	AdministeredBy string
	NDC            int64
	Quantity       int
}
