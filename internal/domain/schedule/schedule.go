package schedule

import "time"

// DefaultDepartment is stored when a shift is created without a department.
// The boundary resolves the default explicitly instead of null-coalescing in
// queries.
const DefaultDepartment = "None"

// ShiftID is the composite natural key of a shift: who works it and when it
// starts. Two shifts for the same staff member cannot share a start time.
type ShiftID struct {
	StaffUsername string
	StartsAt      time.Time
}

type Shift struct {
	StaffUsername string    `gorm:"column:staff_username;primaryKey;type:varchar(50)"`
	StartsAt      time.Time `gorm:"column:starts_at;primaryKey"`

	EndsAt     time.Time `gorm:"column:ends_at;not null"`
	Department string    `gorm:"column:department;type:varchar(100);not null;default:'None'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (Shift) TableName() string {
	return "clinical.schedules"
}

func (s *Shift) ID() ShiftID {
	return ShiftID{StaffUsername: s.StaffUsername, StartsAt: s.StartsAt}
}

type ShiftForm struct {
	StaffUsername string
	StartsAt      time.Time
	EndsAt        time.Time
	Department    string // empty resolves to DefaultDepartment
}

// ShiftUpdate replaces the shift identified by ID with the new fields.
type ShiftUpdate struct {
	ID  ShiftID
	New ShiftForm
}

// Query filters shifts by time range, optionally narrowing to one staff
// member. HospitalID always applies: schedules are only visible within the
// staff member's hospital.
type Query struct {
	HospitalID    uint
	StaffUsername string // empty matches all staff in the hospital
	From          time.Time
	To            time.Time
}
