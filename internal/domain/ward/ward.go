package ward

import "time"

// RoomID is the composite natural key of a room. Rooms are addressed by name
// within a hospital; there is no surrogate id.
type RoomID struct {
	HospitalID uint
	Name       string
}

type Room struct {
	HospitalID uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	Name       string    `gorm:"column:room_name;primaryKey;type:varchar(100)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Department string `gorm:"column:department;type:varchar(100);not null"`
}

func (Room) TableName() string {
	return "clinical.rooms"
}

func (r *Room) RoomID() RoomID {
	return RoomID{HospitalID: r.HospitalID, Name: r.Name}
}

type BedStatus string

const (
	BedVacant      BedStatus = "vacant"
	BedOccupied    BedStatus = "occupied"
	BedMaintenance BedStatus = "under_maintenance"
)

func (s BedStatus) IsValid() bool {
	switch s {
	case BedVacant, BedOccupied, BedMaintenance:
		return true
	}
	return false
}

// CanTransitionTo encodes the bed lifecycle. The normal flow is
// vacant → occupied → vacant; maintenance moves are administrative and only
// ever start or end at vacant.
func (s BedStatus) CanTransitionTo(next BedStatus) bool {
	allowed := map[BedStatus][]BedStatus{
		BedVacant:      {BedOccupied, BedMaintenance},
		BedOccupied:    {BedVacant},
		BedMaintenance: {BedVacant},
	}
	for _, n := range allowed[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Bed belongs to exactly one room. Beds are numbered within the room; the
// number is assigned on creation and never reused while the bed exists.
type Bed struct {
	HospitalID uint   `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	RoomName   string `gorm:"column:room_name;primaryKey;type:varchar(100)"`
	BedNo      int    `gorm:"column:bed_no;primaryKey;autoIncrement:false"`

	Status    BedStatus `gorm:"column:status;type:varchar(20);not null;default:'vacant'"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Bed) TableName() string {
	return "clinical.beds"
}

// BedCounts is the occupancy snapshot of one room. The invariant
// Total == Vacant + Occupied + Maintenance holds after every operation.
type BedCounts struct {
	Total       int `json:"total"`
	Vacant      int `json:"vacant"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
}

type Equipment struct {
	HospitalID uint   `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	RoomName   string `gorm:"column:room_name;primaryKey;type:varchar(100)"`
	SerialNo   string `gorm:"column:serial_no;primaryKey;type:varchar(100)"`

	Name             string `gorm:"column:name;type:varchar(200);not null"`
	UnderMaintenance bool   `gorm:"column:under_maintenance;default:false"`
}

func (Equipment) TableName() string {
	return "clinical.equipment"
}

type EquipmentForm struct {
	SerialNo         string
	Name             string
	UnderMaintenance bool
}

type CreateRoomCommand struct {
	Name       string
	Department string
	Beds       int
	Equipment  []EquipmentForm
}

type UpdateRoomCommand struct {
	Name       string
	Department string
	Beds       int
	Equipment  []EquipmentForm
}

// RoomDetails is the read model returned by room fetches.
type RoomDetails struct {
	Name       string      `json:"roomName"`
	Department string      `json:"department"`
	Beds       BedCounts   `json:"beds"`
	Equipment  []Equipment `json:"equipment"`
}
