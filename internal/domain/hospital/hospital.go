package hospital

import "time"

type TraumaLevel string

const (
	TraumaLevelI    TraumaLevel = "Level I"
	TraumaLevelII   TraumaLevel = "Level II"
	TraumaLevelIII  TraumaLevel = "Level III"
	TraumaLevelIV   TraumaLevel = "Level IV"
	TraumaLevelV    TraumaLevel = "Level V"
	TraumaLevelNone TraumaLevel = "None"
)

func (t TraumaLevel) IsValid() bool {
	switch t {
	case TraumaLevelI, TraumaLevelII, TraumaLevelIII, TraumaLevelIV, TraumaLevelV, TraumaLevelNone:
		return true
	}
	return false
}

// Hospital is the tenant root. Every other entity in the system is scoped by
// its id; cross-hospital references are rejected at the service layer.
type Hospital struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name         string      `gorm:"column:name;type:varchar(255);not null"`
	AddressLine1 string      `gorm:"column:address_line1;type:varchar(255);not null;uniqueIndex"`
	AddressLine2 string      `gorm:"column:address_line2;type:varchar(255)"`
	City         string      `gorm:"column:city;type:varchar(100)"`
	State        string      `gorm:"column:state;type:varchar(50)"`
	Postal       string      `gorm:"column:postal;type:varchar(20)"`
	Telephone    string      `gorm:"column:telephone;type:varchar(20);uniqueIndex"`
	Type         string      `gorm:"column:type;type:varchar(100)"`
	TraumaLevel  TraumaLevel `gorm:"column:trauma_level;type:varchar(20)"`
	HasHelipad   bool        `gorm:"column:has_helipad;default:false"`
}

func (Hospital) TableName() string {
	return "clinical.hospitals"
}

type CreateHospitalCommand struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Postal       string
	Telephone    string
	Type         string
	TraumaLevel  TraumaLevel
	HasHelipad   bool
}
