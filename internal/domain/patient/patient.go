package patient

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

func (b BloodType) IsValid() bool {
	switch b {
	case BloodTypeAPos, BloodTypeANeg, BloodTypeBPos, BloodTypeBNeg,
		BloodTypeABPos, BloodTypeABNeg, BloodTypeOPos, BloodTypeONeg:
		return true
	}
	return false
}

// PatientInfo is the demographic record. Patients are not hospital-scoped:
// the same person may visit any registered hospital.
type PatientInfo struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null;index:idx_patients_natural,unique"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null;index:idx_patients_natural,unique"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;not null;index:idx_patients_natural,unique"`
	Gender      Gender    `gorm:"column:gender;type:varchar(10);not null;index:idx_patients_natural,unique"`
	BloodType   BloodType `gorm:"column:blood_type;type:varchar(5)"`

	HeightCm *int `gorm:"column:height_cm"`
	WeightKg *int `gorm:"column:weight_kg"`

	Phone        string `gorm:"column:phone;type:varchar(20)"`
	AddressLine1 string `gorm:"column:address_line1;type:varchar(255);not null;index:idx_patients_natural,unique"`
	AddressLine2 string `gorm:"column:address_line2;type:varchar(255)"`
	City         string `gorm:"column:city;type:varchar(100)"`
	State        string `gorm:"column:state;type:varchar(50)"`
	Postal       string `gorm:"column:postal;type:varchar(20);not null;index:idx_patients_natural,unique"`
	Country      string `gorm:"column:country;type:varchar(100);not null;index:idx_patients_natural,unique"`

	EmergencyContactName  string `gorm:"column:emergency_contact_name;type:varchar(200)"`
	EmergencyContactPhone string `gorm:"column:emergency_contact_phone;type:varchar(20)"`

	MedicalNotes string `gorm:"column:medical_notes;type:text"` // PHI
}

func (PatientInfo) TableName() string {
	return "clinical.patients"
}

func (p *PatientInfo) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// NaturalKey is the uniqueness tuple enforced at creation. Two records
// agreeing on all seven fields are the same person.
type NaturalKey struct {
	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	Gender       Gender
	AddressLine1 string
	Postal       string
	Country      string
}

func (p *PatientInfo) NaturalKey() NaturalKey {
	return NaturalKey{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		DateOfBirth:  p.DateOfBirth,
		Gender:       p.Gender,
		AddressLine1: p.AddressLine1,
		Postal:       p.Postal,
		Country:      p.Country,
	}
}

type CreatePatientCommand struct {
	FirstName             string
	LastName              string
	DateOfBirth           time.Time
	Gender                Gender
	BloodType             BloodType
	HeightCm              *int
	WeightKg              *int
	Phone                 string
	AddressLine1          string
	AddressLine2          string
	City                  string
	State                 string
	Postal                string
	Country               string
	EmergencyContactName  string
	EmergencyContactPhone string
}

type UpdatePatientCommand struct {
	ID                    uint
	BloodType             *BloodType
	HeightCm              *int
	WeightKg              *int
	Phone                 *string
	AddressLine1          *string
	AddressLine2          *string
	City                  *string
	State                 *string
	Postal                *string
	Country               *string
	EmergencyContactName  *string
	EmergencyContactPhone *string
	MedicalNotes          *string
}
