package staff

import (
	"strings"
	"time"

	"github.com/syncura360/api/internal/domain"
)

// Staff is a hospital employee and login principal. The username is the
// primary key; credentials are verified by the auth service, never here.
type Staff struct {
	Username   string    `gorm:"primaryKey;type:varchar(50)"`
	HospitalID uint      `gorm:"column:hospital_id;not null;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	PasswordHash string      `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         domain.Role `gorm:"column:role;type:varchar(30);not null;index"`

	FirstName   string    `gorm:"column:first_name;type:varchar(100);not null"`
	LastName    string    `gorm:"column:last_name;type:varchar(100);not null"`
	Email       string    `gorm:"column:email;type:varchar(255)"`
	Phone       string    `gorm:"column:phone;type:varchar(20)"`
	DateOfBirth time.Time `gorm:"column:date_of_birth"`

	AddressLine1 string `gorm:"column:address_line1;type:varchar(255)"`
	AddressLine2 string `gorm:"column:address_line2;type:varchar(255)"`
	City         string `gorm:"column:city;type:varchar(100)"`
	State        string `gorm:"column:state;type:varchar(50)"`
	Postal       string `gorm:"column:postal;type:varchar(20)"`
	Country      string `gorm:"column:country;type:varchar(100)"`

	Specialty       string `gorm:"column:specialty;type:varchar(100)"`
	YearsExperience int    `gorm:"column:years_experience;default:0"`
}

func (Staff) TableName() string {
	return "clinical.staff"
}

func (s *Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// WorksAt reports whether the staff member belongs to the given hospital.
// Ledger operations reject staff from any other hospital.
func (s *Staff) WorksAt(hospitalID uint) bool {
	return s.HospitalID == hospitalID
}

type CreateStaffCommand struct {
	Username        string
	Password        string
	Role            domain.Role
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	DateOfBirth     time.Time
	AddressLine1    string
	AddressLine2    string
	City            string
	State           string
	Postal          string
	Country         string
	Specialty       string
	YearsExperience int
}

// UpdateStaffCommand applies partial updates; nil fields are left unchanged.
type UpdateStaffCommand struct {
	Username        string
	Role            *domain.Role
	Email           *string
	Phone           *string
	AddressLine1    *string
	AddressLine2    *string
	City            *string
	State           *string
	Postal          *string
	Country         *string
	Specialty       *string
	YearsExperience *int
}
