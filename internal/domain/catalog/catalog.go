package catalog

import "time"

type DrugCategory string

const (
	CategoryAnalgesic   DrugCategory = "Analgesic"
	CategoryAnesthetic  DrugCategory = "Anesthetic"
	CategoryAntibiotic  DrugCategory = "Antibiotic"
	CategoryAntiviral   DrugCategory = "Antiviral"
	CategorySedative    DrugCategory = "Sedative"
	CategoryVaccine     DrugCategory = "Vaccine"
	CategoryOther       DrugCategory = "Other"
)

func (c DrugCategory) IsValid() bool {
	switch c {
	case CategoryAnalgesic, CategoryAnesthetic, CategoryAntibiotic,
		CategoryAntiviral, CategorySedative, CategoryVaccine, CategoryOther:
		return true
	}
	return false
}

// DrugID is the composite key of a catalog drug: the national drug code
// scoped to one hospital's formulary.
type DrugID struct {
	HospitalID uint
	NDC        int64
}

// Drug is a hospital-scoped formulary entry with a mutable inventory
// counter. Quantity never goes negative; the administration path decrements
// it inside the same transaction that writes the ledger entry.
type Drug struct {
	HospitalID uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	NDC        int64     `gorm:"column:ndc;primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Name        string       `gorm:"column:name;type:varchar(150);not null"`
	Category    DrugCategory `gorm:"column:category;type:varchar(50)"`
	Description string       `gorm:"column:description;type:text"`
	Strength    string       `gorm:"column:strength;type:varchar(50)"`
	PPQ         int          `gorm:"column:ppq;default:0"` // pills per quantity unit
	Quantity    int          `gorm:"column:quantity;not null;default:0"`
	Price       float64      `gorm:"column:price;type:numeric(10,2);not null"`
}

func (Drug) TableName() string {
	return "clinical.drugs"
}

func (d *Drug) ID() DrugID {
	return DrugID{HospitalID: d.HospitalID, NDC: d.NDC}
}

// ServiceID is the composite key of a billable service.
type ServiceID struct {
	HospitalID uint
	Name       string
}

type Service struct {
	HospitalID uint      `gorm:"column:hospital_id;primaryKey;autoIncrement:false"`
	Name       string    `gorm:"column:name;primaryKey;type:varchar(150)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`

	Category    string  `gorm:"column:category;type:varchar(100)"`
	Description string  `gorm:"column:description;type:text"`
	Cost        float64 `gorm:"column:cost;type:numeric(15,2);not null"`
}

func (Service) TableName() string {
	return "clinical.services"
}

func (s *Service) ID() ServiceID {
	return ServiceID{HospitalID: s.HospitalID, Name: s.Name}
}

type CreateDrugCommand struct {
	NDC         int64
	Name        string
	Category    DrugCategory
	Description string
	Strength    string
	PPQ         int
	Quantity    int
	Price       float64
}

type UpdateDrugCommand struct {
	NDC      int64
	Quantity int
	Price    float64
}

type UpsertServiceCommand struct {
	Name        string
	Category    string
	Description string
	Cost        float64
}
