package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/syncura360/api/internal/config"
	"github.com/syncura360/api/internal/domain"
	"github.com/syncura360/api/internal/domain/catalog"
	"github.com/syncura360/api/internal/domain/hospital"
	"github.com/syncura360/api/internal/domain/patient"
	"github.com/syncura360/api/internal/domain/schedule"
	"github.com/syncura360/api/internal/domain/staff"
	"github.com/syncura360/api/internal/domain/visit"
	"github.com/syncura360/api/internal/domain/ward"
)

func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("opening database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	log.Info("database connection established",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Name),
	)

	return db, nil
}

// partialIndexes are the uniqueness guarantees GORM tags cannot express.
// Column names must track the gorm tags of the models they index.
var partialIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_visits_one_active
		ON clinical.visits (hospital_id, patient_id)
		WHERE discharged_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_room_assignments_one_active
		ON clinical.room_assignments (hospital_id, patient_id, visit_admitted_at)
		WHERE is_removed = false`,
}

// Migrate creates schemas and tables, then the partial unique indexes that
// GORM tags cannot express. The partial indexes are what make "one active
// visit per patient" and "one active room assignment per visit" database
// guarantees rather than application conventions.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	for _, schema := range []string{"clinical", "audit"} {
		if err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + schema).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	if err := db.AutoMigrate(
		&hospital.Hospital{},
		&staff.Staff{},
		&patient.PatientInfo{},
		&ward.Room{},
		&ward.Bed{},
		&ward.Equipment{},
		&visit.Visit{},
		&visit.RoomAssignment{},
		&visit.ServiceProvided{},
		&visit.DrugAdministered{},
		&catalog.Drug{},
		&catalog.Service{},
		&schedule.Shift{},
		&domain.AuditLog{},
	); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for _, stmt := range partialIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("creating partial index: %w", err)
		}
	}

	log.Info("database migrations completed")
	return nil
}
