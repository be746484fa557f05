package customer

import (
	"context"

	"github.com/lithammer/shortuuid/v3"
	extErrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Manager handles the database operations relating to CustomerRecords
type Manager struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewManager returns a new Manager for customer records
func NewManager(logger *zap.Logger, db *gorm.DB) (*Manager, error) {
	if err := db.AutoMigrate(&CustomerRecord{}); err != nil {
		return nil, extErrors.Wrap(err, "Cannot initialize customer.Manager")
	}
	return &Manager{
		db:     db,
		logger: logger,
	}, nil
}

// Save will insert the record into the database. There is no idempotency
// key: identical calls insert identical rows.
func (m *Manager) Save(ctx context.Context, record *CustomerRecord) error {
	if record.ID == "" {
		record.ID = shortuuid.New()
	}

	result := m.db.WithContext(ctx).Create(record)
	if result.Error != nil {
		m.logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return extErrors.Wrap(result.Error, "Cannot save customer record")
	}

	return nil
}

// List will return every stored record, most recently created first
func (m *Manager) List(ctx context.Context) ([]CustomerRecord, error) {
	records := make([]CustomerRecord, 0)

	result := m.db.WithContext(ctx).Order("created_at desc").Find(&records)
	if result.Error != nil {
		m.logger.Error("Database returned error",
			zap.Error(result.Error),
		)
		return nil, extErrors.Wrap(result.Error, "Cannot list customer records")
	}

	return records, nil
}
