package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tilazone/tilazone/internal/domain"
)

// GormBackend stores the slot as a single key-value row, for
// deployments that already run postgres.
type GormBackend struct {
	db *gorm.DB
}

func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.Migrator().AutoMigrate(&domain.CatalogSlot{}); err != nil {
		return nil, errors.Wrap(err, "catalog: migrate slot table")
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Get(ctx context.Context) ([]byte, bool, error) {
	var row domain.CatalogSlot
	err := b.db.WithContext(ctx).Where("name = ?", SlotKey).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "catalog: read slot")
	}
	return row.Value, true, nil
}

func (b *GormBackend) Put(ctx context.Context, value []byte) error {
	row := domain.CatalogSlot{Name: SlotKey, Value: value, UpdatedAt: time.Now()}
	err := b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&row).Error
	return errors.Wrap(err, "catalog: write slot")
}
