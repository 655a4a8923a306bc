package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"equipment-booking-backend/internal/model"
)

func (s *gormStore) FindEquipment(ctx context.Context, id int64) (*model.Equipment, error) {
	var eq model.Equipment
	err := s.db.WithContext(ctx).First(&eq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (s *gormStore) ListActiveEquipment(ctx context.Context) ([]model.Equipment, error) {
	var list []model.Equipment
	err := s.db.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&list).Error
	return list, err
}

func (s *gormStore) ListAllEquipment(ctx context.Context) ([]model.Equipment, error) {
	var list []model.Equipment
	err := s.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (s *gormStore) CreateEquipment(ctx context.Context, eq *model.Equipment) error {
	return s.db.WithContext(ctx).Create(eq).Error
}

// UpdateEquipment applies a partial update: only the given columns change.
func (s *gormStore) UpdateEquipment(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", id).Updates(fields).Error
}

func (s *gormStore) SetEquipmentActive(ctx context.Context, id int64, active bool) error {
	return s.db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", id).Update("is_active", active).Error
}
