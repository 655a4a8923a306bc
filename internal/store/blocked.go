package store

import (
	"context"

	"equipment-booking-backend/internal/model"
)

func (s *gormStore) BlockedSlots(ctx context.Context, equipmentID int64, date string) ([]model.BlockedSlot, error) {
	var list []model.BlockedSlot
	err := s.db.WithContext(ctx).
		Where("equipment_id = ? AND block_date = ?", equipmentID, date).
		Find(&list).Error
	return list, err
}

func (s *gormStore) CreateBlockedSlot(ctx context.Context, blk *model.BlockedSlot) error {
	return s.db.WithContext(ctx).Create(blk).Error
}

func (s *gormStore) DeleteBlockedSlot(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.BlockedSlot{}, id).Error
}
