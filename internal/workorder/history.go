package workorder

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"workshop-backend/internal/model"
)

// recordStatusChange appends one history entry through the caller's
// transaction. from is nil only for the creation event.
func recordStatusChange(tx *gorm.DB, orderID uint, from *model.Status, to model.Status, note string, actor Actor) error {
	entry := model.StatusHistoryEntry{
		WorkOrderID: orderID,
		FromStatus:  from,
		ToStatus:    to,
		ChangedBy:   actor.ID,
	}
	if note = strings.TrimSpace(note); note != "" {
		entry.Note = &note
	}

	if err := tx.Create(&entry).Error; err != nil {
		return Internal("failed to record status history", err)
	}
	return nil
}

// ListHistory returns the status history of an order, newest first.
func (s *gormService) ListHistory(ctx context.Context, orderID uint, page, pageSize int) ([]model.StatusHistoryEntry, Pagination, error) {
	page, pageSize = normalizePage(page, pageSize, DefaultHistoryPageSize)
	db := s.db.WithContext(ctx)

	var orders int64
	if err := db.Model(&model.WorkOrder{}).Where("id = ?", orderID).Count(&orders).Error; err != nil {
		return nil, Pagination{}, Internal("failed to look up work order", err)
	}
	if orders == 0 {
		return nil, Pagination{}, NotFound("work order %d not found", orderID)
	}

	var total int64
	if err := db.Model(&model.StatusHistoryEntry{}).Where("work_order_id = ?", orderID).Count(&total).Error; err != nil {
		return nil, Pagination{}, Internal("failed to count status history", err)
	}

	entries := make([]model.StatusHistoryEntry, 0, pageSize)
	if err := db.Preload("Actor").
		Where("work_order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error; err != nil {
		return nil, Pagination{}, Internal("failed to list status history", err)
	}

	return entries, newPagination(total, page, pageSize), nil
}
