package workorder

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"workshop-backend/internal/model"
)

// Get returns an order with its vehicle, client and items.
func (s *gormService) Get(ctx context.Context, id uint) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := s.db.WithContext(ctx).
		Preload("Vehicle.Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("work order %d not found", id)
		}
		return nil, Internal("failed to load work order", err)
	}
	return &order, nil
}

// List returns one page of orders, newest first.
func (s *gormService) List(ctx context.Context, filters ListFilters, page, pageSize int) ([]model.WorkOrder, Pagination, error) {
	if filters.Status != "" && !filters.Status.Valid() {
		return nil, Pagination{}, BadRequest("unknown status %q; valid statuses: %s", filters.Status, formatStatuses(model.Statuses))
	}
	page, pageSize = normalizePage(page, pageSize, DefaultOrderPageSize)

	filtered := func() *gorm.DB {
		q := s.db.WithContext(ctx).Model(&model.WorkOrder{})
		if filters.Status != "" {
			q = q.Where("work_orders.status = ?", filters.Status)
		}
		if plate := strings.TrimSpace(filters.Plate); plate != "" {
			q = q.Joins("JOIN vehicles ON vehicles.id = work_orders.vehicle_id").
				Where("LOWER(vehicles.plate) LIKE ?", "%"+strings.ToLower(plate)+"%")
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, Pagination{}, Internal("failed to count work orders", err)
	}

	orders := make([]model.WorkOrder, 0, pageSize)
	if err := filtered().
		Preload("Vehicle.Client").
		Order("work_orders.created_at DESC, work_orders.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, Pagination{}, Internal("failed to list work orders", err)
	}

	return orders, newPagination(total, page, pageSize), nil
}
