package workorder

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"workshop-backend/internal/model"
)

// VehicleStore answers existence lookups against reference data.
type VehicleStore interface {
	VehicleExists(ctx context.Context, vehicleID uint) (bool, error)
}

// Service defines the work order lifecycle operations.
type Service interface {
	CreateWorkOrder(ctx context.Context, in CreateInput, actor Actor) (*model.WorkOrder, error)
	Get(ctx context.Context, id uint) (*model.WorkOrder, error)
	List(ctx context.Context, filters ListFilters, page, pageSize int) ([]model.WorkOrder, Pagination, error)
	ChangeStatus(ctx context.Context, id uint, in StatusChangeInput, actor Actor) (*model.WorkOrder, error)
	ListHistory(ctx context.Context, id uint, page, pageSize int) ([]model.StatusHistoryEntry, Pagination, error)
	AddItem(ctx context.Context, orderID uint, in AddItemInput, actor Actor) (*model.OrderItem, decimal.Decimal, error)
	DeleteItem(ctx context.Context, itemID uint, actor Actor) (decimal.Decimal, error)
	DeleteOrderItem(ctx context.Context, orderID, itemID uint, actor Actor) (decimal.Decimal, error)
}

// gormService implements Service on a single relational database.
type gormService struct {
	db       *gorm.DB
	vehicles VehicleStore
	now      func() time.Time
}

// NewService creates a GORM-backed work order service.
func NewService(db *gorm.DB, vehicles VehicleStore) Service {
	return &gormService{db: db, vehicles: vehicles, now: time.Now}
}

// CreateWorkOrder opens a work order in RECEIVED with a zero total and seeds its
// history with the creation event.
func (s *gormService) CreateWorkOrder(ctx context.Context, in CreateInput, actor Actor) (*model.WorkOrder, error) {
	entryDate, err := in.validate(s.now())
	if err != nil {
		return nil, err
	}

	exists, err := s.vehicles.VehicleExists(ctx, in.VehicleID)
	if err != nil {
		return nil, Internal("failed to look up vehicle", err)
	}
	if !exists {
		return nil, BadRequest("vehicle %d does not exist; register the vehicle first", in.VehicleID)
	}

	order := model.WorkOrder{
		VehicleID:        in.VehicleID,
		EntryDate:        model.NewDate(entryDate),
		FaultDescription: in.FaultDescription,
		Status:           model.StatusReceived,
		Total:            decimal.Zero,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return Internal("failed to create work order", err)
		}
		return recordStatusChange(tx, order.ID, nil, model.StatusReceived, "", actor)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("work order %d created by user %d for vehicle %d", order.ID, actor.ID, order.VehicleID)
	return &order, nil
}

// ChangeStatus moves an order to another status and records the change,
// atomically.
func (s *gormService) ChangeStatus(ctx context.Context, id uint, in StatusChangeInput, actor Actor) (*model.WorkOrder, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var order *model.WorkOrder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = loadOrder(tx, id)
		if err != nil {
			return err
		}

		from := order.Status
		if err := CheckTransition(from, in.ToStatus, actor.Role); err != nil {
			return err
		}

		if err := tx.Model(order).Update("status", in.ToStatus).Error; err != nil {
			return Internal("failed to update work order status", err)
		}
		order.Status = in.ToStatus
		return recordStatusChange(tx, order.ID, &from, in.ToStatus, in.Note, actor)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("work order %d moved to %s by user %d", order.ID, order.Status, actor.ID)
	return order, nil
}

// loadOrder fetches an order inside tx, mapping a missing row to NotFound.
func loadOrder(tx *gorm.DB, id uint) (*model.WorkOrder, error) {
	var order model.WorkOrder
	if err := tx.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound("work order %d not found", id)
		}
		return nil, Internal("failed to load work order", err)
	}
	return &order, nil
}
