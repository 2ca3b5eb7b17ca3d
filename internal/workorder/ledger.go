package workorder

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"workshop-backend/internal/model"
)

// AddItem attaches a line item to an editable order and recomputes its total
// in the same transaction.
func (s *gormService) AddItem(ctx context.Context, orderID uint, in AddItemInput, actor Actor) (*model.OrderItem, decimal.Decimal, error) {
	if err := in.validate(); err != nil {
		return nil, decimal.Zero, err
	}

	var item model.OrderItem
	var total decimal.Decimal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := loadOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := ensureEditable(order); err != nil {
			return err
		}

		item = model.OrderItem{
			WorkOrderID: order.ID,
			Type:        in.Type,
			Description: in.Description,
			Count:       in.Count,
			UnitValue:   in.UnitValue,
		}
		if err := tx.Create(&item).Error; err != nil {
			return Internal("failed to create order item", err)
		}

		total, err = recalculateTotal(tx, order.ID)
		return err
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	log.Printf("work order %d: user %d added %s item %d, total now %s", orderID, actor.ID, item.Type, item.ID, total)
	return &item, total, nil
}

// DeleteItem removes a line item from its order and recomputes the total.
func (s *gormService) DeleteItem(ctx context.Context, itemID uint, actor Actor) (decimal.Decimal, error) {
	return s.deleteItem(ctx, 0, itemID, actor)
}

// DeleteOrderItem is DeleteItem restricted to items of the given order.
func (s *gormService) DeleteOrderItem(ctx context.Context, orderID, itemID uint, actor Actor) (decimal.Decimal, error) {
	if orderID == 0 {
		return decimal.Zero, NotFound("work order %d not found", orderID)
	}
	return s.deleteItem(ctx, orderID, itemID, actor)
}

// deleteItem deletes itemID; a non-zero orderID must own the item.
func (s *gormService) deleteItem(ctx context.Context, orderID, itemID uint, actor Actor) (decimal.Decimal, error) {
	var total decimal.Decimal
	var ownerID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item model.OrderItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFound("order item %d not found", itemID)
			}
			return Internal("failed to load order item", err)
		}
		if orderID != 0 && item.WorkOrderID != orderID {
			return NotFound("order item %d not found in work order %d", itemID, orderID)
		}
		ownerID = item.WorkOrderID

		order, err := loadOrder(tx, item.WorkOrderID)
		if err != nil {
			return err
		}
		if err := ensureEditable(order); err != nil {
			return err
		}

		if err := tx.Delete(&item).Error; err != nil {
			return Internal("failed to delete order item", err)
		}

		total, err = recalculateTotal(tx, order.ID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	log.Printf("work order %d: user %d deleted item %d, total now %s", ownerID, actor.ID, itemID, total)
	return total, nil
}

func ensureEditable(order *model.WorkOrder) error {
	if order.Status.Terminal() {
		return Conflict("cannot modify a delivered/canceled order: work order %d is %s", order.ID, order.Status)
	}
	return nil
}

// recalculateTotal sums count × unit value over the persisted items of the
// order and stores the result. It must run on the mutating transaction.
func recalculateTotal(tx *gorm.DB, orderID uint) (decimal.Decimal, error) {
	var items []model.OrderItem
	if err := tx.Where("work_order_id = ?", orderID).Find(&items).Error; err != nil {
		return decimal.Zero, Internal("failed to load order items", err)
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	if total.GreaterThanOrEqual(maxMoney) {
		return decimal.Zero, BadRequest("order total must be < %s, got %s", maxMoney.String(), total.String())
	}

	if err := tx.Model(&model.WorkOrder{}).Where("id = ?", orderID).Update("total", total).Error; err != nil {
		return decimal.Zero, Internal("failed to update work order total", err)
	}
	return total, nil
}
