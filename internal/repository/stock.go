package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
	"github.com/vietanh2810/resto-ops/internal/store"
)

var (
	ErrOrderNotFound     = dao.ErrOrderNotFound
	ErrOrderItemNotFound = dao.ErrOrderItemNotFound
)

// StockRepository owns every mutation that touches product quantities. Each
// operation runs inside one store transaction spanning products, order_items
// and inventory_log, so the quantity change and its ledger row land together
// or not at all.
type StockRepository struct {
	store          *store.Store
	defaultTVARate float64
}

func NewStockRepository(s *store.Store, defaultTVARate float64) *StockRepository {
	return &StockRepository{
		store:          s,
		defaultTVARate: defaultTVARate,
	}
}

// InsertOrderItem adds a line to an order. A nil price copies the product's
// current selling price; an explicit price, zero included, is kept as given.
// For stock-tracked products the product quantity drops by the item quantity
// and an exit ledger row is appended; order totals are recomputed in the same
// transaction.
func (r *StockRepository) InsertOrderItem(ctx context.Context, item domain.OrderItem, price *float64) (domain.OrderItem, error) {
	var created dao.OrderItem

	err := r.store.Tx(ctx, func(tx *store.Store) error {
		orders := dao.NewOrderDAO(tx)
		products := dao.NewProductDAO(tx)

		order, err := orders.FindByID(ctx, item.OrderID)
		if err != nil {
			return fmt.Errorf("orders.FindByID -> %w", err)
		}

		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("products.FindByID -> %w", err)
		}

		itemPrice := product.SellingPrice
		if price != nil {
			itemPrice = *price
		}

		created, err = orders.InsertItem(ctx, dao.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     itemPrice,
			Note:      item.Note,
		})
		if err != nil {
			return fmt.Errorf("orders.InsertItem -> %w", err)
		}

		if err = r.applyStockDelta(ctx, tx, product, -item.Quantity, "order", orderReference(order.ID), item.Note); err != nil {
			return err
		}

		return r.recomputeOrderTotals(ctx, tx, order.ID)
	})
	if err != nil {
		return domain.OrderItem{}, err
	}

	return orderItemDaoToDomain(created), nil
}

// UpdateOrderItem applies changes to a line. A quantity change applies the
// signed difference to the product: increasing the item quantity decreases
// stock, and vice versa.
func (r *StockRepository) UpdateOrderItem(ctx context.Context, itemID uint, changes domain.OrderItemChanges) (domain.OrderItem, error) {
	var updated dao.OrderItem

	err := r.store.Tx(ctx, func(tx *store.Store) error {
		orders := dao.NewOrderDAO(tx)
		products := dao.NewProductDAO(tx)

		item, err := orders.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("orders.FindItemByID -> %w", err)
		}

		if changes.Quantity != nil && *changes.Quantity != item.Quantity {
			product, err := products.FindByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("products.FindByID -> %w", err)
			}

			diff := *changes.Quantity - item.Quantity
			if err = r.applyStockDelta(ctx, tx, product, -diff, "order_update", orderReference(item.OrderID), item.Note); err != nil {
				return err
			}

			item.Quantity = *changes.Quantity
		}
		if changes.Price != nil {
			item.Price = *changes.Price
		}
		if changes.Note != nil {
			item.Note = *changes.Note
		}

		updated, err = orders.UpdateItem(ctx, item)
		if err != nil {
			return fmt.Errorf("orders.UpdateItem -> %w", err)
		}

		return r.recomputeOrderTotals(ctx, tx, item.OrderID)
	})
	if err != nil {
		return domain.OrderItem{}, err
	}

	return orderItemDaoToDomain(updated), nil
}

// DeleteOrderItem removes a line and restores the full quantity it had
// reserved, with a matching entry-type ledger row.
func (r *StockRepository) DeleteOrderItem(ctx context.Context, itemID uint) error {
	return r.store.Tx(ctx, func(tx *store.Store) error {
		orders := dao.NewOrderDAO(tx)
		products := dao.NewProductDAO(tx)

		item, err := orders.FindItemByID(ctx, itemID)
		if err != nil {
			return fmt.Errorf("orders.FindItemByID -> %w", err)
		}

		product, err := products.FindByID(ctx, item.ProductID)
		if err != nil {
			return fmt.Errorf("products.FindByID -> %w", err)
		}

		if err = r.applyStockDelta(ctx, tx, product, item.Quantity, "order_item_removed", orderReference(item.OrderID), item.Note); err != nil {
			return err
		}

		if err = orders.DeleteItem(ctx, item.ID); err != nil {
			return fmt.Errorf("orders.DeleteItem -> %w", err)
		}

		return r.recomputeOrderTotals(ctx, tx, item.OrderID)
	})
}

// DeleteOrder removes an order with all its lines, restoring every reserved
// quantity inside one transaction.
func (r *StockRepository) DeleteOrder(ctx context.Context, orderID uint) error {
	return r.store.Tx(ctx, func(tx *store.Store) error {
		orders := dao.NewOrderDAO(tx)
		products := dao.NewProductDAO(tx)

		order, err := orders.FindByID(ctx, orderID)
		if err != nil {
			return fmt.Errorf("orders.FindByID -> %w", err)
		}

		items, err := orders.FindItemsByOrderID(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("orders.FindItemsByOrderID -> %w", err)
		}

		for _, item := range items {
			product, err := products.FindByID(ctx, item.ProductID)
			if err != nil {
				return fmt.Errorf("products.FindByID -> %w", err)
			}

			if err = r.applyStockDelta(ctx, tx, product, item.Quantity, "order_deleted", orderReference(order.ID), item.Note); err != nil {
				return err
			}

			if err = orders.DeleteItem(ctx, item.ID); err != nil {
				return fmt.Errorf("orders.DeleteItem -> %w", err)
			}
		}

		return orders.Delete(ctx, order.ID)
	})
}

// AdjustStock is a direct manual correction outside any order: receiving
// goods, write-offs, stocktake.
func (r *StockRepository) AdjustStock(ctx context.Context, productID uint, delta float64, reason, reference, note string) (domain.Product, error) {
	var adjusted dao.Product

	err := r.store.Tx(ctx, func(tx *store.Store) error {
		products := dao.NewProductDAO(tx)

		product, err := products.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("products.FindByID -> %w", err)
		}

		if err = r.applyStockDelta(ctx, tx, product, delta, reason, reference, note); err != nil {
			return err
		}

		adjusted, err = products.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("products.FindByID -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}

	return productDaoToDomain(adjusted), nil
}

func (r *StockRepository) FindLogByProductID(ctx context.Context, productID uint) ([]domain.InventoryLogEntry, error) {
	entries, err := dao.NewInventoryDAO(r.store).FindByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("inventory.FindByProductID -> %w", err)
	}

	return logsDaoToDomain(entries), nil
}

func (r *StockRepository) FindAllLog(ctx context.Context) ([]domain.InventoryLogEntry, error) {
	entries, err := dao.NewInventoryDAO(r.store).FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory.FindAll -> %w", err)
	}

	return logsDaoToDomain(entries), nil
}

// applyStockDelta is the single path for every quantity change: it enforces
// non-negativity for stock-tracked products and appends exactly one ledger
// row per mutation. Non-stock-tracked products pass through untouched and
// unlogged.
func (r *StockRepository) applyStockDelta(ctx context.Context, tx *store.Store, product dao.Product, delta float64, reason, reference, note string) error {
	if !productDaoToDomain(product).StockTracked() || delta == 0 {
		return nil
	}

	next := product.Quantity + delta
	if next < 0 {
		return &domain.InsufficientStockError{
			ProductID: product.ID,
			Requested: -delta,
			Available: product.Quantity,
		}
	}

	product.Quantity = next
	if _, err := dao.NewProductDAO(tx).Update(ctx, product); err != nil {
		return fmt.Errorf("products.Update -> %w", err)
	}

	logType := string(domain.LogEntry)
	if delta < 0 {
		logType = string(domain.LogExit)
	}

	_, err := dao.NewInventoryDAO(tx).Append(ctx, dao.InventoryLog{
		ProductID: product.ID,
		Date:      time.Now(),
		Quantity:  abs(delta),
		Type:      logType,
		Reason:    reason,
		Reference: reference,
		Note:      note,
	})
	if err != nil {
		return fmt.Errorf("inventory.Append -> %w", err)
	}

	return nil
}

// recomputeOrderTotals derives total_ttc from the order's items, then splits
// out the TVA share using the configured rate (settings row, falling back to
// the configured default).
func (r *StockRepository) recomputeOrderTotals(ctx context.Context, tx *store.Store, orderID uint) error {
	orders := dao.NewOrderDAO(tx)

	order, err := orders.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("orders.FindByID -> %w", err)
	}

	items, err := orders.FindItemsByOrderID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("orders.FindItemsByOrderID -> %w", err)
	}

	rate := r.tvaRate(ctx, tx)

	var ttc float64
	for _, item := range items {
		ttc += item.Quantity * item.Price
	}

	order.TotalTTC = ttc
	order.TotalHT = ttc / (1 + rate)
	order.TVAAmount = order.TotalTTC - order.TotalHT

	if _, err = orders.Update(ctx, order); err != nil {
		return fmt.Errorf("orders.Update -> %w", err)
	}

	return nil
}

func (r *StockRepository) tvaRate(ctx context.Context, tx *store.Store) float64 {
	settings, err := dao.NewSettingDAO(tx).FindByCategory(ctx, "billing")
	if err != nil {
		return r.defaultTVARate
	}

	for _, s := range settings {
		if s.Name == "tva_rate" {
			if rate, err := strconv.ParseFloat(s.Value, 64); err == nil {
				return rate
			}
		}
	}

	return r.defaultTVARate
}

func orderReference(orderID uint) string {
	return fmt.Sprintf("order-%d", orderID)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func orderItemDaoToDomain(item dao.OrderItem) domain.OrderItem {
	return domain.OrderItem{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Price:     item.Price,
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func logsDaoToDomain(entries []dao.InventoryLog) []domain.InventoryLogEntry {
	result := make([]domain.InventoryLogEntry, len(entries))
	for i, e := range entries {
		result[i] = domain.InventoryLogEntry{
			ID:        e.ID,
			ProductID: e.ProductID,
			Date:      e.Date,
			Quantity:  e.Quantity,
			Type:      domain.InventoryLogType(e.Type),
			Reason:    e.Reason,
			Reference: e.Reference,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		}
	}

	return result
}
