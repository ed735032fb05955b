package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
	"github.com/vietanh2810/resto-ops/internal/store"
)

func openOpsStore(t *testing.T, name string) *store.Store {
	t.Helper()

	connector := store.NewConnector(store.Config{
		Driver:      "sqlite",
		DSN:         fmt.Sprintf("file:%v?mode=memory&cache=shared", name),
		FailOnError: true,
	}, dao.Schema())

	s, err := connector.Open(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = connector.Close()
	})

	return s
}

func newStockFixture(t *testing.T, name string) (*StockService, *repository.ProductRepository, *repository.OrderRepository) {
	t.Helper()

	st := openOpsStore(t, name)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(st))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(st), productRepo)
	stockRepo := repository.NewStockRepository(st, 0.10)
	svc := NewStockService(stockRepo, productRepo, nil)

	return svc, productRepo, orderRepo
}

var productSeq atomic.Uint64

func createTrackedProduct(t *testing.T, products *repository.ProductRepository, quantity float64) domain.Product {
	t.Helper()

	product, err := products.Create(context.Background(), domain.Product{
		Name:          fmt.Sprintf("test supply %v", productSeq.Add(1)),
		Category:      domain.CategorySupplies,
		Unit:          "kg",
		Quantity:      quantity,
		MinStock:      1,
		PurchasePrice: 2,
		SellingPrice:  5,
		IsActive:      true,
	})
	require.NoError(t, err)

	return product
}

func createOpenOrder(t *testing.T, orders *repository.OrderRepository) domain.Order {
	t.Helper()

	order, err := orders.Create(context.Background(), domain.Order{
		TableNumber: 3,
		Status:      domain.OrderPending,
		Date:        time.Now(),
	})
	require.NoError(t, err)

	return order
}

func TestAddOrderItemConsumesStock(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_add_item")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	item, err := svc.AddOrderItem(ctx, order.ID, product.ID, 3, nil, "")
	require.NoError(t, err)
	assert.Equal(t, 5.0, item.Price) // copied from the catalog

	updated, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, updated.Quantity)

	log, err := svc.GetProductLog(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.LogExit, log[0].Type)
	assert.Equal(t, 3.0, log[0].Quantity)
	assert.Equal(t, "order", log[0].Reason)
	assert.Equal(t, fmt.Sprintf("order-%d", order.ID), log[0].Reference)
}

func TestAddOrderItemRecomputesTotals(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_totals")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	_, err := svc.AddOrderItem(ctx, order.ID, product.ID, 3, nil, "")
	require.NoError(t, err)

	// The seeded billing/tva_rate setting is 0.10.
	reloaded, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, reloaded.TotalTTC, 0.001)
	assert.InDelta(t, 15.0/1.10, reloaded.TotalHT, 0.001)
	assert.InDelta(t, reloaded.TotalTTC-reloaded.TotalHT, reloaded.TVAAmount, 0.001)
}

func TestAddOrderItemPriceOverride(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_price_override")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	price := 4.0
	item, err := svc.AddOrderItem(ctx, order.ID, product.ID, 2, &price, "happy hour")
	require.NoError(t, err)
	assert.Equal(t, 4.0, item.Price)

	// An explicit zero price is a free item, not an omitted price.
	free := 0.0
	item, err = svc.AddOrderItem(ctx, order.ID, product.ID, 1, &free, "on the house")
	require.NoError(t, err)
	assert.Equal(t, 0.0, item.Price)
}

func TestAddOrderItemInsufficientStockIsAtomic(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_insufficient")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 2)
	order := createOpenOrder(t, orders)

	_, err := svc.AddOrderItem(ctx, order.ID, product.ID, 5, nil, "")
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, product.ID, stockErr.ProductID)
	assert.Equal(t, 5.0, stockErr.Requested)
	assert.Equal(t, 2.0, stockErr.Available)

	// Nothing persisted: no item, no quantity change, no ledger row.
	unchanged, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, unchanged.Quantity)

	reloaded, err := orders.FindByIDWithItems(ctx, order.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Items)

	log, err := svc.GetProductLog(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestAddOrderItemMenuDishBypassesStock(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_menu_dish")
	ctx := context.Background()

	dish, err := products.Create(ctx, domain.Product{
		Name:         "daily special",
		Category:     "mains",
		Unit:         domain.UnitPiece,
		SellingPrice: 18,
		IsActive:     true,
	})
	require.NoError(t, err)

	order := createOpenOrder(t, orders)

	// Quantity is zero but the dish is not stock-tracked, so it sells anyway.
	_, err = svc.AddOrderItem(ctx, order.ID, dish.ID, 2, nil, "")
	require.NoError(t, err)

	unchanged, err := products.FindByID(ctx, dish.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, unchanged.Quantity)

	log, err := svc.GetProductLog(ctx, dish.ID)
	require.NoError(t, err)
	assert.Empty(t, log)
}

func TestUpdateOrderItemQuantityMovesStock(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_update_item")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	item, err := svc.AddOrderItem(ctx, order.ID, product.ID, 3, nil, "")
	require.NoError(t, err)

	raise := 5.0
	_, err = svc.UpdateOrderItem(ctx, item.ID, domain.OrderItemChanges{Quantity: &raise})
	require.NoError(t, err)

	after, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, after.Quantity)

	lower := 1.0
	_, err = svc.UpdateOrderItem(ctx, item.ID, domain.OrderItemChanges{Quantity: &lower})
	require.NoError(t, err)

	after, err = products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.0, after.Quantity)

	// One ledger row per mutation.
	log, err := svc.GetProductLog(ctx, product.ID)
	require.NoError(t, err)
	assert.Len(t, log, 3)
}

func TestRemoveOrderItemRestoresStock(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_remove_item")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	item, err := svc.AddOrderItem(ctx, order.ID, product.ID, 4, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOrderItem(ctx, item.ID))

	restored, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, restored.Quantity)

	log, err := svc.GetProductLog(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, domain.LogExit, log[0].Type)
	assert.Equal(t, domain.LogEntry, log[1].Type)
	assert.Equal(t, 4.0, log[1].Quantity)
}

func TestRemoveOrderRestoresEveryItem(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_remove_order")
	ctx := context.Background()

	first := createTrackedProduct(t, products, 10)
	second := createTrackedProduct(t, products, 8)
	order := createOpenOrder(t, orders)

	_, err := svc.AddOrderItem(ctx, order.ID, first.ID, 2, nil, "")
	require.NoError(t, err)
	_, err = svc.AddOrderItem(ctx, order.ID, second.ID, 3, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveOrder(ctx, order.ID))

	restored, err := products.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, restored.Quantity)

	restored, err = products.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.0, restored.Quantity)

	_, err = orders.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestAdjustStock(t *testing.T) {
	svc, products, _ := newStockFixture(t, "stock_adjust")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)

	adjusted, err := svc.AdjustStock(ctx, product.ID, 5, "delivery", "weekly order")
	require.NoError(t, err)
	assert.Equal(t, 15.0, adjusted.Quantity)

	log, err := svc.GetProductLog(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, log, 1)
	assert.Equal(t, domain.LogEntry, log[0].Type)
	assert.Equal(t, "delivery", log[0].Reason)
	assert.True(t, strings.HasPrefix(log[0].Reference, "adj-"))

	_, err = svc.AdjustStock(ctx, product.ID, -100, "stocktake", "")
	var stockErr *domain.InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
}

func TestAddOrderItemValidation(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_validation")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	_, err := svc.AddOrderItem(ctx, order.ID, product.ID, 0, nil, "")
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	negative := -1.0
	_, err = svc.AddOrderItem(ctx, order.ID, product.ID, 1, &negative, "")
	assert.ErrorAs(t, err, &validationErr)
}

func TestAddOrderItemUnknownReferences(t *testing.T) {
	svc, products, orders := newStockFixture(t, "stock_unknown_refs")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order := createOpenOrder(t, orders)

	_, err := svc.AddOrderItem(ctx, 9999, product.ID, 1, nil, "")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = svc.AddOrderItem(ctx, order.ID, 9999, 1, nil, "")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
