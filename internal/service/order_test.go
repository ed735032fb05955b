package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/resto-ops/internal/domain"
	"github.com/vietanh2810/resto-ops/internal/repository"
	"github.com/vietanh2810/resto-ops/internal/repository/dao"
)

func newOrderFixture(t *testing.T, name string) (*OrderService, *StockService, *repository.ProductRepository) {
	t.Helper()

	st := openOpsStore(t, name)
	productRepo := repository.NewProductRepository(dao.NewProductDAO(st))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(st), productRepo)
	stockRepo := repository.NewStockRepository(st, 0.10)

	return NewOrderService(orderRepo, nil), NewStockService(stockRepo, productRepo, nil), productRepo
}

func TestCreateOrderDefaults(t *testing.T) {
	svc, _, _ := newOrderFixture(t, "order_defaults")

	created, err := svc.CreateOrder(context.Background(), domain.Order{TableNumber: 5})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPending, created.Status)
	assert.False(t, created.Date.IsZero())
	assert.NotZero(t, created.ID)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _, _ := newOrderFixture(t, "order_validation")
	ctx := context.Background()

	var validationErr *domain.ValidationError

	_, err := svc.CreateOrder(ctx, domain.Order{TableNumber: 0})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateOrder(ctx, domain.Order{TableNumber: 2, Status: "paused"})
	assert.ErrorAs(t, err, &validationErr)
}

func TestGetOrderResolvesItems(t *testing.T) {
	svc, stock, products := newOrderFixture(t, "order_with_items")
	ctx := context.Background()

	product := createTrackedProduct(t, products, 10)
	order, err := svc.CreateOrder(ctx, domain.Order{TableNumber: 1})
	require.NoError(t, err)

	_, err = stock.AddOrderItem(ctx, order.ID, product.ID, 2, nil, "")
	require.NoError(t, err)

	loaded, err := svc.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	require.NotNil(t, loaded.Items[0].Product)
	assert.Equal(t, product.Name, loaded.Items[0].Product.Name)
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, _, _ := newOrderFixture(t, "order_status")
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, domain.Order{TableNumber: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(ctx, order.ID, domain.OrderServed)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderServed, updated.Status)

	var validationErr *domain.ValidationError
	_, err = svc.UpdateOrderStatus(ctx, order.ID, "misplaced")
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.UpdateOrderStatus(ctx, 9999, domain.OrderReady)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrdersByStatus(t *testing.T) {
	svc, _, _ := newOrderFixture(t, "order_by_status")
	ctx := context.Background()

	for _, n := range []int{1, 2} {
		_, err := svc.CreateOrder(ctx, domain.Order{TableNumber: n})
		require.NoError(t, err)
	}

	order, err := svc.CreateOrder(ctx, domain.Order{TableNumber: 3})
	require.NoError(t, err)
	_, err = svc.UpdateOrderStatus(ctx, order.ID, domain.OrderCompleted)
	require.NoError(t, err)

	pending, err := svc.GetOrdersByStatus(ctx, domain.OrderPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	completed, err := svc.GetOrdersByStatus(ctx, domain.OrderCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}
