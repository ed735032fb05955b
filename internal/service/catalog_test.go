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

type testEnums struct{}

func (testEnums) CategoryIDs() []string {
	return []string{"starters", "mains", "desserts", "drinks", "supplies"}
}

func (testEnums) UnitIDs() []string {
	return []string{"unit", "kg", "g", "l", "cl", "piece"}
}

func newCatalogFixture(t *testing.T, name string) (*CatalogService, *repository.ProductRepository) {
	t.Helper()

	st := openOpsStore(t, name)
	repo := repository.NewProductRepository(dao.NewProductDAO(st))

	return NewCatalogService(repo, testEnums{}), repo
}

func TestCreateProductValidatesEnums(t *testing.T) {
	svc, _ := newCatalogFixture(t, "catalog_enums")
	ctx := context.Background()

	var validationErr *domain.ValidationError

	_, err := svc.CreateProduct(ctx, domain.Product{
		Name: "mystery", Category: "frozen", Unit: "kg", IsActive: true,
	})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateProduct(ctx, domain.Product{
		Name: "mystery", Category: "supplies", Unit: "barrel", IsActive: true,
	})
	assert.ErrorAs(t, err, &validationErr)

	_, err = svc.CreateProduct(ctx, domain.Product{
		Name: "mystery", Category: "supplies", Unit: "kg", SellingPrice: -1, IsActive: true,
	})
	assert.ErrorAs(t, err, &validationErr)
}

func TestCreateProductDuplicateName(t *testing.T) {
	svc, _ := newCatalogFixture(t, "catalog_duplicate")
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, domain.Product{
		Name: "duck confit", Category: "mains", Unit: "unit", SellingPrice: 17, IsActive: true,
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, domain.Product{
		Name: "duck confit", Category: "mains", Unit: "unit", SellingPrice: 18, IsActive: true,
	})
	assert.ErrorIs(t, err, ErrProductExists)

	other, err := svc.CreateProduct(ctx, domain.Product{
		Name: "cassoulet", Category: "mains", Unit: "unit", SellingPrice: 15, IsActive: true,
	})
	require.NoError(t, err)

	// Renaming onto a taken name conflicts; re-saving under the own name does not.
	other.Name = "duck confit"
	_, err = svc.UpdateProduct(ctx, other)
	assert.ErrorIs(t, err, ErrProductExists)

	other.Name = "cassoulet"
	other.SellingPrice = 16
	_, err = svc.UpdateProduct(ctx, other)
	assert.NoError(t, err)
}

func TestUpdateProductPreservesQuantity(t *testing.T) {
	svc, repo := newCatalogFixture(t, "catalog_update")
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Product{
		Name: "flour", Category: "supplies", Unit: "kg", Quantity: 25, PurchasePrice: 0.9, IsActive: true,
	})
	require.NoError(t, err)

	// A catalog edit must not touch the ledger-owned quantity.
	created.PurchasePrice = 1.1
	created.Quantity = 0
	updated, err := svc.UpdateProduct(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 1.1, updated.PurchasePrice)
	assert.Equal(t, 25.0, updated.Quantity)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, reloaded.Quantity)
}

func TestDeactivateProduct(t *testing.T) {
	svc, _ := newCatalogFixture(t, "catalog_deactivate")
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, domain.Product{
		Name: "seasonal special", Category: "mains", Unit: "unit", SellingPrice: 22, IsActive: true,
	})
	require.NoError(t, err)

	deactivated, err := svc.DeactivateProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	// Still readable for order history.
	found, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)

	active, err := svc.GetProducts(ctx, true)
	require.NoError(t, err)
	for _, p := range active {
		assert.NotEqual(t, created.ID, p.ID)
	}
}

func TestGetProductsByCategory(t *testing.T) {
	svc, _ := newCatalogFixture(t, "catalog_by_category")

	// The seeded catalog carries two mains.
	mains, err := svc.GetProductsByCategory(context.Background(), "mains")
	require.NoError(t, err)
	require.NotEmpty(t, mains)
	for _, p := range mains {
		assert.Equal(t, "mains", p.Category)
	}
}
