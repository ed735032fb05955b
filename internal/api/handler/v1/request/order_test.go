package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateOrderItemRequestValidate(t *testing.T) {
	qty := 2.0
	badQty := 0.0
	price := 0.0
	badPrice := -1.0
	note := "no onions"

	assert.NoError(t, (&UpdateOrderItemRequest{Quantity: &qty}).Validate())
	assert.NoError(t, (&UpdateOrderItemRequest{Price: &price}).Validate())
	assert.NoError(t, (&UpdateOrderItemRequest{Note: &note}).Validate())

	assert.ErrorIs(t, (&UpdateOrderItemRequest{}).Validate(), errEmptyItemUpdate)
	assert.ErrorIs(t, (&UpdateOrderItemRequest{Quantity: &badQty}).Validate(), errItemQuantity)
	assert.ErrorIs(t, (&UpdateOrderItemRequest{Price: &badPrice}).Validate(), errItemNegativePrice)
}

func TestAddOrderItemRequestValidate(t *testing.T) {
	assert.NoError(t, (&AddOrderItemRequest{ProductID: 3, Quantity: 1.5}).Validate())
	assert.Error(t, (&AddOrderItemRequest{Quantity: 1}).Validate())
	assert.Error(t, (&AddOrderItemRequest{ProductID: 3, Quantity: -2}).Validate())
}
