package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

var (
	errEmptyItemUpdate   = errors.New("at least one field must be provided")
	errItemQuantity      = errors.New("quantity must be positive")
	errItemNegativePrice = errors.New("price must not be negative")
)

type CreateOrderRequest struct {
	TableNumber int    `json:"table_number" binding:"required"`
	Note        string `json:"note"`
}

func (req *CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TableNumber, validation.Required, validation.Min(1)),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *UpdateOrderStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}

type AddOrderItemRequest struct {
	ProductID uint     `json:"product_id" binding:"required"`
	Quantity  float64  `json:"quantity" binding:"required"`
	Price     *float64 `json:"price,omitempty"`
	Note      string   `json:"note"`
}

func (req *AddOrderItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Quantity, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}

type UpdateOrderItemRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Note     *string  `json:"note,omitempty"`
}

func (req *UpdateOrderItemRequest) Validate() error {
	if req.Quantity == nil && req.Price == nil && req.Note == nil {
		return errEmptyItemUpdate
	}

	if req.Quantity != nil && *req.Quantity <= 0 {
		return errItemQuantity
	}
	if req.Price != nil && *req.Price < 0 {
		return errItemNegativePrice
	}

	return nil
}
