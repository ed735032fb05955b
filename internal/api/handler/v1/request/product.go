package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Unit          string  `json:"unit" binding:"required"`
	Quantity      float64 `json:"quantity"`
	MinStock      float64 `json:"min_stock"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
}

func (req *CreateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Unit, validation.Required),
		validation.Field(&req.Quantity, validation.Min(0.0)),
		validation.Field(&req.MinStock, validation.Min(0.0)),
		validation.Field(&req.PurchasePrice, validation.Min(0.0)),
		validation.Field(&req.SellingPrice, validation.Min(0.0)),
	)
}

type UpdateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	Unit          string  `json:"unit" binding:"required"`
	MinStock      float64 `json:"min_stock"`
	PurchasePrice float64 `json:"purchase_price"`
	SellingPrice  float64 `json:"selling_price"`
	IsActive      bool    `json:"is_active"`
}

func (req *UpdateProductRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Unit, validation.Required),
		validation.Field(&req.MinStock, validation.Min(0.0)),
		validation.Field(&req.PurchasePrice, validation.Min(0.0)),
		validation.Field(&req.SellingPrice, validation.Min(0.0)),
	)
}
