package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AdjustStockRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Delta     float64 `json:"delta" binding:"required"`
	Reason    string  `json:"reason" binding:"required"`
	Note      string  `json:"note"`
}

func (req *AdjustStockRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Delta, validation.Required),
		validation.Field(&req.Reason, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}
