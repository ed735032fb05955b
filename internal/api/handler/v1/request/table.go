package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Shape    string `json:"shape"`
	PosX     int    `json:"pos_x"`
	PosY     int    `json:"pos_y"`
}

func (req *CreateTableRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Min(1)),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Shape, validation.In("", "square", "round", "rect")),
	)
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *UpdateTableStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}
