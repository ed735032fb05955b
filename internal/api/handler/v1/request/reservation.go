package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateReservationRequest struct {
	Date    string `json:"date" binding:"required" format:"YYYY-MM-DD"`
	Time    string `json:"time" binding:"required" format:"HH:MM"`
	Name    string `json:"name" binding:"required"`
	Covers  int    `json:"covers" binding:"required,min=1"`
	TableID uint   `json:"table_id" binding:"required"`
	Status  string `json:"status"`
	Note    string `json:"note"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Covers, validation.Required, validation.Min(1)),
		validation.Field(&req.TableID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}

type UpdateReservationRequest struct {
	Date    string `json:"date" binding:"required" format:"YYYY-MM-DD"`
	Time    string `json:"time" binding:"required" format:"HH:MM"`
	Name    string `json:"name" binding:"required"`
	Covers  int    `json:"covers" binding:"required,min=1"`
	TableID uint   `json:"table_id" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Note    string `json:"note"`
}

func (req *UpdateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Time, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Covers, validation.Required, validation.Min(1)),
		validation.Field(&req.TableID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Status, validation.Required),
		validation.Field(&req.Note, validation.Length(0, 500)),
	)
}

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (req *UpdateReservationStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}
