package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type PutSettingRequest struct {
	Category string `json:"category" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

func (req *PutSettingRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Category, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Value, validation.Required, validation.Length(1, 500)),
	)
}
