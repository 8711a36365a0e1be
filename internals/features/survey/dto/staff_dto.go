package dto

type StaffLoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

type SaveProgressRequest struct {
	Bucket string         `json:"bucket" validate:"required"`
	Data   map[string]any `json:"data"`
}
