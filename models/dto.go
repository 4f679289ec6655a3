package models

type CreateUserRequest struct {
	Name     string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=72"`
}

// UpdateUserRequest applies only the non-empty fields.
type UpdateUserRequest struct {
	Name     string `json:"name" form:"name" binding:"omitempty,max=100"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Password string `json:"password" form:"password" binding:"omitempty,min=6,max=72"`
}

// LoginRequest only checks presence; a malformed e-mail fails like an
// unknown one.
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateOrderRequest struct {
	Email  string `json:"email" form:"email" binding:"required,email"`
	Name   string `json:"name" form:"name" binding:"required,max=200"`
	Status string `json:"status" form:"status" binding:"required,max=50"`
}

type UpdateOrderRequest struct {
	Email  string `json:"email" form:"email" binding:"omitempty,email"`
	Name   string `json:"name" form:"name" binding:"omitempty,max=200"`
	Status string `json:"status" form:"status" binding:"omitempty,max=50"`
}
