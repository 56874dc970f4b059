package dto

import "github.com/google/uuid"

type RegisterRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"full_name" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type RegisterResponse struct {
	Id         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
}

type LoginRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type ActorDTO struct {
	Id         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Role       string    `json:"role"`
	Department string    `json:"department"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	Actor       ActorDTO `json:"actor"`
}
