package product

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	Code         string          `json:"code" binding:"required,notblank,max=50"`
	Description  string          `json:"description" binding:"required,notblank,max=100"`
	DepartmentID int64           `json:"departmentId" binding:"gt=0"`
	Price        decimal.Decimal `json:"price" binding:"gt=0"`
}

// UpdateProductRequest carries the mutable fields. The code is fixed at
// creation.
type UpdateProductRequest struct {
	Description  string          `json:"description" binding:"required,notblank,max=100"`
	DepartmentID int64           `json:"departmentId" binding:"gt=0"`
	Price        decimal.Decimal `json:"price" binding:"gt=0"`
}

type ProductResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	DepartmentID    int64           `json:"departmentId"`
	DepartmentTitle *string         `json:"departmentTitle"`
	Price           decimal.Decimal `json:"price"`
}
