package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type UpdateDepartmentRequest struct {
	Name string `json:"name" binding:"required,notblank"`
}

type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
