package client

type CreateClientRequest struct {
	Name  string `json:"name" form:"name" binding:"required,max=100"`
	Email string `json:"email" form:"email" binding:"required,email,max=100"`
}

// UpdateClientRequest is a partial update: nil fields keep their value.
type UpdateClientRequest struct {
	Name  *string `json:"name" form:"name" binding:"omitempty,min=1,max=100"`
	Email *string `json:"email" form:"email" binding:"omitempty,email,max=100"`
}
