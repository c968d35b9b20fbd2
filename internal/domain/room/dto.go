package room

type CreateRoomRequest struct {
	Number string  `json:"number" form:"number" binding:"required,max=10"`
	Type   string  `json:"type" form:"type" binding:"required,max=50"`
	Price  float64 `json:"price" form:"price" binding:"gte=0"`
}

// UpdateRoomRequest is a partial update: nil fields keep their value.
type UpdateRoomRequest struct {
	Number *string  `json:"number" form:"number" binding:"omitempty,min=1,max=10"`
	Type   *string  `json:"type" form:"type" binding:"omitempty,min=1,max=50"`
	Price  *float64 `json:"price" form:"price" binding:"omitempty,gte=0"`
}
