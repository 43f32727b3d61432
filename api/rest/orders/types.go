package orders

import (
	"codeberg.org/wcorrea/apierror/api/rest/pagination"
	"codeberg.org/wcorrea/apierror/library/orders"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListResponse represents a page of orders
type ListResponse struct {
	Orders     []orders.Order  `json:"orders"`
	Pagination pagination.Meta `json:"pagination"`
}

// DeleteResponse confirms a deleted order
type DeleteResponse struct {
	Message string `json:"message"`
}
