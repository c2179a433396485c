package dto

// BuyBookRequest records a sale. Customer and book accept an id or a
// name/title; all-digit strings are treated as ids.
type BuyBookRequest struct {
	Customer string `json:"customer" binding:"required"`
	Book     string `json:"book" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Months   int    `json:"months"`
}
