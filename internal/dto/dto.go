package dto

import (
	"flower-storefront/internal/model"
)

// Quantities arrive as whatever the form produced ("3", 3, 2.7, ""), so they
// stay untyped until the service clamps them.

type AddCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Qty       any    `json:"qty"`
}

type UpdateCartRequest struct {
	Qty any `json:"qty"`
}

type CheckoutRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,loose_email"`
	Tel           string `json:"tel" validate:"required,tw_mobile"`
	Address       string `json:"address" validate:"required"`
	Message       string `json:"message"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=1 2 3 4"`
}

func (r *CheckoutRequest) User() model.User {
	return model.User{
		Name:    r.Name,
		Email:   r.Email,
		Tel:     r.Tel,
		Address: r.Address,
	}
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignInResponse struct {
	UID       string `json:"uid"`
	ExpiresAt int64  `json:"expired"`
}

// OrderEditRequest mirrors the admin order form. Omitted fields keep the
// order's current values.
type OrderEditRequest struct {
	IsPaid     *bool          `json:"is_paid"`
	User       *model.User    `json:"user"`
	Message    *string        `json:"message"`
	Quantities map[string]any `json:"quantities"`
	Steps      map[string]int `json:"steps"`
}

type CartLineView struct {
	model.CartItem
	UnitPrice         string `json:"unit_price"`
	DisplayFinalTotal string `json:"display_final_total"`
}

type CartResponse struct {
	Carts             []CartLineView `json:"carts"`
	Total             model.Amount   `json:"total"`
	FinalTotal        model.Amount   `json:"final_total"`
	Count             int            `json:"count"`
	DisplayTotal      string         `json:"display_total"`
	DisplayFinalTotal string         `json:"display_final_total"`
	DisplayWithTax    string         `json:"display_with_tax"`
}

type OrderLineView struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	Title     string        `json:"title"`
	Qty       int           `json:"qty"`
	UnitPrice string        `json:"unit_price"`
	Total     string        `json:"total"`
	Product   model.Product `json:"product"`
}

type OrderView struct {
	ID            string          `json:"id"`
	CreateAt      int64           `json:"create_at"`
	IsPaid        bool            `json:"is_paid"`
	User          model.User      `json:"user"`
	Message       string          `json:"message"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Lines         []OrderLineView `json:"lines"`
	Num           int             `json:"num"`
	Total         model.Amount    `json:"total"`
	DisplayTotal  string          `json:"display_total"`
}

type OrderListResponse struct {
	Orders     []OrderView      `json:"orders"`
	Pagination model.Pagination `json:"pagination"`
}

type DraftResponse struct {
	OrderView
	Payload model.OrderUpdate `json:"payload"`
}

type ProductListResponse struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
