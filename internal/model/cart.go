package model

type CartItem struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"product_id"`
	Product    Product  `json:"product"`
	Qty        Quantity `json:"qty"`
	Total      Amount   `json:"total"`
	FinalTotal Amount   `json:"final_total"`

	// Pending marks the optimistic line appended after an add, before the
	// next fetch replaces the cart.
	Pending bool `json:"pending,omitempty"`
}

type Cart struct {
	Carts      []CartItem `json:"carts"`
	Total      Amount     `json:"total"`
	FinalTotal Amount     `json:"final_total"`
}

func EmptyCart() Cart {
	return Cart{Carts: []CartItem{}}
}

// Count sums line quantities for badge display. Missing or negative
// quantities count as 0.
func (c Cart) Count() int {
	n := 0
	for _, item := range c.Carts {
		n += item.Qty.Int()
	}
	return n
}

func (c Cart) Find(lineID string) (CartItem, bool) {
	for _, item := range c.Carts {
		if item.ID == lineID {
			return item, true
		}
	}
	return CartItem{}, false
}

func (c Cart) Clone() Cart {
	out := Cart{
		Carts:      make([]CartItem, len(c.Carts)),
		Total:      c.Total,
		FinalTotal: c.FinalTotal,
	}
	for i, item := range c.Carts {
		item.Product.ImagesURL = append([]string(nil), item.Product.ImagesURL...)
		out.Carts[i] = item
	}
	return out
}
