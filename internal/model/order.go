package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

type User struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Tel     string `json:"tel"`
	Address string `json:"address"`
}

type OrderLine struct {
	ID         string   `json:"id"`
	ProductID  string   `json:"product_id"`
	Product    Product  `json:"product"`
	Qty        Quantity `json:"qty"`
	Total      Amount   `json:"total"`
	FinalTotal Amount   `json:"final_total"`
}

// ProductRef returns product_id, falling back to the nested product's id.
func (l OrderLine) ProductRef() string {
	if l.ProductID != "" {
		return l.ProductID
	}
	return l.Product.ID
}

// OrderLines is keyed by cart line id. The backend normally sends an object;
// an array is accepted too and keyed by each element's id (or its index).
type OrderLines map[string]OrderLine

func (ls *OrderLines) UnmarshalJSON(b []byte) error {
	var m map[string]OrderLine
	if err := json.Unmarshal(b, &m); err == nil {
		for k, l := range m {
			if l.ID == "" {
				l.ID = k
				m[k] = l
			}
		}
		*ls = m
		return nil
	}
	var arr []OrderLine
	if err := json.Unmarshal(b, &arr); err == nil {
		m = make(map[string]OrderLine, len(arr))
		for i, l := range arr {
			key := l.ID
			if key == "" {
				key = strconv.Itoa(i)
				l.ID = key
			}
			m[key] = l
		}
		*ls = m
		return nil
	}
	*ls = OrderLines{}
	return nil
}

// Keys returns line ids in a stable order.
func (ls OrderLines) Keys() []string {
	keys := make([]string, 0, len(ls))
	for k := range ls {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type orderData struct {
	IsPaid PaidFlag `json:"is_paid"`
}

type Order struct {
	ID            string     `json:"id"`
	CreateAt      Unix       `json:"create_at"`
	User          User       `json:"user"`
	Message       string     `json:"message"`
	IsPaid        PaidFlag   `json:"is_paid"`
	Data          *orderData `json:"data,omitempty"`
	Products      OrderLines `json:"products"`
	Total         Amount     `json:"total"`
	Num           Quantity   `json:"num"`
	PaymentMethod string     `json:"payment_method,omitempty"`
}

// Paid resolves is_paid, falling back to data.is_paid when the top-level
// value is absent.
func (o Order) Paid() bool {
	if o.IsPaid.Present() {
		return o.IsPaid.Bool()
	}
	if o.Data != nil {
		return o.Data.IsPaid.Bool()
	}
	return false
}

func (o Order) CreatedAt() time.Time {
	return time.Unix(int64(o.CreateAt), 0)
}

// ItemCount sums line quantities.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Products {
		n += l.Qty.Int()
	}
	return n
}

func (o Order) Lines() []OrderLine {
	out := make([]OrderLine, 0, len(o.Products))
	for _, k := range o.Products.Keys() {
		out = append(out, o.Products[k])
	}
	return out
}
