package model

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// ClampQty turns whatever a quantity input produced into a usable quantity:
// numbers are floored and numeric strings parsed. Anything below 1, out of
// range or not a number becomes 1.
func ClampQty(raw any) int {
	n, ok := quantityOf(raw)
	if !ok || n < 1 {
		return 1
	}
	return n
}

// UnitPrice derives a per-item price from a line's loaded total and
// quantity. A zero quantity yields a zero price.
func UnitPrice(total decimal.Decimal, qty int) decimal.Decimal {
	if qty <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(qty)))
}

// LineTotal is round(unitPrice × qty).
func LineTotal(origTotal decimal.Decimal, origQty, qty int) decimal.Decimal {
	return UnitPrice(origTotal, origQty).Mul(decimal.NewFromInt(int64(qty))).Round(0)
}

type DraftLine struct {
	OrderLine

	origQty   int
	origTotal decimal.Decimal
}

// OrderDraft is an editable copy of an order. Edits never touch the order it
// was taken from; totals are advisory until the server recomputes them.
type OrderDraft struct {
	OrderID  string
	CreateAt Unix
	IsPaid   bool
	User     User
	Message  string
	Products map[string]DraftLine
}

func NewOrderDraft(o Order) *OrderDraft {
	d := &OrderDraft{
		OrderID:  o.ID,
		CreateAt: o.CreateAt,
		IsPaid:   o.Paid(),
		User:     o.User,
		Message:  o.Message,
		Products: make(map[string]DraftLine, len(o.Products)),
	}
	for k, l := range o.Products {
		l.Product.ImagesURL = append([]string(nil), l.Product.ImagesURL...)
		d.Products[k] = DraftLine{
			OrderLine: l,
			origQty:   int(l.Qty),
			origTotal: l.Total.Decimal,
		}
	}
	return d
}

// SetQty applies a quantity edit to one line and recomputes its total from
// the line's loaded unit price. It reports false for an unknown line.
func (d *OrderDraft) SetQty(lineID string, raw any) (int, bool) {
	line, ok := d.Products[lineID]
	if !ok {
		return 0, false
	}
	qty := ClampQty(raw)
	line.Qty = Quantity(qty)
	line.Total = AmountOf(LineTotal(line.origTotal, line.origQty, qty))
	d.Products[lineID] = line
	return qty, true
}

// Step handles the +/- buttons.
func (d *OrderDraft) Step(lineID string, delta int) (int, bool) {
	line, ok := d.Products[lineID]
	if !ok {
		return 0, false
	}
	return d.SetQty(lineID, int(line.Qty)+delta)
}

// Total sums every line, edited or not. It is recomputed on each call.
func (d *OrderDraft) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range d.Products {
		sum = sum.Add(l.Total.Decimal)
	}
	return sum
}

func (d *OrderDraft) Num() int {
	n := 0
	for _, l := range d.Products {
		n += l.Qty.Int()
	}
	return n
}

func (d *OrderDraft) Lines() []DraftLine {
	keys := make([]string, 0, len(d.Products))
	for k := range d.Products {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]DraftLine, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.Products[k])
	}
	return out
}

type OrderUpdateLine struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Qty       string `json:"qty"`
}

// OrderUpdate is the complete document PUT to /admin/order/{id}.
type OrderUpdate struct {
	CreateAt Unix                       `json:"create_at"`
	IsPaid   bool                       `json:"is_paid"`
	Message  string                     `json:"message"`
	Products map[string]OrderUpdateLine `json:"products"`
	User     User                       `json:"user"`
	Num      int                        `json:"num"`
}

func (d *OrderDraft) Payload() OrderUpdate {
	products := make(map[string]OrderUpdateLine, len(d.Products))
	for k, l := range d.Products {
		qty := int(l.Qty)
		if qty < 1 {
			qty = 1
		}
		products[k] = OrderUpdateLine{
			ID:        k,
			ProductID: l.ProductRef(),
			Qty:       strconv.Itoa(qty),
		}
	}
	return OrderUpdate{
		CreateAt: d.CreateAt,
		IsPaid:   d.IsPaid,
		Message:  d.Message,
		Products: products,
		User:     d.User,
		Num:      d.Num(),
	}
}
