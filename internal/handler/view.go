package handler

import (
	"flower-storefront/internal/dto"
	"flower-storefront/internal/format"
	"flower-storefront/internal/model"
)

func cartView(cart model.Cart) dto.CartResponse {
	lines := make([]dto.CartLineView, 0, len(cart.Carts))
	for _, item := range cart.Carts {
		lines = append(lines, dto.CartLineView{
			CartItem:          item,
			UnitPrice:         format.Currency(model.UnitPrice(item.Total.Decimal, item.Qty.Int())),
			DisplayFinalTotal: format.Currency(item.FinalTotal),
		})
	}
	return dto.CartResponse{
		Carts:             lines,
		Total:             cart.Total,
		FinalTotal:        cart.FinalTotal,
		Count:             cart.Count(),
		DisplayTotal:      format.Currency(cart.Total),
		DisplayFinalTotal: format.Currency(cart.FinalTotal),
		DisplayWithTax:    format.Currency(format.WithTax(cart.FinalTotal.Decimal)),
	}
}

func orderView(o model.Order) dto.OrderView {
	lines := make([]dto.OrderLineView, 0, len(o.Products))
	for _, l := range o.Lines() {
		lines = append(lines, dto.OrderLineView{
			ID:        l.ID,
			ProductID: l.ProductRef(),
			Title:     l.Product.Title,
			Qty:       l.Qty.Int(),
			UnitPrice: format.Currency(model.UnitPrice(l.Total.Decimal, l.Qty.Int())),
			Total:     format.Currency(l.Total),
			Product:   l.Product,
		})
	}
	return dto.OrderView{
		ID:            o.ID,
		CreateAt:      int64(o.CreateAt),
		IsPaid:        o.Paid(),
		User:          o.User,
		Message:       o.Message,
		PaymentMethod: o.PaymentMethod,
		Lines:         lines,
		Num:           o.ItemCount(),
		Total:         o.Total,
		DisplayTotal:  format.Currency(o.Total),
	}
}

func draftView(d *model.OrderDraft) dto.DraftResponse {
	lines := make([]dto.OrderLineView, 0, len(d.Products))
	for _, l := range d.Lines() {
		lines = append(lines, dto.OrderLineView{
			ID:        l.ID,
			ProductID: l.ProductRef(),
			Title:     l.Product.Title,
			Qty:       l.Qty.Int(),
			UnitPrice: format.Currency(model.UnitPrice(l.Total.Decimal, l.Qty.Int())),
			Total:     format.Currency(l.Total),
			Product:   l.Product,
		})
	}
	total := model.AmountOf(d.Total())
	return dto.DraftResponse{
		OrderView: dto.OrderView{
			ID:           d.OrderID,
			CreateAt:     int64(d.CreateAt),
			IsPaid:       d.IsPaid,
			User:         d.User,
			Message:      d.Message,
			Lines:        lines,
			Num:          d.Num(),
			Total:        total,
			DisplayTotal: format.Currency(total),
		},
		Payload: d.Payload(),
	}
}
