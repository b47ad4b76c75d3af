package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// ResolveIsPaid is the only place that decides whether a raw "is paid" value
// means paid. true, "true" and the number 1 are paid; everything else,
// including absent values, is unpaid.
func ResolveIsPaid(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t == "true"
	case PaidFlag:
		return t.Bool()
	case *PaidFlag:
		return t != nil && t.Bool()
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number, decimal.Decimal, Amount, Quantity:
		d, ok := Number(t)
		return ok && d.Equal(one)
	}
	return false
}

// PaidFlag keeps the raw is_paid value exactly as the backend sent it.
type PaidFlag struct {
	raw any
	set bool
}

func PaidFrom(v any) PaidFlag {
	return PaidFlag{raw: v, set: v != nil}
}

func (p *PaidFlag) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*p = PaidFlag{}
		return nil
	}
	*p = PaidFrom(raw)
	return nil
}

func (p PaidFlag) MarshalJSON() ([]byte, error) {
	if !p.set {
		return []byte("null"), nil
	}
	return json.Marshal(p.raw)
}

// Present reports whether a non-null value was received.
func (p PaidFlag) Present() bool {
	return p.set
}

func (p PaidFlag) Raw() any {
	return p.raw
}

func (p PaidFlag) Bool() bool {
	return p.set && ResolveIsPaid(p.raw)
}
