package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Number coerces the loosely typed values the backend and forms produce into a
// decimal. ok is false for anything that is not a finite number: objects,
// garbage strings, NaN and infinities. nil, false and "" coerce to zero.
func Number(v any) (d decimal.Decimal, ok bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, true
	case bool:
		if t {
			return decimal.NewFromInt(1), true
		}
		return decimal.Zero, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int8:
		return decimal.NewFromInt(int64(t)), true
	case int16:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case uint:
		return decimal.NewFromUint64(uint64(t)), true
	case uint8:
		return decimal.NewFromUint64(uint64(t)), true
	case uint16:
		return decimal.NewFromUint64(uint64(t)), true
	case uint32:
		return decimal.NewFromUint64(uint64(t)), true
	case uint64:
		return decimal.NewFromUint64(t), true
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case json.Number:
		return fromString(string(t))
	case string:
		return fromString(t)
	case decimal.Decimal:
		return t, true
	case Amount:
		return t.Decimal, true
	case Quantity:
		return decimal.NewFromInt(int64(t)), true
	}
	return decimal.Zero, false
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func fromString(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return decimal.Zero, false
	}
	return fromFloat(f)
}

// Amount is a money value that tolerates numbers, numeric strings and null
// on the wire. Anything unparseable decodes to zero instead of failing the
// whole response.
type Amount struct {
	decimal.Decimal
}

func NewAmount(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

func AmountOf(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		a.Decimal = decimal.Zero
		return nil
	}
	d, ok := Number(raw)
	if !ok {
		d = decimal.Zero
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Quantity is an item count decoded from an integer, a float (floored) or a
// numeric string. Unrecognised or out of range values decode to 0.
type Quantity int

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*q = 0
		return nil
	}
	n, ok := quantityOf(raw)
	if !ok {
		*q = 0
		return nil
	}
	*q = Quantity(n)
	return nil
}

// maxQuantity bounds any parsed quantity. Larger values are treated as not a
// number rather than wrapped into an int.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// quantityOf floors v and reports false when it is not a number or does not
// fit within ±maxQuantity.
func quantityOf(v any) (int, bool) {
	d, ok := Number(v)
	if !ok {
		return 0, false
	}
	d = d.Floor()
	if d.GreaterThan(maxQuantity) || d.LessThan(maxQuantity.Neg()) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Int returns the quantity with negatives treated as 0.
func (q Quantity) Int() int {
	if q < 0 {
		return 0
	}
	return int(q)
}

// Unix is a seconds timestamp that may arrive as a number or a string.
type Unix int64

func (u *Unix) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*u = 0
		return nil
	}
	d, ok := Number(raw)
	if !ok {
		*u = 0
		return nil
	}
	*u = Unix(d.IntPart())
	return nil
}
