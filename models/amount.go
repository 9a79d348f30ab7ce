package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AmountScale is the number of decimal places an amount may carry.
const AmountScale int32 = 2

// MaxAmount is the largest single payment accepted. Together with AmountScale it keeps
// every amount well inside Decimal128's 34 significant digits.
var MaxAmount = decimal.New(1, 12)

// Amount is a monetary value stored as Decimal128 and rendered as a JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

// Rescaled returns the amount at AmountScale decimal places, or false when that
// would drop non-zero digits.
func (a Amount) Rescaled() (Amount, bool) {
	r := a.Decimal.Round(AmountScale)
	if !r.Equal(a.Decimal) {
		return a, false
	}
	return Amount{Decimal: r}, true
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	return a.Decimal.UnmarshalJSON(b)
}

func (a Amount) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d, err := primitive.ParseDecimal128(a.Decimal.String())
	if err != nil {
		return 0, nil, fmt.Errorf("encoding amount %s: %w", a.Decimal.String(), err)
	}
	return bson.MarshalValue(d)
}

func (a *Amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}

	switch t {
	case bsontype.Decimal128:
		d, err := decimal.NewFromString(raw.Decimal128().String())
		if err != nil {
			return err
		}
		a.Decimal = d
	case bsontype.Double:
		a.Decimal = decimal.NewFromFloat(raw.Double())
	case bsontype.Int32:
		a.Decimal = decimal.NewFromInt32(raw.Int32())
	case bsontype.Int64:
		a.Decimal = decimal.NewFromInt(raw.Int64())
	case bsontype.String:
		d, err := decimal.NewFromString(raw.StringValue())
		if err != nil {
			return err
		}
		a.Decimal = d
	case bsontype.Null:
		a.Decimal = decimal.Zero
	default:
		return fmt.Errorf("cannot decode %s into amount", t)
	}

	return nil
}
