package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestAmountJSONAcceptsNumbersAndStrings(t *testing.T) {
	var body CreateTransactionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 500.25, "description": "rent"}`), &body))
	require.NotNil(t, body.Amount)
	require.Equal(t, "500.25", body.Amount.String())

	require.NoError(t, json.Unmarshal([]byte(`{"amount": "12.5"}`), &body))
	require.Equal(t, "12.5", body.Amount.String())

	out, err := json.Marshal(AmountFromInt(500))
	require.NoError(t, err)
	require.Equal(t, "500", string(out))
}

func TestAmountBSONDecimal128(t *testing.T) {
	in := Transaction{ID: "t1", Amount: AmountFromInt(1250), Status: StatusPending}

	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	var out Transaction
	require.NoError(t, bson.Unmarshal(raw, &out))
	require.True(t, in.Amount.Equal(out.Amount.Decimal))

	doc := bson.Raw(raw)
	require.Equal(t, bson.TypeDecimal128, doc.Lookup("amount").Type)
}

func TestAmountBSONFromDouble(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"amount": 99.5})
	require.NoError(t, err)

	var out struct {
		Amount Amount `bson:"amount"`
	}
	require.NoError(t, bson.Unmarshal(raw, &out))
	require.Equal(t, "99.5", out.Amount.String())
}

func TestParseDecision(t *testing.T) {
	s, ok := ParseDecision("approved")
	require.True(t, ok)
	require.Equal(t, StatusApproved, s)

	_, ok = ParseDecision("pending")
	require.False(t, ok)

	_, ok = ParseDecision("revoked")
	require.False(t, ok)
}

func TestAmountRescaled(t *testing.T) {
	r, ok := NewAmount(decimal.RequireFromString("12.5000")).Rescaled()
	require.True(t, ok)
	require.Equal(t, AmountScale, -r.Exponent())
	require.Equal(t, "12.5", r.String())

	_, ok = NewAmount(decimal.RequireFromString("12.505")).Rescaled()
	require.False(t, ok)

	r, ok = AmountFromInt(300).Rescaled()
	require.True(t, ok)
	require.Equal(t, AmountScale, -r.Exponent())
	require.True(t, r.Equal(decimal.NewFromInt(300)))
}
