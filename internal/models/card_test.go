package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyUpdate(t *testing.T) {
	card := ApplyUpdate(99, "sarah1", decimal.RequireFromString("1000.00"))

	assert.Equal(t, int64(99), card.ID)
	assert.Equal(t, "sarah1", card.Owner)
	assert.True(t, card.Amount.Equal(decimal.NewFromInt(1000)))
}

func TestForOwner(t *testing.T) {
	card := ForOwner("sarah1", decimal.RequireFromString("250.005"))

	assert.Zero(t, card.ID)
	assert.Equal(t, "sarah1", card.Owner)
	assert.Equal(t, "250.01", card.Amount.StringFixed(2))
}

func TestCashCard_JSON(t *testing.T) {
	card := CashCard{ID: 99, Amount: decimal.RequireFromString("123.45"), Owner: "sarah1"}

	data, err := json.Marshal(card)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":99,"amount":123.45,"owner":"sarah1"}`, string(data))

	var req CashCardRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"amount":250.00,"owner":"kumar2"}`), &req))
	require.NotNil(t, req.Amount)
	assert.Equal(t, "250", req.Amount.String())
	assert.Equal(t, "kumar2", req.Owner)
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 0, Size: 20}.Offset())
	assert.Equal(t, 6, PageRequest{Page: 2, Size: 3}.Offset())
	assert.Equal(t, 0, PageRequest{Page: -1, Size: 3}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: 461168601842738791, Size: 20}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Size: 2000}.Offset())
}

func TestIdentity_HasRole(t *testing.T) {
	id := Credential{Username: "sarah1", Roles: []string{"CARD-OWNER"}}.Identity()

	assert.True(t, id.HasRole("CARD-OWNER"))
	assert.False(t, id.HasRole("NON-OWNER"))
}
