package services

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/ruralpay/cashcard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationHelper_CashCardRequest(t *testing.T) {
	vh := NewValidationHelper()

	t.Run("valid amount", func(t *testing.T) {
		err := vh.ValidateStruct(&models.CashCardRequest{Amount: amount("250.00")})
		assert.NoError(t, err)
	})

	t.Run("missing amount", func(t *testing.T) {
		err := vh.ValidateStruct(&models.CashCardRequest{})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Len(t, validationErrors, 1)
		assert.Equal(t, "Amount", validationErrors[0].Field())
		assert.Equal(t, "required", validationErrors[0].Tag())
	})

	t.Run("negative amount", func(t *testing.T) {
		err := vh.ValidateStruct(&models.CashCardRequest{Amount: amount("-1.00")})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "gte", validationErrors[0].Tag())
	})

	t.Run("amount too large for storage", func(t *testing.T) {
		err := vh.ValidateStruct(&models.CashCardRequest{Amount: amount("1e20")})
		require.Error(t, err)

		validationErrors, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "lt", validationErrors[0].Tag())
	})

	t.Run("largest storable amount", func(t *testing.T) {
		err := vh.ValidateStruct(&models.CashCardRequest{Amount: amount("99999999999999900.00")})
		assert.NoError(t, err)
	})
}

func TestDecodeJSON(t *testing.T) {
	decode := func(body string) (models.CashCardRequest, error) {
		var req models.CashCardRequest
		r := httptest.NewRequest("POST", "/cashcards", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		return req, DecodeJSON(w, r, &req)
	}

	t.Run("full record is accepted", func(t *testing.T) {
		req, err := decode(`{"id":1,"amount":10.50,"owner":"kumar2"}`)
		require.NoError(t, err)
		assert.Equal(t, "10.5", req.Amount.String())
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := decode(`{"amount":1,"balance":2}`)
		assert.ErrorIs(t, err, ErrInvalidBody)
	})

	t.Run("two objects", func(t *testing.T) {
		_, err := decode(`{"amount":1}{"amount":2}`)
		assert.ErrorIs(t, err, ErrMultipleJSON)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := decode(`invalid`)
		assert.ErrorIs(t, err, ErrInvalidBody)
	})
}

func TestSendErrorResponse(t *testing.T) {
	t.Run("error response without validation errors", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Something went wrong", http.StatusInternalServerError, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Something went wrong", response.Error)
		assert.Nil(t, response.Details)
	})

	t.Run("error response with validation errors", func(t *testing.T) {
		vh := NewValidationHelper()
		validationErr := vh.ValidateStruct(&models.CashCardRequest{Amount: amount("-5")})
		assert.Error(t, validationErr)

		w := httptest.NewRecorder()
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, validationErr)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Equal(t, "Validation failed", response.Error)
		assert.Contains(t, response.Details, "Amount")
	})

	t.Run("non-validation error adds no details", func(t *testing.T) {
		w := httptest.NewRecorder()

		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, ErrInvalidBody)

		var response ErrorResponse
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		assert.Nil(t, response.Details)
	})
}
