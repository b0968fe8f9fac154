package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func validateInput(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func validateAmount(amount decimal.NullDecimal) error {
	if amount.Valid && amount.Decimal.IsNegative() {
		return fmt.Errorf("%w: payment amount %s is negative", ErrInvalidInput, amount.Decimal)
	}
	return nil
}
