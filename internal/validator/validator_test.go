package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
)

type moneyPayload struct {
	Amount   *decimal.Decimal `binding:"required,money"`
	Category string           `binding:"required,expense_category"`
	Source   string           `binding:"omitempty,income_source"`
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestRegister(t *testing.T) {
	Register()

	cases := []struct {
		name    string
		payload moneyPayload
		valid   bool
	}{
		{"valid", moneyPayload{Amount: amount("12.50"), Category: "food"}, true},
		{"zero amount allowed", moneyPayload{Amount: amount("0"), Category: "food"}, true},
		{"valid source", moneyPayload{Amount: amount("1"), Category: "other", Source: "salary"}, true},
		{"missing amount", moneyPayload{Category: "food"}, false},
		{"negative amount", moneyPayload{Amount: amount("-1"), Category: "food"}, false},
		{"three decimal places", moneyPayload{Amount: amount("1.005"), Category: "food"}, false},
		{"too large", moneyPayload{Amount: amount("100000000"), Category: "food"}, false},
		{"unknown category", moneyPayload{Amount: amount("1"), Category: "rent"}, false},
		{"unknown source", moneyPayload{Amount: amount("1"), Category: "food", Source: "lottery"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.payload)
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
