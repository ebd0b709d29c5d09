// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"pencil/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// Decimals are validated through their string form so that the
		// precision check sees exactly what the client sent.
		v.RegisterCustomTypeFunc(decimalString, decimal.Decimal{})
		_ = v.RegisterValidation("money", validateMoney)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("income_source", validateIncomeSource)
	}
}

func decimalString(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return models.ValidAmount(d)
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.ExpenseCategory(fl.Field().String()).IsValid()
}

func validateIncomeSource(fl validator.FieldLevel) bool {
	return models.IncomeSource(fl.Field().String()).IsValid()
}
