package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", field, fe.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	default:
		return fmt.Sprintf("%s is not valid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Name":             "Name",
		"Email":            "Email",
		"Password":         "Password",
		"PolicyNumber":     "Policy number",
		"Provider":         "Provider",
		"PropertyID":       "Property",
		"InsuranceID":      "Insurance",
		"CoverageAmount":   "Coverage amount",
		"Premium":          "Premium",
		"PremiumFrequency": "Premium frequency",
		"StartDate":        "Start date",
		"EndDate":          "End date",
		"PurchaseDate":     "Purchase date",
		"PurchaseValue":    "Purchase value",
		"CurrentValue":     "Current value",
		"SharePercentage":  "Share percentage",
		"Relationship":     "Relationship",
		"Contact":          "Contact number",
		"DaysInAdvance":    "Days in advance",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
