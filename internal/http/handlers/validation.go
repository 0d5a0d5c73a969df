package handlers

import (
	"fmt"
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, ProductValidationError{Field: "Title", Description: "Title is required"})
	}
	if p.Price != nil && p.Price.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	for i, v := range p.Variants {
		if v.Price == nil && p.Price == nil {
			errs = append(errs, ProductValidationError{
				Field:       "Variants",
				Description: fmt.Sprintf("variant %d needs a price when the product has none", i),
			})
		}
		if v.Price != nil && v.Price.IsNegative() {
			errs = append(errs, ProductValidationError{
				Field:       "Variants",
				Description: fmt.Sprintf("variant %d price cannot be negative", i),
			})
		}
	}
	return errs
}
