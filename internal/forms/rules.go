package forms

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is preselected on new property and room-type forms.
const DefaultCurrency = "₵"

const minDescriptionLen = 10

func required(errs FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = msg
	}
}

// describe applies the shared description rules. A present but short
// description reports the length message in place of the required one.
func describe(errs FieldErrors, value string) {
	required(errs, "description", value, "Description is required")
	if value != "" && utf8.RuneCountInString(strings.TrimSpace(value)) < minDescriptionLen {
		errs["description"] = fmt.Sprintf("Description must be at least %d characters long", minDescriptionLen)
	}
}

func positiveDecimal(errs FieldErrors, field, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		errs[field] = label + " must be a valid number"
		return
	}
	if !d.IsPositive() {
		errs[field] = label + " must be greater than 0"
	}
}

func positiveInt(errs FieldErrors, field, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		errs[field] = label + " must be a whole number"
		return
	}
	if n <= 0 {
		errs[field] = label + " must be greater than 0"
	}
}

// within accepts only decimal literals; NaN, Inf and hex floats fail.
func within(errs FieldErrors, field, label, value string, lo, hi float64) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		errs[field] = label + " must be a valid number"
		return
	}
	if d.LessThan(decimal.NewFromFloat(lo)) || d.GreaterThan(decimal.NewFromFloat(hi)) {
		errs[field] = fmt.Sprintf("%s must be between %g and %g", label, lo, hi)
	}
}

func optionalInt(errs FieldErrors, field, label, value string) {
	v := strings.TrimSpace(value)
	if v == "" {
		return
	}
	if _, err := strconv.Atoi(v); err != nil {
		errs[field] = label + " must be a whole number"
	}
}

// number renders a validated numeric input as a JSON number.
func number(value string) json.Number {
	v := strings.TrimSpace(value)
	if d, err := decimal.NewFromString(v); err == nil {
		return json.Number(d.String())
	}
	return json.Number(v)
}

func optionalNumber(value string) *json.Number {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	n := number(value)
	return &n
}

func optionalIntPtr(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}

// compact trims list entries and drops the blank ones.
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func decimalInput(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func nullDecimalInput(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
