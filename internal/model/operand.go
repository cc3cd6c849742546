package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Operand is a float64 operand that accepts a JSON number or a string
// holding one: 2, 2.5, "2", " -1e3 ".
//
// Anything else (non-numeric strings, booleans, arrays, objects, numbers
// outside float64 range, "NaN", "Inf") decodes to NaN, which the "finite"
// rule rejects. Decoding never fails, so every bad field gets reported.
type Operand float64

// UnmarshalJSON implements json.Unmarshaler.
func (o *Operand) UnmarshalJSON(data []byte) error {
	*o = Operand(parseOperand(data))
	return nil
}

// Float64 returns the operand as a float64.
func (o Operand) Float64() float64 {
	return float64(o)
}

func parseOperand(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return math.NaN()
	}

	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return math.NaN()
		}
		text = strings.TrimSpace(text)

		// Only decimal notation; ParseFloat would also take hex floats.
		if strings.ContainsAny(text, "xX") {
			return math.NaN()
		}
	} else if data[0] != '-' && (data[0] < '0' || data[0] > '9') {
		return math.NaN()
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return math.NaN()
	}

	return f
}

// isFinite backs the "finite" validation tag.
func isFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
