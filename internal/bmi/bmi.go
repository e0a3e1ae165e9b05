package bmi

import (
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
)

// Category labels a BMI value per the standard adult ranges.
type Category string

const (
	Underweight  Category = "Underweight"
	NormalWeight Category = "Normal weight"
	Overweight   Category = "Overweight"
	Obese        Category = "Obese"
)

// Upper bounds of the categories; a BMI strictly below the limit stays in
// the lighter category.
const (
	UnderweightLimit = 18.5
	NormalLimit      = 25.0
	OverweightLimit  = 30.0
)

// Soft upper bounds for input. Values above these are treated as typos
// rather than measurements.
const (
	MaxWeightKg = 300.0
	MaxHeightM  = 2.5
)

var (
	ErrNotPositive   = errors.New("weight and height must be positive numbers")
	ErrWeightTooHigh = errors.New("weight seems too high, please check your input")
	ErrHeightTooHigh = errors.New("height seems too high, please check your input")
)

var validate = validator.New()

// Input carries one measurement pair through validation.
type Input struct {
	Weight float64 `validate:"gt=0,lte=300"`
	Height float64 `validate:"gt=0,lte=2.5"`
}

// Validate enforces positivity and the soft upper bounds. The returned
// error is one of the sentinel errors above, worded for direct display.
func Validate(weight, height float64) error {
	err := validate.Struct(Input{Weight: weight, Height: height})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "gt" {
			return ErrNotPositive
		}
	}
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Weight":
			return ErrWeightTooHigh
		case "Height":
			return ErrHeightTooHigh
		}
	}
	return err
}

// Calculate returns weight_kg / height_m² rounded to two decimals, or the
// validation error for out-of-range input.
func Calculate(weight, height float64) (float64, error) {
	if err := Validate(weight, height); err != nil {
		return 0, err
	}
	v := weight / (height * height)
	return math.Round(v*100) / 100, nil
}

// Classify maps a BMI value onto its category.
func Classify(bmi float64) Category {
	switch {
	case bmi < UnderweightLimit:
		return Underweight
	case bmi < NormalLimit:
		return NormalWeight
	case bmi < OverweightLimit:
		return Overweight
	default:
		return Obese
	}
}
