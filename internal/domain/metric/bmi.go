package metric

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeBMI returns weight / (height/100)^2 rounded to 2 decimals.
// Weight is in kg and height in cm; ok is false when height is not positive.
// No plausibility bounds are applied.
func ComputeBMI(weightKg, heightCm float64) (bmi float64, ok bool) {
	if heightCm <= 0 || !finite(weightKg) || !finite(heightCm) {
		return 0, false
	}

	heightM := decimal.NewFromFloat(heightCm).Div(decimal.NewFromInt(100))
	value := decimal.NewFromFloat(weightKg).Div(heightM.Mul(heightM)).Round(2)

	bmi, _ = value.Float64()
	return bmi, true
}

// DeriveBMI injects BMI into v when both weight and height are present.
// A zero weight counts as absent.
func DeriveBMI(v Values) {
	weight, hasWeight := v[Weight]
	height, hasHeight := v[Height]
	if !hasWeight || !hasHeight || weight == 0 {
		return
	}

	if bmi, ok := ComputeBMI(weight, height); ok {
		v[BMI] = bmi
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
