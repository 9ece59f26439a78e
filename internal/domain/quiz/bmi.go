package quiz

import (
	"math"
	"strconv"
)

// BMI returns weight / height² (height in metres) rounded to two decimals.
func BMI(heightCM, weightKG float64) (float64, bool) {
	if heightCM <= 0 || weightKG <= 0 {
		return 0, false
	}
	h := heightCM / 100
	return math.Round(weightKG/(h*h)*100) / 100, true
}

// DeriveBMI stores the BMI entry once both height and weight are answered.
// It reports whether the entry was written.
func DeriveBMI(a Answers) bool {
	height, ok := a.Float(KeyHeightCM)
	if !ok {
		return false
	}
	weight, ok := a.Float(KeyWeightKG)
	if !ok {
		return false
	}
	bmi, ok := BMI(height, weight)
	if !ok {
		return false
	}
	a[KeyBMI] = Number(strconv.FormatFloat(bmi, 'f', 2, 64))
	return true
}

// BMICategory is display copy only; it is not a diagnosis.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Abaixo do peso"
	case bmi < 25:
		return "Peso normal"
	case bmi < 30:
		return "Sobrepeso"
	default:
		return "Obesidade"
	}
}
