package calc

import "fmt"

// Sex selects the coefficient set for the basal metabolic rate formula.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// ActivityLevel is one of the five fixed lifestyle bands scaling the basal
// rate up to total daily energy expenditure.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// activityMultipliers scale BMR to TDEE.
var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// kcal stored in one kilogram of body fat
const kcalPerKg = 7700.0

// BMR computes the basal metabolic rate with the revised Harris-Benedict
// equations. Weight in kilograms, height in centimetres, age in years.
func BMR(sex Sex, weightKg, heightCm float64, ageYears int) (float64, error) {
	if weightKg <= 0 || heightCm <= 0 || ageYears <= 0 {
		return 0, ErrInvalidBiometrics
	}

	switch sex {
	case SexMale:
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(ageYears), nil
	case SexFemale:
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(ageYears), nil
	default:
		return 0, fmt.Errorf("%w: unknown sex %q", ErrInvalidBiometrics, sex)
	}
}

// TDEE scales a basal rate by the activity-level multiplier.
func TDEE(bmr float64, level ActivityLevel) (float64, error) {
	multiplier, ok := activityMultipliers[level]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity level %q", ErrInvalidBiometrics, level)
	}
	return bmr * multiplier, nil
}

// DailyCalorieTarget computes the daily intake needed to move from the
// current weight to the target weight over targetWeeks. The adjustment is
// linear: the total energy difference between the weights, spread evenly
// over the plan's days, added to maintenance. Losing weight yields a target
// below maintenance, gaining one above.
func DailyCalorieTarget(sex Sex, currentWeightKg, heightCm float64, ageYears int, level ActivityLevel, targetWeightKg float64, targetWeeks int) (float64, error) {
	if targetWeightKg <= 0 || targetWeeks <= 0 {
		return 0, ErrInvalidBiometrics
	}

	bmr, err := BMR(sex, currentWeightKg, heightCm, ageYears)
	if err != nil {
		return 0, err
	}

	maintenance, err := TDEE(bmr, level)
	if err != nil {
		return 0, err
	}

	adjustment := (targetWeightKg - currentWeightKg) * kcalPerKg / (float64(targetWeeks) * 7)
	return maintenance + adjustment, nil
}
