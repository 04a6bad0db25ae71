package calc

import "fmt"

// Activity is a physical activity with a known energy cost.
type Activity string

const (
	ActivityWalking    Activity = "walking"
	ActivityRunning    Activity = "running"
	ActivityCycling    Activity = "cycling"
	ActivitySwimming   Activity = "swimming"
	ActivityYoga       Activity = "yoga"
	ActivityStrength   Activity = "strength_training"
	ActivityHIIT       Activity = "hiit"
	ActivityFootball   Activity = "football"
	ActivityBasketball Activity = "basketball"
	ActivityDancing    Activity = "dancing"
)

// referenceWeightKg is the body weight the per-hour table is calibrated to.
const referenceWeightKg = 70.0

// caloriesPerHour is the energy cost of one hour of each activity for a
// 70kg body.
var caloriesPerHour = map[Activity]float64{
	ActivityWalking:    280,
	ActivityRunning:    700,
	ActivityCycling:    560,
	ActivitySwimming:   510,
	ActivityYoga:       180,
	ActivityStrength:   420,
	ActivityHIIT:       600,
	ActivityFootball:   500,
	ActivityBasketball: 580,
	ActivityDancing:    330,
}

// Activities lists the supported activities in a stable order for pickers.
func Activities() []Activity {
	return []Activity{
		ActivityWalking,
		ActivityRunning,
		ActivityCycling,
		ActivitySwimming,
		ActivityYoga,
		ActivityStrength,
		ActivityHIIT,
		ActivityFootball,
		ActivityBasketball,
		ActivityDancing,
	}
}

// ActivityBurn estimates calories burned doing an activity for the given
// duration at the given body weight. The table value scales linearly with
// weight relative to the 70kg reference and with duration.
func ActivityBurn(activity Activity, weightKg float64, durationMinutes float64) (float64, error) {
	if weightKg <= 0 || durationMinutes < 0 {
		return 0, ErrInvalidBiometrics
	}

	perHour, ok := caloriesPerHour[activity]
	if !ok {
		return 0, fmt.Errorf("%w: unknown activity %q", ErrInvalidBiometrics, activity)
	}

	return perHour * (weightKg / referenceWeightKg) * (durationMinutes / 60), nil
}
