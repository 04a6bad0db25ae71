package models

// NutritionItem is one nutrient record returned by the external nutrition
// lookup API for a free-text food query. Mass fields are grams per serving
// unless the field name says otherwise.
type NutritionItem struct {
	Name           string  `json:"name"`
	Calories       float64 `json:"calories"`
	ServingSizeG   float64 `json:"serving_size_g"`
	FatTotalG      float64 `json:"fat_total_g"`
	FatSaturatedG  float64 `json:"fat_saturated_g"`
	ProteinG       float64 `json:"protein_g"`
	SodiumMg       float64 `json:"sodium_mg"`
	PotassiumMg    float64 `json:"potassium_mg"`
	CholesterolMg  float64 `json:"cholesterol_mg"`
	CarbohydratesG float64 `json:"carbohydrates_total_g"`
	FiberG         float64 `json:"fiber_g"`
	SugarG         float64 `json:"sugar_g"`
}

// ToFoodEntry converts a lookup result into a food-entry draft with the
// nutrient snapshot filled in. The caller supplies the meal type, date and
// time before saving.
func (n NutritionItem) ToFoodEntry() FoodEntry {
	return FoodEntry{
		Name:        n.Name,
		ServingSize: n.ServingSizeG,
		ServingUnit: "g",
		Calories:    n.Calories,
		Protein:     n.ProteinG,
		Carbs:       n.CarbohydratesG,
		Fat:         n.FatTotalG,
		Fiber:       n.FiberG,
		Sugar:       n.SugarG,
	}
}
