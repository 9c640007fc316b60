package structs

// Provenance 記錄產生推薦時的所有中間值，存於 recommendations.provenance
type Provenance struct {
	Version          string           `json:"version"`
	Age              int              `json:"age"`
	PhysicalData     PhysicalData     `json:"physicalData"`
	Conditions       ConditionsData   `json:"conditions"`
	ReferenceTargets ReferenceTargets `json:"referenceTargets"`
	ComputedValues   ComputedValues   `json:"computedValues"`
	Validation       ValidationData   `json:"validation"`
}

type PhysicalData struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	ActivityLevel string  `json:"activityLevel"`
}

type ConditionsData struct {
	Diseases  string   `json:"diseases"`
	Allergies []string `json:"allergies"`
}

type ReferenceTargets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Iron     float64 `json:"iron"`
}

type ComputedValues struct {
	BMR                  float64 `json:"bmr"`
	ActivityFactor       float64 `json:"activityFactor"`
	PersonalizedCalories float64 `json:"personalizedCalories"`
	PersonalizedProtein  float64 `json:"personalizedProtein"`
}

type ValidationData struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}
