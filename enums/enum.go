package enums

const (
	ProcessSingle         = "SINGLE"
	ProcessOptions        = "OPTIONS"
	SystemOperate         = "system"
	ActivityLow           = "low"
	ActivityMedium        = "medium"
	ActivityHigh          = "high"
	MealBreakfast         = "breakfast"
	MealLunch             = "lunch"
	MealDinner            = "dinner"
	StatusCurrent         = "current"
	ActionCreate          = "create"
	ModuleRecommendation  = "recommendation"
	RecommendationQueue   = "recommendation"
	OptionsQueue          = "recommendation-options"
	DefaultOptionCount    = 3
	ProvenanceVersion     = "2.0"
	DefaultMotive         = "Automatic recommendation"
	RecommendationLogName = "schedule.go.recommendation"
	ConnectionName        = "nutrirec"
	JobCallbackPath       = "/api/v1/workerCallback/recommendation"
	MismatchCallbackPath  = "/api/v1/workerCallback/mismatchQueue"
)

// 三餐固定順序，產生推薦時依此順序處理
var MealCategories = []string{MealBreakfast, MealLunch, MealDinner}
