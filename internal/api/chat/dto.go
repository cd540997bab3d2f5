package chat

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=500"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Debug    *Debug `json:"debug,omitempty"`
}

type Debug struct {
	Intent          string `json:"intent"`
	UsedFuzzySearch bool   `json:"usedFuzzySearch"`
	Method          string `json:"method"`
}

const (
	MethodIntent = "intent"
	MethodFuzzy  = "fuzzy"
)

type KBInfoResponse struct {
	Name             string   `json:"name"`
	Title            string   `json:"title"`
	Experience       string   `json:"experience"`
	Bot              string   `json:"bot"`
	AvailableIntents []string `json:"availableIntents"`
}

type HealthResponse struct {
	Status string          `json:"status"`
	Bot    string          `json:"bot"`
	Data   map[string]bool `json:"data"`
}

type IntentStat struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

type StatsResponse struct {
	Intents []IntentStat `json:"intents"`
	Total   int          `json:"total"`
}

type StatsQuery struct {
	Hours int `query:"hours" validate:"omitempty,min=1,max=720"`
}

type RefreshResponse struct {
	Success bool `json:"success"`
}

type DataResponse struct {
	Success bool `json:"success"`
	Cache   any  `json:"cache"`
}
