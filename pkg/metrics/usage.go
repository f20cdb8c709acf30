package metrics

// Usage captures how much model input a request consumed.
type Usage struct {
	InputTokens int `json:"inputTokens"`
	Chunks      int `json:"chunks"`
}

