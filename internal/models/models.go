package models

// Sample is a single cleaned training example: normalized text plus its
// binary class (1 = bullying, 0 = respectful).
type Sample struct {
	Text  string `json:"text"`
	Label int    `json:"label"`
}

// Verdict is the result of classifying one message. Label is either
// "bullying" or "respectful"; Confidence is a percentage in [0, 100].
type Verdict struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// IsBullying reports whether the verdict denotes the positive class.
func (v Verdict) IsBullying() bool {
	return v.Label == "bullying"
}

// TrainingSummary describes the outcome of one fit run. It is built once by
// the trainer and read-only afterwards.
type TrainingSummary struct {
	ModelID   string  `json:"model_id"`
	Accuracy  float64 `json:"accuracy"`
	F1        float64 `json:"f1"`
	TrainSize int     `json:"train_size"`
	TestSize  int     `json:"test_size"`
}
