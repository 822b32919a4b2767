package models

type InferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters *ZeroShotParameters `json:"parameters,omitempty"`
}

type ZeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type ZeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}
