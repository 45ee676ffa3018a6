package domain

// CandidateScore is one entry of an oracle availability-scoring response,
// referencing a candidate by its position in the submitted batch.
type CandidateScore struct {
	Index      int    `json:"index"`
	Likelihood int    `json:"likelihood"`
	Reason     string `json:"reason"`
}
