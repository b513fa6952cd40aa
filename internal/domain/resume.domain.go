package domain

// ResumeScore is the LLM evaluation of a resume against a job description.
type ResumeScore struct {
	Score     int      `json:"score"` // 0-100
	Feedback  string   `json:"feedback"`
	Strengths []string `json:"strengths,omitempty"`
	Gaps      []string `json:"gaps,omitempty"`
}
