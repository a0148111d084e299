package dto

import "time"

// AnalysisRequest submits a transcript for summarisation.
type AnalysisRequest struct {
	Text      string `json:"text"`
	Language  string `json:"language"`
	Sentiment string `json:"sentiment"`
}

// AnalysisAccepted is returned when a job is queued.
type AnalysisAccepted struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Warnings []string `json:"warnings,omitempty"`
}

// ActionItemResponse is an extracted task.
type ActionItemResponse struct {
	Person   string `json:"person"`
	Action   string `json:"action"`
	Deadline string `json:"deadline"`
}

// ProvenanceResponse is a simulated on-chain record.
type ProvenanceResponse struct {
	ContentHash      string   `json:"content_hash"`
	TxHash           string   `json:"tx_hash"`
	ExplorerURL      string   `json:"explorer_url"`
	CredibilityScore int      `json:"credibility_score"`
	Sources          []string `json:"sources"`
}

// AnalysisResponse is a job with its results.
type AnalysisResponse struct {
	ID             string               `json:"id"`
	Status         string               `json:"status"`
	Language       string               `json:"language,omitempty"`
	TargetLanguage string               `json:"target_language"`
	SentimentMode  string               `json:"sentiment_mode"`
	Summary        string               `json:"summary,omitempty"`
	SummaryEnglish string               `json:"summary_english,omitempty"`
	Sentiment      string               `json:"sentiment,omitempty"`
	ActionItems    []ActionItemResponse `json:"action_items"`
	Deadlines      []string             `json:"deadlines"`
	Keywords       []string             `json:"keywords"`
	Articles       []ArticleResponse    `json:"articles"`
	Provenance     *ProvenanceResponse  `json:"provenance,omitempty"`
	Warnings       []string             `json:"warnings,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}
