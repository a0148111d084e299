package model

import "time"

// AnalysisStatus describes processing lifecycle.
type AnalysisStatus string

const (
	AnalysisStatusNew        AnalysisStatus = "NEW"
	AnalysisStatusProcessing AnalysisStatus = "PROCESSING"
	AnalysisStatusDone       AnalysisStatus = "DONE"
	AnalysisStatusFailed     AnalysisStatus = "FAILED"
)

// SentimentMode selects the sentiment prompt. Only standard is available on the free tier.
type SentimentMode string

const (
	SentimentStandard  SentimentMode = "standard"
	SentimentDetailed  SentimentMode = "detailed"
	SentimentEmotional SentimentMode = "emotional"
)

// ParseSentimentMode returns the mode for s, falling back to standard.
func ParseSentimentMode(s string) SentimentMode {
	switch SentimentMode(s) {
	case SentimentDetailed, SentimentEmotional:
		return SentimentMode(s)
	default:
		return SentimentStandard
	}
}

// DefaultLanguage is used for summaries unless a pro user asks otherwise.
const DefaultLanguage = "English"

// Languages supported as summary targets.
var Languages = []string{
	"English", "Spanish", "French", "German", "Italian", "Portuguese", "Vietnamese",
	"Indonesian", "Dutch", "Swedish", "Norwegian", "Danish", "Finnish",
}

// AnalysisOptions are the caller's choices for a summarisation job.
type AnalysisOptions struct {
	Language  string
	Sentiment SentimentMode
}

// ActionItem is a task extracted from a transcript.
type ActionItem struct {
	Person   string `json:"person"`
	Action   string `json:"action"`
	Deadline string `json:"deadline"`
}

// Provenance is a simulated on-chain record of analysed content.
type Provenance struct {
	ContentHash      string
	TxHash           string
	ExplorerURL      string
	CredibilityScore int
	Sources          []string
}

// Analysis is a summarisation job and its results.
type Analysis struct {
	ID             string
	UserID         string
	Status         AnalysisStatus
	Text           string
	Options        AnalysisOptions
	Language       string
	Summary        string
	SummaryEnglish string
	Sentiment      string
	ActionItems    []ActionItem
	Deadlines      []string
	Keywords       []string
	Articles       []NewsArticle
	Provenance     *Provenance
	Warnings       []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
