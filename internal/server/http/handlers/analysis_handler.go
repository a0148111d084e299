package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/server/http/dto"
)

// AnalysisHandler queues transcripts and serves results.
type AnalysisHandler struct {
	facade AnalysisFacade
}

// NewAnalysisHandler constructs AnalysisHandler.
func NewAnalysisHandler(facade AnalysisFacade) *AnalysisHandler {
	return &AnalysisHandler{facade: facade}
}

// Submit handles POST /api/analyses.
func (h *AnalysisHandler) Submit(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	opts := model.AnalysisOptions{Language: req.Language, Sentiment: model.SentimentMode(req.Sentiment)}
	analysis, err := h.facade.SubmitAnalysis(c.Request.Context(), CurrentUserID(c), req.Text, opts)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusAccepted, dto.AnalysisAccepted{
		ID:       analysis.ID,
		Status:   string(analysis.Status),
		Warnings: analysis.Warnings,
	})
}

// Get handles GET /api/analyses/:id.
func (h *AnalysisHandler) Get(c *gin.Context) {
	analysis, err := h.facade.Analysis(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toAnalysisResponse(analysis))
}

// PDF handles GET /api/analyses/:id/pdf.
func (h *AnalysisHandler) PDF(c *gin.Context) {
	id := c.Param("id")
	out, err := h.facade.AnalysisPDF(c.Request.Context(), CurrentUserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrProRequired):
			c.Status(http.StatusForbidden)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotReady):
			c.Status(http.StatusConflict)
		default:
			_ = c.Error(err)
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="meeting-summary-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", out)
}

func toAnalysisResponse(a *model.Analysis) dto.AnalysisResponse {
	items := make([]dto.ActionItemResponse, 0, len(a.ActionItems))
	for _, item := range a.ActionItems {
		items = append(items, dto.ActionItemResponse{Person: item.Person, Action: item.Action, Deadline: item.Deadline})
	}

	resp := dto.AnalysisResponse{
		ID:             a.ID,
		Status:         string(a.Status),
		Language:       a.Language,
		TargetLanguage: a.Options.Language,
		SentimentMode:  string(a.Options.Sentiment),
		Summary:        a.Summary,
		SummaryEnglish: a.SummaryEnglish,
		Sentiment:      a.Sentiment,
		ActionItems:    items,
		Deadlines:      nonNil(a.Deadlines),
		Keywords:       nonNil(a.Keywords),
		Articles:       toArticleResponses(a.Articles),
		Warnings:       a.Warnings,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
	if p := a.Provenance; p != nil {
		resp.Provenance = &dto.ProvenanceResponse{
			ContentHash:      p.ContentHash,
			TxHash:           p.TxHash,
			ExplorerURL:      p.ExplorerURL,
			CredibilityScore: p.CredibilityScore,
			Sources:          nonNil(p.Sources),
		}
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
