package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/server/http/dto"
)

// newsUnavailable is shown when the news service fails. Articles are then empty.
const newsUnavailable = "News service is temporarily unavailable."

// NewsHandler serves headline and related news lookups.
type NewsHandler struct {
	facade NewsFacade
}

// NewNewsHandler constructs NewsHandler.
func NewNewsHandler(facade NewsFacade) *NewsHandler {
	return &NewsHandler{facade: facade}
}

// Latest handles GET /api/news.
func (h *NewsHandler) Latest(c *gin.Context) {
	articles, err := h.facade.LatestNews(c.Request.Context(), c.Query("category"))
	resp := dto.NewsResponse{Articles: toArticleResponses(articles)}
	if !h.writeFailure(c, err, &resp) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Related handles POST /api/news/related.
func (h *NewsHandler) Related(c *gin.Context) {
	var req dto.RelatedNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	words, articles, err := h.facade.RelatedNews(c.Request.Context(), req.Text)
	resp := dto.NewsResponse{Keywords: words, Articles: toArticleResponses(articles)}
	if !h.writeFailure(c, err, &resp) {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeFailure answers requests that cannot be served and returns false.
// Upstream failures still produce a 200 with a warning.
func (h *NewsHandler) writeFailure(c *gin.Context, err error, resp *dto.NewsResponse) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, domainErrors.ErrInvalidCategory):
		c.Status(http.StatusUnprocessableEntity)
		return false
	case errors.Is(err, domainErrors.ErrConfigurationMissing):
		c.Status(http.StatusServiceUnavailable)
		return false
	default:
		_ = c.Error(err)
		resp.Warning = newsUnavailable
		return true
	}
}
