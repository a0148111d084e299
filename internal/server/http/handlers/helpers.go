package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/server/http/dto"
	"github.com/polkiloo/meetsum/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDContextKey)
}

func toWalletResponse(w *model.Wallet) *dto.WalletResponse {
	if w == nil {
		return nil
	}
	return &dto.WalletResponse{
		Address:   w.Address,
		Balance:   w.Balance,
		Currency:  w.Currency,
		CreatedAt: w.CreatedAt,
	}
}

func toTransactionResponse(tx model.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		Hash:      tx.Hash,
		From:      tx.From,
		To:        tx.To,
		Amount:    tx.Amount,
		Currency:  tx.Currency,
		Timestamp: tx.Timestamp,
		Status:    string(tx.Status),
	}
}

func toArticleResponses(articles []model.NewsArticle) []dto.ArticleResponse {
	resp := make([]dto.ArticleResponse, 0, len(articles))
	for _, a := range articles {
		var published *time.Time
		if !a.PublishedAt.IsZero() {
			t := a.PublishedAt
			published = &t
		}
		resp = append(resp, dto.ArticleResponse{
			Title:       a.Title,
			Source:      a.Source,
			URL:         a.URL,
			PublishedAt: published,
			Description: a.Description,
			ImageURL:    a.ImageURL,
		})
	}
	return resp
}
