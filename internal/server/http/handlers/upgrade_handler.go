package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/server/http/dto"
	"github.com/polkiloo/meetsum/internal/usecase"
)

// UpgradeHandler moves the caller from Free to Pro.
type UpgradeHandler struct {
	facade WalletFacade
}

// NewUpgradeHandler constructs UpgradeHandler.
func NewUpgradeHandler(facade WalletFacade) *UpgradeHandler {
	return &UpgradeHandler{facade: facade}
}

// Upgrade handles POST /api/user/upgrade.
func (h *UpgradeHandler) Upgrade(c *gin.Context) {
	var req dto.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	method, err := model.ParsePaymentMethod(req.Method)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, dto.UpgradeResponse{Message: usecase.FailureReason(err)})
		return
	}
	if crypto, ok := method.(model.CryptoPayment); ok && req.Amount != nil {
		crypto.Amount = *req.Amount
		method = crypto
	}

	result, err := h.facade.Upgrade(c.Request.Context(), CurrentUserID(c), method)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			status = http.StatusPaymentRequired
		case errors.Is(err, domainErrors.ErrWalletNotFound), errors.Is(err, domainErrors.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, domainErrors.ErrAlreadyPro):
			status = http.StatusConflict
		case errors.Is(err, domainErrors.ErrUnsupportedPayment), errors.Is(err, domainErrors.ErrInvalidAmount):
			status = http.StatusUnprocessableEntity
		default:
			_ = c.Error(err)
		}
		c.JSON(status, dto.UpgradeResponse{Message: usecase.FailureReason(err)})
		return
	}

	resp := dto.UpgradeResponse{Success: result.Success, Message: result.Message}
	if result.User != nil {
		resp.Tier = string(result.User.Tier())
	}
	if result.Transaction != nil {
		tx := toTransactionResponse(*result.Transaction)
		resp.Transaction = &tx
	}
	c.JSON(http.StatusOK, resp)
}
