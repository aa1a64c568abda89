package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weihsiu/card-reward-advisor/internal/dto"
	"github.com/weihsiu/card-reward-advisor/internal/service"
)

type CalculatorHandler struct {
	svc *service.CalculatorService
}

func NewCalculatorHandler(svc *service.CalculatorService) *CalculatorHandler {
	return &CalculatorHandler{svc: svc}
}

// Calculate ranks every card in the catalog for one purchase. "No card
// matches" is a 200 with an empty result list, never an error.
func (h *CalculatorHandler) Calculate(c *gin.Context) {
	amountStr := c.Query("amount")
	category := c.Query("category")
	paymentMethod := c.Query("payment_method")
	asOfStr := c.Query("as_of")

	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive number"})
		return
	}
	if category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category is required"})
		return
	}

	asOf := time.Now()
	if asOfStr != "" {
		asOf, err = time.Parse("2006-01-02", asOfStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid as_of format, expected YYYY-MM-DD"})
			return
		}
	}

	results, err := h.svc.Calculate(c.Request.Context(), amount, category, paymentMethod, asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CalculationResponse{
		Amount:        amount,
		Category:      category,
		PaymentMethod: paymentMethod,
		AsOf:          asOf.Format("2006-01-02"),
		Results:       results,
	})
}
