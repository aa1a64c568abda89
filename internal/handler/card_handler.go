package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weihsiu/card-reward-advisor/internal/dto"
	"github.com/weihsiu/card-reward-advisor/internal/middleware"
	"github.com/weihsiu/card-reward-advisor/internal/model"
	"github.com/weihsiu/card-reward-advisor/internal/service"
)

type CardHandler struct {
	svc *service.CatalogService
}

func NewCardHandler(svc *service.CatalogService) *CardHandler {
	return &CardHandler{svc: svc}
}

// List serves the browse view: filter criteria from the query string, all
// combined with AND, paged in memory after filtering.
func (h *CardHandler) List(c *gin.Context) {
	criteria := model.FilterCriteria{
		Category:      c.Query("category"),
		PaymentMethod: c.Query("payment_method"),
		SearchTerm:    c.Query("q"),
	}
	var ok bool
	if criteria.DirectDeduct, ok = parseBoolFilter(c, "direct_deduct"); !ok {
		return
	}
	if criteria.NoPlanSwitch, ok = parseBoolFilter(c, "no_plan_switch"); !ok {
		return
	}

	p := dto.ParsePagination(c)

	cards, groups, err := h.svc.Browse(c.Request.Context(), criteria)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	start, end := p.Window(len(cards))
	c.JSON(http.StatusOK, dto.CardListResponse{
		Data:       cards[start:end],
		Groups:     groups,
		Pagination: dto.NewPagination(p, len(cards)),
	})
}

func (h *CardHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	card, err := h.svc.GetCard(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Create(c *gin.Context) {
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	card, err := h.svc.CreateCard(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *CardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	card, err := h.svc.UpdateCard(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, card)
}

func (h *CardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteCard(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CardHandler) AddRule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.CreateRewardRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	rule, err := h.svc.AddRule(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rule)
}

func (h *CardHandler) UpdateRule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRewardRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	rule, err := h.svc.UpdateRule(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rule)
}

func (h *CardHandler) DeleteRule(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteRule(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func parseBoolFilter(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be true or false"})
		return nil, false
	}
	return &v, true
}

func respondServiceError(c *gin.Context, err error) {
	if service.IsValidation(err) {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		return
	}
	status, resp := middleware.MapDBError(err)
	c.JSON(status, resp)
}
