package dto

import "github.com/weihsiu/card-reward-advisor/internal/model"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorListResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// CategoryGroup mirrors the grouped dropdown the browse view renders:
// 國內 categories first, then 國外, each in per-group sort order.
type CategoryGroup struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type CardListResponse struct {
	Data       []model.Card    `json:"data"`
	Groups     []CategoryGroup `json:"category_groups"`
	Pagination Pagination      `json:"pagination"`
}

type CalculationResponse struct {
	Amount        float64                   `json:"amount"`
	Category      string                    `json:"category"`
	PaymentMethod string                    `json:"payment_method,omitempty"`
	AsOf          string                    `json:"as_of"`
	Results       []model.CalculationResult `json:"results"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
