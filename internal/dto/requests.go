package dto

type CreateRewardRuleRequest struct {
	Category       string   `json:"category" binding:"required"`
	Rate           float64  `json:"rate" binding:"min=0"`
	MonthlyLimit   *float64 `json:"monthly_limit" binding:"omitempty,gt=0"`
	PlanName       string   `json:"plan_name"`
	PaymentMethods []string `json:"payment_methods"`
}

type CreateCardRequest struct {
	BankName           string                    `json:"bank_name" binding:"required"`
	CardName           string                    `json:"card_name" binding:"required"`
	DirectDeduct       bool                      `json:"direct_deduct"`
	RequiresPlanSwitch bool                      `json:"requires_plan_switch"`
	Note               string                    `json:"note"`
	StartDate          string                    `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate            string                    `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Rewards            []CreateRewardRuleRequest `json:"rewards" binding:"omitempty,max=100,dive"`
}

type UpdateCardRequest struct {
	BankName           string `json:"bank_name" binding:"required"`
	CardName           string `json:"card_name" binding:"required"`
	DirectDeduct       bool   `json:"direct_deduct"`
	RequiresPlanSwitch bool   `json:"requires_plan_switch"`
	Note               string `json:"note"`
	StartDate          string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate            string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateRewardRuleRequest struct {
	Category       string   `json:"category" binding:"required"`
	Rate           float64  `json:"rate" binding:"min=0"`
	MonthlyLimit   *float64 `json:"monthly_limit" binding:"omitempty,gt=0"`
	PlanName       string   `json:"plan_name"`
	PaymentMethods []string `json:"payment_methods"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ParentGroup string `json:"parent_group" binding:"required,oneof=國內 國外"`
}

type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	ParentGroup string `json:"parent_group" binding:"required,oneof=國內 國外"`
	SortOrder   int    `json:"sort_order" binding:"min=0"`
}
