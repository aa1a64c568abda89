package model

import (
	"time"
)

// Card is a credit card with its reward rules attached. Rules are owned
// exclusively by one card. StartDate/EndDate, when set, bound the campaign
// window (inclusive); a card without dates is always active.
type Card struct {
	ID                 int64        `json:"id"`
	BankName           string       `json:"bank_name"`
	CardName           string       `json:"card_name"`
	DirectDeduct       bool         `json:"direct_deduct"`
	RequiresPlanSwitch bool         `json:"requires_plan_switch"`
	Note               string       `json:"note,omitempty"`
	StartDate          *time.Time   `json:"start_date,omitempty"`
	EndDate            *time.Time   `json:"end_date,omitempty"`
	Rewards            []RewardRule `json:"rewards"`
	CreatedAt          time.Time    `json:"created_at"`
}

// RewardRule maps one spend category to a cashback rate. An empty PlanName
// means the rule is unconditionally available; a non-empty PlanName is only
// meaningful on a card with RequiresPlanSwitch set. An empty PaymentMethods
// list means the rule applies to any payment instrument.
type RewardRule struct {
	ID             int64    `json:"id"`
	CardID         int64    `json:"card_id"`
	Category       string   `json:"category"`
	Rate           float64  `json:"rate"`
	MonthlyLimit   *float64 `json:"monthly_limit,omitempty"`
	PlanName       string   `json:"plan_name,omitempty"`
	PaymentMethods []string `json:"payment_methods"`
}

// Category is one entry of the controlled spend-category vocabulary,
// grouped under 國內 or 國外 and ordered within its group.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ParentGroup string    `json:"parent_group"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

const (
	GroupDomestic = "國內"
	GroupForeign  = "國外"
)

// CalculationResult is one ranked calculator row. PlanName is empty for
// cards that do not split rewards into plans. AnnualizedReward projects the
// monthly reward over twelve identical months; it is a display figure, not
// a guarantee.
type CalculationResult struct {
	Card             *Card   `json:"card"`
	Amount           float64 `json:"amount"`
	PlanName         string  `json:"plan_name,omitempty"`
	Rate             float64 `json:"rate"`
	RewardAmount     float64 `json:"reward_amount"`
	Capped           bool    `json:"capped"`
	AnnualizedReward float64 `json:"annualized_reward"`
	Rank             int     `json:"rank"`
}

// FilterCriteria drives the browse view. Nil booleans and empty strings
// mean "not filtered on". NoPlanSwitch is the user-facing negation of
// Card.RequiresPlanSwitch ("show only cards I don't have to switch").
type FilterCriteria struct {
	DirectDeduct  *bool
	NoPlanSwitch  *bool
	Category      string
	PaymentMethod string
	SearchTerm    string
}
