package engine

import (
	"sort"
	"time"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

// Rank evaluates every card in the catalog against one purchase and returns
// results ordered by reward descending. Cards with a plan-switch obligation
// are expanded into one evaluation per distinct plan, so a single card can
// appear several times, once per plan. Cards and plans with no applicable
// rule are silently skipped; an empty slice is a normal outcome, not an
// error.
//
// asOf drives the campaign-window gate and is the only time input; for a
// fixed catalog and query the output is fully deterministic. Equal rewards
// keep catalog order (the sort is stable).
func Rank(cards []model.Card, amount float64, category, paymentMethod string, asOf time.Time) []model.CalculationResult {
	var results []model.CalculationResult

	for i := range cards {
		card := &cards[i]
		if !activeOn(card, asOf) {
			continue
		}

		plans := planNames(card)
		if card.RequiresPlanSwitch && len(plans) > 0 {
			for _, plan := range plans {
				if res, ok := evaluate(card, amount, category, plan, paymentMethod); ok {
					results = append(results, res)
				}
			}
			continue
		}
		if res, ok := evaluate(card, amount, category, "", paymentMethod); ok {
			results = append(results, res)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RewardAmount > results[j].RewardAmount
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results
}

func evaluate(card *model.Card, amount float64, category, plan, paymentMethod string) (model.CalculationResult, bool) {
	rule := MatchRule(card, category, plan, paymentMethod)
	if rule == nil {
		return model.CalculationResult{}, false
	}

	raw := amount * rule.Rate / 100
	reward := raw
	capped := false
	if rule.MonthlyLimit != nil && raw > *rule.MonthlyLimit {
		reward = *rule.MonthlyLimit
		capped = true
	}

	return model.CalculationResult{
		Card:             card,
		Amount:           amount,
		PlanName:         plan,
		Rate:             rule.Rate,
		RewardAmount:     reward,
		Capped:           capped,
		AnnualizedReward: reward * 12,
	}, true
}

// planNames returns the distinct plan names on a card in order of first
// appearance. Plan-less rules contribute nothing.
func planNames(card *model.Card) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, r := range card.Rewards {
		if r.PlanName == "" {
			continue
		}
		if _, ok := seen[r.PlanName]; ok {
			continue
		}
		seen[r.PlanName] = struct{}{}
		names = append(names, r.PlanName)
	}
	return names
}

// activeOn applies the inclusive campaign window at day granularity.
// Cards without dates are always active.
func activeOn(card *model.Card, asOf time.Time) bool {
	day := dateOnly(asOf)
	if card.StartDate != nil && day.Before(dateOnly(*card.StartDate)) {
		return false
	}
	if card.EndDate != nil && day.After(dateOnly(*card.EndDate)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
