package engine

import (
	"strings"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

// FilterCards selects the cards relevant to the browse view. All set
// criteria combine with AND; it never computes amounts and never expands
// plans. The returned slice shares the input's backing cards.
func FilterCards(cards []model.Card, criteria model.FilterCriteria) []model.Card {
	var out []model.Card
	for _, card := range cards {
		if matchesCriteria(&card, criteria) {
			out = append(out, card)
		}
	}
	return out
}

func matchesCriteria(card *model.Card, c model.FilterCriteria) bool {
	if c.DirectDeduct != nil && card.DirectDeduct != *c.DirectDeduct {
		return false
	}
	if c.NoPlanSwitch != nil && card.RequiresPlanSwitch == *c.NoPlanSwitch {
		return false
	}
	if c.Category != "" && !coversCategory(card, c.Category) {
		return false
	}
	if c.PaymentMethod != "" && !coversPaymentMethod(card, c.PaymentMethod) {
		return false
	}
	if c.SearchTerm != "" && !matchesSearch(card, c.SearchTerm) {
		return false
	}
	return true
}

func coversCategory(card *model.Card, category string) bool {
	for _, r := range card.Rewards {
		if r.Category == category {
			return true
		}
	}
	return false
}

func coversPaymentMethod(card *model.Card, method string) bool {
	for _, r := range card.Rewards {
		if AcceptsPaymentMethod(r.PaymentMethods, method) {
			return true
		}
	}
	return false
}

func matchesSearch(card *model.Card, term string) bool {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return true
	}
	return strings.Contains(strings.ToLower(card.BankName), t) ||
		strings.Contains(strings.ToLower(card.CardName), t)
}
