// Package engine implements the reward matching and ranking core: pure
// functions over an in-memory card catalog snapshot. Nothing in this
// package performs I/O or mutates its inputs, so concurrent calls are safe.
//
// Catalog integrity (non-negative rates, plan names only on plan-switch
// cards) is a precondition owned by the data-management layer; the engine
// does not re-validate it.
package engine

import (
	"github.com/weihsiu/card-reward-advisor/internal/model"
)

// MatchRule selects the single best rule of card for the given category.
// Narrowing happens in four stages, each a hard filter: category equality,
// plan scoping, payment-method scoping, then a strict max-rate pick with
// ties going to the earlier rule.
//
// Plan scoping: a non-empty plan keeps only rules of that plan. With no
// plan pinned, a card that requires plan switching cannot be evaluated and
// yields no match; an ordinary card keeps only its plan-less rules.
//
// Payment-method scoping: an empty paymentMethod skips the stage entirely
// (any instrument acceptable, which favors the highest rate); otherwise a
// rule survives if it is unrestricted or lists the method.
func MatchRule(card *model.Card, category, plan, paymentMethod string) *model.RewardRule {
	if plan == "" && card.RequiresPlanSwitch {
		return nil
	}

	var best *model.RewardRule
	for i := range card.Rewards {
		r := &card.Rewards[i]
		if r.Category != category {
			continue
		}
		if plan != "" {
			if r.PlanName != plan {
				continue
			}
		} else if r.PlanName != "" {
			continue
		}
		if paymentMethod != "" && !AcceptsPaymentMethod(r.PaymentMethods, paymentMethod) {
			continue
		}
		if best == nil || r.Rate > best.Rate {
			best = r
		}
	}
	return best
}

// AcceptsPaymentMethod reports whether a rule restricted to methods covers
// the given instrument. An empty restriction list covers everything.
func AcceptsPaymentMethod(methods []string, method string) bool {
	if len(methods) == 0 {
		return true
	}
	for _, m := range methods {
		if m == method {
			return true
		}
	}
	return false
}
