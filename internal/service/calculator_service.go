package service

import (
	"context"
	"fmt"
	"time"

	"github.com/weihsiu/card-reward-advisor/internal/engine"
	"github.com/weihsiu/card-reward-advisor/internal/model"
	"github.com/weihsiu/card-reward-advisor/internal/repository"
)

type CalculatorService struct {
	cardRepo *repository.CardRepository
}

func NewCalculatorService(cardRepo *repository.CardRepository) *CalculatorService {
	return &CalculatorService{cardRepo: cardRepo}
}

// Calculate loads a full catalog snapshot and ranks it for one purchase.
// The snapshot is materialized before the engine runs, so results stay
// consistent even if the catalog changes mid-request. An empty result list
// means no card rewards this purchase; that is a normal answer.
func (s *CalculatorService) Calculate(ctx context.Context, amount float64, category, paymentMethod string, asOf time.Time) ([]model.CalculationResult, error) {
	if amount <= 0 {
		return nil, &validationErr{field: "amount", message: "must be greater than zero"}
	}

	cards, err := s.cardRepo.ListWithRewards(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	results := engine.Rank(cards, amount, category, paymentMethod, asOf)
	if results == nil {
		results = []model.CalculationResult{}
	}
	return results, nil
}
