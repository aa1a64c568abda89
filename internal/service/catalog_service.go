package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/weihsiu/card-reward-advisor/internal/dto"
	"github.com/weihsiu/card-reward-advisor/internal/engine"
	"github.com/weihsiu/card-reward-advisor/internal/model"
	"github.com/weihsiu/card-reward-advisor/internal/repository"
)

type CatalogService struct {
	cardRepo     *repository.CardRepository
	ruleRepo     *repository.RewardRuleRepository
	categoryRepo *repository.CategoryRepository
}

func NewCatalogService(cardRepo *repository.CardRepository, ruleRepo *repository.RewardRuleRepository, categoryRepo *repository.CategoryRepository) *CatalogService {
	return &CatalogService{cardRepo: cardRepo, ruleRepo: ruleRepo, categoryRepo: categoryRepo}
}

type validationErr struct {
	field   string
	message string
}

func (e *validationErr) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.message)
}

// IsValidation reports whether err is a request-input problem rather than
// an infrastructure failure; handlers turn these into 400s.
func IsValidation(err error) bool {
	var ve *validationErr
	return errors.As(err, &ve)
}

// Browse answers the browsing view: cards matching the filter criteria plus
// the grouped category vocabulary for the filter dropdown. Cards and
// categories load concurrently; filtering runs in memory on the snapshot.
func (s *CatalogService) Browse(ctx context.Context, criteria model.FilterCriteria) ([]model.Card, []dto.CategoryGroup, error) {
	var (
		cards []model.Card
		cats  []model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = s.cardRepo.ListWithRewards(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = s.categoryRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("load browse data: %w", err)
	}

	filtered := engine.FilterCards(cards, criteria)
	if filtered == nil {
		filtered = []model.Card{}
	}
	return filtered, groupCategories(cats), nil
}

func (s *CatalogService) GetCard(ctx context.Context, id int64) (*model.Card, error) {
	return s.cardRepo.FindByID(ctx, id)
}

func (s *CatalogService) CreateCard(ctx context.Context, req *dto.CreateCardRequest) (*model.Card, error) {
	startDate, endDate, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	card := &model.Card{
		BankName:           req.BankName,
		CardName:           req.CardName,
		DirectDeduct:       req.DirectDeduct,
		RequiresPlanSwitch: req.RequiresPlanSwitch,
		Note:               req.Note,
		StartDate:          startDate,
		EndDate:            endDate,
		Rewards:            make([]model.RewardRule, len(req.Rewards)),
	}
	for i, r := range req.Rewards {
		if err := checkPlanConsistency(card.RequiresPlanSwitch, r.PlanName); err != nil {
			return nil, err
		}
		card.Rewards[i] = model.RewardRule{
			Category:       r.Category,
			Rate:           r.Rate,
			MonthlyLimit:   r.MonthlyLimit,
			PlanName:       r.PlanName,
			PaymentMethods: r.PaymentMethods,
		}
	}

	if err := s.cardRepo.Insert(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *CatalogService) UpdateCard(ctx context.Context, id int64, req *dto.UpdateCardRequest) (*model.Card, error) {
	startDate, endDate, err := parseWindow(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	existing, err := s.cardRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Turning plan switching off while plan-scoped rules remain would
	// orphan those rules (they could never match again).
	if existing.RequiresPlanSwitch && !req.RequiresPlanSwitch {
		for _, r := range existing.Rewards {
			if r.PlanName != "" {
				return nil, &validationErr{
					field:   "requires_plan_switch",
					message: "card still has plan-scoped rules; delete them first",
				}
			}
		}
	}

	existing.BankName = req.BankName
	existing.CardName = req.CardName
	existing.DirectDeduct = req.DirectDeduct
	existing.RequiresPlanSwitch = req.RequiresPlanSwitch
	existing.Note = req.Note
	existing.StartDate = startDate
	existing.EndDate = endDate

	if err := s.cardRepo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *CatalogService) DeleteCard(ctx context.Context, id int64) error {
	return s.cardRepo.Delete(ctx, id)
}

func (s *CatalogService) AddRule(ctx context.Context, cardID int64, req *dto.CreateRewardRuleRequest) (*model.RewardRule, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if err := checkPlanConsistency(card.RequiresPlanSwitch, req.PlanName); err != nil {
		return nil, err
	}

	rule := &model.RewardRule{
		CardID:         cardID,
		Category:       req.Category,
		Rate:           req.Rate,
		MonthlyLimit:   req.MonthlyLimit,
		PlanName:       req.PlanName,
		PaymentMethods: req.PaymentMethods,
	}
	if err := s.ruleRepo.Insert(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *CatalogService) UpdateRule(ctx context.Context, id int64, req *dto.UpdateRewardRuleRequest) (*model.RewardRule, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	card, err := s.cardRepo.FindByID(ctx, rule.CardID)
	if err != nil {
		return nil, err
	}
	if err := checkPlanConsistency(card.RequiresPlanSwitch, req.PlanName); err != nil {
		return nil, err
	}

	rule.Category = req.Category
	rule.Rate = req.Rate
	rule.MonthlyLimit = req.MonthlyLimit
	rule.PlanName = req.PlanName
	rule.PaymentMethods = req.PaymentMethods

	if err := s.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *CatalogService) DeleteRule(ctx context.Context, id int64) error {
	return s.ruleRepo.Delete(ctx, id)
}

// checkPlanConsistency enforces the catalog precondition the engine itself
// never validates: plan-scoped rules only exist on plan-switching cards.
func checkPlanConsistency(requiresPlanSwitch bool, planName string) error {
	if planName != "" && !requiresPlanSwitch {
		return &validationErr{
			field:   "plan_name",
			message: "plan-scoped rules require a card with requires_plan_switch",
		}
	}
	return nil
}

func parseWindow(start, end string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time
	if start != "" {
		d, err := time.Parse("2006-01-02", start)
		if err != nil {
			return nil, nil, &validationErr{field: "start_date", message: "must be YYYY-MM-DD"}
		}
		startDate = &d
	}
	if end != "" {
		d, err := time.Parse("2006-01-02", end)
		if err != nil {
			return nil, nil, &validationErr{field: "end_date", message: "must be YYYY-MM-DD"}
		}
		endDate = &d
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, &validationErr{field: "end_date", message: "must not be before start_date"}
	}
	return startDate, endDate, nil
}

func groupCategories(cats []model.Category) []dto.CategoryGroup {
	var groups []dto.CategoryGroup
	index := make(map[string]int)
	for _, cat := range cats {
		i, ok := index[cat.ParentGroup]
		if !ok {
			i = len(groups)
			index[cat.ParentGroup] = i
			groups = append(groups, dto.CategoryGroup{Label: cat.ParentGroup})
		}
		groups[i].Options = append(groups[i].Options, cat.Name)
	}
	return groups
}
