package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

type RewardRuleRepository struct {
	pool *pgxpool.Pool
}

func NewRewardRuleRepository(pool *pgxpool.Pool) *RewardRuleRepository {
	return &RewardRuleRepository{pool: pool}
}

func (r *RewardRuleRepository) Insert(ctx context.Context, rule *model.RewardRule) error {
	methodsJSON, err := marshalMethods(rule.PaymentMethods)
	if err != nil {
		return err
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO reward_rules (card_id, category, rate, monthly_limit, plan_name, payment_methods)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		rule.CardID, rule.Category, rule.Rate, rule.MonthlyLimit, rule.PlanName, methodsJSON,
	).Scan(&rule.ID)
}

func (r *RewardRuleRepository) FindByID(ctx context.Context, id int64) (*model.RewardRule, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, card_id, category, rate, monthly_limit, plan_name, payment_methods
		FROM reward_rules WHERE id = $1`, id)
	return scanRule(row)
}

func (r *RewardRuleRepository) Update(ctx context.Context, rule *model.RewardRule) error {
	methodsJSON, err := marshalMethods(rule.PaymentMethods)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE reward_rules
		SET category = $1, rate = $2, monthly_limit = $3, plan_name = $4, payment_methods = $5
		WHERE id = $6`,
		rule.Category, rule.Rate, rule.MonthlyLimit, rule.PlanName, methodsJSON, rule.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *RewardRuleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM reward_rules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
