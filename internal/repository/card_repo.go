package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

type CardRepository struct {
	pool *pgxpool.Pool
}

func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

const cardColumns = `id, bank_name, card_name, direct_deduct, requires_plan_switch, note, start_date, end_date, created_at`

// ListWithRewards returns the full catalog snapshot the engine consumes.
// Cards come out ordered by bank_name, card_name, id — this order is also
// the documented tie-break for equal rewards in the ranking output. Rules
// are ordered by id so a card's first-seen plan order is insertion order.
func (r *CardRepository) ListWithRewards(ctx context.Context) ([]model.Card, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+cardColumns+` FROM credit_cards ORDER BY bank_name, card_name, id`)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []model.Card
	index := make(map[int64]int)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		index[card.ID] = len(cards)
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	ruleRows, err := r.pool.Query(ctx,
		`SELECT id, card_id, category, rate, monthly_limit, plan_name, payment_methods
		FROM reward_rules ORDER BY card_id, id`)
	if err != nil {
		return nil, fmt.Errorf("query reward rules: %w", err)
	}
	defer ruleRows.Close()

	for ruleRows.Next() {
		rule, err := scanRule(ruleRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[rule.CardID]; ok {
			cards[i].Rewards = append(cards[i].Rewards, *rule)
		}
	}
	if err := ruleRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reward rules: %w", err)
	}

	return cards, nil
}

func (r *CardRepository) FindByID(ctx context.Context, id int64) (*model.Card, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+cardColumns+` FROM credit_cards WHERE id = $1`, id)
	card, err := scanCard(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, card_id, category, rate, monthly_limit, plan_name, payment_methods
		FROM reward_rules WHERE card_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query card rules: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		card.Rewards = append(card.Rewards, *rule)
	}
	return card, rows.Err()
}

// Insert stores a card and its initial rules atomically.
func (r *CardRepository) Insert(ctx context.Context, card *model.Card) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin card insert: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO credit_cards (bank_name, card_name, direct_deduct, requires_plan_switch, note, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		card.BankName, card.CardName, card.DirectDeduct, card.RequiresPlanSwitch,
		card.Note, card.StartDate, card.EndDate,
	).Scan(&card.ID, &card.CreatedAt)
	if err != nil {
		return err
	}

	if len(card.Rewards) > 0 {
		batch := &pgx.Batch{}
		for i := range card.Rewards {
			rule := &card.Rewards[i]
			rule.CardID = card.ID
			methodsJSON, err := marshalMethods(rule.PaymentMethods)
			if err != nil {
				return err
			}
			batch.Queue(
				`INSERT INTO reward_rules (card_id, category, rate, monthly_limit, plan_name, payment_methods)
				VALUES ($1, $2, $3, $4, $5, $6)
				RETURNING id`,
				rule.CardID, rule.Category, rule.Rate, rule.MonthlyLimit, rule.PlanName, methodsJSON,
			)
		}

		br := tx.SendBatch(ctx, batch)
		for i := range card.Rewards {
			if err := br.QueryRow().Scan(&card.Rewards[i].ID); err != nil {
				br.Close()
				return fmt.Errorf("insert rule %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close rule batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *CardRepository) Update(ctx context.Context, card *model.Card) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE credit_cards
		SET bank_name = $1, card_name = $2, direct_deduct = $3, requires_plan_switch = $4,
			note = $5, start_date = $6, end_date = $7
		WHERE id = $8`,
		card.BankName, card.CardName, card.DirectDeduct, card.RequiresPlanSwitch,
		card.Note, card.StartDate, card.EndDate, card.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a card; its rules go with it via ON DELETE CASCADE.
func (r *CardRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM credit_cards WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCard(row pgx.Row) (*model.Card, error) {
	card := &model.Card{Rewards: []model.RewardRule{}}
	err := row.Scan(
		&card.ID, &card.BankName, &card.CardName, &card.DirectDeduct,
		&card.RequiresPlanSwitch, &card.Note, &card.StartDate, &card.EndDate,
		&card.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return card, nil
}

func scanRule(row pgx.Row) (*model.RewardRule, error) {
	rule := &model.RewardRule{}
	var methodsJSON []byte
	err := row.Scan(
		&rule.ID, &rule.CardID, &rule.Category, &rule.Rate,
		&rule.MonthlyLimit, &rule.PlanName, &methodsJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("scan reward rule: %w", err)
	}
	if err := json.Unmarshal(methodsJSON, &rule.PaymentMethods); err != nil {
		return nil, fmt.Errorf("decode payment methods: %w", err)
	}
	if rule.PaymentMethods == nil {
		rule.PaymentMethods = []string{}
	}
	return rule, nil
}

func marshalMethods(methods []string) ([]byte, error) {
	if methods == nil {
		methods = []string{}
	}
	b, err := json.Marshal(methods)
	if err != nil {
		return nil, fmt.Errorf("encode payment methods: %w", err)
	}
	return b, nil
}
