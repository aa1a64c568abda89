package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type seedRule struct {
	Category       string
	Rate           float64
	MonthlyLimit   *float64
	PlanName       string
	PaymentMethods []string
}

type seedCard struct {
	BankName           string
	CardName           string
	DirectDeduct       bool
	RequiresPlanSwitch bool
	Note               string
	StartDate          string // YYYY-MM-DD, empty = no window
	EndDate            string
	Rules              []seedRule
}

var defaultCategories = []struct {
	Name        string
	ParentGroup string
}{
	{"國內一般", "國內"},
	{"超商", "國內"},
	{"餐廳/美食", "國內"},
	{"量販/超市", "國內"},
	{"加油", "國內"},
	{"醫療/保費", "國內"},
	{"電信/繳費", "國內"},
	{"網購/電商", "國內"},
	{"影音串流", "國內"},
	{"外送平台", "國內"},
	{"交通運輸", "國內"},
	{"旅遊住宿", "國內"},
	{"國外一般", "國外"},
}

func capAt(v float64) *float64 { return &v }

var seedCards = []seedCard{
	{
		BankName: "台新銀行",
		CardName: "GoGo卡",
		Note:     "需持有台新帳戶並設定自動扣繳才有加碼回饋",
		Rules: []seedRule{
			{Category: "國內一般", Rate: 0.5},
			{Category: "網購/電商", Rate: 3.8, MonthlyLimit: capAt(500), PaymentMethods: []string{"Line Pay", "街口支付", "台灣Pay"}},
			{Category: "影音串流", Rate: 3.8, MonthlyLimit: capAt(500)},
		},
	},
	{
		BankName:           "國泰世華",
		CardName:           "CUBE卡",
		DirectDeduct:       true,
		RequiresPlanSwitch: true,
		Note:               "每月可於 App 切換權益，當月消費依切換後權益回饋",
		Rules: []seedRule{
			{Category: "網購/電商", Rate: 3, PlanName: "玩數位"},
			{Category: "影音串流", Rate: 3, PlanName: "玩數位"},
			{Category: "旅遊住宿", Rate: 3, PlanName: "趣旅行"},
			{Category: "交通運輸", Rate: 2, PlanName: "趣旅行"},
			{Category: "餐廳/美食", Rate: 3, PlanName: "樂饗購"},
			{Category: "量販/超市", Rate: 2, PlanName: "樂饗購"},
			{Category: "國外一般", Rate: 2.5, PlanName: "趣旅行"},
		},
	},
	{
		BankName:     "玉山銀行",
		CardName:     "Unicard",
		DirectDeduct: true,
		Rules: []seedRule{
			{Category: "國內一般", Rate: 1},
			{Category: "超商", Rate: 5, MonthlyLimit: capAt(300), PaymentMethods: []string{"Apple Pay", "Google Pay", "Samsung Pay"}},
			{Category: "外送平台", Rate: 5, MonthlyLimit: capAt(300)},
		},
	},
	{
		BankName: "永豐銀行",
		CardName: "Sport卡",
		Rules: []seedRule{
			{Category: "國內一般", Rate: 1},
			{Category: "加油", Rate: 2, MonthlyLimit: capAt(200)},
			{Category: "交通運輸", Rate: 7, MonthlyLimit: capAt(300), PaymentMethods: []string{"悠遊付", "一卡通"}},
		},
	},
	{
		BankName:  "聯邦銀行",
		CardName:  "吉鶴卡",
		Note:      "加碼活動限期，逾期回饋回歸基本 1%",
		StartDate: "2025-01-01",
		EndDate:   "2025-12-31",
		Rules: []seedRule{
			{Category: "國內一般", Rate: 1},
			{Category: "網購/電商", Rate: 6, MonthlyLimit: capAt(600)},
			{Category: "國外一般", Rate: 3},
		},
	},
	{
		BankName:     "中國信託",
		CardName:     "LINE Pay卡",
		DirectDeduct: false,
		Rules: []seedRule{
			{Category: "國內一般", Rate: 1, PaymentMethods: []string{"Line Pay", "實體卡"}},
			{Category: "國外一般", Rate: 2.8, PaymentMethods: []string{"Line Pay", "實體卡"}},
		},
	},
}

// SeedData loads the default category vocabulary and a demo card catalog.
// It is a no-op when cards already exist, so it is safe to run on every
// startup with AUTO_MIGRATE enabled.
func SeedData(ctx context.Context, pool *pgxpool.Pool) error {
	var cardCount int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM credit_cards`).Scan(&cardCount); err != nil {
		return fmt.Errorf("count cards: %w", err)
	}
	if cardCount > 0 {
		log.Info().Int("cards", cardCount).Msg("catalog already seeded, skipping")
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := seedCategories(ctx, tx); err != nil {
		return err
	}

	ruleCount := 0
	for _, card := range seedCards {
		n, err := seedOneCard(ctx, tx, card)
		if err != nil {
			return fmt.Errorf("seed card %s %s: %w", card.BankName, card.CardName, err)
		}
		ruleCount += n
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	log.Info().
		Int("categories", len(defaultCategories)).
		Int("cards", len(seedCards)).
		Int("rules", ruleCount).
		Msg("seed data loaded")

	return nil
}

func seedCategories(ctx context.Context, tx pgx.Tx) error {
	sortOrders := map[string]int{}
	batch := &pgx.Batch{}
	for _, cat := range defaultCategories {
		sortOrders[cat.ParentGroup]++
		batch.Queue(
			`INSERT INTO categories (name, parent_group, sort_order)
			VALUES ($1, $2, $3)
			ON CONFLICT (name) DO NOTHING`,
			cat.Name, cat.ParentGroup, sortOrders[cat.ParentGroup],
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range defaultCategories {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
	}
	return nil
}

func seedOneCard(ctx context.Context, tx pgx.Tx, card seedCard) (int, error) {
	var startDate, endDate any
	if card.StartDate != "" {
		startDate = card.StartDate
	}
	if card.EndDate != "" {
		endDate = card.EndDate
	}

	var cardID int64
	err := tx.QueryRow(ctx,
		`INSERT INTO credit_cards (bank_name, card_name, direct_deduct, requires_plan_switch, note, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		card.BankName, card.CardName, card.DirectDeduct, card.RequiresPlanSwitch,
		card.Note, startDate, endDate,
	).Scan(&cardID)
	if err != nil {
		return 0, err
	}

	batch := &pgx.Batch{}
	for _, rule := range card.Rules {
		methods := rule.PaymentMethods
		if methods == nil {
			methods = []string{}
		}
		methodsJSON, err := json.Marshal(methods)
		if err != nil {
			return 0, err
		}
		batch.Queue(
			`INSERT INTO reward_rules (card_id, category, rate, monthly_limit, plan_name, payment_methods)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			cardID, rule.Category, rule.Rate, rule.MonthlyLimit, rule.PlanName, methodsJSON,
		)
	}

	br := tx.SendBatch(ctx, batch)
	defer br.Close()
	for range card.Rules {
		if _, err := br.Exec(); err != nil {
			return 0, err
		}
	}
	return len(card.Rules), nil
}
