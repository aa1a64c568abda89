package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	d := day(s)
	return &d
}

func TestRank_CapArithmetic(t *testing.T) {
	cards := []model.Card{
		{
			ID:           1,
			BankName:     "台新銀行",
			CardName:     "GoGo卡",
			DirectDeduct: true,
			Rewards: []model.RewardRule{
				{Category: "超商", Rate: 5, MonthlyLimit: limit(300)},
			},
		},
	}

	t.Run("reward above the monthly limit is capped", func(t *testing.T) {
		results := Rank(cards, 10000, "超商", "", day("2025-06-15"))
		require.Len(t, results, 1)
		assert.Equal(t, 300.0, results[0].RewardAmount)
		assert.True(t, results[0].Capped)
		assert.Equal(t, 3600.0, results[0].AnnualizedReward)
		assert.Equal(t, 5.0, results[0].Rate)
	})

	t.Run("reward below the limit passes through uncapped", func(t *testing.T) {
		results := Rank(cards, 1000, "超商", "", day("2025-06-15"))
		require.Len(t, results, 1)
		assert.Equal(t, 50.0, results[0].RewardAmount)
		assert.False(t, results[0].Capped)
	})

	t.Run("uncapped rule never sets the capped flag", func(t *testing.T) {
		open := []model.Card{{
			Rewards: []model.RewardRule{{Category: "超商", Rate: 5}},
		}}
		results := Rank(open, 100000, "超商", "", day("2025-06-15"))
		require.Len(t, results, 1)
		assert.Equal(t, 5000.0, results[0].RewardAmount)
		assert.False(t, results[0].Capped)
	})
}

func TestRank_PlanExpansion(t *testing.T) {
	cards := []model.Card{
		{
			ID:                 7,
			BankName:           "國泰世華",
			CardName:           "CUBE卡",
			RequiresPlanSwitch: true,
			Rewards: []model.RewardRule{
				{Category: "餐廳/美食", Rate: 10, PlanName: "趣旅行"},
				{Category: "餐廳/美食", Rate: 3, PlanName: "樂饗購"},
			},
		},
	}

	t.Run("one result per plan, ranked by reward", func(t *testing.T) {
		results := Rank(cards, 1000, "餐廳/美食", "", day("2025-06-15"))
		require.Len(t, results, 2)

		assert.Equal(t, "趣旅行", results[0].PlanName)
		assert.Equal(t, 100.0, results[0].RewardAmount)
		assert.Equal(t, 1, results[0].Rank)

		assert.Equal(t, "樂饗購", results[1].PlanName)
		assert.Equal(t, 30.0, results[1].RewardAmount)
		assert.Equal(t, 2, results[1].Rank)
	})

	t.Run("plans never blend into one result", func(t *testing.T) {
		results := Rank(cards, 1000, "餐廳/美食", "", day("2025-06-15"))
		for _, res := range results {
			assert.Contains(t, []string{"趣旅行", "樂饗購"}, res.PlanName)
		}
	})

	t.Run("plan-switch card without plan-scoped rules yields nothing", func(t *testing.T) {
		degenerate := []model.Card{{
			RequiresPlanSwitch: true,
			Rewards:            []model.RewardRule{{Category: "超商", Rate: 2}},
		}}
		results := Rank(degenerate, 1000, "超商", "", day("2025-06-15"))
		assert.Empty(t, results)
	})
}

func TestRank_DateWindow(t *testing.T) {
	cards := []model.Card{
		{
			ID:        1,
			CardName:  "舊活動卡",
			EndDate:   dayPtr("2024-12-31"),
			StartDate: dayPtr("2024-01-01"),
			Rewards:   []model.RewardRule{{Category: "超商", Rate: 10}},
		},
		{
			ID:       2,
			CardName: "常態卡",
			Rewards:  []model.RewardRule{{Category: "超商", Rate: 1}},
		},
	}

	t.Run("expired campaign contributes nothing", func(t *testing.T) {
		results := Rank(cards, 1000, "超商", "", day("2025-06-15"))
		require.Len(t, results, 1)
		assert.Equal(t, int64(2), results[0].Card.ID)
	})

	t.Run("window boundaries are inclusive", func(t *testing.T) {
		onEnd := Rank(cards, 1000, "超商", "", day("2024-12-31"))
		require.Len(t, onEnd, 2)
		assert.Equal(t, int64(1), onEnd[0].Card.ID)

		onStart := Rank(cards, 1000, "超商", "", day("2024-01-01"))
		assert.Len(t, onStart, 2)
	})

	t.Run("not-yet-started campaign is skipped", func(t *testing.T) {
		results := Rank(cards, 1000, "超商", "", day("2023-06-15"))
		require.Len(t, results, 1)
		assert.Equal(t, int64(2), results[0].Card.ID)
	})
}

func TestRank_Ordering(t *testing.T) {
	cards := []model.Card{
		{ID: 1, Rewards: []model.RewardRule{{Category: "加油", Rate: 1}}},
		{ID: 2, Rewards: []model.RewardRule{{Category: "加油", Rate: 3}}},
		{ID: 3, Rewards: []model.RewardRule{{Category: "加油", Rate: 2}}},
		{ID: 4, Rewards: []model.RewardRule{{Category: "加油", Rate: 3}}},
	}

	results := Rank(cards, 1000, "加油", "", day("2025-06-15"))
	require.Len(t, results, 4)

	t.Run("non-increasing reward order", func(t *testing.T) {
		for i := 1; i < len(results); i++ {
			assert.GreaterOrEqual(t, results[i-1].RewardAmount, results[i].RewardAmount)
		}
	})

	t.Run("equal rewards keep catalog order", func(t *testing.T) {
		assert.Equal(t, int64(2), results[0].Card.ID)
		assert.Equal(t, int64(4), results[1].Card.ID)
	})

	t.Run("ranks are 1-based positions", func(t *testing.T) {
		for i, res := range results {
			assert.Equal(t, i+1, res.Rank)
		}
	})
}

func TestRank_NoMatches(t *testing.T) {
	cards := []model.Card{
		{Rewards: []model.RewardRule{{Category: "超商", Rate: 3}}},
	}

	t.Run("unmatched category returns an empty slice, not an error", func(t *testing.T) {
		assert.Empty(t, Rank(cards, 1000, "旅遊住宿", "", day("2025-06-15")))
	})

	t.Run("empty catalog returns an empty slice", func(t *testing.T) {
		assert.Empty(t, Rank(nil, 1000, "超商", "", day("2025-06-15")))
	})
}

func TestRank_Determinism(t *testing.T) {
	cards := []model.Card{
		{
			ID:                 1,
			RequiresPlanSwitch: true,
			Rewards: []model.RewardRule{
				{Category: "網購/電商", Rate: 6, PlanName: "玩數位", MonthlyLimit: limit(200)},
				{Category: "網購/電商", Rate: 2, PlanName: "趣旅行"},
			},
		},
		{ID: 2, Rewards: []model.RewardRule{{Category: "網購/電商", Rate: 2.5}}},
	}

	first := Rank(cards, 8000, "網購/電商", "", day("2025-03-01"))
	for i := 0; i < 5; i++ {
		again := Rank(cards, 8000, "網購/電商", "", day("2025-03-01"))
		assert.Equal(t, first, again)
	}
}
