package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

func boolPtr(b bool) *bool { return &b }

func testCatalog() []model.Card {
	return []model.Card{
		{
			ID:           1,
			BankName:     "台新銀行",
			CardName:     "GoGo卡",
			DirectDeduct: true,
			Rewards: []model.RewardRule{
				{Category: "網購/電商", Rate: 3.8, PaymentMethods: []string{"Line Pay", "街口支付"}},
			},
		},
		{
			ID:                 2,
			BankName:           "國泰世華",
			CardName:           "CUBE卡",
			RequiresPlanSwitch: true,
			Rewards: []model.RewardRule{
				{Category: "餐廳/美食", Rate: 3, PlanName: "樂饗購"},
				{Category: "旅遊住宿", Rate: 3, PlanName: "趣旅行"},
			},
		},
		{
			ID:       3,
			BankName: "玉山銀行",
			CardName: "Unicard",
			Rewards: []model.RewardRule{
				{Category: "網購/電商", Rate: 2},
			},
		},
	}
}

func TestFilterCards_BooleanCriteria(t *testing.T) {
	cards := testCatalog()

	t.Run("direct deduct only", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{DirectDeduct: boolPtr(true)})
		require.Len(t, got, 1)
		assert.Equal(t, int64(1), got[0].ID)
	})

	t.Run("no plan switch keeps only set-and-forget cards", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{NoPlanSwitch: boolPtr(true)})
		require.Len(t, got, 2)
		assert.Equal(t, int64(1), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("unset booleans do not filter", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{})
		assert.Len(t, got, 3)
	})
}

func TestFilterCards_CoverageCriteria(t *testing.T) {
	cards := testCatalog()

	t.Run("category coverage over any rule", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{Category: "旅遊住宿"})
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})

	t.Run("payment method matches unrestricted rules too", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{PaymentMethod: "Apple Pay"})
		// card 1's only rule is restricted to other wallets; cards 2 and 3
		// have unrestricted rules.
		require.Len(t, got, 2)
		assert.Equal(t, int64(2), got[0].ID)
		assert.Equal(t, int64(3), got[1].ID)
	})

	t.Run("criteria combine with AND", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{
			Category:      "網購/電商",
			NoPlanSwitch:  boolPtr(true),
			PaymentMethod: "Line Pay",
		})
		require.Len(t, got, 2)
	})
}

func TestFilterCards_Search(t *testing.T) {
	cards := testCatalog()

	t.Run("matches bank name substring", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{SearchTerm: "玉山"})
		require.Len(t, got, 1)
		assert.Equal(t, int64(3), got[0].ID)
	})

	t.Run("matches card name case-insensitively", func(t *testing.T) {
		got := FilterCards(cards, model.FilterCriteria{SearchTerm: "unicard"})
		require.Len(t, got, 1)
		assert.Equal(t, "Unicard", got[0].CardName)
	})

	t.Run("no hit yields empty result", func(t *testing.T) {
		assert.Empty(t, FilterCards(cards, model.FilterCriteria{SearchTerm: "富邦"}))
	})
}
