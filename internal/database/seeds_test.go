package database

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedData(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	MigrationsDir = "file://../../migrations"
	t.Cleanup(func() { MigrationsDir = "file://migrations" })

	dbURL := getTestDBURL()
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Skip("no database available")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		t.Skip("no database available")
	}

	_ = RollbackMigrations(dbURL)
	require.NoError(t, RunMigrations(dbURL))

	ctx := context.Background()

	t.Run("seed produces the expected counts", func(t *testing.T) {
		require.NoError(t, SeedData(ctx, pool))

		var categoryCount int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&categoryCount))
		assert.Equal(t, len(defaultCategories), categoryCount)

		var cardCount int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM credit_cards`).Scan(&cardCount))
		assert.Equal(t, len(seedCards), cardCount)

		var ruleCount int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM reward_rules`).Scan(&ruleCount))
		wantRules := 0
		for _, card := range seedCards {
			wantRules += len(card.Rules)
		}
		assert.Equal(t, wantRules, ruleCount)
	})

	t.Run("seed is idempotent", func(t *testing.T) {
		require.NoError(t, SeedData(ctx, pool))

		var cardCount int
		require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM credit_cards`).Scan(&cardCount))
		assert.Equal(t, len(seedCards), cardCount, "second run must not duplicate the catalog")
	})

	t.Run("plan-switch card carries plan-scoped rules only", func(t *testing.T) {
		var stray int
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM reward_rules r
			JOIN credit_cards c ON c.id = r.card_id
			WHERE c.requires_plan_switch AND r.plan_name = ''`).Scan(&stray))
		assert.Zero(t, stray, "a plan-less rule on a switch card could never match")
	})

	t.Run("payment methods round-trip as JSON arrays", func(t *testing.T) {
		var methods []byte
		require.NoError(t, pool.QueryRow(ctx,
			`SELECT r.payment_methods FROM reward_rules r
			JOIN credit_cards c ON c.id = r.card_id
			WHERE c.card_name = 'Unicard' AND r.category = '超商'`).Scan(&methods))
		assert.JSONEq(t, `["Apple Pay","Google Pay","Samsung Pay"]`, string(methods))
	})
}
