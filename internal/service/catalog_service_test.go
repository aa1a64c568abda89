package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weihsiu/card-reward-advisor/internal/model"
)

func TestGroupCategories(t *testing.T) {
	cats := []model.Category{
		{Name: "國內一般", ParentGroup: model.GroupDomestic},
		{Name: "超商", ParentGroup: model.GroupDomestic},
		{Name: "國外一般", ParentGroup: model.GroupForeign},
	}

	groups := groupCategories(cats)
	require.Len(t, groups, 2)
	assert.Equal(t, model.GroupDomestic, groups[0].Label)
	assert.Equal(t, []string{"國內一般", "超商"}, groups[0].Options)
	assert.Equal(t, model.GroupForeign, groups[1].Label)
	assert.Equal(t, []string{"國外一般"}, groups[1].Options)
}

func TestGroupCategories_Empty(t *testing.T) {
	assert.Empty(t, groupCategories(nil))
}

func TestCheckPlanConsistency(t *testing.T) {
	t.Run("plan rule on switch card is fine", func(t *testing.T) {
		assert.NoError(t, checkPlanConsistency(true, "趣旅行"))
	})

	t.Run("plan-less rule is always fine", func(t *testing.T) {
		assert.NoError(t, checkPlanConsistency(true, ""))
		assert.NoError(t, checkPlanConsistency(false, ""))
	})

	t.Run("plan rule on ordinary card is rejected", func(t *testing.T) {
		err := checkPlanConsistency(false, "趣旅行")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestParseWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		start, end, err := parseWindow("2025-01-01", "2025-12-31")
		require.NoError(t, err)
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.Equal(t, time.January, start.Month())
		assert.Equal(t, time.December, end.Month())
	})

	t.Run("open-ended windows", func(t *testing.T) {
		start, end, err := parseWindow("", "")
		require.NoError(t, err)
		assert.Nil(t, start)
		assert.Nil(t, end)

		start, end, err = parseWindow("2025-01-01", "")
		require.NoError(t, err)
		assert.NotNil(t, start)
		assert.Nil(t, end)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		_, _, err := parseWindow("2025-12-31", "2025-01-01")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("garbage dates are rejected", func(t *testing.T) {
		_, _, err := parseWindow("not-a-date", "")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(&validationErr{field: "rate", message: "bad"}))
	assert.False(t, IsValidation(assert.AnError))
	assert.False(t, IsValidation(nil))
}
