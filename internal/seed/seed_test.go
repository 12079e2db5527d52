package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skilllink/internal/domain/catalog"
	"skilllink/internal/domain/subscription"
	"skilllink/internal/testutil"
)

func TestDefaultSeedFile(t *testing.T) {
	d, err := Default()
	require.NoError(t, err)

	assert.Len(t, d.Categories, 10)
	assert.Equal(t, "General", d.Categories[0].Name)
	require.Len(t, d.Plans, 3)
	assert.Equal(t, subscription.Unlimited, d.Plans[2].MaxPublications)
}

func TestApplyTwiceKeepsSameRows(t *testing.T) {
	db := testutil.DB(t, append(catalog.Models(), subscription.Models()...)...)
	ctx := context.Background()
	d, err := Default()
	require.NoError(t, err)

	require.NoError(t, Apply(ctx, db, d))
	var firstCats []catalog.Category
	var firstPlans []subscription.Plan
	require.NoError(t, db.Order("id").Find(&firstCats).Error)
	require.NoError(t, db.Order("id").Find(&firstPlans).Error)

	require.NoError(t, Apply(ctx, db, d))
	var cats []catalog.Category
	var plans []subscription.Plan
	require.NoError(t, db.Order("id").Find(&cats).Error)
	require.NoError(t, db.Order("id").Find(&plans).Error)

	assert.Equal(t, firstCats, cats)
	require.Len(t, plans, len(firstPlans))
	for i := range plans {
		assert.Equal(t, firstPlans[i].ID, plans[i].ID)
		assert.Equal(t, firstPlans[i].Name, plans[i].Name)
		assert.Equal(t, firstPlans[i].MaxPortfolioItems, plans[i].MaxPortfolioItems)
	}
}

func TestApplyUpdatesChangedPlan(t *testing.T) {
	db := testutil.DB(t, append(catalog.Models(), subscription.Models()...)...)
	ctx := context.Background()

	d, err := Parse([]byte("plans:\n  - name: Oro\n    price: 100\n    max_publications: 1\n    max_portfolio_items: 1\n"))
	require.NoError(t, err)
	require.NoError(t, Apply(ctx, db, d))

	d.Plans[0].Price = 200
	require.NoError(t, Apply(ctx, db, d))

	var plans []subscription.Plan
	require.NoError(t, db.Find(&plans).Error)
	require.Len(t, plans, 1)
	assert.Equal(t, 200.0, plans[0].Price)
}

func TestParseRejectsBrokenYAML(t *testing.T) {
	_, err := Parse([]byte("plans: [oops"))
	assert.Error(t, err)
}
