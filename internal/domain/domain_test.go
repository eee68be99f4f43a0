package domain

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolTrimsAndDeduplicates(t *testing.T) {
	pool := NewPool("gb", []string{" Article 105 ", "", "Article 105", "Article 228", "   "})

	assert.Equal(t, "gb", pool.Name())
	assert.Equal(t, []string{"Article 105", "Article 228"}, pool.Items())
	assert.Equal(t, 2, pool.Len())
	assert.False(t, pool.Empty())
}

func TestReadPoolKeepsLineOrder(t *testing.T) {
	input := "first\n\nsecond\nthird\n"

	pool, err := ReadPool("gb", strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, pool.Items())
}

func TestPoolDrawRespectsExclusion(t *testing.T) {
	pool := NewPool("gb", []string{"a", "b", "c"})
	excluded := map[string]struct{}{"a": {}, "c": {}}

	for range 20 {
		item, ok := pool.Draw(excluded)
		require.True(t, ok)
		assert.Equal(t, "b", item)
	}
}

func TestPoolDrawReportsExhaustion(t *testing.T) {
	pool := NewPool("gb", []string{"a", "b"})

	_, ok := pool.Draw(map[string]struct{}{"a": {}, "b": {}})
	assert.False(t, ok)

	item, ok := pool.Draw(nil)
	require.True(t, ok)
	assert.Contains(t, []string{"a", "b"}, item)
}

func TestEmptyPoolNeverDraws(t *testing.T) {
	pool := NewPool("gb", nil)

	_, ok := pool.Draw(nil)
	assert.False(t, ok)
	assert.True(t, pool.Empty())
}

func TestAccountNormalizeDefaultsTitleAndCleansConsumed(t *testing.T) {
	account := Account{
		ID:       7,
		Title:    "  ",
		Consumed: []string{" a ", "", "a", "b"},
	}
	account.Normalize()

	assert.Equal(t, DefaultTitle, account.Title)
	assert.Equal(t, []string{"a", "b"}, account.Consumed)
}

func TestAccountMarkConsumedIsIdempotent(t *testing.T) {
	account := NewAccount(1)
	account.MarkConsumed("a")
	account.MarkConsumed("a")
	account.MarkConsumed("b")

	assert.Equal(t, []string{"a", "b"}, account.Consumed)

	account.ResetConsumed()
	assert.Empty(t, account.Consumed)
}

func TestJoinSplitItemsRoundTrip(t *testing.T) {
	items := []string{"Article 105", "Article 228"}

	assert.Equal(t, items, SplitItems(JoinItems(items)))
	assert.Nil(t, SplitItems(""))
	assert.Nil(t, SplitItems(",,"))
}

func TestCatalogSkipsInvalidListings(t *testing.T) {
	catalog := NewCatalog([]Listing{
		{Name: "Baron", Price: 50},
		{Name: "  ", Price: 10},
		{Name: "Baron", Price: 999},
		{Name: "Don", Price: -1},
		{Name: "Kingpin", Price: 1000},
	})

	price, ok := catalog.Price("Baron")
	require.True(t, ok)
	assert.Equal(t, int64(50), price)

	_, ok = catalog.Price("Don")
	assert.False(t, ok)

	assert.Equal(t, []Listing{{Name: "Baron", Price: 50}, {Name: "Kingpin", Price: 1000}}, catalog.Listings())
	assert.False(t, catalog.Empty())
}

func TestRewardConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RewardConfig
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultRewardConfig()},
		{name: "valid range", cfg: RewardConfig{RareChance: 0.1, RareAmount: 1, Mode: RewardModeRange, RangeMin: 10, RangeMax: 20}},
		{name: "chance above one", cfg: RewardConfig{RareChance: 1.5, Mode: RewardModeFixed}, wantErr: true},
		{name: "negative rare amount", cfg: RewardConfig{RareAmount: -1, Mode: RewardModeFixed}, wantErr: true},
		{name: "unknown mode", cfg: RewardConfig{Mode: RewardMode("jackpot")}, wantErr: true},
		{name: "inverted range", cfg: RewardConfig{Mode: RewardModeRange, RangeMin: 20, RangeMax: 10}, wantErr: true},
		{name: "negative common amount", cfg: RewardConfig{Mode: RewardModeFixed, CommonAmount: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRewardPolicyFixedTiers(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	alwaysCommon, err := NewRewardPolicy(RewardConfig{RareChance: 0, RareAmount: 1, Mode: RewardModeFixed, CommonAmount: 100}, rng)
	require.NoError(t, err)
	for range 50 {
		assert.Equal(t, int64(100), alwaysCommon.Draw())
	}

	alwaysRare, err := NewRewardPolicy(RewardConfig{RareChance: 1, RareAmount: 1, Mode: RewardModeFixed, CommonAmount: 100}, rng)
	require.NoError(t, err)
	for range 50 {
		assert.Equal(t, int64(1), alwaysRare.Draw())
	}
}

func TestRewardPolicyRangeStaysWithinBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	policy, err := NewRewardPolicy(RewardConfig{RareChance: 0, Mode: RewardModeRange, RangeMin: 10, RangeMax: 20}, rng)
	require.NoError(t, err)

	for range 200 {
		amount := policy.Draw()
		assert.GreaterOrEqual(t, amount, int64(10))
		assert.LessOrEqual(t, amount, int64(20))
	}
}

func TestRewardPolicyRejectsInvalidConfig(t *testing.T) {
	_, err := NewRewardPolicy(RewardConfig{Mode: RewardMode("jackpot")}, nil)
	assert.Error(t, err)
}
