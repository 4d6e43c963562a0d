package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-dashboard/internal/model"
)

func TestGamified_CompositeScore(t *testing.T) {
	users := []model.User{
		{ID: "u1", Name: "Ayşe", Role: model.RoleSalesRep},
		{ID: "u2", Name: "Mehmet", Role: model.RoleSalesRep},
		{ID: "mgr", Name: "Manager", Role: model.RoleManager},
	}
	deals := []model.Deal{
		{OwnerID: "u1", Stage: model.StageWonTR, Value: 1_000_000},
		{OwnerID: "u1", Stage: model.StageLost, Value: 500_000},
		{OwnerID: "u2", Stage: model.StageWon, Value: 200_000},
		{OwnerID: "u2", Stage: model.StageLead, Value: 800_000},
		{OwnerID: "mgr", Stage: model.StageWon, Value: 9_000_000},
	}

	out := Gamified(users, deals, model.ClosedWonStages(), nil, 10)
	require.Len(t, out, 2, "only sales reps participate")

	// u1: revenue 1,000,000, winRate 50, 1 won deal.
	// score = 1,000,000*0.0001 + 50*50 + 1*100 = 100 + 2500 + 100 = 2700.
	assert.Equal(t, "u1", out[0].UserID)
	assert.InDelta(t, 2700, out[0].Score, 0.001)
	assert.Equal(t, 50.0, out[0].WinRate)
	assert.Equal(t, 1, out[0].DealCount)

	// u2: 200,000*0.0001 + 50*50 + 100 = 20 + 2500 + 100 = 2620.
	assert.Equal(t, "u2", out[1].UserID)
	assert.InDelta(t, 2620, out[1].Score, 0.001)
}

func TestGamified_Badges(t *testing.T) {
	users := []model.User{
		{ID: "top", Name: "Top", Role: model.RoleSalesRep},
		{ID: "mid", Name: "Mid", Role: model.RoleSalesRep},
	}
	deals := []model.Deal{
		{OwnerID: "top", Stage: model.StageWon, Value: 6_000_000},
		{OwnerID: "mid", Stage: model.StageWon, Value: 100},
		{OwnerID: "mid", Stage: model.StageLost, Value: 100},
		{OwnerID: "mid", Stage: model.StageLead, Value: 100},
	}
	streaks := StaticStreaks{"top": 7, "mid": 5}

	out := Gamified(users, deals, model.ClosedWonStages(), streaks, 10)
	require.Len(t, out, 2)

	// Rank 0 with 100% win rate, > 5M revenue, and a 7-win streak.
	assert.Equal(t, []string{"MVP", "Sniper", "Rainmaker", "7-Win Streak"}, out[0].Badges)

	// 33% win rate, streak of exactly 5 does not qualify.
	assert.Empty(t, out[1].Badges)
}

func TestGamified_TopNTruncation(t *testing.T) {
	users := make([]model.User, 12)
	deals := make([]model.Deal, 12)
	for i := range users {
		id := string(rune('a' + i))
		users[i] = model.User{ID: id, Role: model.RoleSalesRep}
		deals[i] = model.Deal{OwnerID: id, Stage: model.StageWon, Value: float64(1000 * (i + 1))}
	}

	out := Gamified(users, deals, model.ClosedWonStages(), nil, 10)
	require.Len(t, out, 10)
	assert.Equal(t, "l", out[0].UserID)
	// MVP goes to the post-truncation rank 0 only.
	for _, e := range out[1:] {
		assert.NotContains(t, e.Badges, "MVP")
	}
}

func TestRank_StableTies(t *testing.T) {
	entries := []Entry{
		{UserID: "first", Score: 10},
		{UserID: "second", Score: 10},
		{UserID: "third", Score: 10},
	}
	out := rank(entries, 0)
	assert.Equal(t, "first", out[0].UserID)
	assert.Equal(t, "second", out[1].UserID)
	assert.Equal(t, "third", out[2].UserID)
}

func TestSimple(t *testing.T) {
	users := []model.User{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C"},
	}
	score := map[string]float64{"a": 1, "b": 3, "c": 2}

	out := Simple(users, func(u model.User) float64 { return score[u.ID] }, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].UserID)
	assert.Equal(t, "c", out[1].UserID)
}

func TestByQuoteRevenue(t *testing.T) {
	quotes := []model.Quote{
		{SalesRepID: "r1", SalesRepName: "Rep One", Status: model.QuoteAcceptedTR, Amount: 500},
		{SalesRepID: "r1", SalesRepName: "Rep One", Status: model.QuoteApproved, Amount: 300},
		{SalesRepID: "r2", SalesRepName: "Rep Two", Status: model.QuoteAccepted, Amount: 700},
		{SalesRepID: "r3", SalesRepName: "Rep Three", Status: model.QuoteSent, Amount: 9_000},
		{SalesRepID: "r2", SalesRepName: "Rep Two", Status: model.QuoteRejected, Amount: 9_000},
	}

	out := ByQuoteRevenue(quotes, 5)
	require.Len(t, out, 2, "open and rejected quotes contribute nothing")

	assert.Equal(t, "r1", out[0].UserID)
	assert.Equal(t, 800.0, out[0].Revenue)
	assert.Equal(t, 2, out[0].DealCount)
	assert.Equal(t, "r2", out[1].UserID)
	assert.Equal(t, 700.0, out[1].Revenue)
}
