package contract

import (
	"math"
	"testing"

	"dominion_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAmount(t *testing.T) {
	sum, err := addAmount(2, 3)
	require.NoError(t, err)
	assert.Equal(t, Amount(5), sum)

	sum, err = addAmount(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, Amount(math.MaxInt64), sum)

	_, err = addAmount(math.MaxInt64-1, 2)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	_, err = addAmount(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParseAmountBounds(t *testing.T) {
	a, ok := parseAmount(MaxAmountUnits)
	require.True(t, ok)
	assert.Equal(t, Amount(MaxAmountUnits*AmountScale), a)
	for _, v := range []float64{MaxAmountUnits + 1, -MaxAmountUnits - 1, math.Inf(1), math.NaN()} {
		_, ok := parseAmount(v)
		assert.False(t, ok, "%v", v)
	}
}

// TestContributionNearLimitLeavesStateAlone seeds totals close to the int64 edge.
func TestContributionNearLimitLeavesStateAlone(t *testing.T) {
	cfg := DefaultConfig()
	st := NewMockState()
	alice := sdk.Address("hive:alice")
	saveAccount(st, &Account{Address: alice, ContributionTotal: math.MaxInt64 - 10, IsStakeholder: true})
	saveTreasury(st, &TreasuryState{Balance: 100, TotalContributed: 100})

	ov := newOverlay(st)
	_, err := recordContribution(ov, &cfg, alice, 11, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)

	acc, _, err := loadAccount(st, alice)
	require.NoError(t, err)
	assert.Equal(t, Amount(math.MaxInt64-10), acc.ContributionTotal)
	assert.True(t, acc.IsStakeholder)

	saveAccount(st, &Account{Address: alice})
	saveTreasury(st, &TreasuryState{Balance: math.MaxInt64 - 5, TotalContributed: math.MaxInt64 - 5})
	_, err = recordContribution(newOverlay(st), &cfg, alice, 6, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	tr, err := loadTreasury(st)
	require.NoError(t, err)
	assert.Equal(t, Amount(math.MaxInt64-5), tr.Balance)
}

func TestCreditAndVoteTallyOverflow(t *testing.T) {
	st := NewMockState()
	bob := sdk.Address("hive:bob")
	saveAccount(st, &Account{Address: bob, Balance: math.MaxInt64})
	assert.ErrorIs(t, credit(st, bob, 1, 1), ErrAmountOverflow)

	alice := sdk.Address("hive:alice")
	saveAccount(st, &Account{Address: alice, ContributionTotal: 10, IsStakeholder: true})
	saveProposal(st, &Proposal{ID: 0, Proposer: alice, Beneficiary: bob, RequestedAmount: 1, CreatedAt: 0, DurationSeconds: 100, Upvotes: math.MaxInt64})
	_, _, err := castVote(st, 0, alice, 10, ChoiceAccept, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
	assert.False(t, hasVoted(st, alice, 0))
}
