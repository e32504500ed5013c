package contract_test

import (
	"context"
	"fmt"
	"testing"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	minterAddress    = "hive:tibfox"
	defaultTimestamp = int64(1756857600) // 2025-09-03T00:00:00Z
)

type contractTest struct {
	st  *contract.MockState
	c   *contract.Contract
	seq int
}

// setupContractTest builds a fresh ledger with a threshold of 5 and any config tweaks.
func setupContractTest(t *testing.T, tweaks ...func(*contract.Config)) *contractTest {
	t.Helper()
	cfg := contract.DefaultConfig()
	for _, tw := range tweaks {
		tw(&cfg)
	}
	st := contract.NewMockState()
	c, err := contract.New(st, cfg)
	require.NoError(t, err)
	return &contractTest{st: st, c: c}
}

// callContract submits a transaction at the default timestamp and asserts the outcome.
func callContract(t *testing.T, ct *contractTest, action, payload string, intents []sdk.Intent, user string, expectSuccess bool) contract.Receipt {
	t.Helper()
	return callContractAt(t, ct, action, payload, intents, user, expectSuccess, defaultTimestamp)
}

// callContractAt lets tests move the clock for expiry checks.
func callContractAt(t *testing.T, ct *contractTest, action, payload string, intents []sdk.Intent, user string, expectSuccess bool, timestamp int64) contract.Receipt {
	t.Helper()
	ct.seq++
	rc, err := ct.c.Submit(context.Background(), contract.Tx{
		ID:        fmt.Sprintf("%s-tx-%d", action, ct.seq),
		Sender:    sdk.Address(user),
		Action:    action,
		Payload:   payload,
		Intents:   intents,
		Timestamp: timestamp,
	})
	require.NoError(t, err)
	if expectSuccess {
		assert.True(t, rc.Success, "contract action failed with "+rc.ErrMsg)
	} else {
		assert.False(t, rc.Success, "contract action did not fail (as expected)")
	}
	return rc
}

func transferIntent(limit string) []sdk.Intent {
	return []sdk.Intent{sdk.TransferIntent(limit, sdk.AssetEth)}
}

func transferIntentWithToken(limit string, token sdk.Asset) []sdk.Intent {
	return []sdk.Intent{sdk.TransferIntent(limit, token)}
}

// contribute is the shorthand for a plain contribution that must succeed.
func contribute(t *testing.T, ct *contractTest, user, amount string) {
	t.Helper()
	callContract(t, ct, contract.ActionContribute, "", transferIntent(amount), user, true)
}

func amt(v float64) contract.Amount {
	return contract.FloatToAmount(v)
}

func account(t *testing.T, ct *contractTest, user string) contract.Account {
	t.Helper()
	acc, _, err := ct.c.GetAccount(sdk.Address(user))
	require.NoError(t, err)
	return acc
}

func treasury(t *testing.T, ct *contractTest) contract.TreasuryState {
	t.Helper()
	tr, err := ct.c.GetTreasury()
	require.NoError(t, err)
	return tr
}

// assertTreasuryEquation checks balance == contributed - paid out and never negative.
func assertTreasuryEquation(t *testing.T, ct *contractTest) {
	t.Helper()
	tr := treasury(t, ct)
	assert.Equal(t, tr.TotalContributed-tr.TotalPaidOut, tr.Balance)
	assert.GreaterOrEqual(t, int64(tr.Balance), int64(0))
}
