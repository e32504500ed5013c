package contract_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"testing"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenStore accepts reads and plain writes but refuses batch commits.
type brokenStore struct {
	*contract.MockState
	fail bool
}

func (b *brokenStore) Commit(writes []contract.Write) error {
	if b.fail {
		return errors.New("disk full")
	}
	return b.MockState.Commit(writes)
}

func TestFailedTxLeavesOnlyReceipt(t *testing.T) {
	ct := setupContractTest(t)
	contribute(t, ct, "hive:alice", "20")
	before := ct.st.Len()
	tr := treasury(t, ct)

	rc := callContract(t, ct, contract.ActionProposalCreate, proposalPayload("hive:bene", "1000", 100), nil, "hive:alice", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInsufficientTreasury)
	assert.Empty(t, rc.Events)
	assert.Equal(t, before+1, ct.st.Len())
	assert.Equal(t, tr, treasury(t, ct))

	stored, ok, err := ct.c.GetReceipt(rc.TxID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, stored.Success)
	assert.Equal(t, "insufficient_treasury", stored.ErrCode)
	assert.ErrorIs(t, stored.Err, contract.ErrInsufficientTreasury)
	assert.Equal(t, contract.KindResource, stored.ErrKind)
}

func TestCommitFailureIsInfrastructureError(t *testing.T) {
	st := &brokenStore{MockState: contract.NewMockState()}
	c, err := contract.New(st, contract.DefaultConfig())
	require.NoError(t, err)

	st.fail = true
	_, err = c.Submit(context.Background(), contract.Tx{
		ID:        "tx-1",
		Sender:    "hive:alice",
		Action:    contract.ActionContribute,
		Intents:   transferIntent("10"),
		Timestamp: defaultTimestamp,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, contract.KindOf(err))

	st.fail = false
	tr, err := c.GetTreasury()
	require.NoError(t, err)
	assert.Equal(t, contract.Amount(0), tr.Balance)
	_, ok, err := c.GetReceipt("tx-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDuplicateTxRejected(t *testing.T) {
	ct := setupContractTest(t)
	tx := contract.Tx{
		ID:        "same-id",
		Sender:    "hive:alice",
		Action:    contract.ActionContribute,
		Intents:   transferIntent("6"),
		Timestamp: defaultTimestamp,
	}
	rc, err := ct.c.Submit(context.Background(), tx)
	require.NoError(t, err)
	assert.True(t, rc.Success)

	rc, err = ct.c.Submit(context.Background(), tx)
	require.NoError(t, err)
	assert.False(t, rc.Success)
	assert.ErrorIs(t, rc.Err, contract.ErrDuplicateTx)
	assert.Equal(t, amt(6), treasury(t, ct).Balance)

	stored, ok, err := ct.c.GetReceipt("same-id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stored.Success)
	require.Len(t, stored.Events, 1)
	assert.Equal(t, contract.EventContributionRecorded, stored.Events[0].Type)
}

func TestUnknownActionAndBadSender(t *testing.T) {
	ct := setupContractTest(t)
	rc := callContract(t, ct, "proposals_execute", "1", nil, "hive:alice", false)
	assert.ErrorIs(t, rc.Err, contract.ErrUnknownAction)

	rc = callContract(t, ct, contract.ActionContribute, "", transferIntent("6"), "system:dao", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidAddress)
	rc = callContract(t, ct, contract.ActionContribute, "", transferIntent("6"), "alice", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidAddress)
	assert.Equal(t, contract.Amount(0), treasury(t, ct).Balance)
}

func TestMissingTxIDAndCanceledContext(t *testing.T) {
	ct := setupContractTest(t)
	rc, err := ct.c.Submit(context.Background(), contract.Tx{Sender: "hive:alice", Action: contract.ActionContribute})
	require.NoError(t, err)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidPayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ct.c.Submit(ctx, contract.Tx{ID: "x", Sender: "hive:alice", Action: contract.ActionContribute})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEventLogSequence(t *testing.T) {
	ct := setupContractTest(t)
	contribute(t, ct, "hive:alice", "20")
	id := createProposal(t, ct, "hive:alice", "10", 100)
	callContract(t, ct, contract.ActionProposalVote, "0|accept", nil, "hive:alice", true)
	callContractAt(t, ct, contract.ActionProposalTally, "0", nil, "hive:alice", true, defaultTimestamp+100)
	assert.Equal(t, uint64(0), id)

	all, err := ct.c.GetEvents(0, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i, e := range all {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
	assert.Equal(t, "pc|id:0|to:hive:bene|am:10.000|dl:1756857700", all[1].String())
	assert.Equal(t, "v|id:0|by:hive:alice|c:accept|w:20.000", all[2].String())
	assert.Equal(t, "px|id:0|p:true|am:10.000", all[3].String())

	page, err := ct.c.GetEvents(2, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, contract.EventVoteCast, page[0].Type)
	assert.Equal(t, defaultTimestamp, page[0].Timestamp)
}

func TestEventJSON(t *testing.T) {
	ev := contract.Event{Seq: 7, Type: contract.EventNFTSold, Tx: "t1", Timestamp: 5, ID: 2, Address: "hive:c", Amount: amt(200)}
	raw, err := json.Marshal(ev)
	require.NoError(t, err)
	assert.JSONEq(t, `{"seq":7,"type":"NFTSold","tx":"t1","timestamp":5,"tokenId":2,"buyer":"hive:c","price":"200.000"}`, string(raw))
}

func TestStoredConfigWinsOnRestart(t *testing.T) {
	st := contract.NewMockState()
	cfg := contract.DefaultConfig()
	cfg.SupplyCap = 3
	_, err := contract.New(st, cfg)
	require.NoError(t, err)

	other := contract.DefaultConfig()
	other.SupplyCap = 99
	c, err := contract.New(st, other)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), c.Config().SupplyCap)
}

func TestInvalidGenesisRejected(t *testing.T) {
	cfg := contract.DefaultConfig()
	cfg.StakeThreshold = 0
	_, err := contract.New(contract.NewMockState(), cfg)
	assert.ErrorIs(t, err, contract.ErrInvalidAmount)

	cfg = contract.DefaultConfig()
	cfg.NativeAsset = sdk.Asset("doge")
	_, err = contract.New(contract.NewMockState(), cfg)
	assert.ErrorIs(t, err, contract.ErrInvalidAsset)
}

func TestCommittedEventsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	c, err := contract.New(contract.NewMockState(), contract.DefaultConfig(), contract.WithLogger(log.New(&buf, "[DAO] ", 0)))
	require.NoError(t, err)
	_, err = c.Submit(context.Background(), contract.Tx{ID: "a", Sender: "hive:alice", Action: contract.ActionNFTMint, Payload: "ipfs://x|0", Timestamp: defaultTimestamp})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[DAO] nm|id:0|by:hive:alice")
}

func TestActionsListed(t *testing.T) {
	assert.Equal(t, []string{
		"contribute", "nft_buy", "nft_list", "nft_mint", "nft_resell", "nft_unlist",
		"proposal_create", "proposal_tally", "proposals_vote",
	}, contract.Actions())
}
