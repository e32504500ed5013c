package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptCodecRestoresError(t *testing.T) {
	tx := &Tx{ID: "t-9", Action: ActionNFTBuy, Sender: "hive:b", Timestamp: 42}
	rc := failureReceipt(tx, ErrNotForSale.With("token 3 is not listed"))
	out, err := DecodeReceipt(EncodeReceipt(&rc))
	require.NoError(t, err)
	assert.ErrorIs(t, out.Err, ErrNotForSale)
	assert.Equal(t, "not_for_sale: token 3 is not listed", out.Err.Error())
	assert.Equal(t, KindStateConflict, KindOf(out.Err))
	assert.Equal(t, int64(42), out.Timestamp)
}

func TestAccountCodecKeepsVoteCount(t *testing.T) {
	acc := &Account{Address: "hive:alice", ContributionTotal: 6000, Balance: 10, IsStakeholder: true, VoteCount: 1 << 40, CreatedAt: 9}
	out, err := DecodeAccount(EncodeAccount(acc))
	require.NoError(t, err)
	assert.Equal(t, acc, out)
}

func TestDecodeTruncated(t *testing.T) {
	raw := EncodeProposal(&Proposal{ID: 1, Title: "a title", Beneficiary: "hive:bene"})
	for _, n := range []int{0, 5, len(raw) / 2, len(raw) - 1} {
		_, err := DecodeProposal(raw[:n])
		assert.Error(t, err, "cut at %d", n)
	}
}

func TestMulBps(t *testing.T) {
	assert.Equal(t, Amount(20000), mulBps(200000, 1000))
	assert.Equal(t, Amount(0), mulBps(9, 1000))
	assert.Equal(t, Amount(1<<62), mulBps(1<<62, BpsDenominator))
}
