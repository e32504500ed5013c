package contract_test

import (
	"fmt"
	"testing"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const metadataURI = "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi/0.json"

func mintToken(t *testing.T, ct *contractTest, creator string, royaltyBps uint32) uint64 {
	t.Helper()
	rc := callContract(t, ct, contract.ActionNFTMint, fmt.Sprintf("%s|%d", metadataURI, royaltyBps), nil, creator, true)
	var id uint64
	_, err := fmt.Sscanf(rc.Result, "%d", &id)
	require.NoError(t, err)
	return id
}

func listToken(t *testing.T, ct *contractTest, owner string, id uint64, price string) {
	t.Helper()
	callContract(t, ct, contract.ActionNFTList, fmt.Sprintf("%d|%s", id, price), nil, owner, true)
}

func TestMintListBuyRoundTrip(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 500)
	n, err := ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.Equal(t, sdk.Address("hive:artist"), n.Owner)
	assert.Equal(t, n.Owner, n.Creator)
	assert.False(t, n.ForSale)

	listToken(t, ct, "hive:artist", id, "8")
	n, err = ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.True(t, n.ForSale)
	assert.Equal(t, amt(8), n.Price)

	rc := callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("8"), "hive:buyer", true)
	types := []contract.EventType{}
	for _, e := range rc.Events {
		types = append(types, e.Type)
	}
	assert.Equal(t, []contract.EventType{contract.EventContributionRecorded, contract.EventNFTSold}, types)

	n, err = ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.Equal(t, sdk.Address("hive:buyer"), n.Owner)
	assert.Equal(t, sdk.Address("hive:artist"), n.Creator)
	assert.False(t, n.ForSale)
	assert.Equal(t, contract.Amount(0), n.Price)
	assert.Equal(t, uint64(1), n.SaleCount)

	buyer := account(t, ct, "hive:buyer")
	assert.Equal(t, amt(8), buyer.ContributionTotal)
	assert.True(t, buyer.IsStakeholder)
	assert.Equal(t, amt(8), account(t, ct, "hive:artist").Balance)
	assertTreasuryEquation(t, ct)
}

// TestScenarioCRoyalties sells a token twice: primary sale pays the creator once,
// the resale pays 10% royalty and the rest to the reseller.
func TestScenarioCRoyalties(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 1000)

	listToken(t, ct, "hive:artist", id, "100")
	callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("100"), "hive:b", true)
	assert.Equal(t, amt(100), account(t, ct, "hive:artist").Balance)

	callContract(t, ct, contract.ActionNFTResell, fmt.Sprintf("%d|200", id), nil, "hive:b", true)
	callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("200"), "hive:c", true)

	assert.Equal(t, amt(120), account(t, ct, "hive:artist").Balance)
	assert.Equal(t, amt(180), account(t, ct, "hive:b").Balance)

	sales, err := ct.c.GetSales()
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, contract.Amount(0), sales[0].Royalty)
	assert.Equal(t, amt(100), sales[0].SellerProceeds)
	assert.Equal(t, amt(20), sales[1].Royalty)
	assert.Equal(t, amt(180), sales[1].SellerProceeds)
	assert.Equal(t, sales[1].Paid, sales[1].Royalty+sales[1].SellerProceeds)
	assert.Equal(t, sdk.Address("hive:b"), sales[1].Seller)
	assert.Equal(t, uint64(1), sales[1].ID)
}

func TestBuyOverpaymentGoesToSeller(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 1000)
	listToken(t, ct, "hive:artist", id, "10")
	callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("10"), "hive:b", true)
	listToken(t, ct, "hive:b", id, "10")
	callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("12"), "hive:c", true)

	assert.Equal(t, amt(11), account(t, ct, "hive:artist").Balance)
	assert.Equal(t, amt(11), account(t, ct, "hive:b").Balance)
	assert.Equal(t, amt(12), account(t, ct, "hive:c").ContributionTotal)
}

func TestBuyFailures(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 0)

	rc := callContract(t, ct, contract.ActionNFTBuy, "42", transferIntent("1"), "hive:b", false)
	assert.ErrorIs(t, rc.Err, contract.ErrTokenNotFound)

	rc = callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("1"), "hive:b", false)
	assert.ErrorIs(t, rc.Err, contract.ErrNotForSale)

	listToken(t, ct, "hive:artist", id, "5")
	rc = callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("4.999"), "hive:b", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInsufficientPayment)
	assert.Equal(t, contract.KindResource, contract.KindOf(rc.Err))

	rc = callContract(t, ct, contract.ActionNFTBuy, fmt.Sprint(id), transferIntent("5"), "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrSelfPurchase)

	n, err := ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.Equal(t, sdk.Address("hive:artist"), n.Owner)
	assert.True(t, n.ForSale)
	assert.Equal(t, contract.Amount(0), treasury(t, ct).Balance)
	_, found, err := ct.c.GetAccount("hive:b")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestListGuards(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 0)

	rc := callContract(t, ct, contract.ActionNFTList, fmt.Sprintf("%d|5", id), nil, "hive:thief", false)
	assert.ErrorIs(t, rc.Err, contract.ErrNotOwner)
	rc = callContract(t, ct, contract.ActionNFTList, fmt.Sprintf("%d|0", id), nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidPrice)
	rc = callContract(t, ct, contract.ActionNFTList, "9|5", nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrTokenNotFound)

	listToken(t, ct, "hive:artist", id, "5")
	rc = callContract(t, ct, contract.ActionNFTUnlist, fmt.Sprint(id), nil, "hive:thief", false)
	assert.ErrorIs(t, rc.Err, contract.ErrNotOwner)
	rc = callContract(t, ct, contract.ActionNFTUnlist, fmt.Sprint(id), nil, "hive:artist", true)
	assert.Equal(t, contract.EventNFTUnlisted, rc.Events[0].Type)

	n, err := ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.False(t, n.ForSale)
	assert.Equal(t, contract.Amount(0), n.Price)
}

func TestResellUpdatesPriceWhileListed(t *testing.T) {
	ct := setupContractTest(t)
	id := mintToken(t, ct, "hive:artist", 0)
	listToken(t, ct, "hive:artist", id, "5")
	rc := callContract(t, ct, contract.ActionNFTResell, fmt.Sprintf("%d|7.5", id), nil, "hive:artist", true)
	assert.Equal(t, amt(7.5), rc.Events[0].Amount)
	n, err := ct.c.GetNFT(id)
	require.NoError(t, err)
	assert.Equal(t, amt(7.5), n.Price)
}

func TestMintValidation(t *testing.T) {
	ct := setupContractTest(t)
	rc := callContract(t, ct, contract.ActionNFTMint, metadataURI+"|10001", nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidRoyalty)
	rc = callContract(t, ct, contract.ActionNFTMint, "|100", nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrInvalidPayload)

	rc = callContract(t, ct, contract.ActionNFTMint, metadataURI, nil, "hive:artist", true)
	n, err := ct.c.GetNFT(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), n.RoyaltyBps)
	assert.Equal(t, metadataURI, n.MetadataURI)
	assert.Equal(t, "0", rc.Result)
}

func TestMintRestrictedToMinter(t *testing.T) {
	ct := setupContractTest(t, func(c *contract.Config) { c.Minter = minterAddress })
	rc := callContract(t, ct, contract.ActionNFTMint, metadataURI+"|100", nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrNotMinter)
	mintToken(t, ct, minterAddress, 100)
	assert.Equal(t, sdk.Address(minterAddress), ct.c.GetCollection().Minter)
}

// TestScenarioDSupplyCap fills a two token collection and checks the third mint leaves no trace.
func TestScenarioDSupplyCap(t *testing.T) {
	ct := setupContractTest(t, func(c *contract.Config) { c.SupplyCap = 2 })
	mintToken(t, ct, "hive:artist", 0)
	mintToken(t, ct, "hive:artist", 0)

	rc := callContract(t, ct, contract.ActionNFTMint, metadataURI+"|0", nil, "hive:artist", false)
	assert.ErrorIs(t, rc.Err, contract.ErrSupplyExhausted)

	all, err := ct.c.GetAllNFTs()
	require.NoError(t, err)
	assert.Len(t, all, 2)
	col := ct.c.GetCollection()
	assert.Equal(t, uint64(2), col.Supply)
	assert.Equal(t, "Timeless NFTs", col.Name)
	assert.Equal(t, "TNT", col.Symbol)
	_, err = ct.c.GetNFT(2)
	assert.ErrorIs(t, err, contract.ErrTokenNotFound)
}
