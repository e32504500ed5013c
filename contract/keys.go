package contract

import "dominion_dao/sdk"

// packU64LEInline sprinkles a uint64 into dst in little-endian order so our keys stay compact.
func packU64LEInline(x uint64, dst []byte) {
	dst[0] = byte(x)
	dst[1] = byte(x >> 8)
	dst[2] = byte(x >> 16)
	dst[3] = byte(x >> 24)
	dst[4] = byte(x >> 32)
	dst[5] = byte(x >> 40)
	dst[6] = byte(x >> 48)
	dst[7] = byte(x >> 56)
}

// packU64LE appends the encoded number to dst and returns the new slice.
func packU64LE(x uint64, dst []byte) []byte {
	return append(dst,
		byte(x),
		byte(x>>8),
		byte(x>>16),
		byte(x>>24),
		byte(x>>32),
		byte(x>>40),
		byte(x>>48),
		byte(x>>56),
	)
}

// idKey is the shared shape of every prefix+u64 key.
func idKey(prefix byte, id uint64) string {
	var buf [9]byte
	buf[0] = prefix
	packU64LEInline(id, buf[1:])
	return string(buf[:])
}

// accountKey stores accounts by raw address bytes under 0x01.
func accountKey(addr sdk.Address) string {
	s := addr.String()
	buf := make([]byte, 0, 1+len(s))
	buf = append(buf, kAccount)
	buf = append(buf, s...)
	return string(buf)
}

// treasuryKey is a single byte, there is only one treasury.
func treasuryKey() string {
	return string([]byte{kTreasury})
}

// nftKey builds a storage key string for a token by ID.
func nftKey(id uint64) string {
	return idKey(kNFT, id)
}

// saleKey keeps the purchase history contiguous under 0x09.
func saleKey(id uint64) string {
	return idKey(kSale, id)
}

// proposalKey encodes id under 0x10 prefix keeping metadata lumps contiguous.
func proposalKey(id uint64) string {
	return idKey(kProposalMeta, id)
}

// proposalVoteKey mixes proposal id plus voter bytes so a voter has one receipt per proposal.
func proposalVoteKey(id uint64, voter sdk.Address) string {
	addr := voter.String()
	buf := make([]byte, 0, 1+8+len(addr))
	buf = append(buf, kVoteReceipt)
	buf = packU64LE(id, buf)
	buf = append(buf, addr...)
	return string(buf)
}

// voteIndexKey is proposal id plus the position of the vote, pointing at the voter.
func voteIndexKey(id uint64, n uint64) string {
	buf := make([]byte, 0, 17)
	buf = append(buf, kVoteIndex)
	buf = packU64LE(id, buf)
	buf = packU64LE(n, buf)
	return string(buf)
}

// voterIndexKey is the voter bytes plus the position of the vote, pointing at the proposal.
func voterIndexKey(voter sdk.Address, n uint64) string {
	addr := voter.String()
	buf := make([]byte, 0, 1+len(addr)+8)
	buf = append(buf, kVoterIndex)
	buf = append(buf, addr...)
	buf = packU64LE(n, buf)
	return string(buf)
}

// eventKey stores events by sequence under 0x30.
func eventKey(seq uint64) string {
	return idKey(kEvent, seq)
}

// txReceiptKey stores receipts by the transaction id string.
func txReceiptKey(txID string) string {
	buf := make([]byte, 0, 1+len(txID))
	buf = append(buf, kTxReceipt)
	buf = append(buf, txID...)
	return string(buf)
}

// KeyNamespace returns the prefix byte of a binary key, 0 for the plain text keys
// (counters and config). Stores use it to group entries per entity table.
func KeyNamespace(key string) byte {
	if key == "" {
		return 0
	}
	switch b := key[0]; b {
	case kAccount, kTreasury, kNFT, kSale, kProposalMeta, kVoteReceipt, kVoteIndex, kVoterIndex, kEvent, kTxReceipt:
		return b
	}
	return 0
}

// NamespaceName labels a prefix byte for stats and logs.
func NamespaceName(ns byte) string {
	switch ns {
	case kAccount:
		return "accounts"
	case kTreasury:
		return "treasury"
	case kNFT:
		return "nfts"
	case kSale:
		return "sales"
	case kProposalMeta:
		return "proposals"
	case kVoteReceipt:
		return "votes"
	case kVoteIndex:
		return "vote_index"
	case kVoterIndex:
		return "voter_index"
	case kEvent:
		return "events"
	case kTxReceipt:
		return "receipts"
	}
	return "meta"
}
