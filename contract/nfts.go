package contract

import (
	"fmt"
	"strings"

	"dominion_dao/sdk"
)

func loadNFT(st State, id uint64) (*NFT, error) {
	ptr := st.Get(nftKey(id))
	if ptr == nil {
		return nil, ErrTokenNotFound.With(fmt.Sprintf("token %d not found", id))
	}
	n, err := DecodeNFT([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("decode nft %d: %w", id, err)
	}
	return n, nil
}

func saveNFT(st State, n *NFT) {
	st.Set(nftKey(n.TokenID), string(EncodeNFT(n)))
}

// nftSupply is the number of minted tokens, which is also the next token id.
func nftSupply(st State) uint64 {
	return getCount(st, TokensCount)
}

// mintNFT creates the next token owned by its creator.
func mintNFT(st State, cfg *Config, creator sdk.Address, uri string, royaltyBps uint32, now int64) (*NFT, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, ErrInvalidPayload.With("metadata uri required")
	}
	if len(uri) > MaxURILength {
		return nil, ErrInvalidPayload.With(fmt.Sprintf("metadata uri exceeds %d characters", MaxURILength))
	}
	if royaltyBps > BpsDenominator {
		return nil, ErrInvalidRoyalty
	}
	if !creator.IsUser() {
		return nil, ErrInvalidAddress.With("invalid creator address")
	}
	if nftSupply(st) >= cfg.SupplyCap {
		return nil, ErrSupplyExhausted
	}
	n := &NFT{
		TokenID:     nextID(st, TokensCount),
		Owner:       creator,
		Creator:     creator,
		MetadataURI: uri,
		RoyaltyBps:  royaltyBps,
		MintedAt:    now,
	}
	saveNFT(st, n)
	return n, nil
}

// ownedNFT loads a token and checks the caller owns it, shared by list and unlist.
func ownedNFT(st State, id uint64, caller sdk.Address) (*NFT, error) {
	n, err := loadNFT(st, id)
	if err != nil {
		return nil, err
	}
	if n.Owner != caller {
		return nil, ErrNotOwner
	}
	return n, nil
}

// listNFT puts a token up for sale; listing a listed token just moves the price.
func listNFT(st State, id uint64, price Amount, caller sdk.Address) (*NFT, error) {
	n, err := ownedNFT(st, id, caller)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	n.ForSale = true
	n.Price = price
	saveNFT(st, n)
	return n, nil
}

func unlistNFT(st State, id uint64, caller sdk.Address) (*NFT, error) {
	n, err := ownedNFT(st, id, caller)
	if err != nil {
		return nil, err
	}
	n.ForSale = false
	n.Price = 0
	saveNFT(st, n)
	return n, nil
}

// transferOwnership is only reachable from a settled purchase.
func transferOwnership(st State, n *NFT, newOwner sdk.Address) {
	n.Owner = newOwner
	n.ForSale = false
	n.Price = 0
	n.SaleCount++
	saveNFT(st, n)
}

// allNFTs walks ids 0..supply-1, token ids are dense.
func allNFTs(st State) ([]NFT, error) {
	supply := nftSupply(st)
	out := make([]NFT, 0, supply)
	for id := uint64(0); id < supply; id++ {
		n, err := loadNFT(st, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	return out, nil
}

func saveSale(st State, s *Sale) {
	s.ID = nextID(st, SalesCount)
	st.Set(saleKey(s.ID), string(EncodeSale(s)))
}

// allSales returns the purchase history oldest first.
func allSales(st State) ([]Sale, error) {
	count := getCount(st, SalesCount)
	out := make([]Sale, 0, count)
	for id := uint64(0); id < count; id++ {
		ptr := st.Get(saleKey(id))
		if ptr == nil {
			continue
		}
		s, err := DecodeSale([]byte(*ptr))
		if err != nil {
			return nil, fmt.Errorf("decode sale %d: %w", id, err)
		}
		out = append(out, *s)
	}
	return out, nil
}
