package contract

// mint is open to everybody unless a minter was fixed at genesis.
func (x *execCtx) mint(uri string, royaltyBps uint32) (*NFT, error) {
	if x.cfg.Minter != "" && x.sender() != x.cfg.Minter {
		return nil, ErrNotMinter
	}
	n, err := mintNFT(x.st, x.cfg, x.sender(), uri, royaltyBps, x.now())
	if err != nil {
		return nil, err
	}
	x.emitNFTMinted(n)
	return n, nil
}

func (x *execCtx) list(id uint64, price Amount) (*NFT, error) {
	n, err := listNFT(x.st, id, price, x.sender())
	if err != nil {
		return nil, err
	}
	x.emitNFTListed(n)
	return n, nil
}

// resell changes the price of a token the sender owns, listed or not.
func (x *execCtx) resell(id uint64, price Amount) (*NFT, error) {
	return x.list(id, price)
}

func (x *execCtx) unlist(id uint64) (*NFT, error) {
	n, err := unlistNFT(x.st, id, x.sender())
	if err != nil {
		return nil, err
	}
	x.emitNFTUnlisted(n)
	return n, nil
}

// buy settles a purchase with the attached value: royalty to the creator, the rest
// of the payment to the seller, the payment booked as the buyer's contribution.
func (x *execCtx) buy(id uint64) (*Sale, error) {
	n, err := loadNFT(x.st, id)
	if err != nil {
		return nil, err
	}
	if !n.ForSale {
		return nil, ErrNotForSale
	}
	buyer := x.sender()
	if buyer == n.Owner {
		return nil, ErrSelfPurchase
	}
	payment, err := x.attachedValue()
	if err != nil {
		return nil, err
	}
	if payment < n.Price {
		return nil, ErrInsufficientPayment
	}

	seller := n.Owner
	price := n.Price
	royalty := Amount(0)
	if seller != n.Creator {
		royalty = mulBps(price, n.RoyaltyBps)
	}
	proceeds := payment - royalty
	if err := credit(x.st, n.Creator, royalty, x.now()); err != nil {
		return nil, err
	}
	if err := credit(x.st, seller, proceeds, x.now()); err != nil {
		return nil, err
	}
	acc, err := recordContribution(x.st, x.cfg, buyer, payment, x.now())
	if err != nil {
		return nil, err
	}
	transferOwnership(x.st, n, buyer)

	sale := &Sale{
		TokenID:        n.TokenID,
		Seller:         seller,
		Buyer:          buyer,
		Creator:        n.Creator,
		Price:          price,
		Paid:           payment,
		Royalty:        royalty,
		SellerProceeds: proceeds,
		Timestamp:      x.now(),
		Tx:             x.txID(),
	}
	saveSale(x.st, sale)
	x.emitContributionRecorded(acc, payment)
	x.emitNFTSold(n.TokenID, buyer, price)
	return sale, nil
}
