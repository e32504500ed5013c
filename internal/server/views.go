package server

import (
	"dominion_dao/contract"
)

type proposalView struct {
	ID              uint64 `json:"id"`
	Proposer        string `json:"proposer"`
	Beneficiary     string `json:"beneficiary"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	RequestedAmount string `json:"requestedAmount"`
	RaisedAmount    string `json:"raisedAmount"`
	Upvotes         string `json:"upvotes"`
	Downvotes       string `json:"downvotes"`
	VoterCount      uint64 `json:"voterCount"`
	CreatedAt       int64  `json:"createdAt"`
	Deadline        int64  `json:"deadline"`
	State           string `json:"state"`
	Executed        bool   `json:"executed"`
	Passed          bool   `json:"passed"`
	PayoutAmount    string `json:"payoutAmount"`
	ExecutedAt      int64  `json:"executedAt,omitempty"`
	Tx              string `json:"tx"`
}

func newProposalView(p contract.Proposal, now int64) proposalView {
	return proposalView{
		ID:              p.ID,
		Proposer:        p.Proposer.String(),
		Beneficiary:     p.Beneficiary.String(),
		Title:           p.Title,
		Description:     p.Description,
		RequestedAmount: p.RequestedAmount.String(),
		RaisedAmount:    p.RaisedAmount.String(),
		Upvotes:         p.Upvotes.String(),
		Downvotes:       p.Downvotes.String(),
		VoterCount:      p.VoterCount,
		CreatedAt:       p.CreatedAt,
		Deadline:        p.Deadline(),
		State:           p.StateAt(now).String(),
		Executed:        p.Executed,
		Passed:          p.Passed,
		PayoutAmount:    p.PayoutAmount.String(),
		ExecutedAt:      p.ExecutedAt,
		Tx:              p.Tx,
	}
}

type voteView struct {
	ProposalID uint64 `json:"proposalId"`
	Voter      string `json:"voter"`
	Choice     string `json:"choice"`
	Weight     string `json:"weight"`
	VotedAt    int64  `json:"votedAt"`
}

func newVoteView(v contract.VoteReceipt) voteView {
	return voteView{
		ProposalID: v.ProposalID,
		Voter:      v.Voter.String(),
		Choice:     v.Choice.String(),
		Weight:     v.Weight.String(),
		VotedAt:    v.VotedAt,
	}
}

type nftView struct {
	TokenID     uint64 `json:"tokenId"`
	Owner       string `json:"owner"`
	Creator     string `json:"creator"`
	MetadataURI string `json:"metadataUri"`
	Price       string `json:"price"`
	RoyaltyBps  uint32 `json:"royaltyBps"`
	ForSale     bool   `json:"forSale"`
	MintedAt    int64  `json:"mintedAt"`
	SaleCount   uint64 `json:"saleCount"`
}

func newNFTView(n contract.NFT) nftView {
	return nftView{
		TokenID:     n.TokenID,
		Owner:       n.Owner.String(),
		Creator:     n.Creator.String(),
		MetadataURI: n.MetadataURI,
		Price:       n.Price.String(),
		RoyaltyBps:  n.RoyaltyBps,
		ForSale:     n.ForSale,
		MintedAt:    n.MintedAt,
		SaleCount:   n.SaleCount,
	}
}

type accountView struct {
	Address           string   `json:"address"`
	Known             bool     `json:"known"`
	ContributionTotal string   `json:"contributionTotal"`
	Balance           string   `json:"balance"`
	IsStakeholder     bool     `json:"isStakeholder"`
	VotedProposals    []uint64 `json:"votedProposals"`
	CreatedAt         int64    `json:"createdAt,omitempty"`
}

func newAccountView(a contract.Account, known bool) accountView {
	voted := a.VotedProposals
	if voted == nil {
		voted = []uint64{}
	}
	return accountView{
		Address:           a.Address.String(),
		Known:             known,
		ContributionTotal: a.ContributionTotal.String(),
		Balance:           a.Balance.String(),
		IsStakeholder:     a.IsStakeholder,
		VotedProposals:    voted,
		CreatedAt:         a.CreatedAt,
	}
}

type treasuryView struct {
	Balance          string `json:"balance"`
	TotalContributed string `json:"totalContributed"`
	TotalPaidOut     string `json:"totalPaidOut"`
}

type saleView struct {
	ID             uint64 `json:"id"`
	TokenID        uint64 `json:"tokenId"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	Creator        string `json:"creator"`
	Price          string `json:"price"`
	Paid           string `json:"paid"`
	Royalty        string `json:"royalty"`
	SellerProceeds string `json:"sellerProceeds"`
	Timestamp      int64  `json:"timestamp"`
	Tx             string `json:"tx"`
}

func newSaleView(s contract.Sale) saleView {
	return saleView{
		ID:             s.ID,
		TokenID:        s.TokenID,
		Seller:         s.Seller.String(),
		Buyer:          s.Buyer.String(),
		Creator:        s.Creator.String(),
		Price:          s.Price.String(),
		Paid:           s.Paid.String(),
		Royalty:        s.Royalty.String(),
		SellerProceeds: s.SellerProceeds.String(),
		Timestamp:      s.Timestamp,
		Tx:             s.Tx,
	}
}

type collectionView struct {
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Supply    uint64 `json:"supply"`
	SupplyCap uint64 `json:"supplyCap"`
	Minter    string `json:"minter,omitempty"`
}
