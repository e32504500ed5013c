// Package server exposes the ledger over HTTP: signed transactions go in through
// POST /tx and every read query has a GET route.
package server

import (
	"context"
	"log"
	"time"

	"dominion_dao/contract"
	"dominion_dao/sdk"
)

// Ledger is the part of the contract the API drives.
type Ledger interface {
	Submit(ctx context.Context, tx contract.Tx) (contract.Receipt, error)
	GetReceipt(txID string) (contract.Receipt, bool, error)
	GetProposal(id uint64) (contract.Proposal, error)
	GetAllProposals() ([]contract.Proposal, error)
	GetProposalVotes(id uint64) ([]contract.VoteReceipt, error)
	GetNFT(id uint64) (contract.NFT, error)
	GetAllNFTs() ([]contract.NFT, error)
	GetAccount(addr sdk.Address) (contract.Account, bool, error)
	GetTreasury() (contract.TreasuryState, error)
	GetSales() ([]contract.Sale, error)
	GetEvents(after uint64, limit int) ([]contract.Event, error)
	GetCollection() contract.Collection
}

// TxVerifier turns a signed envelope into a transaction.
type TxVerifier interface {
	Verify(token string) (contract.Tx, error)
}

// StatsSource reports stored entries per namespace; the SQLite store implements it.
type StatsSource interface {
	Counts(ctx context.Context) (map[string]int, error)
}

// Deps is what the handlers share.
type Deps struct {
	Ledger   Ledger
	Verifier TxVerifier
	// Stats is optional; /healthz omits the counts without it.
	Stats  StatsSource
	Logger *log.Logger
	Now    func() time.Time
}

func (d *Deps) now() int64 {
	if d.Now == nil {
		return time.Now().Unix()
	}
	return d.Now().Unix()
}

func (d *Deps) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}
