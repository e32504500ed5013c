////////////////////////////////////////////////////////////////////////////////
// Dominion DAO: stake weighted governance over a treasury fed by an NFT market
////////////////////////////////////////////////////////////////////////////////

package contract

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"dominion_dao/sdk"
)

// Contract is the ledger state machine. Mutations are serialized behind mu and
// each one commits as a single batch or not at all; queries share the read lock.
type Contract struct {
	mu     sync.RWMutex
	st     State
	cfg    Config
	logger *log.Logger
	now    func() time.Time
}

// Option tweaks a Contract at construction.
type Option func(*Contract)

// WithLogger routes committed events and failures to l.
func WithLogger(l *log.Logger) Option {
	return func(c *Contract) { c.logger = l }
}

// WithClock replaces the clock used to stamp transactions that arrive without a timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Contract) { c.now = now }
}

// New opens the ledger on st. The genesis config is validated and stored on first
// use; once stored, the stored config wins over whatever genesis is passed.
func New(st State, genesis Config, opts ...Option) (*Contract, error) {
	c := &Contract{
		st:     st,
		logger: log.New(io.Discard, "", 0),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if ptr := st.Get(ContractConfigKey); ptr != nil {
		cfg, err := DecodeConfig([]byte(*ptr))
		if err != nil {
			return nil, fmt.Errorf("decode stored config: %w", err)
		}
		c.cfg = *cfg
		return c, nil
	}
	if err := genesis.Validate(); err != nil {
		return nil, fmt.Errorf("validate genesis: %w", err)
	}
	ov := newOverlay(st)
	ov.Set(ContractConfigKey, string(EncodeConfig(&genesis)))
	if err := ov.commitTo(st); err != nil {
		return nil, fmt.Errorf("store genesis: %w", err)
	}
	c.cfg = genesis
	c.logger.Printf("genesis stored: threshold=%s cap=%d vote=%s asset=%s", genesis.StakeThreshold, genesis.SupplyCap, genesis.VoteWeight, genesis.NativeAsset)
	return c, nil
}

// Config returns the active genesis parameters.
func (c *Contract) Config() Config {
	return c.cfg
}

// Submit executes one transaction. Domain failures come back as an unsuccessful
// receipt with state untouched; the error return is for storage failures only.
func (c *Contract) Submit(ctx context.Context, tx Tx) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if tx.Timestamp == 0 {
		tx.Timestamp = c.now().Unix()
	}
	if tx.ID == "" {
		return failureReceipt(&tx, ErrInvalidPayload.With("tx id required")), nil
	}
	if c.st.Get(txReceiptKey(tx.ID)) != nil {
		// the stored receipt of the first submission stays as it is
		return failureReceipt(&tx, ErrDuplicateTx), nil
	}

	ov := newOverlay(c.st)
	x := newExecCtx(ov, &c.cfg, tx.env())
	var (
		result string
		err    error
	)
	if !tx.Sender.IsUser() {
		err = ErrInvalidAddress.With("invalid sender address")
	} else {
		result, err = dispatch(x, tx.Action, tx.Payload)
	}

	if err != nil {
		lerr, ok := asLedgerError(err)
		if !ok {
			return Receipt{}, fmt.Errorf("execute %s: %w", tx.Action, err)
		}
		rc := failureReceipt(&tx, lerr)
		fail := newOverlay(c.st)
		saveReceipt(fail, &rc)
		if err := fail.commitTo(c.st); err != nil {
			return Receipt{}, fmt.Errorf("commit receipt %s: %w", tx.ID, err)
		}
		c.logger.Printf("tx rejected: id=%s action=%s by=%s err=%s", tx.ID, tx.Action, tx.Sender, lerr)
		return rc, nil
	}

	persistEvents(ov, x.events)
	rc := successReceipt(&tx, result, x.events)
	saveReceipt(ov, &rc)
	if err := ov.commitTo(c.st); err != nil {
		return Receipt{}, fmt.Errorf("commit tx %s: %w", tx.ID, err)
	}
	for _, e := range rc.Events {
		c.logger.Print(e.String())
	}
	return rc, nil
}

// GetProposal returns one proposal.
func (c *Contract) GetProposal(id uint64) (Proposal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, err := loadProposal(c.st, id)
	if err != nil {
		return Proposal{}, err
	}
	return *p, nil
}

// GetAllProposals returns every proposal in id order.
func (c *Contract) GetAllProposals() ([]Proposal, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return allProposals(c.st)
}

// GetProposalVotes returns the vote receipts of one proposal.
func (c *Contract) GetProposalVotes(id uint64) ([]VoteReceipt, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return proposalVotes(c.st, id)
}

// GetNFT returns one token.
func (c *Contract) GetNFT(id uint64) (NFT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, err := loadNFT(c.st, id)
	if err != nil {
		return NFT{}, err
	}
	return *n, nil
}

// GetAllNFTs returns every minted token in id order.
func (c *Contract) GetAllNFTs() ([]NFT, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return allNFTs(c.st)
}

// GetAccount returns the account of addr; ok is false for addresses never seen.
func (c *Contract) GetAccount(addr sdk.Address) (Account, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	acc, ok, err := loadAccount(c.st, addr)
	if err != nil || !ok {
		return Account{Address: addr}, false, err
	}
	if acc.VotedProposals, err = votedProposals(c.st, acc); err != nil {
		return Account{Address: addr}, false, err
	}
	return *acc, true, nil
}

// IsStakeholder is false for unknown addresses.
func (c *Contract) IsStakeholder(addr sdk.Address) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return isStakeholder(c.st, addr)
}

// HasVoted reports whether addr already voted on the proposal.
func (c *Contract) HasVoted(addr sdk.Address, proposalID uint64) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return hasVoted(c.st, addr, proposalID)
}

// GetTreasury returns the treasury balance and its audit totals.
func (c *Contract) GetTreasury() (TreasuryState, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, err := loadTreasury(c.st)
	if err != nil {
		return TreasuryState{}, err
	}
	return *t, nil
}

// GetSales returns the purchase history oldest first.
func (c *Contract) GetSales() ([]Sale, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return allSales(c.st)
}

// GetEvents returns up to limit committed events with a sequence above after.
// A limit of 0 returns everything.
func (c *Contract) GetEvents(after uint64, limit int) ([]Event, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loadEvents(c.st, after, limit)
}

// GetReceipt returns the stored receipt of a transaction.
func (c *Contract) GetReceipt(txID string) (Receipt, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok, err := loadReceipt(c.st, txID)
	if err != nil || !ok {
		return Receipt{}, false, err
	}
	return *r, true, nil
}

// GetCollection describes the NFT collection.
func (c *Contract) GetCollection() Collection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Collection{
		Name:      c.cfg.CollectionName,
		Symbol:    c.cfg.CollectionSymbol,
		Supply:    nftSupply(c.st),
		SupplyCap: c.cfg.SupplyCap,
		Minter:    c.cfg.Minter,
	}
}
