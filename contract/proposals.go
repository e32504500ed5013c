package contract

import (
	"fmt"
	"strings"

	"dominion_dao/sdk"
)

// CreateProposalArgs is the decoded proposal_create payload.
type CreateProposalArgs struct {
	Title           string
	Description     string
	Beneficiary     sdk.Address
	RequestedAmount Amount
	DurationSeconds int64
}

func loadProposal(st State, id uint64) (*Proposal, error) {
	ptr := st.Get(proposalKey(id))
	if ptr == nil {
		return nil, ErrProposalNotFound.With(fmt.Sprintf("proposal %d not found", id))
	}
	p, err := DecodeProposal([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("decode proposal %d: %w", id, err)
	}
	return p, nil
}

func saveProposal(st State, p *Proposal) {
	st.Set(proposalKey(p.ID), string(EncodeProposal(p)))
}

// createProposal validates the request and stores the next proposal.
// The treasury cap is checked here against the current balance and again at tally.
func createProposal(st State, cfg *Config, proposer sdk.Address, args *CreateProposalArgs, now int64, txID string) (*Proposal, error) {
	ok, err := isStakeholder(st, proposer)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotStakeholder
	}
	title := strings.TrimSpace(args.Title)
	if title == "" {
		return nil, ErrInvalidPayload.With("title required")
	}
	if len(title) > MaxTitleLength {
		return nil, ErrInvalidPayload.With(fmt.Sprintf("title exceeds %d characters", MaxTitleLength))
	}
	if len(args.Description) > MaxDescriptionLength {
		return nil, ErrInvalidPayload.With(fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength))
	}
	if args.DurationSeconds <= 0 {
		return nil, ErrInvalidDuration
	}
	if args.RequestedAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !args.Beneficiary.IsUser() {
		return nil, ErrInvalidAddress.With("invalid beneficiary address")
	}
	if cfg.MaxRequestBps > 0 {
		t, err := loadTreasury(st)
		if err != nil {
			return nil, err
		}
		if args.RequestedAmount > mulBps(t.Balance, cfg.MaxRequestBps) {
			return nil, ErrInsufficientTreasury
		}
	}
	p := &Proposal{
		ID:              nextID(st, ProposalsCount),
		Proposer:        proposer,
		Beneficiary:     args.Beneficiary,
		Title:           title,
		Description:     strings.TrimSpace(args.Description),
		RequestedAmount: args.RequestedAmount,
		CreatedAt:       now,
		DurationSeconds: args.DurationSeconds,
		Tx:              txID,
	}
	saveProposal(st, p)
	return p, nil
}

// escrowToProposal earmarks part of a contribution for an open proposal.
func escrowToProposal(st State, id uint64, amount Amount, now int64) (*Proposal, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	p, err := loadProposal(st, id)
	if err != nil {
		return nil, err
	}
	if p.Executed {
		return nil, ErrAlreadyExecuted
	}
	if now >= p.Deadline() {
		return nil, ErrProposalExpired
	}
	if amount > p.RequestedAmount-p.RaisedAmount {
		return nil, ErrContributionExceedsRequest
	}
	// cannot overflow: bounded by RequestedAmount above
	p.RaisedAmount += amount
	saveProposal(st, p)
	return p, nil
}

// allProposals walks ids 0..count-1.
func allProposals(st State) ([]Proposal, error) {
	count := getCount(st, ProposalsCount)
	out := make([]Proposal, 0, count)
	for id := uint64(0); id < count; id++ {
		p, err := loadProposal(st, id)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}
