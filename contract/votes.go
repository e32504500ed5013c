package contract

import (
	"fmt"

	"dominion_dao/sdk"
)

// castVote validates the voter and window, then adds the weight to the chosen side.
// Example payload: castVote(st, 3, "hive:alice", FloatToAmount(6), ChoiceAccept, now)
func castVote(st State, id uint64, voter sdk.Address, weight Amount, choice Choice, now int64) (*Proposal, *VoteReceipt, error) {
	p, err := loadProposal(st, id)
	if err != nil {
		return nil, nil, err
	}
	if p.Executed || now >= p.Deadline() {
		return nil, nil, ErrProposalExpired
	}
	ok, err := isStakeholder(st, voter)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNotStakeholder
	}
	if hasVoted(st, voter, id) {
		return nil, nil, ErrAlreadyVoted
	}
	if weight <= 0 {
		return nil, nil, ErrInvalidAmount.With("vote weight must be positive")
	}
	switch choice {
	case ChoiceAccept:
		p.Upvotes, err = addAmount(p.Upvotes, weight)
	case ChoiceReject:
		p.Downvotes, err = addAmount(p.Downvotes, weight)
	default:
		return nil, nil, ErrInvalidChoice
	}
	if err != nil {
		return nil, nil, err
	}
	rc := &VoteReceipt{ProposalID: id, Voter: voter, Choice: choice, Weight: weight, VotedAt: now}
	if err := markVoted(st, p, rc, now); err != nil {
		return nil, nil, err
	}
	saveProposal(st, p)
	return p, rc, nil
}

// tallyProposal closes an expired proposal once. A pass the treasury cannot cover
// is recorded as a rejection with no payout.
func tallyProposal(st State, id uint64, now int64) (*Proposal, TallyResult, error) {
	p, err := loadProposal(st, id)
	if err != nil {
		return nil, TallyResult{}, err
	}
	if p.Executed {
		return nil, TallyResult{}, ErrAlreadyExecuted
	}
	if now < p.Deadline() {
		return nil, TallyResult{}, ErrProposalNotExpired
	}
	res := TallyResult{Passed: p.Upvotes > p.Downvotes}
	if res.Passed {
		t, err := loadTreasury(st)
		if err != nil {
			return nil, TallyResult{}, err
		}
		if p.RequestedAmount <= t.Balance {
			if err := debitTreasury(st, p.RequestedAmount); err != nil {
				return nil, TallyResult{}, err
			}
			if err := credit(st, p.Beneficiary, p.RequestedAmount, now); err != nil {
				return nil, TallyResult{}, err
			}
			res.PayoutAmount = p.RequestedAmount
		} else {
			res.Passed = false
		}
	}
	p.Executed = true
	p.Passed = res.Passed
	p.PayoutAmount = res.PayoutAmount
	p.ExecutedAt = now
	saveProposal(st, p)
	return p, res, nil
}

// proposalVotes returns the receipts of one proposal in vote order.
func proposalVotes(st State, id uint64) ([]VoteReceipt, error) {
	p, err := loadProposal(st, id)
	if err != nil {
		return nil, err
	}
	out := make([]VoteReceipt, 0, p.VoterCount)
	for n := uint64(0); n < p.VoterCount; n++ {
		voter := st.Get(voteIndexKey(id, n))
		if voter == nil {
			continue
		}
		ptr := st.Get(proposalVoteKey(id, sdk.Address(*voter)))
		if ptr == nil {
			continue
		}
		rc, err := DecodeVoteReceipt([]byte(*ptr))
		if err != nil {
			return nil, fmt.Errorf("decode vote %d/%s: %w", id, *voter, err)
		}
		out = append(out, *rc)
	}
	return out, nil
}
