package contract

import (
	"fmt"
	"strconv"

	"dominion_dao/sdk"
)

// loadAccount fetches the account for addr; ok is false when the address was never seen.
func loadAccount(st State, addr sdk.Address) (*Account, bool, error) {
	ptr := st.Get(accountKey(addr))
	if ptr == nil {
		return nil, false, nil
	}
	acc, err := DecodeAccount([]byte(*ptr))
	if err != nil {
		return nil, false, fmt.Errorf("decode account %s: %w", addr, err)
	}
	return acc, true, nil
}

// getOrCreateAccount creates accounts lazily; they are never removed again.
func getOrCreateAccount(st State, addr sdk.Address, now int64) (*Account, error) {
	acc, ok, err := loadAccount(st, addr)
	if err != nil {
		return nil, err
	}
	if !ok {
		acc = &Account{Address: addr, CreatedAt: now}
	}
	return acc, nil
}

func saveAccount(st State, acc *Account) {
	st.Set(accountKey(acc.Address), string(EncodeAccount(acc)))
}

// recordContribution adds amount to the contributor's total, re-evaluates the
// stakeholder flag and credits the treasury in the same breath.
func recordContribution(st State, cfg *Config, addr sdk.Address, amount Amount, now int64) (*Account, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if !addr.IsUser() {
		return nil, ErrInvalidAddress.With("invalid contributor address")
	}
	acc, err := getOrCreateAccount(st, addr, now)
	if err != nil {
		return nil, err
	}
	total, err := addAmount(acc.ContributionTotal, amount)
	if err != nil {
		return nil, err
	}
	acc.ContributionTotal = total
	acc.IsStakeholder = acc.ContributionTotal >= cfg.StakeThreshold
	saveAccount(st, acc)
	if err := creditTreasury(st, amount); err != nil {
		return nil, err
	}
	return acc, nil
}

// isStakeholder is false for unknown addresses.
func isStakeholder(st State, addr sdk.Address) (bool, error) {
	acc, ok, err := loadAccount(st, addr)
	if err != nil || !ok {
		return false, err
	}
	return acc.IsStakeholder, nil
}

// credit adds proceeds (sale revenue, royalties, payouts) to the spendable balance.
func credit(st State, addr sdk.Address, amount Amount, now int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if amount == 0 {
		return nil
	}
	acc, err := getOrCreateAccount(st, addr, now)
	if err != nil {
		return err
	}
	if acc.Balance, err = addAmount(acc.Balance, amount); err != nil {
		return err
	}
	saveAccount(st, acc)
	return nil
}

// hasVoted checks the per proposal receipt, which is the source of truth for double votes.
func hasVoted(st State, addr sdk.Address, proposalID uint64) bool {
	return st.Get(proposalVoteKey(proposalID, addr)) != nil
}

// markVoted stores the receipt and indexes it under both the proposal and the voter.
func markVoted(st State, p *Proposal, rc *VoteReceipt, now int64) error {
	if hasVoted(st, rc.Voter, rc.ProposalID) {
		return ErrAlreadyVoted
	}
	st.Set(proposalVoteKey(rc.ProposalID, rc.Voter), string(EncodeVoteReceipt(rc)))
	st.Set(voteIndexKey(rc.ProposalID, p.VoterCount), rc.Voter.String())
	p.VoterCount++
	acc, err := getOrCreateAccount(st, rc.Voter, now)
	if err != nil {
		return err
	}
	st.Set(voterIndexKey(rc.Voter, acc.VoteCount), strconv.FormatUint(rc.ProposalID, 10))
	acc.VoteCount++
	saveAccount(st, acc)
	return nil
}

// votedProposals reads the voter index of acc in vote order.
func votedProposals(st State, acc *Account) ([]uint64, error) {
	ids := make([]uint64, 0, acc.VoteCount)
	for n := uint64(0); n < acc.VoteCount; n++ {
		ptr := st.Get(voterIndexKey(acc.Address, n))
		if ptr == nil {
			return nil, fmt.Errorf("voter index %s/%d missing", acc.Address, n)
		}
		id, err := strconv.ParseUint(*ptr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("voter index %s/%d: %w", acc.Address, n, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
