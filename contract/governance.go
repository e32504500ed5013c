package contract

// voteWeight applies the configured policy to a stakeholder account.
func voteWeight(cfg *Config, acc *Account) Amount {
	if cfg.VoteWeight == VoteWeightFlat {
		return AmountScale
	}
	return acc.ContributionTotal
}

// requireStakeholder loads the caller and fails unless they hold stake right now.
func (x *execCtx) requireStakeholder() (*Account, error) {
	acc, ok, err := loadAccount(x.st, x.sender())
	if err != nil {
		return nil, err
	}
	if !ok || !acc.IsStakeholder {
		return nil, ErrNotStakeholder
	}
	return acc, nil
}

// contribute books the attached value for the sender and optionally escrows it to a proposal.
func (x *execCtx) contribute(proposalID *uint64) (*Account, error) {
	amount, err := x.requireValue()
	if err != nil {
		return nil, err
	}
	if proposalID != nil {
		if _, err := escrowToProposal(x.st, *proposalID, amount, x.now()); err != nil {
			return nil, err
		}
	}
	acc, err := recordContribution(x.st, x.cfg, x.sender(), amount, x.now())
	if err != nil {
		return nil, err
	}
	x.emitContributionRecorded(acc, amount)
	return acc, nil
}

func (x *execCtx) createProposal(args *CreateProposalArgs) (*Proposal, error) {
	if _, err := x.requireStakeholder(); err != nil {
		return nil, err
	}
	p, err := createProposal(x.st, x.cfg, x.sender(), args, x.now(), x.txID())
	if err != nil {
		return nil, err
	}
	x.emitProposalCreated(p)
	return p, nil
}

// vote weighs the sender by the configured policy at vote time.
func (x *execCtx) vote(id uint64, choice Choice) (*VoteReceipt, error) {
	if _, err := loadProposal(x.st, id); err != nil {
		return nil, err
	}
	acc, ok, err := loadAccount(x.st, x.sender())
	if err != nil {
		return nil, err
	}
	var weight Amount
	if ok && acc.IsStakeholder {
		weight = voteWeight(x.cfg, acc)
	}
	_, rc, err := castVote(x.st, id, x.sender(), weight, choice, x.now())
	if err != nil {
		return nil, err
	}
	x.emitVoteCast(id, rc.Voter, rc.Choice, rc.Weight)
	return rc, nil
}

func (x *execCtx) tally(id uint64) (TallyResult, error) {
	if _, err := loadProposal(x.st, id); err != nil {
		return TallyResult{}, err
	}
	if _, err := x.requireStakeholder(); err != nil {
		return TallyResult{}, err
	}
	_, res, err := tallyProposal(x.st, id, x.now())
	if err != nil {
		return TallyResult{}, err
	}
	x.emitProposalExecuted(id, res)
	return res, nil
}
