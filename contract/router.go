package contract

import (
	"sort"
	"strconv"
)

// Action names accepted by Submit.
const (
	ActionContribute     = "contribute"
	ActionProposalCreate = "proposal_create"
	ActionProposalVote   = "proposals_vote"
	ActionProposalTally  = "proposal_tally"
	ActionNFTMint        = "nft_mint"
	ActionNFTList        = "nft_list"
	ActionNFTUnlist      = "nft_unlist"
	ActionNFTResell      = "nft_resell"
	ActionNFTBuy         = "nft_buy"
)

// handler runs one action against the transaction context and returns a short result.
type handler func(x *execCtx, payload string) (string, error)

var routes = map[string]handler{
	ActionContribute: func(x *execCtx, payload string) (string, error) {
		id, err := decodeContributeArgs(payload)
		if err != nil {
			return "", err
		}
		acc, err := x.contribute(id)
		if err != nil {
			return "", err
		}
		return "contributed|t:" + acc.ContributionTotal.String() + "|s:" + strconv.FormatBool(acc.IsStakeholder), nil
	},
	ActionProposalCreate: func(x *execCtx, payload string) (string, error) {
		args, err := decodeCreateProposalArgs(payload)
		if err != nil {
			return "", err
		}
		p, err := x.createProposal(args)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(p.ID, 10), nil
	},
	ActionProposalVote: func(x *execCtx, payload string) (string, error) {
		id, choice, err := decodeVoteArgs(payload)
		if err != nil {
			return "", err
		}
		if _, err := x.vote(id, choice); err != nil {
			return "", err
		}
		return "voted", nil
	},
	ActionProposalTally: func(x *execCtx, payload string) (string, error) {
		id, err := decodeIDArg(payload, "proposal id")
		if err != nil {
			return "", err
		}
		res, err := x.tally(id)
		if err != nil {
			return "", err
		}
		if res.Passed {
			return "passed|am:" + res.PayoutAmount.String(), nil
		}
		return "rejected", nil
	},
	ActionNFTMint: func(x *execCtx, payload string) (string, error) {
		uri, bps, err := decodeMintArgs(payload)
		if err != nil {
			return "", err
		}
		n, err := x.mint(uri, bps)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(n.TokenID, 10), nil
	},
	ActionNFTList: func(x *execCtx, payload string) (string, error) {
		id, price, err := decodePriceArgs(payload)
		if err != nil {
			return "", err
		}
		if _, err := x.list(id, price); err != nil {
			return "", err
		}
		return "listed", nil
	},
	ActionNFTResell: func(x *execCtx, payload string) (string, error) {
		id, price, err := decodePriceArgs(payload)
		if err != nil {
			return "", err
		}
		if _, err := x.resell(id, price); err != nil {
			return "", err
		}
		return "listed", nil
	},
	ActionNFTUnlist: func(x *execCtx, payload string) (string, error) {
		id, err := decodeIDArg(payload, "token id")
		if err != nil {
			return "", err
		}
		if _, err := x.unlist(id); err != nil {
			return "", err
		}
		return "unlisted", nil
	},
	ActionNFTBuy: func(x *execCtx, payload string) (string, error) {
		id, err := decodeIDArg(payload, "token id")
		if err != nil {
			return "", err
		}
		s, err := x.buy(id)
		if err != nil {
			return "", err
		}
		return "sold|id:" + strconv.FormatUint(s.ID, 10), nil
	},
}

// dispatch looks up the action and runs it.
func dispatch(x *execCtx, action, payload string) (string, error) {
	h, ok := routes[action]
	if !ok {
		return "", ErrUnknownAction.With("unknown action " + strconv.Quote(action))
	}
	return h(x, payload)
}

// Actions lists the accepted action names, sorted.
func Actions() []string {
	out := make([]string, 0, len(routes))
	for name := range routes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
