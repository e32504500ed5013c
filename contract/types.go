package contract

import (
	"math"
	"strconv"

	"dominion_dao/sdk"
)

// Amount is a fixed-point value with AmountScale sub-units per value unit.
type Amount int64

// FloatToAmount scales human floats by AmountScale and rounds to int64 so storage stays precise.
// Example payload: FloatToAmount(1.234)
func FloatToAmount(v float64) Amount {
	return Amount(math.Round(v * AmountScale))
}

// MaxAmountUnits bounds a single payload or intent amount in value units.
const MaxAmountUnits = 1e12

// parseAmount converts a decimal value, refusing NaN, infinities and anything
// beyond MaxAmountUnits either way.
func parseAmount(v float64) (Amount, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > MaxAmountUnits {
		return 0, false
	}
	return FloatToAmount(v), true
}

// addAmount adds two non-negative amounts and fails instead of wrapping.
func addAmount(a, b Amount) (Amount, error) {
	if a < 0 || b < 0 {
		return 0, ErrInvalidAmount
	}
	if b > math.MaxInt64-a {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// AmountToFloat converts back to float64 for reporting or events.
// Example payload: AmountToFloat(FloatToAmount(2.5))
func AmountToFloat(v Amount) float64 {
	return float64(v) / AmountScale
}

// String prints the amount with three decimals, the same form payloads use.
func (a Amount) String() string {
	return strconv.FormatFloat(AmountToFloat(a), 'f', 3, 64)
}

// mulBps returns floor(a * bps / 10000) without overflowing int64.
func mulBps(a Amount, bps uint32) Amount {
	b := Amount(bps)
	return a/BpsDenominator*b + a%BpsDenominator*b/BpsDenominator
}

// VoteWeightMode selects how much a single stakeholder vote counts.
type VoteWeightMode uint8

const (
	// VoteWeightContribution weighs a vote by the voter's contribution total.
	VoteWeightContribution VoteWeightMode = 0
	// VoteWeightFlat gives every stakeholder one value unit of weight.
	VoteWeightFlat VoteWeightMode = 1
)

// String serializes the mode for config files and logs.
func (m VoteWeightMode) String() string {
	switch m {
	case VoteWeightFlat:
		return "flat"
	default:
		return "contribution"
	}
}

// ParseVoteWeightMode accepts the config spelling of a mode.
func ParseVoteWeightMode(s string) (VoteWeightMode, bool) {
	switch s {
	case "", "contribution":
		return VoteWeightContribution, true
	case "flat":
		return VoteWeightFlat, true
	}
	return 0, false
}

// Choice is a stakeholder's position on a proposal.
type Choice uint8

const (
	ChoiceReject Choice = 0
	ChoiceAccept Choice = 1
)

// String prints the choice as used in events.
func (c Choice) String() string {
	if c == ChoiceAccept {
		return "accept"
	}
	return "reject"
}

// ProposalState captures a proposal's lifecycle.
type ProposalState uint8

const (
	ProposalStateUnspecified ProposalState = 0
	ProposalOpen             ProposalState = 1
	// ProposalAwaitingTally is an open proposal whose voting window has closed.
	ProposalAwaitingTally ProposalState = 2
	ProposalPassed        ProposalState = 3
	ProposalRejected      ProposalState = 4
)

// String prints the proposal state as lower-case text for events and logs.
// Example payload: ProposalPassed.String()
func (ps ProposalState) String() string {
	switch ps {
	case ProposalOpen:
		return "open"
	case ProposalAwaitingTally:
		return "awaiting_tally"
	case ProposalPassed:
		return "passed"
	case ProposalRejected:
		return "rejected"
	default:
		return "unspecified"
	}
}

// Config holds the genesis parameters of the ledger. It is written to state once.
type Config struct {
	StakeThreshold   Amount
	SupplyCap        uint64
	Minter           sdk.Address
	CollectionName   string
	CollectionSymbol string
	// MaxRequestBps caps a new proposal's request at this share of the treasury; 0 disables the check.
	MaxRequestBps uint32
	VoteWeight    VoteWeightMode
	NativeAsset   sdk.Asset
}

// DefaultConfig mirrors the values the marketplace was first deployed with.
func DefaultConfig() Config {
	return Config{
		StakeThreshold:   FloatToAmount(FallbackStakeThreshold),
		SupplyCap:        FallbackSupplyCap,
		CollectionName:   FallbackCollectionName,
		CollectionSymbol: FallbackCollectionSymbol,
		MaxRequestBps:    BpsDenominator,
		VoteWeight:       VoteWeightContribution,
		NativeAsset:      sdk.AssetEth,
	}
}

// Validate rejects genesis values the state machine cannot honor.
func (c Config) Validate() error {
	if c.StakeThreshold <= 0 {
		return ErrInvalidAmount.With("stake threshold must be positive")
	}
	if c.SupplyCap == 0 {
		return ErrInvalidPayload.With("supply cap must be positive")
	}
	if c.MaxRequestBps > BpsDenominator {
		return ErrInvalidPayload.With("max request bps must be <= 10000")
	}
	if c.Minter != "" && !c.Minter.IsUser() {
		return ErrInvalidAddress.With("invalid minter address")
	}
	if !c.NativeAsset.IsKnown() {
		return ErrInvalidAsset.With("unknown native asset")
	}
	return nil
}

// Account is the ledger view of one address.
type Account struct {
	Address           sdk.Address
	ContributionTotal Amount
	Balance           Amount
	IsStakeholder     bool
	// VoteCount is the number of proposals voted on; the ids live in the voter index.
	VoteCount uint64
	CreatedAt int64
	// VotedProposals is filled by GetAccount from the voter index and never stored.
	VotedProposals []uint64
}

// Proposal is a funding request voted on by stakeholders.
type Proposal struct {
	ID              uint64
	Proposer        sdk.Address
	Beneficiary     sdk.Address
	Title           string
	Description     string
	RequestedAmount Amount
	RaisedAmount    Amount
	Upvotes         Amount
	Downvotes       Amount
	VoterCount      uint64
	CreatedAt       int64
	DurationSeconds int64
	Executed        bool
	Passed          bool
	PayoutAmount    Amount
	ExecutedAt      int64
	Tx              string
}

// Deadline is the first timestamp at which voting is closed.
func (p *Proposal) Deadline() int64 {
	return p.CreatedAt + p.DurationSeconds
}

// StateAt derives the lifecycle state for the given time.
func (p *Proposal) StateAt(now int64) ProposalState {
	switch {
	case p.Executed && p.Passed:
		return ProposalPassed
	case p.Executed:
		return ProposalRejected
	case now >= p.Deadline():
		return ProposalAwaitingTally
	default:
		return ProposalOpen
	}
}

// VoteReceipt records one stakeholder's vote on one proposal.
type VoteReceipt struct {
	ProposalID uint64
	Voter      sdk.Address
	Choice     Choice
	Weight     Amount
	VotedAt    int64
}

// NFT is a permanent marketplace token.
type NFT struct {
	TokenID     uint64
	Owner       sdk.Address
	Creator     sdk.Address
	MetadataURI string
	Price       Amount
	RoyaltyBps  uint32
	ForSale     bool
	MintedAt    int64
	SaleCount   uint64
}

// Sale is the settlement record of one purchase.
type Sale struct {
	ID             uint64
	TokenID        uint64
	Seller         sdk.Address
	Buyer          sdk.Address
	Creator        sdk.Address
	Price          Amount
	Paid           Amount
	Royalty        Amount
	SellerProceeds Amount
	Timestamp      int64
	Tx             string
}

// TreasuryState is the DAO's pooled balance and its audit totals.
type TreasuryState struct {
	Balance          Amount
	TotalContributed Amount
	TotalPaidOut     Amount
}

// TallyResult is what a tally hands back to the governance layer.
type TallyResult struct {
	Passed       bool
	PayoutAmount Amount
}

// Collection describes the NFT collection as a whole.
type Collection struct {
	Name      string
	Symbol    string
	Supply    uint64
	SupplyCap uint64
	Minter    sdk.Address
}
