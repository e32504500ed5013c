package contract

// -----------------------------------------------------------------------------
// Amount Scaling
// -----------------------------------------------------------------------------

// AmountScale defines the precision multiplier for converting floats to int64.
const AmountScale = 1000

// BpsDenominator is 100% expressed in basis points.
const BpsDenominator = 10000

// -----------------------------------------------------------------------------
// Validation Limits
// -----------------------------------------------------------------------------

const (
	// MaxTitleLength limits the size of proposal titles.
	MaxTitleLength = 200
	// MaxDescriptionLength limits the size of proposal descriptions.
	MaxDescriptionLength = 4000
	// MaxURILength limits the size of NFT metadata URIs.
	MaxURILength = 500
)

// -----------------------------------------------------------------------------
// Default/Fallback Values
// -----------------------------------------------------------------------------

const (
	FallbackStakeThreshold   = 5
	FallbackSupplyCap        = 10000
	FallbackCollectionName   = "Timeless NFTs"
	FallbackCollectionSymbol = "TNT"
)

// -----------------------------------------------------------------------------
// Counter Keys
// -----------------------------------------------------------------------------

const (
	// ProposalsCount holds an integer counter for proposals (used for generating IDs).
	ProposalsCount = "count:props"
	// TokensCount holds the minted supply, which is also the next token ID.
	TokensCount = "count:nft"
	// SalesCount holds an integer counter for settled sales.
	SalesCount = "count:sale"
	// EventsCount holds the sequence of the last committed event.
	EventsCount = "count:evt"
)

// ContractConfigKey stores the encoded genesis Config.
const ContractConfigKey = "cfg"

// -----------------------------------------------------------------------------
// Storage Key Prefixes
// -----------------------------------------------------------------------------

const (
	// kAccount houses encoded Account structs keyed by address.
	kAccount byte = 0x01
	// kTreasury stores the single TreasuryState record.
	kTreasury byte = 0x02
	// kNFT contains encoded NFT records.
	kNFT byte = 0x08
	// kSale stores settled Sale records.
	kSale byte = 0x09
	// kProposalMeta contains encoded Proposal records.
	kProposalMeta byte = 0x10
	// kVoteReceipt stores one VoteReceipt per proposal+voter.
	kVoteReceipt byte = 0x20
	// kVoteIndex lists the voters of a proposal in vote order.
	kVoteIndex byte = 0x21
	// kVoterIndex lists the proposals of a voter in vote order.
	kVoterIndex byte = 0x22
	// kEvent stores committed events by sequence.
	kEvent byte = 0x30
	// kTxReceipt stores the Receipt of every submitted transaction.
	kTxReceipt byte = 0x31
)
