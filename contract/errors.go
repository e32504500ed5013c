package contract

import "errors"

// ErrorKind groups failures by how a caller should react to them.
type ErrorKind uint8

const (
	// KindValidation is malformed input, fixable by retrying with corrected input.
	KindValidation ErrorKind = iota + 1
	// KindAuthorization means the caller may not perform the action.
	KindAuthorization
	// KindStateConflict means the caller's view of the ledger is stale.
	KindStateConflict
	// KindResource means value on hand does not cover the request.
	KindResource
)

// String returns the wire name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindStateConflict:
		return "state_conflict"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// MarshalText lets receipts carry the kind by name.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is a rejected transaction: a kind, a stable symbol and a human message,
// much like a named revert.
type Error struct {
	Kind ErrorKind
	Code string
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Code
	}
	return e.Code + ": " + e.Msg
}

// Is matches on the symbol so wrapped details still compare equal to the sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// With returns a copy of the sentinel carrying a more specific message.
func (e *Error) With(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Msg: msg}
}

func newError(kind ErrorKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

var (
	ErrInvalidAmount              = newError(KindValidation, "invalid_amount", "amount must be positive")
	ErrInvalidPrice               = newError(KindValidation, "invalid_price", "price must be positive")
	ErrInvalidDuration            = newError(KindValidation, "invalid_duration", "duration must be positive")
	ErrInvalidRoyalty             = newError(KindValidation, "invalid_royalty", "royalty must be <= 10000 bps")
	ErrInvalidAddress             = newError(KindValidation, "invalid_address", "invalid address")
	ErrInvalidPayload             = newError(KindValidation, "invalid_payload", "invalid payload")
	ErrInvalidChoice              = newError(KindValidation, "invalid_choice", "choice must be accept or reject")
	ErrInvalidAsset               = newError(KindValidation, "invalid_asset", "invalid intent asset")
	ErrContributionExceedsRequest = newError(KindValidation, "contribution_exceeds_request", "contribution exceeds remaining request")
	ErrAmountOverflow             = newError(KindValidation, "amount_overflow", "amount exceeds ledger limits")

	ErrNotStakeholder = newError(KindAuthorization, "not_stakeholder", "only stakeholders may do this")
	ErrNotOwner       = newError(KindAuthorization, "not_owner", "caller is not the token owner")
	ErrNotMinter      = newError(KindAuthorization, "not_minter", "caller is not the authorized minter")

	ErrAlreadyVoted       = newError(KindStateConflict, "already_voted", "already voted on this proposal")
	ErrAlreadyExecuted    = newError(KindStateConflict, "already_executed", "proposal already tallied")
	ErrProposalExpired    = newError(KindStateConflict, "proposal_expired", "voting period ended")
	ErrProposalNotExpired = newError(KindStateConflict, "proposal_not_expired", "proposal duration not over yet")
	ErrProposalNotFound   = newError(KindStateConflict, "proposal_not_found", "proposal not found")
	ErrTokenNotFound      = newError(KindStateConflict, "token_not_found", "token not found")
	ErrNotForSale         = newError(KindStateConflict, "not_for_sale", "token is not listed")
	ErrSupplyExhausted    = newError(KindStateConflict, "supply_exhausted", "collection supply cap reached")
	ErrSelfPurchase       = newError(KindStateConflict, "self_purchase", "owner cannot buy own token")
	ErrDuplicateTx        = newError(KindStateConflict, "duplicate_tx", "transaction already processed")
	ErrUnknownAction      = newError(KindStateConflict, "unknown_action", "unknown action")

	ErrInsufficientPayment  = newError(KindResource, "insufficient_payment", "payment below price")
	ErrInsufficientTreasury = newError(KindResource, "insufficient_treasury", "requested amount exceeds treasury allowance")
)

// KindOf reports the kind of a ledger error, or 0 for foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
