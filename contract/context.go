package contract

import (
	"strconv"
	"strings"

	"dominion_dao/sdk"
)

// Tx is one transaction handed to Submit: who sends it, which action it runs,
// the pipe payload and any value intents attached.
type Tx struct {
	ID        string       `json:"id"`
	Sender    sdk.Address  `json:"sender"`
	Action    string       `json:"action"`
	Payload   string       `json:"payload"`
	Intents   []sdk.Intent `json:"intents,omitempty"`
	Timestamp int64        `json:"timestamp"`
}

// env projects the transaction onto the execution environment the engines read.
func (tx *Tx) env() sdk.Env {
	return sdk.Env{
		TxId:      tx.ID,
		Timestamp: tx.Timestamp,
		Sender:    tx.Sender,
		Intents:   tx.Intents,
	}
}

// TransferAllow represents arguments extracted from a transfer.allow intent.
// It specifies the allowed transfer amount (`Limit`) and the asset (`Token`).
type TransferAllow struct {
	Limit Amount
	Token sdk.Asset
}

// execCtx is scoped to the currently executing transaction. Every read and write
// goes through st, the overlay, so nothing lands in the store before commit.
type execCtx struct {
	st       *overlay
	cfg      *Config
	env      sdk.Env
	events   []Event
	transfer *TransferAllow
}

func newExecCtx(st *overlay, cfg *Config, env sdk.Env) *execCtx {
	return &execCtx{st: st, cfg: cfg, env: env}
}

// sender returns the address of the current transaction sender.
func (x *execCtx) sender() sdk.Address {
	return x.env.Sender
}

// now is the transaction timestamp, all temporal gates compare against it.
func (x *execCtx) now() int64 {
	return x.env.Timestamp
}

// txID is just a tiny helper so records can point back at the creating tx.
func (x *execCtx) txID() string {
	return x.env.TxId
}

// firstTransferAllow scans the intents and returns the first transfer.allow entry.
// The result is memoized for the rest of the transaction.
func (x *execCtx) firstTransferAllow() (*TransferAllow, error) {
	if x.transfer != nil {
		return x.transfer, nil
	}
	for _, intent := range x.env.Intents {
		if intent.Type != "transfer.allow" {
			continue
		}
		token := sdk.Asset(strings.ToLower(strings.TrimSpace(intent.Args["token"])))
		if token != x.cfg.NativeAsset {
			return nil, ErrInvalidAsset.With("intent asset must be " + x.cfg.NativeAsset.String())
		}
		limit, err := strconv.ParseFloat(strings.TrimSpace(intent.Args["limit"]), 64)
		if err != nil {
			return nil, ErrInvalidAmount.With("invalid intent limit")
		}
		amount, ok := parseAmount(limit)
		if !ok {
			return nil, ErrAmountOverflow.With("intent limit out of range")
		}
		x.transfer = &TransferAllow{Limit: amount, Token: token}
		return x.transfer, nil
	}
	return nil, nil
}

// attachedValue is the value the sender allowed the ledger to draw, 0 without an intent.
func (x *execCtx) attachedValue() (Amount, error) {
	ta, err := x.firstTransferAllow()
	if err != nil || ta == nil {
		return 0, err
	}
	return ta.Limit, nil
}

// requireValue is attachedValue for actions that cannot run without payment.
func (x *execCtx) requireValue() (Amount, error) {
	v, err := x.attachedValue()
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, ErrInvalidAmount.With("transfer.allow intent with positive limit required")
	}
	return v, nil
}
