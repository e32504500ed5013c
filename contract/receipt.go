package contract

import (
	"errors"
	"fmt"

	"dominion_dao/sdk"
)

// Receipt is the recorded outcome of one submitted transaction.
type Receipt struct {
	TxID      string      `json:"txId"`
	Action    string      `json:"action"`
	Sender    sdk.Address `json:"sender"`
	Success   bool        `json:"success"`
	Result    string      `json:"result,omitempty"`
	ErrKind   ErrorKind   `json:"errorKind,omitempty"`
	ErrCode   string      `json:"errorCode,omitempty"`
	ErrMsg    string      `json:"error,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Events    []Event     `json:"events"`
	// Err is the typed failure, comparable with errors.Is against the Err* sentinels.
	Err error `json:"-"`
}

func successReceipt(tx *Tx, result string, events []Event) Receipt {
	return Receipt{
		TxID:      tx.ID,
		Action:    tx.Action,
		Sender:    tx.Sender,
		Success:   true,
		Result:    result,
		Timestamp: tx.Timestamp,
		Events:    events,
	}
}

func failureReceipt(tx *Tx, e *Error) Receipt {
	return Receipt{
		TxID:      tx.ID,
		Action:    tx.Action,
		Sender:    tx.Sender,
		ErrKind:   e.Kind,
		ErrCode:   e.Code,
		ErrMsg:    e.Msg,
		Timestamp: tx.Timestamp,
		Events:    []Event{},
		Err:       e,
	}
}

func saveReceipt(st State, r *Receipt) {
	st.Set(txReceiptKey(r.TxID), string(EncodeReceipt(r)))
}

func loadReceipt(st State, txID string) (*Receipt, bool, error) {
	ptr := st.Get(txReceiptKey(txID))
	if ptr == nil {
		return nil, false, nil
	}
	r, err := DecodeReceipt([]byte(*ptr))
	if err != nil {
		return nil, false, fmt.Errorf("decode receipt %s: %w", txID, err)
	}
	if r.Events == nil {
		r.Events = []Event{}
	}
	return r, true, nil
}

// asLedgerError splits domain failures from infrastructure errors.
func asLedgerError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
