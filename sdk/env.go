package sdk

// Intent is an allowance attached to a transaction; "transfer.allow" carries the
// value the sender lets the contract draw, in args "limit" and "token".
type Intent struct {
	Type string            `json:"type"`
	Args map[string]string `json:"args"`
}

// TransferIntent builds the transfer.allow intent for the given decimal limit.
// Example payload: sdk.TransferIntent("1.000", sdk.AssetEth)
func TransferIntent(limit string, token Asset) Intent {
	return Intent{
		Type: "transfer.allow",
		Args: map[string]string{"limit": limit, "token": token.String()},
	}
}

// Env is the execution environment of one transaction as seen by the contract.
type Env struct {
	TxId      string   `json:"tx.id"`
	Timestamp int64    `json:"block.timestamp"`
	Sender    Address  `json:"msg.sender"`
	Intents   []Intent `json:"intents"`
}
