package contract

import "fmt"

// loadTreasury returns the zero treasury until the first contribution lands.
func loadTreasury(st State) (*TreasuryState, error) {
	ptr := st.Get(treasuryKey())
	if ptr == nil {
		return &TreasuryState{}, nil
	}
	t, err := DecodeTreasury([]byte(*ptr))
	if err != nil {
		return nil, fmt.Errorf("decode treasury: %w", err)
	}
	return t, nil
}

func saveTreasury(st State, t *TreasuryState) {
	st.Set(treasuryKey(), string(EncodeTreasury(t)))
}

// creditTreasury books a contribution.
func creditTreasury(st State, amount Amount) error {
	t, err := loadTreasury(st)
	if err != nil {
		return err
	}
	if t.Balance, err = addAmount(t.Balance, amount); err != nil {
		return err
	}
	if t.TotalContributed, err = addAmount(t.TotalContributed, amount); err != nil {
		return err
	}
	saveTreasury(st, t)
	return nil
}

// debitTreasury books a payout; the balance can never go below zero.
func debitTreasury(st State, amount Amount) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	t, err := loadTreasury(st)
	if err != nil {
		return err
	}
	if amount > t.Balance {
		return ErrInsufficientTreasury
	}
	if t.TotalPaidOut, err = addAmount(t.TotalPaidOut, amount); err != nil {
		return err
	}
	t.Balance -= amount
	saveTreasury(st, t)
	return nil
}
