// Package txsig signs and verifies ledger transactions carried as EdDSA JWTs.
//
// The sender address is derived from the embedded public key, so a token only
// verifies when its subject is the address of the key that signed it.
package txsig

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"dominion_dao/contract"
	"dominion_dao/sdk"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every token that does not verify.
var ErrInvalidToken = errors.New("invalid transaction token")

// txClaims is the wire form of a signed transaction.
type txClaims struct {
	jwt.RegisteredClaims
	Action    string `json:"act"`
	Payload   string `json:"pl,omitempty"`
	Value     string `json:"val,omitempty"`
	Asset     string `json:"ast,omitempty"`
	PublicKey string `json:"pub"`
}

// Signer produces transaction tokens for one ed25519 key.
type Signer struct {
	key  ed25519.PrivateKey
	addr sdk.Address
	Now  func() time.Time
}

// NewSigner wraps an existing key.
func NewSigner(key ed25519.PrivateKey) *Signer {
	pub := key.Public().(ed25519.PublicKey)
	return &Signer{key: key, addr: sdk.AddressFromPublicKey(pub), Now: time.Now}
}

// GenerateSigner creates a signer with a fresh random key.
func GenerateSigner() (*Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return NewSigner(priv), nil
}

// Address is the ledger address transactions from this signer act as.
func (s *Signer) Address() sdk.Address {
	return s.addr
}

// Sign builds and signs a transaction with a new random id. value is a decimal
// amount like "5.000"; an empty value attaches nothing.
func (s *Signer) Sign(action, payload, value string, asset sdk.Asset) (string, error) {
	claims := txClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  s.addr.String(),
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(s.Now()),
		},
		Action:    action,
		Payload:   payload,
		Value:     value,
		Asset:     asset.String(),
		PublicKey: hex.EncodeToString(s.key.Public().(ed25519.PublicKey)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign transaction: %w", err)
	}
	return token, nil
}

// Verifier turns tokens back into transactions.
type Verifier struct {
	// Asset is assumed for value claims that do not name one.
	Asset sdk.Asset
}

// Verify checks the signature and the subject binding and returns the transaction.
// The timestamp is left zero so the ledger stamps it on arrival.
func (v Verifier) Verify(token string) (contract.Tx, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return contract.Tx{}, fmt.Errorf("%w: token is required", ErrInvalidToken)
	}
	var parsed txClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(t *jwt.Token) (any, error) {
		pub, ok := sdk.Address(parsed.Subject).PublicKey()
		if !ok {
			return nil, errors.New("sub is not an ed25519 key address")
		}
		if !strings.EqualFold(hex.EncodeToString(pub), parsed.PublicKey) {
			return nil, errors.New("sub does not match pub")
		}
		return pub, nil
	},
		jwt.WithValidMethods([]string{"EdDSA"}),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return contract.Tx{}, mapJWTError(err)
	}
	if parsed.ID == "" {
		return contract.Tx{}, fmt.Errorf("%w: jti is required", ErrInvalidToken)
	}
	if strings.TrimSpace(parsed.Action) == "" {
		return contract.Tx{}, fmt.Errorf("%w: act is required", ErrInvalidToken)
	}
	tx := contract.Tx{
		ID:      parsed.ID,
		Sender:  sdk.Address(parsed.Subject),
		Action:  parsed.Action,
		Payload: parsed.Payload,
	}
	if val := strings.TrimSpace(parsed.Value); val != "" {
		asset := sdk.Asset(parsed.Asset)
		if asset == "" {
			asset = v.Asset
		}
		tx.Intents = []sdk.Intent{sdk.TransferIntent(val, asset)}
	}
	return tx, nil
}

// mapJWTError keeps the jwt library's reason in the message.
func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrEd25519Verification) {
		return fmt.Errorf("%w: signature is invalid", ErrInvalidToken)
	}
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
