package txsig

import (
	"strings"
	"testing"
	"time"

	"dominion_dao/sdk"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	s, err := GenerateSigner()
	require.NoError(t, err)
	assert.True(t, s.Address().IsUser())
	assert.Equal(t, sdk.AddressTypeKey, s.Address().Type())

	token, err := s.Sign("nft_buy", "3", "12.500", "")
	require.NoError(t, err)

	tx, err := Verifier{Asset: sdk.AssetEth}.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), tx.Sender)
	assert.Equal(t, "nft_buy", tx.Action)
	assert.Equal(t, "3", tx.Payload)
	assert.NotEmpty(t, tx.ID)
	assert.Zero(t, tx.Timestamp)
	require.Len(t, tx.Intents, 1)
	assert.Equal(t, "12.500", tx.Intents[0].Args["limit"])
	assert.Equal(t, "eth", tx.Intents[0].Args["token"])

	pub, ok := tx.Sender.PublicKey()
	require.True(t, ok)
	assert.Len(t, pub, 32)
}

func TestEachSignatureGetsNewID(t *testing.T) {
	s, err := GenerateSigner()
	require.NoError(t, err)
	a, err := s.Sign("contribute", "", "1", sdk.AssetEth)
	require.NoError(t, err)
	b, err := s.Sign("contribute", "", "1", sdk.AssetEth)
	require.NoError(t, err)
	ta, err := Verifier{}.Verify(a)
	require.NoError(t, err)
	tb, err := Verifier{}.Verify(b)
	require.NoError(t, err)
	assert.NotEqual(t, ta.ID, tb.ID)
	assert.Equal(t, "eth", ta.Intents[0].Args["token"])
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	s, err := GenerateSigner()
	require.NoError(t, err)
	token, err := s.Sign("contribute", "", "1", sdk.AssetEth)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	_, err = Verifier{}.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestVerifyRejectsForeignSubject signs for somebody else's address with a valid key.
func TestVerifyRejectsForeignSubject(t *testing.T) {
	s, err := GenerateSigner()
	require.NoError(t, err)
	other, err := GenerateSigner()
	require.NoError(t, err)

	claims := txClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: other.Address().String(), ID: "x", IssuedAt: jwt.NewNumericDate(time.Now())},
		Action:           "contribute",
		PublicKey:        strings.TrimPrefix(s.Address().String(), "did:key:ed25519:"),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.key)
	require.NoError(t, err)
	_, err = Verifier{}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims.Subject = "hive:alice"
	token, err = jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.key)
	require.NoError(t, err)
	_, err = Verifier{}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "hive:alice", "act": "contribute", "jti": "1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = Verifier{}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = Verifier{}.Verify("  ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsFutureIssuedAt(t *testing.T) {
	s, err := GenerateSigner()
	require.NoError(t, err)
	s.Now = func() time.Time { return time.Now().Add(time.Hour) }
	token, err := s.Sign("contribute", "", "", "")
	require.NoError(t, err)
	_, err = Verifier{}.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
