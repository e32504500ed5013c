package sdk

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
)

type AddressDomain string

const (
	AddressDomainUser     AddressDomain = "user"
	AddressDomainContract AddressDomain = "contract"
	AddressDomainSystem   AddressDomain = "system"
)

type AddressType string

const (
	AddressTypeEVM     AddressType = "evm"
	AddressTypeKey     AddressType = "key"
	AddressTypeHive    AddressType = "hive"
	AddressTypeSystem  AddressType = "system"
	AddressTypeUnknown AddressType = "unknown"
)

// keyAddressPrefix marks addresses derived from an ed25519 public key.
const keyAddressPrefix = "did:key:ed25519:"

// DAOAddress is the pseudo account holding the treasury; it never signs.
const DAOAddress Address = "system:dao"

type Address string

// String returns the literal representation (like hive:alice) of the address.
// Example payload: sdk.Address("hive:foo").String()
func (a Address) String() string {
	return string(a)
}

// Domain quickly checks the prefix to guess if we deal with user/contract/system domain.
// Example payload: sdk.Address("contract:okinoko").Domain()
func (a Address) Domain() AddressDomain {
	if strings.HasPrefix(a.String(), "system:") {
		return AddressDomainSystem
	}
	if strings.HasPrefix(a.String(), "contract:") {
		return AddressDomainContract
	}
	return AddressDomainUser
}

// Type inspects the DID prefix to categorize the address (evm, key, hive,...).
// Example payload: sdk.Address("did:pkh:eip155").Type()
func (a Address) Type() AddressType {
	s := a.String()
	switch {
	case strings.HasPrefix(s, "did:pkh:eip155"):
		return AddressTypeEVM
	case strings.HasPrefix(s, "did:key:"):
		return AddressTypeKey
	case strings.HasPrefix(s, "hive:") && len(s) > len("hive:"):
		return AddressTypeHive
	case strings.HasPrefix(s, "system:"):
		return AddressTypeSystem
	default:
		return AddressTypeUnknown
	}
}

// IsValid returns false if the address type detection failed, used as a light sanity check.
// Example payload: sdk.Address("foo").IsValid()
func (a Address) IsValid() bool {
	return a.Type() != AddressTypeUnknown
}

// IsUser is true for addresses a wallet can sign for; system accounts are excluded.
func (a Address) IsUser() bool {
	return a.IsValid() && a.Domain() == AddressDomainUser
}

// AddressFromPublicKey derives the signer address of an ed25519 key.
// Example payload: sdk.AddressFromPublicKey(pub)
func AddressFromPublicKey(pub ed25519.PublicKey) Address {
	return Address(keyAddressPrefix + hex.EncodeToString(pub))
}

// PublicKey returns the ed25519 key embedded in a did:key address, if any.
func (a Address) PublicKey() (ed25519.PublicKey, bool) {
	s := a.String()
	if !strings.HasPrefix(s, keyAddressPrefix) {
		return nil, false
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(s, keyAddressPrefix))
	if err != nil || len(raw) != ed25519.PublicKeySize {
		return nil, false
	}
	return ed25519.PublicKey(raw), true
}
