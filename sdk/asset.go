package sdk

type Asset string

const (
	AssetHive Asset = "hive"
	AssetHbd  Asset = "hbd"
	// AssetEth is the default native asset of the marketplace.
	AssetEth Asset = "eth"
)

// String returns the raw ticker string for logging or host calls.
// Example payload: sdk.AssetHive.String()
func (a Asset) String() string {
	return string(a)
}

// IsKnown reports whether the ticker is one the ledger accepts as payment.
func (a Asset) IsKnown() bool {
	switch a {
	case AssetHive, AssetHbd, AssetEth:
		return true
	}
	return false
}
