package model

import (
	"fmt"
	"sort"
)

// KnownCoins maps upstream coin identifiers to display names. Coins can be
// enabled via configuration; only identifiers listed here are accepted.
var KnownCoins = map[string]string{
	"bitcoin":      "Bitcoin",
	"ethereum":     "Ethereum",
	"litecoin":     "Litecoin",
	"dogecoin":     "Dogecoin",
	"cardano":      "Cardano",
	"solana":       "Solana",
	"ripple":       "XRP",
	"polkadot":     "Polkadot",
	"tron":         "TRON",
	"bitcoin-cash": "Bitcoin Cash",
}

// SupportedCoins is populated at startup from configuration.
var SupportedCoins map[string]string

// InitializeSupportedCoins restricts the service to the configured coin set.
func InitializeSupportedCoins(configured []string) error {
	SupportedCoins = make(map[string]string, len(configured))
	for _, id := range configured {
		name, ok := KnownCoins[id]
		if !ok {
			return fmt.Errorf("unknown coin id: %s", id)
		}
		SupportedCoins[id] = name
	}
	return nil
}

// IsSupportedCoin reports whether the coin id was enabled at startup.
func IsSupportedCoin(id string) bool {
	_, ok := SupportedCoins[id]
	return ok
}

// SupportedCoinIDs returns the enabled coin ids in sorted order.
func SupportedCoinIDs() []string {
	ids := make([]string, 0, len(SupportedCoins))
	for id := range SupportedCoins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
