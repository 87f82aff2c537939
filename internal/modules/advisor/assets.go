package advisor

import (
	"sort"
	"strings"
)

// assetAliases maps every recognized alias (full name or ticker) to the
// canonical asset id used by the data provider and the sustainability scorer.
var assetAliases = map[string]string{
	"bitcoin":   "bitcoin",
	"btc":       "bitcoin",
	"ethereum":  "ethereum",
	"eth":       "ethereum",
	"cardano":   "cardano",
	"ada":       "cardano",
	"polkadot":  "polkadot",
	"dot":       "polkadot",
	"solana":    "solana",
	"sol":       "solana",
	"chainlink": "chainlink",
	"link":      "chainlink",
	"litecoin":  "litecoin",
	"ltc":       "litecoin",
	"dogecoin":  "dogecoin",
	"doge":      "dogecoin",
	"polygon":   "matic-network",
	"matic":     "matic-network",
	"avalanche": "avalanche-2",
	"avax":      "avalanche-2",
}

// extractAssetNames scans the query for known aliases by case-insensitive
// substring containment and returns the distinct matches. Set semantics:
// aliases resolving to the same asset collapse to one entry (the full name
// wins over the ticker, since "eth" is contained in "ethereum"), and the
// result is sorted so callers behave deterministically.
func extractAssetNames(query string) []string {
	lower := strings.ToLower(query)

	matched := make(map[string]string) // canonical id -> best alias
	for alias, id := range assetAliases {
		if !strings.Contains(lower, alias) {
			continue
		}
		if best, ok := matched[id]; !ok || len(alias) > len(best) {
			matched[id] = alias
		}
	}

	names := make([]string, 0, len(matched))
	for _, alias := range matched {
		names = append(names, alias)
	}
	sort.Strings(names)
	return names
}

// canonicalID resolves an alias to its canonical asset id.
// Returns "" if the alias is unknown.
func canonicalID(name string) string {
	return assetAliases[strings.ToLower(name)]
}
