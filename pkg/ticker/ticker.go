package ticker

import "strings"

// aliases rewrites full asset names to their short ticker.
var aliases = map[string]string{
	"BITCOIN":     "BTC",
	"ETHEREUM":    "ETH",
	"SOLANA":      "SOL",
	"RIPPLE":      "XRP",
	"CARDANO":     "ADA",
	"DOGECOIN":    "DOGE",
	"AVALANCHE":   "AVAX",
	"CHAINLINK":   "LINK",
	"POLKADOT":    "DOT",
	"LITECOIN":    "LTC",
	"MONERO":      "XMR",
	"POLYGON":     "MATIC",
	"ARBITRUM":    "ARB",
	"OPTIMISM":    "OP",
	"UNISWAP":     "UNI",
	"COSMOS":      "ATOM",
	"JUPITER":     "JUP",
	"METEORA":     "MET",
	"HYPERLIQUID": "HYPE",
	"STARKNET":    "STRK",
	"ZCASH":       "ZEC",
	"TONCOIN":     "TON",
}

// Clean strips a leading $ sigil and upper-cases the symbol.
func Clean(raw string) string {
	return strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
}

// Normalize maps a raw symbol to its canonical ticker. Known full-name
// aliases collapse to the short form; unknown input passes through
// cleaned but otherwise unchanged.
func Normalize(raw string) string {
	clean := Clean(raw)
	if short, ok := aliases[clean]; ok {
		return short
	}
	return clean
}

// IsAllowed reports whether the symbol is on the liquid-asset roster,
// sigil- and case-insensitively.
func IsAllowed(raw string) bool {
	_, ok := allowed[Clean(raw)]
	return ok
}

// FilterAllowed keeps only roster symbols, preserving order.
func FilterAllowed(tickers []string) []string {
	var kept []string
	for _, t := range tickers {
		if IsAllowed(t) {
			kept = append(kept, t)
		}
	}
	return kept
}
