package price

import "callscan/pkg/ticker"

// coinIDs maps canonical tickers to CoinGecko asset ids. A ticker
// missing here has no known price source, which is a normal outcome
// for allow-listed assets CoinGecko does not cover.
var coinIDs = map[string]string{
	// Major tokens
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"BNB":   "binancecoin",
	"XRP":   "ripple",
	"ADA":   "cardano",
	"DOGE":  "dogecoin",
	"AVAX":  "avalanche-2",
	"MATIC": "polygon",
	"DOT":   "polkadot",
	"LINK":  "chainlink",
	"UNI":   "uniswap",
	"ATOM":  "cosmos",
	"LTC":   "litecoin",

	// Solana ecosystem
	"JUP":    "jupiter-exchange-solana",
	"RAY":    "raydium",
	"ORCA":   "orca",
	"BONK":   "bonk",
	"WIF":    "dogwifcoin",
	"PYTH":   "pyth-network",
	"JTO":    "jito-governance-token",
	"RENDER": "render-token",
	"HNT":    "helium",
	"MOBILE": "helium-mobile",
	"W":      "wormhole",
	"MET":    "meteora",

	// Memecoins
	"PEPE":     "pepe",
	"SHIB":     "shiba-inu",
	"FLOKI":    "floki",
	"POPCAT":   "popcat",
	"MOODENG":  "moo-deng",
	"GOAT":     "goatseus-maximus",
	"PNUT":     "peanut-the-squirrel",
	"ACT":      "act-i-the-ai-prophecy",
	"FARTCOIN": "fartcoin",
	"FART":     "fartcoin",
	"TRUMP":    "official-trump",
	"MELANIA":  "official-melania-meme",
	"AI16Z":    "ai16z",
	"ZEREBRO":  "zerebro",
	"VIRTUAL":  "virtual-protocol",
	"AIXBT":    "aixbt",

	// DeFi
	"AAVE":  "aave",
	"MKR":   "maker",
	"CRV":   "curve-dao-token",
	"SNX":   "synthetix-network-token",
	"COMP":  "compound-governance-token",
	"SUSHI": "sushi",
	"YFI":   "yearn-finance",
	"1INCH": "1inch",
	"GMX":   "gmx",
	"DYDX":  "dydx",
	"LDO":   "lido-dao",

	// L2s
	"ARB":  "arbitrum",
	"OP":   "optimism",
	"STRK": "starknet",
	"ZK":   "zksync",

	// AI tokens
	"FET":  "artificial-superintelligence-alliance",
	"TAO":  "bittensor",
	"RNDR": "render-token",

	// Others
	"SUI":  "sui",
	"SEI":  "sei-network",
	"TIA":  "celestia",
	"INJ":  "injective-protocol",
	"HYPE": "hyperliquid",
}

// CoinID resolves a raw or canonical ticker to its CoinGecko id. The
// second return is false when no price source is known.
func CoinID(raw string) (string, bool) {
	id, ok := coinIDs[ticker.Normalize(raw)]
	return id, ok
}
