package ticker

// allowed is the roster of liquid assets the pipeline will price and
// report on: top market-cap coins, top ecosystem tokens and a short
// list of high-attention memecoins. Full names alias their short form.
var allowed = map[string]struct{}{}

func init() {
	for _, t := range []string{
		// Top 10
		"BTC", "BITCOIN",
		"ETH", "ETHEREUM",
		"XRP", "RIPPLE",
		"USDT", "TETHER",
		"SOL", "SOLANA",
		"BNB",
		"DOGE", "DOGECOIN",
		"USDC",
		"ADA", "CARDANO",
		"TRX", "TRON",

		// 11-25
		"AVAX", "AVALANCHE",
		"LINK", "CHAINLINK",
		"XLM", "STELLAR",
		"TON", "TONCOIN",
		"SHIB",
		"SUI",
		"HBAR",
		"DOT", "POLKADOT",
		"BCH",
		"LTC", "LITECOIN",
		"HYPE", "HYPERLIQUID",
		"UNI", "UNISWAP",
		"PEPE",
		"NEAR",
		"LEO",

		// 26-50
		"APT", "APTOS",
		"AAVE",
		"XMR", "MONERO",
		"ICP",
		"ETC",
		"POL", "MATIC", "POLYGON",
		"RENDER",
		"TAO",
		"VET", "VECHAIN",
		"MNT", "MANTLE",
		"CRO", "CRONOS",
		"FIL", "FILECOIN",
		"ARB", "ARBITRUM",
		"KAS", "KASPA",
		"ATOM", "COSMOS",
		"OP", "OPTIMISM",
		"FTM", "FANTOM",
		"WIF",
		"INJ", "INJECTIVE",
		"IMX", "IMMUTABLE",
		"BONK",
		"GRT", "THEGRAPH",
		"THETA",
		"SEI",

		// 51-75
		"ALGO", "ALGORAND",
		"JUP", "JUPITER",
		"RUNE", "THORCHAIN",
		"PYTH",
		"FLOKI",
		"LDO",
		"TIA", "CELESTIA",
		"RAY", "RAYDIUM",
		"FET", "FETCHAI",
		"ONDO",
		"GALA",
		"JASMY",
		"FLOW",
		"SAND", "SANDBOX",
		"BEAM",
		"MOVE",
		"PENDLE",
		"XTZ", "TEZOS",
		"AXS", "AXIE",
		"EOS",
		"CORE",
		"MANA", "DECENTRALAND",
		"ENS",
		"QNT", "QUANT",

		// 76-100
		"STRK", "STARKNET",
		"KAIA",
		"ZEC", "ZCASH",
		"XEC",
		"NEO",
		"DYDX",
		"IOTA",
		"CFX", "CONFLUX",
		"BTT",
		"AIOZ",
		"VIRTUAL",
		"AERO",
		"W", "WORMHOLE",
		"MET", "METEORA",
		"JTO", "JITO",
		"HNT", "HELIUM",
		"BLUR",
		"CAKE", "PANCAKESWAP",
		"CKB",
		"SUPER",
		"FARTCOIN",
		"POPCAT",
		"GOAT",
		"PNUT",
		"ACT",
		"MOODENG",
		"AI16Z",
		"ZEREBRO",
		"GRIFFAIN",
	} {
		allowed[t] = struct{}{}
	}
}
