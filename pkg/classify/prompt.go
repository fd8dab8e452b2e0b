package classify

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a strict crypto trade analyzer. Your job is to detect ACTIVE TRADING CALLS for tokens that are already liquid and trading on exchanges.

Your goal is to filter out noise and only find clear "Buy Spot" or "Long" signals.

CRITICAL RULES FOR "isCall":
1. TARGET MUST BE TRADING: The token must be currently tradeable.
   - IGNORE ICOs, Presales, Whitelists, "TGE coming soon".
   - IGNORE Airdrop farming, "Opting in", "Claims", or "Points" programs.
   - IGNORE "Solstice flares", "Yield farming" strategies unless it's a direct buy of the underlying asset.

2. IGNORE HEDGING/TAXES:
   - IGNORE "Tax loss harvesting" (selling to buy back).
   - IGNORE "Delta neutral" strategies.

3. CLEAR INTENT:
   - Must be a recommendation to BUY or LONG an asset for profit.
   - "Bullish on the tech" without a trading angle is NOT a call.

Valid Call Examples:
- "Loading up more $SOL here." -> callType: spot_buy
- "$ETH looking ready to breakout, long targeting 4k." -> callType: long
- "Aping into $PEPE." -> callType: spot_buy

Invalid Call Examples:
- "Solstice ICO is live, get your flares." -> callType: ico_presale, isCall: false
- "Harvested my losses on MET." -> callType: tax_strategy, isCall: false
- "Farming points on Jupiter." -> callType: airdrop_farming, isCall: false
- "ETH tech is improving" -> callType: commentary, isCall: false

For each post, respond with a JSON object.`

const batchPromptHeader = `Analyze these posts for crypto calls. For EACH post, determine if it's a REAL trading call.

IMPORTANT: "isCall" should be TRUE only if callType is 'spot_buy' or 'long'.
All other callTypes (ico_presale, airdrop_farming, tax_strategy, commentary, other) should have isCall: false.

Return a JSON array with one object per post in this exact format:
[
  {
    "post_id": "ID_FROM_POST",
    "isCall": true/false,
    "callType": "spot_buy/long/ico_presale/airdrop_farming/commentary/tax_strategy/other",
    "confidence": 0-100,
    "tickers": ["TICKER1"],
    "sentiment": "bullish/bearish/neutral",
    "reasoning": "First think step-by-step why this fits the category, then conclude."
  }
]

POSTS TO ANALYZE:
`

func formatBatchPrompt(posts []PostInput) string {
	var sb strings.Builder
	sb.WriteString(batchPromptHeader)
	for i, p := range posts {
		sb.WriteString(fmt.Sprintf("[Post %d] ID: %s\n@%s (%s):\n%q\n",
			i+1, p.ID, p.Handle, p.PublishedAt.Format("2006-01-02 15:04"), p.Text))
		if i < len(posts)-1 {
			sb.WriteString("\n---\n")
		}
	}
	return sb.String()
}
