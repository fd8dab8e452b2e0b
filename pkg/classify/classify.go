package classify

import "time"

const (
	CallTypeSpotBuy    = "spot_buy"
	CallTypeLong       = "long"
	CallTypePresale    = "ico_presale"
	CallTypeAirdrop    = "airdrop_farming"
	CallTypeCommentary = "commentary"
	CallTypeTax        = "tax_strategy"
	CallTypeOther      = "other"
)

const (
	SentimentBullish = "bullish"
	SentimentBearish = "bearish"
	SentimentNeutral = "neutral"
)

type PostInput struct {
	ID          string
	Text        string
	Handle      string
	PublishedAt time.Time
}

// Verdict is the structured classification of one post. IsCall is true
// only for spot_buy and long call types; that invariant is enforced on
// ingestion regardless of what the backend claims.
type Verdict struct {
	IsCall     bool
	CallType   string
	Confidence int
	Tickers    []string
	Sentiment  string
	Rationale  string
}

// Backend is a text-generation service: one prompt in, one free-text
// completion out. The completion is not guaranteed to be pure JSON.
type Backend interface {
	Complete(system, user string) (string, error)
	Name() string
}
