package classify

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

type batchItem struct {
	PostID     string   `json:"post_id"`
	IsCall     bool     `json:"isCall"`
	CallType   string   `json:"callType"`
	Confidence int      `json:"confidence"`
	Tickers    []string `json:"tickers"`
	Sentiment  string   `json:"sentiment"`
	Reasoning  string   `json:"reasoning"`
}

// singleQuoted matches a single-quoted string token directly followed
// by a JSON delimiter. Some backends intermittently emit these instead
// of double-quoted strings.
var singleQuoted = regexp.MustCompile(`'([^']*)'(\s*[:,\]}])`)

// extractJSONArray pulls the first array-shaped JSON fragment out of a
// free-text completion. Backends wrap the payload in prose and code
// fences often enough that parsing the raw reply directly is useless.
func extractJSONArray(content string) (string, bool) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}

// repairQuotes rewrites single-quoted string values to double-quoted
// so the fragment survives json.Unmarshal.
func repairQuotes(jsonStr string) string {
	return singleQuoted.ReplaceAllString(jsonStr, `"$1"$2`)
}

func parseBatchReply(content string) ([]batchItem, error) {
	fragment, ok := extractJSONArray(content)
	if !ok {
		return nil, fmt.Errorf("no JSON array in completion")
	}

	var items []batchItem
	if err := json.Unmarshal([]byte(repairQuotes(fragment)), &items); err != nil {
		return nil, fmt.Errorf("parse batch reply: %w", err)
	}
	return items, nil
}
