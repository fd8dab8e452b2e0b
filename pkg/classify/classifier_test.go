package classify

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

type fakeBackend struct {
	replies []string
	err     error
	calls   int
	prompts []string
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Complete(system, user string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, user)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "[]", nil
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func newTestClassifier(backend Backend) *Classifier {
	c := NewClassifier(backend)
	c.sleep = func(time.Duration) {}
	return c
}

func post(id, text string) PostInput {
	return PostInput{ID: id, Text: text, Handle: "trader", PublishedAt: time.Now()}
}

func TestClassifyBatch(t *testing.T) {
	backend := &fakeBackend{replies: []string{
		`[{"post_id": "1", "isCall": true, "callType": "spot_buy", "confidence": 92, "tickers": ["SOL"], "sentiment": "bullish", "reasoning": "explicit accumulation"}]`,
	}}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "Loading up more $SOL here.")})

	assert.Equal(t, 1, backend.calls)
	v := results["1"]
	assert.Equal(t, true, v.IsCall)
	assert.Equal(t, CallTypeSpotBuy, v.CallType)
	assert.Equal(t, 92, v.Confidence)
	assert.Equal(t, []string{"SOL"}, v.Tickers)
	assert.Equal(t, SentimentBullish, v.Sentiment)
}

// A backend that claims isCall for a non-tradeable call type must be
// overruled.
func TestClassifyBatchForcesCallTypeInvariant(t *testing.T) {
	backend := &fakeBackend{replies: []string{
		`[{"post_id": "1", "isCall": true, "callType": "other", "confidence": 80, "tickers": ["SOL"], "sentiment": "bullish"},
		  {"post_id": "2", "isCall": true, "callType": "ico_presale", "confidence": 70, "tickers": ["FLR"], "sentiment": "bullish"},
		  {"post_id": "3", "isCall": true, "callType": "long", "confidence": 85, "tickers": ["ETH"], "sentiment": "bullish"}]`,
	}}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "a"), post("2", "b"), post("3", "c")})

	assert.Equal(t, false, results["1"].IsCall)
	assert.Equal(t, false, results["2"].IsCall)
	assert.Equal(t, true, results["3"].IsCall)
}

func TestClassifyBatchFillsMissingPosts(t *testing.T) {
	backend := &fakeBackend{replies: []string{
		`[{"post_id": "1", "isCall": true, "callType": "long", "confidence": 85, "tickers": ["ETH"], "sentiment": "bullish"}]`,
	}}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "a"), post("2", "b")})

	assert.Equal(t, 2, len(results))
	missing := results["2"]
	assert.Equal(t, false, missing.IsCall)
	assert.Equal(t, CallTypeOther, missing.CallType)
	assert.Equal(t, 0, missing.Confidence)
	assert.Equal(t, 0, len(missing.Tickers))
	assert.Equal(t, SentimentNeutral, missing.Sentiment)
}

func TestClassifyBatchBackendError(t *testing.T) {
	backend := &fakeBackend{err: errors.New("connection refused")}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "a"), post("2", "b")})

	assert.Equal(t, 2, len(results))
	for _, v := range results {
		assert.Equal(t, false, v.IsCall)
		assert.Equal(t, CallTypeOther, v.CallType)
	}
}

func TestClassifyBatchGarbageReply(t *testing.T) {
	backend := &fakeBackend{replies: []string{"I refuse to answer in JSON today."}}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "a")})

	assert.Equal(t, false, results["1"].IsCall)
	assert.Equal(t, CallTypeOther, results["1"].CallType)
}

func TestClassifyBatchSingleQuotedReply(t *testing.T) {
	backend := &fakeBackend{replies: []string{
		`[{"post_id": "1", "isCall": true, "callType": 'spot_buy', "confidence": 88, "tickers": ['PEPE'], "sentiment": 'bullish'}]`,
	}}
	c := newTestClassifier(backend)

	results := c.ClassifyBatch([]PostInput{post("1", "Aping into $PEPE.")})

	assert.Equal(t, true, results["1"].IsCall)
	assert.Equal(t, []string{"PEPE"}, results["1"].Tickers)
}

func TestClassifyAllBatchesAndProgress(t *testing.T) {
	backend := &fakeBackend{replies: []string{"[]"}}
	c := newTestClassifier(backend)

	var sleeps int
	c.sleep = func(time.Duration) { sleeps++ }

	posts := make([]PostInput, 45)
	for i := range posts {
		posts[i] = post(string(rune('a'+i)), "text")
	}

	var progress [][2]int
	results := c.ClassifyAll(posts, 20, func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})

	assert.Equal(t, 45, len(results))
	assert.Equal(t, 3, backend.calls)
	// only between batches, not after the last one
	assert.Equal(t, 2, sleeps)
	assert.Equal(t, [][2]int{{20, 45}, {40, 45}, {45, 45}}, progress)
}

func TestClassifyAllDefaultBatchSize(t *testing.T) {
	backend := &fakeBackend{replies: []string{"[]"}}
	c := newTestClassifier(backend)

	posts := make([]PostInput, 25)
	for i := range posts {
		posts[i] = post(string(rune('a'+i)), "text")
	}

	c.ClassifyAll(posts, 0, nil)
	assert.Equal(t, 2, backend.calls)
}

func TestClassifyAllEmptyInput(t *testing.T) {
	backend := &fakeBackend{}
	c := newTestClassifier(backend)

	results := c.ClassifyAll(nil, 20, nil)
	assert.Equal(t, 0, len(results))
	assert.Equal(t, 0, backend.calls)
}
