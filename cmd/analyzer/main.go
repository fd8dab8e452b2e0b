package main

import (
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"callscan/db"
	"callscan/internal/model"
	"callscan/internal/repository"
	"callscan/pkg/analysis"
	"callscan/pkg/classify"
	"callscan/pkg/price"
)

const defaultCachePath = "data/price_cache.json"

// newBackend picks the classification backend from configuration.
// Missing credentials are fatal: the pipeline must not start without
// a working classifier.
func newBackend() classify.Backend {
	if os.Getenv("CLASSIFIER_BACKEND") == "anthropic" {
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			log.Fatalf("ANTHROPIC_API_KEY not set")
		}
		return classify.NewAnthropicClient(key)
	}

	key := os.Getenv("XAI_API_KEY")
	if key == "" {
		log.Fatalf("XAI_API_KEY not set")
	}
	return classify.NewGrokClient(key)
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const maxRetries = 3

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	cachePath := os.Getenv("PRICE_CACHE_PATH")
	if cachePath == "" {
		cachePath = defaultCachePath
	}

	cache, err := price.LoadFileCache(cachePath)
	if err != nil {
		log.Fatalf("error loading price cache: %v", err)
	}
	slog.Info("price cache loaded", "path", cachePath, "entries", cache.Len())

	backend := newBackend()
	slog.Info("classifier backend ready", "model", backend.Name())

	resolver := price.NewClient(os.Getenv("COINGECKO_API_KEY"), cache)
	analyzer := analysis.NewAnalyzer(classify.NewClassifier(backend), resolver)

	postRepo := repository.NewPostRepository(db.DB)
	callRepo := repository.NewCallRepository(db.DB)

	for {
		handle, err := db.PopFromQueue(db.AnalyzeQueueKey, 0)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		errorCount, err := postRepo.GetErrorCount(handle)
		if err != nil {
			slog.Error("error getting error count", "error", err, "handle", handle)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("handle exceeded max retries, dead-lettering", "handle", handle, "error_count", errorCount)
			db.PushToQueue(db.DeadLetterKey, handle)
			postRepo.UpdateStatusByHandle(handle, model.StatusFailed)
			continue
		}

		posts, err := postRepo.GetPostsByHandle(handle)
		if err != nil {
			slog.Error("error getting posts from DB", "error", err, "handle", handle)
			continue
		}

		if len(posts) == 0 {
			slog.Warn("no posts found for handle", "handle", handle)
			continue
		}

		postRepo.UpdateStatusByHandle(handle, model.StatusProcessing)

		result := analyzer.Run(posts, handle)

		err = callRepo.SaveRun(&result.Stats, result.Calls)
		if err != nil {
			slog.Error("error saving analysis run", "error", err, "handle", handle)

			postRepo.SaveError(handle, err.Error(), "save_error")

			db.PushToQueue(db.AnalyzeQueueKey, handle)

			time.Sleep(5 * time.Second)
			continue
		}

		postRepo.UpdateStatusByHandle(handle, model.StatusCompleted)

		slog.Info("handle analyzed successfully",
			"handle", handle,
			"posts", result.Stats.TotalPosts,
			"calls", result.Stats.TotalCalls,
			"success_rate", result.Stats.SuccessRate)
	}
}
