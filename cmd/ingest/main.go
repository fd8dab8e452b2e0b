package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"callscan/db"
	"callscan/internal/model"
	"callscan/internal/repository"
)

// postsArtifact is the shape the scraping collaborator produces: one
// file per account with its raw posts.
type postsArtifact struct {
	Username string `json:"username"`
	Posts    []struct {
		ID        string `json:"id"`
		Text      string `json:"text"`
		CreatedAt string `json:"created_at"`
		Username  string `json:"username"`
	} `json:"posts"`
}

func parsePostDate(raw string) (time.Time, error) {
	// scraper emits "Wed Oct 22 12:19:30 +0000 2025"
	if t, err := time.Parse(time.RubyDate, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if len(os.Args) < 2 {
		log.Fatalf("usage: ingest <posts-file.json>")
	}

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("error reading posts file: %v", err)
	}

	var artifact postsArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		log.Fatalf("error parsing posts file: %v", err)
	}

	repo := repository.NewPostRepository(db.DB)

	var saved, duplicated, errors int

	for _, p := range artifact.Posts {
		handle := p.Username
		if handle == "" {
			handle = artifact.Username
		}

		publishedAt, err := parsePostDate(p.CreatedAt)
		if err != nil {
			slog.Error("error parsing post date", "post_id", p.ID, "created_at", p.CreatedAt, "error", err)
			errors++
			continue
		}

		post := model.Post{
			ID:          p.ID,
			Text:        p.Text,
			Handle:      handle,
			PublishedAt: publishedAt,
		}

		success, err := repo.SavePost(&post)
		if err != nil {
			slog.Error("error saving post", "post_id", p.ID, "error", err)
			errors++
			continue
		}

		if !success {
			slog.Info("duplicate post skipped", "post_id", p.ID)
			duplicated++
			continue
		}

		saved++
	}

	err = db.PushToQueue(db.AnalyzeQueueKey, artifact.Username)
	if err != nil {
		log.Fatalf("error pushing to analyze queue: %v", err)
	}

	slog.Info("ingest complete", "handle", artifact.Username, "saved", saved, "duplicated", duplicated, "errors", errors)
}
