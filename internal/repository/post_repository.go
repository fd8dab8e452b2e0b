package repository

import (
	"database/sql"

	"callscan/internal/model"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// SavePost inserts a post, skipping duplicates. The second return is
// false when the post was already present.
func (r *PostRepository) SavePost(post *model.Post) (bool, error) {
	var id string
	err := r.db.QueryRow(`
		INSERT INTO post(id, text, handle, published_at, status)
		VALUES($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING id
	`, post.ID, post.Text, post.Handle, post.PublishedAt, model.StatusPending).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

func (r *PostRepository) GetPostsByHandle(handle string) ([]model.Post, error) {
	rows, err := r.db.Query(`
		SELECT id, text, handle, published_at, fetched_at, status
		FROM post
		WHERE handle = $1
		ORDER BY published_at ASC
	`, handle)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		err := rows.Scan(&p.ID, &p.Text, &p.Handle, &p.PublishedAt, &p.FetchedAt, &p.Status)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (r *PostRepository) UpdateStatusByHandle(handle string, status string) error {
	_, err := r.db.Exec(`
		UPDATE post SET status = $1 WHERE handle = $2
	`, status, handle)
	return err
}

func (r *PostRepository) SaveError(handle string, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO processing_error(handle, error_message, error_type)
		VALUES($1, $2, $3)
	`, handle, errMsg, errType)

	return err
}

func (r *PostRepository) GetErrorCount(handle string) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM processing_error
		WHERE handle = $1
	`, handle).Scan(&count)

	return count, err
}
