package pages

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// ErrPostNotFound is returned when no post has the requested slug.
var ErrPostNotFound = errors.New("post not found")

// Post is a blog post.
type Post struct {
	PublishedAt time.Time `json:"publishedAt"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
}

// Store is an in-memory post repository.
type Store struct {
	mu    sync.RWMutex
	posts map[string]Post
}

// NewStore returns a store seeded with sample posts.
func NewStore() *Store {
	s := &Store{posts: make(map[string]Post)}
	s.Put(Post{Slug: "hello-world", Title: "Hello, world", Body: "The first server-rendered post.", PublishedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)})
	s.Put(Post{Slug: "global-data", Title: "Global data", Body: "Layout data is loaded once per document.", PublishedAt: time.Date(2026, 2, 3, 9, 0, 0, 0, time.UTC)})
	return s
}

// Put inserts or replaces a post.
func (s *Store) Put(p Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.Slug] = p
}

// Post returns the post with the given slug.
func (s *Store) Post(ctx context.Context, slug string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[slug]
	if !ok {
		return Post{}, ErrPostNotFound
	}
	return p, nil
}

// Latest returns up to n posts, newest first.
func (s *Store) Latest(ctx context.Context, n int) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b Post) int { return b.PublishedAt.Compare(a.PublishedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}
