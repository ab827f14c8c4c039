package collector

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/qepting91/reddit-annotator/internal/domain"
)

// MockClient implements domain.Collector but returns fake data
type MockClient struct {
	Clock clockwork.Clock
	// Available caps the posts a subreddit has; zero means unlimited.
	Available int
	// Missing subreddits answer with ErrSubredditNotFound.
	Missing map[string]bool
	// Broken subreddits answer with a generic error.
	Broken map[string]bool
	// Empty subreddits exist but have no posts.
	Empty map[string]bool
	// CommentErr, when set, is returned by CountComments.
	CommentErr error

	// Calls counts FetchHotPosts invocations.
	Calls int
	// CommentCalls records the post ids whose comments were fetched.
	CommentCalls []string
}

func NewMockClient(clock clockwork.Clock) *MockClient {
	return &MockClient{
		Clock:   clock,
		Missing: map[string]bool{},
		Broken:  map[string]bool{},
		Empty:   map[string]bool{},
	}
}

func (mc *MockClient) FetchHotPosts(ctx context.Context, sub string, limit int, progress func(int)) ([]domain.Post, error) {
	mc.Calls++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mc.Missing[sub] {
		return nil, fmt.Errorf("%w: r/%s", domain.ErrSubredditNotFound, sub)
	}
	if mc.Broken[sub] {
		return nil, fmt.Errorf("mock outage for r/%s", sub)
	}

	n := limit
	if mc.Empty[sub] {
		n = 0
	}
	if mc.Available > 0 && mc.Available < n {
		n = mc.Available
	}

	created := float64(mc.Clock.Now().Unix())
	var posts []domain.Post
	for i := 0; i < n; i++ {
		posts = append(posts, domain.Post{
			ID:           fmt.Sprintf("mock_%s_%d", sub, i),
			Title:        fmt.Sprintf("[%s] Simulated discussion #%d", sub, i),
			Subreddit:    sub,
			Author:       "simulated_user",
			URL:          fmt.Sprintf("http://localhost/r/%s/%d", sub, i),
			Body:         fmt.Sprintf("Simulated body %d. The workload is fine and the teachers are great.", i),
			Score:        (i * 37) % 500,
			CommentCount: (i * 7) % 50,
			CreatedUTC:   created - float64(i*3600),
		})
		if progress != nil {
			progress(len(posts))
		}
	}
	return posts, nil
}

func (mc *MockClient) CountComments(ctx context.Context, postID string) (int, error) {
	mc.CommentCalls = append(mc.CommentCalls, postID)
	if mc.CommentErr != nil {
		return 0, mc.CommentErr
	}
	return len(postID) % 10, nil
}
