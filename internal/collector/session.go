package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/qepting91/reddit-annotator/internal/domain"
)

// Session is an authenticated collector held for the whole run.
type Session struct {
	collector domain.Collector
	logger    *slog.Logger
}

// Authenticate proves the collector works by reading one post from a feed
// known to exist. Any failure is reported as an AuthError.
func Authenticate(ctx context.Context, c domain.Collector, probeSubreddit string, logger *slog.Logger) (*Session, error) {
	if _, err := c.FetchHotPosts(ctx, probeSubreddit, 1, nil); err != nil {
		logger.Warn("Authentication probe failed", "probe", probeSubreddit, "err", err)
		return nil, &domain.AuthError{Cause: err}
	}
	logger.Info("Authenticated", "probe", probeSubreddit)
	return &Session{collector: c, logger: logger}, nil
}

// Exists reads one post from the named subreddit. It never returns true with
// an error; the error tells a missing subreddit (ErrSubredditNotFound) from
// any other failure (*domain.ProbeError).
func (s *Session) Exists(ctx context.Context, name string) (bool, error) {
	name = domain.CleanSubredditName(name)
	if !domain.ValidSubredditName(name) {
		s.logger.Info("Rejected subreddit name", "sub", name)
		return false, fmt.Errorf("%w: %q is not a valid name", domain.ErrSubredditNotFound, name)
	}

	posts, err := s.collector.FetchHotPosts(ctx, name, 1, nil)
	switch {
	case errors.Is(err, domain.ErrSubredditNotFound):
		s.logger.Info("Subreddit not found", "sub", name)
		return false, err
	case err != nil:
		s.logger.Warn("Subreddit probe failed", "sub", name, "err", err)
		return false, &domain.ProbeError{Subreddit: name, Cause: err}
	case len(posts) == 0:
		s.logger.Info("Subreddit has no posts", "sub", name)
		return false, fmt.Errorf("%w: r/%s has no posts", domain.ErrSubredditNotFound, name)
	}
	return true, nil
}

// Fetch returns up to limit hot posts. A failure part way through discards
// everything received.
func (s *Session) Fetch(ctx context.Context, name string, limit int, progress func(int)) ([]domain.Post, error) {
	if limit < domain.MinFetchLimit || limit > domain.MaxFetchLimit {
		return nil, &domain.ValidationError{
			Field:   "limit",
			Message: fmt.Sprintf("must be between %d and %d", domain.MinFetchLimit, domain.MaxFetchLimit),
		}
	}
	name = domain.CleanSubredditName(name)

	posts, err := s.collector.FetchHotPosts(ctx, name, limit, progress)
	if err != nil {
		s.logger.Error("Scrape failed", "sub", name, "limit", limit, "err", err)
		if errors.Is(err, domain.ErrSubredditNotFound) {
			return nil, err
		}
		return nil, &domain.ProbeError{Subreddit: name, Cause: err}
	}
	if len(posts) > limit {
		posts = posts[:limit]
	}
	s.logger.Info("Fetched posts", "sub", name, "requested", limit, "received", len(posts))
	return posts, nil
}

// CountComments performs the secondary comment fetch for one post.
func (s *Session) CountComments(ctx context.Context, postID string) (int, error) {
	return s.collector.CountComments(ctx, postID)
}
