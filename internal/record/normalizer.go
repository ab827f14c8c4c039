// Package record turns fetched posts into flat, scored records.
package record

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/qepting91/reddit-annotator/internal/sentiment"
)

// DeletedAuthor stands in for posts whose author account is gone.
const DeletedAuthor = "[deleted]"

const dateLayout = "2006-01-02"

type Scorer interface {
	Score(text string) sentiment.Scores
}

type CommentCounter interface {
	CountComments(ctx context.Context, postID string) (int, error)
}

type Normalizer struct {
	scorer   Scorer
	comments CommentCounter
	timeout  time.Duration
	location *time.Location
	logger   *slog.Logger
}

// NewNormalizer builds a normalizer using local time for dates. comments may
// be nil, in which case the listing's comment count is used as is.
func NewNormalizer(scorer Scorer, comments CommentCounter, timeout time.Duration, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		scorer:   scorer,
		comments: comments,
		timeout:  timeout,
		location: time.Local,
		logger:   logger,
	}
}

// WithLocation sets the zone used to derive the calendar date.
func (n *Normalizer) WithLocation(loc *time.Location) *Normalizer {
	n.location = loc
	return n
}

func (n *Normalizer) Normalize(ctx context.Context, p domain.Post) domain.Record {
	body := sanitize(p.Body)
	return domain.Record{
		Platform:     domain.Platform,
		Date:         n.date(p.CreatedUTC),
		Title:        sanitize(p.Title),
		PostID:       p.ID,
		Author:       author(p.Author),
		Upvotes:      p.Score,
		URL:          sanitize(p.URL),
		CommentCount: n.commentCount(ctx, p),
		Body:         body,
		Sentiment:    n.scorer.Score(body).Compound,
	}
}

func (n *Normalizer) date(createdUTC float64) string {
	sec := int64(createdUTC)
	return time.Unix(sec, 0).In(n.location).Format(dateLayout)
}

// commentCount counts the post's comment listing, falling back to the
// listing's num_comments when the secondary fetch fails or times out.
func (n *Normalizer) commentCount(ctx context.Context, p domain.Post) int {
	if n.comments == nil {
		return p.CommentCount
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	count, err := n.comments.CountComments(ctx, p.ID)
	if err != nil {
		n.logger.Warn("Comment fetch failed, using listing count", "post_id", p.ID, "fallback", p.CommentCount, "err", err)
		return p.CommentCount
	}
	return count
}

func author(name string) string {
	name = sanitize(strings.TrimSpace(name))
	if name == "" {
		return DeletedAuthor
	}
	return name
}

// sanitize drops byte sequences that are not valid UTF-8.
func sanitize(s string) string {
	return strings.ToValidUTF8(s, "")
}
