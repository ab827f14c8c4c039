package domain

import (
	"context"
	"regexp"
	"strings"
)

// Platform is written to the platform column of every record.
const Platform = "reddit"

// Limits accepted for a single fetch.
const (
	MinFetchLimit = 1
	MaxFetchLimit = 1000
)

// Post is the read-only view of a submission as returned by a Collector.
type Post struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Subreddit    string  `json:"subreddit"`
	Author       string  `json:"author"`
	URL          string  `json:"url"`
	Body         string  `json:"selftext"`
	Score        int     `json:"score"`
	CommentCount int     `json:"num_comments"`
	CreatedUTC   float64 `json:"created_utc"`
}

// Record is the normalized output row.
type Record struct {
	Platform     string
	Date         string
	Title        string
	PostID       string
	Author       string
	Upvotes      int
	URL          string
	CommentCount int
	Body         string
	Sentiment    float64
	Subject      []string
	Problem      []string
}

// Mode selects the record schema and whether tags are collected.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// Tagged reports whether records in this mode carry subject/problem columns.
func (m Mode) Tagged() bool {
	return m == ModeManual
}

// Credentials is a saved API profile. Name is the key in the store and is not serialized.
type Credentials struct {
	Name         string `json:"-"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Collector defines the interface for data fetching
type Collector interface {
	// FetchHotPosts returns up to limit posts in "hot" order. progress, if set,
	// is called with the number of posts received so far.
	FetchHotPosts(ctx context.Context, subreddit string, limit int, progress func(received int)) ([]Post, error)
	// CountComments performs the secondary fetch of a post's comment listing.
	CountComments(ctx context.Context, postID string) (int, error)
}

var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{2,21}$`)

// CleanSubredditName trims whitespace and an optional r/ prefix.
func CleanSubredditName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, "/")
	if len(name) > 2 && strings.EqualFold(name[:2], "r/") {
		name = name[2:]
	}
	return name
}

// ValidSubredditName reports whether name can be a subreddit at all.
func ValidSubredditName(name string) bool {
	return subNameRegex.MatchString(name)
}
