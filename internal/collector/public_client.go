package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/qepting91/reddit-annotator/internal/domain"
	"golang.org/x/time/rate"
)

// PublicClient reads the unauthenticated .json listings.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	userAgent  string
}

type listing struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string      `json:"kind"`
			Data domain.Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func NewPublicClient(baseURL, userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("a user agent is required for public mode")
	}
	return &PublicClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			// A redirect means reddit sent us to the search page.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}, nil
}

func (pc *PublicClient) FetchHotPosts(ctx context.Context, sub string, limit int, progress func(int)) ([]domain.Post, error) {
	var posts []domain.Post
	after := ""

	for len(posts) < limit {
		want := min(limit-len(posts), pageSize)
		q := url.Values{}
		q.Set("limit", fmt.Sprint(want))
		q.Set("raw_json", "1")
		if after != "" {
			q.Set("after", after)
		}

		var page listing
		endpoint := fmt.Sprintf("%s/r/%s/hot.json?%s", pc.baseURL, url.PathEscape(sub), q.Encode())
		if err := pc.getJSON(ctx, endpoint, &page); err != nil {
			if errors.Is(err, errMissing) {
				return nil, fmt.Errorf("%w: r/%s", domain.ErrSubredditNotFound, sub)
			}
			return nil, err
		}

		for _, child := range page.Data.Children {
			if child.Kind != "" && child.Kind != "t3" {
				continue
			}
			posts = append(posts, child.Data)
			if progress != nil {
				progress(len(posts))
			}
			if len(posts) == limit {
				break
			}
		}

		if len(page.Data.Children) == 0 || page.Data.After == "" {
			break
		}
		after = page.Data.After
	}
	return posts, nil
}

func (pc *PublicClient) CountComments(ctx context.Context, postID string) (int, error) {
	var listings []listing
	endpoint := fmt.Sprintf("%s/comments/%s.json?raw_json=1", pc.baseURL, url.PathEscape(postID))
	if err := pc.getJSON(ctx, endpoint, &listings); err != nil {
		return 0, err
	}
	if len(listings) < 2 {
		return 0, fmt.Errorf("unexpected comment payload for %s", postID)
	}

	count := 0
	for _, child := range listings[1].Data.Children {
		if child.Kind == "t1" {
			count++
		}
	}
	return count, nil
}

var errMissing = errors.New("reddit public access: not found")

func (pc *PublicClient) getJSON(ctx context.Context, endpoint string, v any) error {
	if err := pc.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errMissing
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return errMissing
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("reddit public access status: %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
