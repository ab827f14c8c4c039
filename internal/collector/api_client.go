package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/reddit-annotator/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	// pageSize is the largest listing page reddit serves.
	pageSize = 100

	DefaultAPIBaseURL = "https://oauth.reddit.com"
	DefaultTokenURL   = "https://www.reddit.com/api/v1/access_token"
)

// APIClient reads listings through the OAuth API with app-only credentials.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

type apiOptions struct {
	baseURL  string
	tokenURL string
	limiter  *rate.Limiter
}

type APIOption func(*apiOptions)

// WithEndpoints points the client at another API host and token endpoint.
func WithEndpoints(baseURL, tokenURL string) APIOption {
	return func(o *apiOptions) {
		o.baseURL = baseURL
		o.tokenURL = tokenURL
	}
}

// WithLimiter replaces the default request pacing.
func WithLimiter(l *rate.Limiter) APIOption {
	return func(o *apiOptions) { o.limiter = l }
}

// NewAPIClient exchanges the client id and secret for an application token
// (client_credentials grant). The token is fetched lazily on the first
// request and refreshed when it expires.
func NewAPIClient(id, secret, userAgent string, opts ...APIOption) (*APIClient, error) {
	o := apiOptions{
		baseURL:  DefaultAPIBaseURL,
		tokenURL: DefaultTokenURL,
		// Rate Limit: Token Bucket Algorithm
		// 100 requests / min for OAuth clients, keep a buffer
		limiter: rate.NewLimiter(rate.Every(700*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(&o)
	}

	cc := &clientcredentials.Config{
		ClientID:     id,
		ClientSecret: secret,
		TokenURL:     o.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	// The token request goes out on its own client; reddit rejects it
	// without a user agent.
	tokenHTTP := &http.Client{Transport: &userAgentTransport{agent: userAgent, base: http.DefaultTransport}}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, tokenHTTP)

	// NewClient would wrap this in a password grant, so the read-only
	// constructor carries our token transport instead.
	client, err := reddit.NewReadonlyClient(
		reddit.WithHTTPClient(cc.Client(ctx)),
		reddit.WithBaseURL(o.baseURL),
		reddit.WithUserAgent(userAgent),
	)
	if err != nil {
		return nil, err
	}

	return &APIClient{client: client, limiter: o.limiter}, nil
}

func (ac *APIClient) FetchHotPosts(ctx context.Context, sub string, limit int, progress func(int)) ([]domain.Post, error) {
	var result []domain.Post
	after := ""

	for len(result) < limit {
		if err := ac.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		want := min(limit-len(result), pageSize)
		posts, resp, err := ac.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: want, After: after})
		if redirectedToSearch(resp) {
			return nil, fmt.Errorf("%w: r/%s", domain.ErrSubredditNotFound, sub)
		}
		if err != nil {
			return nil, classifyAPIError(sub, err)
		}

		for _, p := range posts {
			result = append(result, convertPost(p))
			if progress != nil {
				progress(len(result))
			}
			if len(result) == limit {
				break
			}
		}

		if len(posts) == 0 || resp == nil || resp.After == "" {
			break
		}
		after = resp.After
	}
	return result, nil
}

func (ac *APIClient) CountComments(ctx context.Context, postID string) (int, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	pc, _, err := ac.client.Post.Get(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("authenticated api error: %w", err)
	}
	return len(pc.Comments), nil
}

func convertPost(p *reddit.Post) domain.Post {
	post := domain.Post{
		ID:           p.ID,
		Title:        p.Title,
		Subreddit:    p.SubredditName,
		Author:       p.Author,
		URL:          p.URL,
		Body:         p.Body,
		Score:        p.Score,
		CommentCount: p.NumberOfComments,
	}
	if p.Created != nil {
		post.CreatedUTC = float64(p.Created.Time.Unix())
	}
	return post
}

func classifyAPIError(sub string, err error) error {
	var errResp *reddit.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: r/%s", domain.ErrSubredditNotFound, sub)
	}
	return fmt.Errorf("authenticated api error: %w", err)
}

// Unknown subreddits are answered with a redirect to the search page.
func redirectedToSearch(resp *reddit.Response) bool {
	if resp == nil || resp.Response == nil || resp.Request == nil || resp.Request.URL == nil {
		return false
	}
	return strings.Contains(resp.Request.URL.Path, "/subreddits/search")
}

type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}
