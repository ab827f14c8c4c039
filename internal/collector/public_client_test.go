package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/qepting91/reddit-annotator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestPublicClient(t *testing.T, handler http.HandlerFunc) *PublicClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pc, err := NewPublicClient(srv.URL, "test-agent/1.0")
	require.NoError(t, err)
	pc.limiter = rate.NewLimiter(rate.Inf, 1)
	return pc
}

func postJSON(id string) string {
	return fmt.Sprintf(`{"kind":"t3","data":{"id":%q,"title":"Title %s","subreddit":"golang","author":"gopher","url":"https://example.com/%s","selftext":"body %s","score":10,"num_comments":4,"created_utc":1709294400}}`, id, id, id, id)
}

func listingJSON(after string, ids ...string) string {
	children := make([]string, len(ids))
	for i, id := range ids {
		children[i] = postJSON(id)
	}
	return fmt.Sprintf(`{"kind":"Listing","data":{"after":%q,"children":[%s]}}`, after, strings.Join(children, ","))
}

func TestNewPublicClient_RequiresUserAgent(t *testing.T) {
	_, err := NewPublicClient("https://www.reddit.com", "")
	assert.Error(t, err)
}

func TestPublicClient_FetchHotPosts(t *testing.T) {
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/r/golang/hot.json", r.URL.Path)
		assert.Equal(t, "test-agent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		fmt.Fprint(w, listingJSON("", "a1", "a2"))
	})

	posts, err := pc.FetchHotPosts(context.Background(), "golang", 2, nil)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, domain.Post{
		ID:           "a1",
		Title:        "Title a1",
		Subreddit:    "golang",
		Author:       "gopher",
		URL:          "https://example.com/a1",
		Body:         "body a1",
		Score:        10,
		CommentCount: 4,
		CreatedUTC:   1709294400,
	}, posts[0])
}

func TestPublicClient_Paginates(t *testing.T) {
	var afters []string
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		after := r.URL.Query().Get("after")
		afters = append(afters, after)
		switch after {
		case "":
			assert.Equal(t, "100", r.URL.Query().Get("limit"))
			ids := make([]string, 100)
			for i := range ids {
				ids[i] = fmt.Sprintf("p%d", i)
			}
			fmt.Fprint(w, listingJSON("t3_p99", ids...))
		case "t3_p99":
			assert.Equal(t, "20", r.URL.Query().Get("limit"))
			fmt.Fprint(w, listingJSON("", "q0", "q1", "q2"))
		default:
			t.Errorf("unexpected page %q", after)
		}
	})

	var progress []int
	posts, err := pc.FetchHotPosts(context.Background(), "golang", 120, func(n int) { progress = append(progress, n) })

	require.NoError(t, err)
	assert.Len(t, posts, 103)
	assert.Equal(t, []string{"", "t3_p99"}, afters)
	require.Len(t, progress, 103)
	assert.Equal(t, 1, progress[0])
	assert.Equal(t, 100, progress[99])
	assert.Equal(t, 103, progress[102])
}

func TestPublicClient_ShortRead(t *testing.T) {
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, listingJSON("", "only1", "only2"))
	})

	posts, err := pc.FetchHotPosts(context.Background(), "golang", 5, nil)
	require.NoError(t, err)
	assert.Len(t, posts, 2)
}

func TestPublicClient_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"404", http.StatusNotFound},
		{"redirect to search", http.StatusFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusFound {
					w.Header().Set("Location", "/subreddits/search.json?q=nothere")
				}
				w.WriteHeader(tt.status)
			})

			_, err := pc.FetchHotPosts(context.Background(), "nothere", 1, nil)
			assert.ErrorIs(t, err, domain.ErrSubredditNotFound)
		})
	}
}

func TestPublicClient_ServerError(t *testing.T) {
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := pc.FetchHotPosts(context.Background(), "golang", 1, nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSubredditNotFound)
	assert.Contains(t, err.Error(), "503")
}

func TestPublicClient_CountComments(t *testing.T) {
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/comments/abc.json", r.URL.Path)
		fmt.Fprint(w, `[
			{"kind":"Listing","data":{"children":[{"kind":"t3","data":{"id":"abc"}}]}},
			{"kind":"Listing","data":{"children":[
				{"kind":"t1","data":{"id":"c1"}},
				{"kind":"t1","data":{"id":"c2"}},
				{"kind":"more","data":{"id":"m1"}}
			]}}
		]`)
	})

	n, err := pc.CountComments(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPublicClient_CountCommentsBadPayload(t *testing.T) {
	pc := newTestPublicClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})

	_, err := pc.CountComments(context.Background(), "abc")
	assert.Error(t, err)
}
