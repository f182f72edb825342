package reddit_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/casefiles"
	"github.com/fwojciec/casefiles/mock"
	"github.com/fwojciec/casefiles/reddit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postPath = "/r/nosleep/comments/1db7q8/case_file_1_the_lightning_man"

const postResponse = `[
	{"kind": "Listing", "data": {"children": [
		{"kind": "t3", "data": {
			"title": "Case File #1: The Lightning Man",
			"selftext": "[Index](http://x)\n\nIt began with a storm.",
			"selftext_html": "<div class=\"md\"><p>It began with a storm.</p></div>",
			"permalink": "/r/nosleep/comments/1db7q8/case_file_1_the_lightning_man/"
		}}
	]}},
	{"kind": "Listing", "data": {"children": []}}
]`

func TestClient_FetchPost(t *testing.T) {
	t.Parallel()

	t.Run("fetches public post JSON", func(t *testing.T) {
		t.Parallel()

		var gotPath, gotQuery, gotAgent string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			gotAgent = r.Header.Get("User-Agent")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(postResponse))
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL, UserAgent: "test-agent"})
		postURL := "https://www.reddit.com" + postPath + "/"

		post, err := client.FetchPost(context.Background(), postURL)

		require.NoError(t, err)
		assert.Equal(t, postURL, post.URL)
		assert.Equal(t, "Case File #1: The Lightning Man", post.Title)
		assert.Equal(t, "[Index](http://x)\n\nIt began with a storm.", post.Body)
		assert.Equal(t, postPath+".json", gotPath)
		assert.Equal(t, "raw_json=1", gotQuery)
		assert.Equal(t, "test-agent", gotAgent)
	})

	t.Run("uses bearer token when credentials are set", func(t *testing.T) {
		t.Parallel()

		var gotAuth, gotPath string
		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/access_token", func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != "id" || pass != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600}`))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(postResponse))
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			BaseURL:      srv.URL,
			TokenURL:     srv.URL + "/api/v1/access_token",
		})

		post, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.NoError(t, err)
		assert.Equal(t, "Case File #1: The Lightning Man", post.Title)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, postPath, gotPath)
	})

	t.Run("returns not found for missing post", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL})

		_, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.Error(t, err)
		assert.Equal(t, casefiles.ENOTFOUND, casefiles.ErrorCode(err))
	})

	t.Run("returns unavailable for server errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL})

		_, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.Error(t, err)
		assert.Equal(t, casefiles.EUNAVAILABLE, casefiles.ErrorCode(err))
	})

	t.Run("returns unavailable when host is unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := srv.URL
		srv.Close()

		client := reddit.NewClient(reddit.Config{BaseURL: baseURL})

		_, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.Error(t, err)
		assert.Equal(t, casefiles.EUNAVAILABLE, casefiles.ErrorCode(err))
	})

	t.Run("returns not found when response has no submission", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"kind": "Listing", "data": {"children": []}}]`))
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL})

		_, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.Error(t, err)
		assert.Equal(t, casefiles.ENOTFOUND, casefiles.ErrorCode(err))
	})

	t.Run("rejects non-post URL without a request", func(t *testing.T) {
		t.Parallel()

		called := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL})

		_, err := client.FetchPost(context.Background(), "https://www.reddit.com/r/nosleep/")

		require.Error(t, err)
		assert.Equal(t, casefiles.EINVALID, casefiles.ErrorCode(err))
		assert.False(t, called)
	})

	t.Run("converts HTML body when markdown is missing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[{"kind": "Listing", "data": {"children": [
				{"kind": "t3", "data": {
					"title": "Case File #2",
					"selftext": "",
					"selftext_html": "&lt;p&gt;It rained &amp;amp; thundered.&lt;/p&gt;"
				}}
			]}}]`))
		}))
		t.Cleanup(srv.Close)

		var gotHTML string
		converter := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				gotHTML = html
				return "It rained &amp; thundered.", nil
			},
		}
		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL}, reddit.WithConverter(converter))

		post, err := client.FetchPost(context.Background(), "https://www.reddit.com"+postPath)

		require.NoError(t, err)
		assert.Equal(t, "<p>It rained &amp; thundered.</p>", gotHTML)
		assert.Equal(t, "It rained &amp; thundered.", post.Body)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(postResponse))
		}))
		t.Cleanup(srv.Close)

		client := reddit.NewClient(reddit.Config{BaseURL: srv.URL})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.FetchPost(ctx, "https://www.reddit.com"+postPath)

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestAPIPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{name: "permalink", url: "https://www.reddit.com" + postPath + "/", want: postPath},
		{name: "old reddit", url: "https://old.reddit.com" + postPath, want: postPath},
		{name: "json suffix", url: "https://www.reddit.com" + postPath + ".json", want: postPath},
		{name: "short link", url: "https://redd.it/1db7q8", want: "/comments/1db7q8"},
		{name: "subreddit page", url: "https://www.reddit.com/r/nosleep/", wantErr: true},
		{name: "relative", url: "/r/nosleep/comments/1db7q8", wantErr: true},
		{name: "empty short link", url: "https://redd.it/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reddit.APIPath(tt.url)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, casefiles.EINVALID, casefiles.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
