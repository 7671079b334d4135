package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// rewriteTransport sends every request to target, keeping the path, so the
// go-twitter client can talk to an httptest server.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = t.target.Scheme
	r.URL.Host = t.target.Host
	r.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func httpClientFor(t *testing.T, srv *httptest.Server) *http.Client {
	t.Helper()
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return &http.Client{Transport: rewriteTransport{target: u}}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func nopLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

// fakeTwitter records calls and answers from canned data.
type fakeTwitter struct {
	search      idSet
	followOK    bool
	unfollowOK  bool
	following   idSet
	followers   idSet
	err         error
	showUserErr error

	followed    []int64
	unfollowed  []int64
	searchCalls int
}

func (f *fakeTwitter) SearchUsers(query string) (idSet, error) {
	f.searchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.search, nil
}

func (f *fakeTwitter) Follow(id int64) (bool, error) {
	f.followed = append(f.followed, id)
	return f.followOK, f.err
}

func (f *fakeTwitter) Unfollow(id int64) (bool, error) {
	f.unfollowed = append(f.unfollowed, id)
	return f.unfollowOK, f.err
}

func (f *fakeTwitter) ShowUser(id int64) (User, error) {
	if f.showUserErr != nil {
		return User{}, f.showUserErr
	}
	return User{ID: id, ScreenName: fmt.Sprintf("user%d", id)}, nil
}

func (f *fakeTwitter) ListFollowing() (idSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.following, nil
}

func (f *fakeTwitter) ListFollowers() (idSet, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.followers, nil
}
