package youtube

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, keys ...string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := NewClient(keys, &Options{BaseURL: srv.URL + "/", HTTPClient: srv.Client()})
	require.NoError(t, err)
	return client
}

func apiErrorBody(code int, reason string) string {
	return fmt.Sprintf(`{"error": {"code": %d, "message": "denied", "errors": [{"reason": %q}]}}`, code, reason)
}

func TestNewClientRequiresKeys(t *testing.T) {
	_, err := NewClient(nil, nil)
	require.Error(t, err)
}

func TestRequestRotatesOnClientError(t *testing.T) {
	var usedKeys []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		usedKeys = append(usedKeys, key)
		if key == "dead-key" {
			fmt.Fprint(w, apiErrorBody(403, "quotaExceeded"))
			return
		}
		fmt.Fprint(w, `{"items": [{"id": "UCabc"}]}`)
	}, "dead-key", "live-key")

	env, err := client.request("channels", url.Values{})
	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, []string{"dead-key", "live-key"}, usedKeys)

	// The discarded key must not come back on later requests.
	_, err = client.request("channels", url.Values{})
	require.NoError(t, err)
	assert.Equal(t, []string{"dead-key", "live-key", "live-key"}, usedKeys)
}

func TestRequestExhaustsKeys(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, apiErrorBody(403, "quotaExceeded"))
	}, "key1", "key2")

	_, err := client.request("videos", url.Values{})
	require.Error(t, err)
	var exhausted *ExhaustedKeysError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 403, exhausted.Last.Code)
	assert.Equal(t, "quotaExceeded", exhausted.Last.Reason())
	assert.Equal(t, 2, calls, "one attempt per key, no further retries")
}

func TestRequestPropagatesServerErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, apiErrorBody(500, "backendError"))
	}, "key1", "key2")

	_, err := client.request("videos", url.Values{})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Code)

	var exhausted *ExhaustedKeysError
	assert.False(t, errors.As(err, &exhausted), "server errors must not consume keys")
}

func TestDoSetsKeyAndPageSize(t *testing.T) {
	var query url.Values
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		fmt.Fprint(w, `{"items": []}`)
	}, "the-key")

	params := url.Values{}
	params.Set("part", "snippet")
	_, err := client.request("playlists", params)
	require.NoError(t, err)
	assert.Equal(t, "the-key", query.Get("key"))
	assert.Equal(t, "50", query.Get("maxResults"))
	assert.Equal(t, "snippet", query.Get("part"))
}

func TestPaginateWalksAllPages(t *testing.T) {
	pages := map[string]string{
		"":      `{"items": [{"id": "a"}, {"id": "b"}], "nextPageToken": "page2"}`,
		"page2": `{"items": [{"id": "c"}]}`,
	}
	var tokens []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("pageToken")
		tokens = append(tokens, token)
		fmt.Fprint(w, pages[token])
	}, "key")

	it := paginate(client, "things", url.Values{}, func(raw json.RawMessage) (string, error) {
		var item struct {
			ID string `json:"id"`
		}
		err := json.Unmarshal(raw, &item)
		return item.ID, err
	})

	got, err := it.Collect()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []string{"", "page2"}, tokens)
}

func TestIteratorStopsOnFetchError(t *testing.T) {
	calls := 0
	it := NewIterator(func() ([]int, bool, error) {
		calls++
		if calls == 2 {
			return nil, false, assertError{}
		}
		return []int{1, 2}, true, nil
	})

	var got []int
	for it.Next() {
		got = append(got, it.Value())
	}
	assert.Equal(t, []int{1, 2}, got)
	require.Error(t, it.Err())
	assert.False(t, it.Next(), "a failed iterator stays stopped")
}

type assertError struct{}

func (assertError) Error() string { return "fetch failed" }
