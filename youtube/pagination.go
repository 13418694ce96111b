package youtube

import (
	"encoding/json"
	"net/url"
)

// Iterator is a scanner-style lazy sequence of records. A fetch function
// produces one page of values at a time and signals when no more pages exist;
// the consumer drives it the usual way:
//
//	it := client.PlaylistVideos(playlistID)
//	for it.Next() {
//		video := it.Value()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
//
// Iterators are single-use and restartable only by creating a new one.
type Iterator[T any] struct {
	fetch func() ([]T, bool, error)
	buf   []T
	cur   T
	done  bool
	err   error
}

// NewIterator builds an Iterator from a page fetch function. The function
// returns one page of values, whether another page follows, and any fetch
// error; it is called again only while it keeps reporting more pages.
func NewIterator[T any](fetch func() ([]T, bool, error)) *Iterator[T] {
	return &Iterator[T]{fetch: fetch}
}

// Next advances to the next value, fetching further pages as the buffered ones
// drain. It returns false when the sequence ends or a fetch fails.
func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	for len(it.buf) == 0 {
		if it.done {
			return false
		}
		items, more, err := it.fetch()
		if err != nil {
			it.err = err
			return false
		}
		it.buf = items
		it.done = !more
	}
	it.cur = it.buf[0]
	it.buf = it.buf[1:]
	return true
}

// Value returns the value Next advanced to.
func (it *Iterator[T]) Value() T { return it.cur }

// Err returns the first error encountered while fetching, if any.
func (it *Iterator[T]) Err() error { return it.err }

// Collect drains the iterator into a slice.
func (it *Iterator[T]) Collect() ([]T, error) {
	var out []T
	for it.Next() {
		out = append(out, it.Value())
	}
	return out, it.Err()
}

// paginate walks a paged list endpoint: every response carries an items list
// and an optional continuation token, and the token's absence terminates the
// walk. The caller-supplied parameters are reused on every page; only the
// token parameter changes between calls.
func paginate[T any](c *Client, path string, params url.Values, parse func(json.RawMessage) (T, error)) *Iterator[T] {
	pageToken := ""
	first := true
	return NewIterator(func() ([]T, bool, error) {
		page := url.Values{}
		for k, vs := range params {
			page[k] = vs
		}
		if !first {
			page.Set("pageToken", pageToken)
		}
		first = false

		env, err := c.request(path, page)
		if err != nil {
			return nil, false, err
		}

		items := make([]T, 0, len(env.Items))
		for _, raw := range env.Items {
			v, err := parse(raw)
			if err != nil {
				return nil, false, err
			}
			items = append(items, v)
		}
		pageToken = env.NextPageToken
		return items, pageToken != "", nil
	})
}
