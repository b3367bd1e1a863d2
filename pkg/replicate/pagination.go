package replicate

import (
	"context"
	"net/url"
)

// PageFunc fetches one page of a cursor-paginated collection. An empty cursor
// requests the first page.
type PageFunc[T any] func(ctx context.Context, cursor string) (*ListResponse[T], error)

// CursorFromURL extracts the opaque cursor query parameter from a "next" page
// URL. Cursor values are passed back verbatim, never interpreted.
func CursorFromURL(next string) (string, bool) {
	parsed, err := url.Parse(next)
	if err != nil {
		return "", false
	}

	cursor := parsed.Query().Get("cursor")

	return cursor, cursor != ""
}

// PageIterator provides lazy, forward-only iteration over a cursor-paginated
// collection. Each iterator starts a fresh walk from the first page; pages
// are fetched on demand, items are yielded in server order without
// deduplication, and the first page error aborts the walk.
type PageIterator[T any] struct {
	ctx     context.Context
	fetch   PageFunc[T]
	current []T
	index   int
	cursor  string
	started bool
	done    bool
	err     error
}

// NewPageIterator creates an iterator over the collection served by fetch.
func NewPageIterator[T any](ctx context.Context, fetch PageFunc[T]) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:   ctx,
		fetch: fetch,
	}
}

// HasNext reports whether another item is available. It never performs a
// request: the first page is only fetched by Next.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	if !it.started {
		return true
	}

	return it.index < len(it.current) || !it.done
}

// Next returns the next item, fetching the next page when the current one is
// exhausted. It returns ErrNoMoreItems once the collection is consumed, and
// the original error on every call after a page request fails.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.err != nil {
		return zero, it.err
	}

	for it.index >= len(it.current) {
		if it.started && it.done {
			return zero, ErrNoMoreItems
		}

		if err := it.advance(); err != nil {
			return zero, err
		}
	}

	item := it.current[it.index]
	it.index++

	return item, nil
}

// All consumes the remainder of the iterator into a slice.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if err == ErrNoMoreItems {
				break
			}

			return nil, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to every remaining item, in order. The callback runs
// synchronously before the next page is requested; a callback error stops
// iteration and is returned unchanged.
func (it *PageIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			if err == ErrNoMoreItems {
				return nil
			}

			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) advance() error {
	page, err := it.fetch(it.ctx, it.cursor)
	if err != nil {
		it.err = err
		it.done = true

		return err
	}

	it.started = true
	it.current = page.Results
	it.index = 0
	it.cursor = ""
	it.done = true

	if page.Next != nil {
		if cursor, ok := CursorFromURL(*page.Next); ok {
			it.cursor = cursor
			it.done = false
		}
	}

	return nil
}

// PaginationOptions controls the convenience page collectors.
type PaginationOptions struct {
	// MaxPages bounds the number of pages fetched; 0 means unbounded.
	MaxPages int
}

// DefaultPaginationOptions returns options with no page bound.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{}
}

// FetchAllPages walks the collection served by fetch and collects every item,
// honoring options.MaxPages when set.
func FetchAllPages[T any](ctx context.Context, fetch PageFunc[T], options *PaginationOptions) ([]T, error) {
	var (
		items  []T
		cursor string
		pages  int
	)

	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Results...)
		pages++

		if options != nil && options.MaxPages > 0 && pages >= options.MaxPages {
			return items, nil
		}

		if page.Next == nil {
			return items, nil
		}

		next, ok := CursorFromURL(*page.Next)
		if !ok {
			return items, nil
		}

		cursor = next
	}
}
