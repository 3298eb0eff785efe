// Package pager turns catalog searches into bounded pages of results and
// renders them as inline keyboards.
package pager

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lepinkainen/reelbot/internal/media"
	"github.com/lepinkainen/reelbot/internal/session"
	"github.com/lepinkainen/reelbot/internal/tmdb"
)

// PageSize is the maximum number of entries shown per page.
const PageSize = 10

// Searcher is the catalog lookup the pager needs.
type Searcher interface {
	Search(ctx context.Context, kind media.Kind, query string, page int) (*tmdb.SearchPage, error)
}

// Result is one entry of a page.
type Result struct {
	ID          int64
	Kind        media.Kind
	Title       string
	Overview    string
	Rating      float64
	ReleaseDate string
}

// Page is an ordered slice of at most PageSize results.
type Page struct {
	Number  int
	Items   []Result
	HasMore bool
}

// Empty reports whether the page has no results.
func (p Page) Empty() bool {
	return len(p.Items) == 0
}

// Pager builds result pages from a Searcher.
type Pager struct {
	catalog Searcher
}

// New creates a Pager.
func New(catalog Searcher) *Pager {
	return &Pager{catalog: catalog}
}

// Page runs one search per kind of q for the given page number, concatenates
// the results in kind order, keeps the first PageSize and reports whether the
// combined count exceeded it. A failed lookup fails the whole page.
func (p *Pager) Page(ctx context.Context, q session.Query, number int) (Page, error) {
	if number < 1 {
		number = 1
	}

	kinds := q.SearchKinds()
	found := make([][]tmdb.SearchResult, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		g.Go(func() error {
			resp, err := p.catalog.Search(gctx, kind, q.Text, number)
			if err != nil {
				return err
			}
			found[i] = resp.Results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Page{}, fmt.Errorf("page %d of %q: %w", number, q.Text, err)
	}

	var merged []tmdb.SearchResult
	for _, results := range found {
		merged = append(merged, results...)
	}

	page := Page{
		Number:  number,
		HasMore: len(merged) > PageSize,
	}
	if len(merged) > PageSize {
		merged = merged[:PageSize]
	}

	page.Items = make([]Result, 0, len(merged))
	for _, r := range merged {
		page.Items = append(page.Items, Result{
			ID:          r.ID,
			Kind:        r.MediaType,
			Title:       r.DisplayTitle(),
			Overview:    r.Overview,
			Rating:      r.VoteAverage,
			ReleaseDate: r.Date(),
		})
	}

	slog.Debug("Built results page", "query", q.Text, "page", number, "items", len(page.Items), "has_more", page.HasMore)
	return page, nil
}
