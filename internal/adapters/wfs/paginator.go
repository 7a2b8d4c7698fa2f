// Package wfs retrieves road fragments from a WFS 2.0 feature service,
// following server-driven pagination until the result set is exhausted.
package wfs

import (
	"context"
	"fmt"
)

// Fetcher retrieves one raw response page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PageParser turns one raw page into its feature members plus the follow-up
// link, if the server reported one. Wire knowledge lives here, not in the
// pagination loop.
type PageParser interface {
	ParsePage(data []byte) (members []FeatureMember, next string, err error)
}

// LinkRewriter rewrites a next-page link before it is dereferenced. The NWB
// server hands out links relative to its own process path, which are not
// valid against the public endpoint.
type LinkRewriter interface {
	Rewrite(link string) string
}

// FetchAll walks the page chain starting at startURL and returns every
// member across all pages in arrival order. Each page's URL depends on the
// previous response, so fetching is strictly sequential. Any transport or
// parse error aborts the whole retrieval; there is no partial result.
func FetchAll(ctx context.Context, f Fetcher, p PageParser, r LinkRewriter, startURL string) ([]FeatureMember, error) {
	var all []FeatureMember

	url := startURL
	for url != "" {
		data, err := f.Fetch(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch page: %w", err)
		}

		members, next, err := p.ParsePage(data)
		if err != nil {
			return nil, fmt.Errorf("parse page: %w", err)
		}
		all = append(all, members...)

		if next == "" {
			break
		}
		url = r.Rewrite(next)
	}

	return all, nil
}
