package wfs_test

import (
	"context"
	"errors"
	"testing"

	"straatradar/internal/adapters/wfs"
)

// --- Mocks ---

type mockFetcher struct {
	fetched []string
	fetchFn func(ctx context.Context, url string) ([]byte, error)
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	m.fetched = append(m.fetched, url)
	if m.fetchFn != nil {
		return m.fetchFn(ctx, url)
	}
	return []byte(url), nil
}

// scriptedParser returns canned pages keyed by the fetched URL (the mock
// fetcher echoes the URL as the page body).
type scriptedParser struct {
	pages map[string]struct {
		members []wfs.FeatureMember
		next    string
	}
	err error
}

func (p *scriptedParser) ParsePage(data []byte) ([]wfs.FeatureMember, string, error) {
	if p.err != nil {
		return nil, "", p.err
	}
	page := p.pages[string(data)]
	return page.members, page.next, nil
}

type suffixRewriter struct{ suffix string }

func (r suffixRewriter) Rewrite(link string) string { return link + r.suffix }

func member(street string) wfs.FeatureMember {
	return wfs.FeatureMember{StreetName: street, PlaceName: "P", Municipality: "M", PosList: "0 0"}
}

// --- Tests ---

func TestFetchAll_FollowsNextLinksUntilExhausted(t *testing.T) {
	fetcher := &mockFetcher{}
	parser := &scriptedParser{pages: map[string]struct {
		members []wfs.FeatureMember
		next    string
	}{
		"page1":    {members: []wfs.FeatureMember{member("A"), member("B")}, next: "page2"},
		"page2!rw": {members: []wfs.FeatureMember{member("C")}, next: "page3"},
		"page3!rw": {members: []wfs.FeatureMember{member("D")}, next: ""},
	}}

	members, err := wfs.FetchAll(context.Background(), fetcher, parser, suffixRewriter{"!rw"}, "page1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All three pages' members, in arrival order, and exactly three fetches.
	if len(members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(members))
	}
	want := []string{"A", "B", "C", "D"}
	for i, name := range want {
		if members[i].StreetName != name {
			t.Errorf("position %d: expected %s, got %s", i, name, members[i].StreetName)
		}
	}
	if len(fetcher.fetched) != 3 {
		t.Errorf("expected exactly 3 fetches, got %d: %v", len(fetcher.fetched), fetcher.fetched)
	}
}

func TestFetchAll_RewritesNextLinkBeforeFetching(t *testing.T) {
	fetcher := &mockFetcher{}
	parser := &scriptedParser{pages: map[string]struct {
		members []wfs.FeatureMember
		next    string
	}{
		"start":    {next: "next-page"},
		"next-page!rw": {},
	}}

	if _, err := wfs.FetchAll(context.Background(), fetcher, parser, suffixRewriter{"!rw"}, "start"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(fetcher.fetched) != 2 || fetcher.fetched[1] != "next-page!rw" {
		t.Errorf("next link was not rewritten before fetch: %v", fetcher.fetched)
	}
}

func TestFetchAll_AbortsOnTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	fetcher := &mockFetcher{
		fetchFn: func(ctx context.Context, url string) ([]byte, error) {
			if url == "page2" {
				return nil, boom
			}
			return []byte(url), nil
		},
	}
	parser := &scriptedParser{pages: map[string]struct {
		members []wfs.FeatureMember
		next    string
	}{
		"page1": {members: []wfs.FeatureMember{member("A")}, next: "page2"},
	}}

	members, err := wfs.FetchAll(context.Background(), fetcher, parser, suffixRewriter{""}, "page1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if members != nil {
		t.Error("a failed retrieval must not return partial results")
	}
}

func TestFetchAll_AbortsOnParseError(t *testing.T) {
	parser := &scriptedParser{err: errors.New("unexpected EOF")}

	_, err := wfs.FetchAll(context.Background(), &mockFetcher{}, parser, suffixRewriter{""}, "page1")
	if err == nil {
		t.Fatal("expected parse error to abort retrieval")
	}
}
