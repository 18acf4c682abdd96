package vfs

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Hit is a single search result.
type Hit struct {
	Location Location
	Path     []string
	Node     Node
	Score    int
	Matched  []int
}

type indexEntry struct {
	loc  Location
	path []string
	node Node
}

type searchIndex []indexEntry

func (s searchIndex) String(i int) string { return s[i].node.Info().Name }
func (s searchIndex) Len() int            { return len(s) }

// Search fuzzy-matches query against node names across all roots, best
// matches first. An empty query matches nothing.
func (t *Tree) Search(query string) []Hit {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var index searchIndex
	_ = t.Walk(func(loc Location, path []string, n Node) error {
		index = append(index, indexEntry{loc: loc, path: path, node: n})
		return nil
	})

	matches := fuzzy.FindFrom(query, index)
	hits := make([]Hit, 0, len(matches))
	for _, m := range matches {
		entry := index[m.Index]
		hits = append(hits, Hit{
			Location: entry.loc,
			Path:     entry.path,
			Node:     entry.node,
			Score:    m.Score,
			Matched:  m.MatchedIndexes,
		})
	}
	return hits
}
