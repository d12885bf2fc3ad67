// Package blocker assigns every normalized record a blocking key and
// groups records sharing a key into blocks, reducing the O(n²)
// candidate space the matcher would otherwise have to search.
package blocker

import (
	"fmt"

	"dedupe/internal/record"
)

// DefaultMaxBlockSize is the default chunking cap applied to
// oversized blocks.
const DefaultMaxBlockSize = 10_000

// Key computes the blocking key for a single normalized record using
// the first applicable of the four strategies:
//
//  1. plz + street
//  2. plz only
//  3. street only
//  4. no address (phonetic fallback)
//
// This is the only branch where phonetic codes enter blocking; it
// rescues address-less rows from degenerating into one giant block.
func Key(r record.NormalizedRecord) string {
	switch {
	case r.PostalCode != "" && r.Street != "":
		return fmt.Sprintf("%s|%s", r.PostalCode, r.Street)
	case r.PostalCode != "":
		return fmt.Sprintf("plz|%s", r.PostalCode)
	case r.Street != "":
		return fmt.Sprintf("str|%s", r.Street)
	default:
		return fmt.Sprintf("phon|%s|%s", r.GivenPhon, r.SurnamePhon)
	}
}

// Build groups records by their (already assigned) blocking key,
// drops singleton groups, and splits any group larger than
// maxBlockSize into contiguous chunks of at most maxBlockSize records.
//
// Chunking a block this way can split a true duplicate pair across
// two chunks and cause it to be missed entirely. That is an accepted
// precision/throughput trade-off, not a bug: without it a single
// pathological blocking key (e.g. every address-less record sharing
// one phonetic bucket) would force ~MAX_BLOCK²/2 comparisons to become
// unbounded.
func Build(records []record.NormalizedRecord, maxBlockSize int) []record.Block {
	if maxBlockSize <= 0 {
		maxBlockSize = DefaultMaxBlockSize
	}

	groups := make(map[string][]int)
	order := make([]string, 0)
	for _, r := range records {
		if _, seen := groups[r.BlockingKey]; !seen {
			order = append(order, r.BlockingKey)
		}
		groups[r.BlockingKey] = append(groups[r.BlockingKey], r.ID)
	}

	blocks := make([]record.Block, 0, len(order))
	for _, key := range order {
		ids := groups[key]
		if len(ids) < 2 {
			continue
		}
		if len(ids) <= maxBlockSize {
			blocks = append(blocks, record.Block{Key: key, IDs: ids})
			continue
		}
		for start := 0; start < len(ids); start += maxBlockSize {
			end := start + maxBlockSize
			if end > len(ids) {
				end = len(ids)
			}
			chunk := ids[start:end]
			if len(chunk) < 2 {
				continue
			}
			blocks = append(blocks, record.Block{
				Key: fmt.Sprintf("%s#chunk%d", key, start/maxBlockSize),
				IDs: chunk,
			})
		}
	}
	return blocks
}
