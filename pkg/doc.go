/*
Package symspell implements symmetric-delete spelling correction.

A dictionary of (term, count) rows is indexed once by generating every string
reachable from a term's prefix by deleting up to MaxDictionaryEditDistance
characters. A query generates the same deletions and probes the index, so
candidate retrieval does not scan the dictionary. Candidates are verified
with a bounded Damerau-Levenshtein (optimal string alignment) distance.

On top of single-word Lookup the package offers LookupCompound, which corrects
a whole line and repairs missing or spurious spaces, and WordSegmentation,
which splits an unspaced string into the most probable word sequence in a
single left-to-right pass over a circular buffer of partial compositions.

The engine is script agnostic. Package kosymspell wraps it with a Hangul
jamo pass.

Once loading has finished a SymSpell is never mutated, so lookups may run
concurrently. Loading and lookups must not overlap.
*/
package symspell

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'kosymspell'
func tracer() tracing.Trace {
	return tracing.Select("kosymspell")
}
