package ann

import (
	"iter"
	"strings"
)

// Prefix is the INFO key prefix accepted (and stripped) by Decode.
const Prefix = "ANN="

// Decode decodes an ANN value, with or without the "ANN=" prefix, into
// records. Entries are returned in input order; an entry with a compound
// effect ("a&b") expands into one record per term. An empty value yields no
// records. If any entry is malformed, Decode returns nil and a *DecodeError.
func Decode(s string) ([]Record, error) {
	var out []Record
	for rec, err := range All(s) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// All returns a lazy sequence over the records of an ANN value.
// Each iteration re-scans s. On a malformed entry the sequence yields the
// error once and stops; records of earlier entries have already been yielded.
func All(s string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		body := strings.TrimPrefix(s, Prefix)
		if body == "" {
			return
		}

		for i, entry := range strings.Split(body, ",") {
			entry = strings.TrimSpace(entry)
			recs, err := decodeEntry(entry, i)
			if err != nil {
				yield(nil, err)
				return
			}
			for _, rec := range recs {
				if !yield(rec, nil) {
					return
				}
			}
		}
	}
}

// DecodeEntry decodes a single comma-free annotation entry.
// Whitespace around the entry is significant here; Decode trims it.
func DecodeEntry(entry string) ([]Record, error) {
	return decodeEntry(entry, 0)
}

func decodeEntry(entry string, index int) ([]Record, error) {
	tokens := strings.Split(entry, "|")
	if len(tokens) > NumFields {
		return nil, &DecodeError{Entry: entry, Index: index, Tokens: len(tokens)}
	}

	rec := make(Record, len(tokens))
	for i, tok := range tokens {
		rec[schema[i]] = tok
	}

	effect, ok := rec[Effect]
	if !ok || !strings.Contains(effect, "&") {
		return []Record{rec}, nil
	}

	terms := Effects(effect)
	out := make([]Record, len(terms))
	for i, term := range terms {
		c := rec.Clone()
		c[Effect] = term
		out[i] = c
	}
	return out, nil
}
