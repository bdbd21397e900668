package catalog

import "strings"

// Filter returns the entries whose display name case-insensitively contains
// query. The query is matched as typed, whitespace included. The sentinel
// record never appears in suggestions unless the query is literally "n/a";
// an empty query returns every real entry, which is the list shown when a
// search box gains focus.
func Filter(entries []Entry, query string) []Entry {
	q := strings.ToLower(query)
	wantSentinel := q == "n/a"

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsSentinel() {
			if wantSentinel {
				out = append(out, e)
			}
			continue
		}
		if q == "" || strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the entry with the given display name, if present.
func Find(entries []Entry, name string) (Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
