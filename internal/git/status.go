package git

import "strings"

// StatusEntry is one line of `git status --porcelain`.
type StatusEntry struct {
	// Code is the two-letter XY status, e.g. " M", "A ", "??".
	Code string `json:"code"`
	Path string `json:"path"`
}

// Untracked reports whether the entry is an untracked file.
func (e StatusEntry) Untracked() bool {
	return e.Code == "??"
}

// Status is the parsed working tree status.
type Status struct {
	Entries []StatusEntry `json:"entries"`
}

// Clean reports whether there are no entries at all.
func (s *Status) Clean() bool {
	return len(s.Entries) == 0
}

// HasTrackedChanges reports whether any entry other than an untracked file exists.
func (s *Status) HasTrackedChanges() bool {
	for _, e := range s.Entries {
		if !e.Untracked() {
			return true
		}
	}
	return false
}

// Untracked returns the paths of untracked files.
func (s *Status) Untracked() []string {
	var out []string
	for _, e := range s.Entries {
		if e.Untracked() {
			out = append(out, e.Path)
		}
	}
	return out
}

// parseStatus parses porcelain v1 output. Renames keep the destination path.
func parseStatus(output string) *Status {
	st := &Status{}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 3 {
			continue
		}
		path := strings.TrimSpace(line[3:])
		if _, dest, ok := strings.Cut(path, " -> "); ok {
			path = dest
		}
		st.Entries = append(st.Entries, StatusEntry{Code: line[:2], Path: strings.Trim(path, `"`)})
	}
	return st
}
