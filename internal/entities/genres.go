package entities

import (
	"slices"
	"strings"
)

// Genres is the closed genre vocabulary the extraction service selects from.
var Genres = []string{
	"drama", "war", "crime", "animation", "comedy", "romance", "history", "family",
	"sci-fi", "documentary", "music", "tv movie", "children", "imax", "western",
	"musical", "film noir", "action", "fantasy", "mystery", "horror", "thriller",
	"adventure",
}

// IsKnownGenre reports whether name belongs to the vocabulary, ignoring case.
func IsKnownGenre(name string) bool {
	return slices.Contains(Genres, strings.ToLower(strings.TrimSpace(name)))
}

// ParseGenreList splits a comma separated genre list, trimming blanks and dropping empties.
func ParseGenreList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
