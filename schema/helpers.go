package schema

import (
	"strings"
	"unicode"
)

// cleanParts cleans a slice of name parts by trimming non-letter punctuation from ends.
func cleanParts(parts []string) []string {
	var cleaned []string
	for _, p := range parts {
		cp := strings.TrimFunc(p, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '-' && r != '\''
		})
		if cp != "" {
			cleaned = append(cleaned, cp)
		}
	}
	return cleaned
}

// getInitial extracts the initial from the last name part, using the first rune for Unicode safety.
func getInitial(last string) string {
	rr := []rune(last)
	if len(rr) > 0 {
		return string(rr[0])
	}
	return ""
}

// AbbreviateName formats "Ann Smith" to "Ann S".
// Single-word names are returned unchanged.
func AbbreviateName(name string) string {
	trimmedName := strings.TrimSpace(name)
	cleaned := cleanParts(strings.Fields(trimmedName))

	if len(cleaned) >= 2 {
		first := cleaned[0]
		initial := getInitial(cleaned[len(cleaned)-1])
		if initial != "" {
			return first + " " + initial
		}
		return first
	}
	if len(cleaned) == 1 {
		return cleaned[0]
	}
	return trimmedName
}

// AbbreviatePlayers applies abbreviation to every player in the slice.
// When two players abbreviate to the same label, both keep their full name.
func AbbreviatePlayers(players []string) []string {
	abbreviated := make([]string, len(players))
	seen := make(map[string]int, len(players))
	for i, p := range players {
		abbreviated[i] = AbbreviateName(p)
		seen[abbreviated[i]]++
	}
	for i, p := range players {
		if seen[abbreviated[i]] > 1 {
			abbreviated[i] = p
		}
	}
	return abbreviated
}

// SplitPlayers parses a comma-separated player list, trimming blanks and dropping duplicates.
// Names stay case-sensitive.
func SplitPlayers(list string) []string {
	var players []string
	seen := make(map[string]struct{})
	for _, raw := range strings.Split(list, ",") {
		name := strings.Join(strings.Fields(raw), " ")
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		players = append(players, name)
	}
	return players
}
