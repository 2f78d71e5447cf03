package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/oneday-app/oneday-server/models"
)

// maxCandidates caps how many matching notes a free-text query may return
// before the assistant asks the user to pick one.
const maxCandidates = 3

// resolutionOutcome classifies the result of a note-reference resolution
// attempt.
type resolutionOutcome int

const (
	// resolvedHit means exactly one target note was identified.
	resolvedHit resolutionOutcome = iota

	// resolvedNotFound means the reference pointed at nothing.
	resolvedNotFound

	// resolvedAmbiguous means several notes match; candidates carries them.
	resolvedAmbiguous

	// resolvedUnderspecified means the intent carried no usable reference.
	resolvedUnderspecified
)

// resolution is the outcome of resolving an intent's note reference.
type resolution struct {
	outcome    resolutionOutcome
	note       models.Note
	candidates []models.Note
}

// numberedLine matches one rendered list entry of the form "<N>. <content>".
var numberedLine = regexp.MustCompile(`(?m)^\s*(\d+)\.\s+(.+)$`)

// resolveNoteReference determines which of the owner's notes an intent
// refers to. notes must be ordered by creation time descending (the order
// lists are rendered in); lastListing is the most recent assistant turn that
// rendered a numbered list, used to recover ordinal references against it.
//
// The reference kinds are tried in fixed precedence: direct identifier,
// ordinal selection (with or without an accompanying query), free-text
// query, nothing.
func resolveNoteReference(intent models.Intent, notes []models.Note, lastListing string) resolution {
	if intent.NoteID != "" {
		for _, note := range notes {
			if note.ID == intent.NoteID {
				return resolution{outcome: resolvedHit, note: note}
			}
		}
		return resolution{outcome: resolvedNotFound}
	}

	if intent.Selection > 0 {
		return resolveBySelection(intent, notes, lastListing)
	}

	if intent.Query != "" {
		return resolveByQuery(intent.Query, notes)
	}

	return resolution{outcome: resolvedUnderspecified}
}

// resolveBySelection handles a 1-based ordinal reference. When a query
// accompanies the selection, the ordinal indexes into the filtered note set.
// Otherwise the numbered list is re-derived from the most recent list-bearing
// assistant message and the selected entry's snippet is matched back against
// the notes.
func resolveBySelection(intent models.Intent, notes []models.Note, lastListing string) resolution {
	index := intent.Selection - 1

	if intent.Query != "" {
		filtered := matchNotes(notes, intent.Query, 0)
		if index >= len(filtered) {
			return resolution{outcome: resolvedNotFound}
		}
		return resolution{outcome: resolvedHit, note: filtered[index]}
	}

	snippets := parseNumberedList(lastListing)
	snippet, ok := snippets[intent.Selection]
	if !ok {
		return resolution{outcome: resolvedNotFound}
	}

	// rendered entries are truncated for display; the ellipsis must come
	// off before the snippet can match the full note text again
	snippet = detruncate(snippet)
	if snippet == "" {
		return resolution{outcome: resolvedNotFound}
	}

	lowered := strings.ToLower(snippet)
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Text), lowered) {
			return resolution{outcome: resolvedHit, note: note}
		}
	}

	return resolution{outcome: resolvedNotFound}
}

// resolveByQuery filters the owner's notes by case-insensitive substring
// match. Zero matches is a miss, one match resolves, several become a
// disambiguation candidate set capped at maxCandidates.
func resolveByQuery(query string, notes []models.Note) resolution {
	matches := matchNotes(notes, query, maxCandidates)

	switch len(matches) {
	case 0:
		return resolution{outcome: resolvedNotFound}
	case 1:
		return resolution{outcome: resolvedHit, note: matches[0]}
	default:
		return resolution{outcome: resolvedAmbiguous, candidates: matches}
	}
}

// matchNotes returns the notes whose text contains the query,
// case-insensitively, preserving the incoming (creation descending) order.
// A limit of zero means no cap.
func matchNotes(notes []models.Note, query string, limit int) []models.Note {
	lowered := strings.ToLower(strings.TrimSpace(query))
	if lowered == "" {
		return nil
	}

	matches := make([]models.Note, 0, len(notes))
	for _, note := range notes {
		if strings.Contains(strings.ToLower(note.Text), lowered) {
			matches = append(matches, note)
			if limit > 0 && len(matches) == limit {
				break
			}
		}
	}

	return matches
}

// parseNumberedList extracts "<N>. <content>" entries from a rendered
// assistant message, keyed by their printed ordinal.
func parseNumberedList(message string) map[int]string {
	entries := map[int]string{}

	for _, match := range numberedLine.FindAllStringSubmatch(message, -1) {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			continue
		}
		entries[n] = strings.TrimSpace(match[2])
	}

	return entries
}

// detruncate strips the display-truncation ellipsis from a rendered snippet.
func detruncate(snippet string) string {
	snippet = strings.TrimSuffix(snippet, "…")
	snippet = strings.TrimSuffix(snippet, "...")
	return strings.TrimSpace(snippet)
}
