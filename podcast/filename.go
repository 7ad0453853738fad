package podcast

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

const wordsPerMinute = 200

// SanitizeTitle keeps letters, numbers, spaces, hyphens and underscores,
// trims trailing whitespace and turns spaces into underscores.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimRight(b.String(), " "), " ", "_")
}

// AudioPath returns the WAV path for an episode title under dir.
func AudioPath(dir, title string) string {
	return filepath.Join(dir, "podcast_"+SanitizeTitle(title)+".wav")
}

// DurationEstimate approximates a script's spoken length from its word count:
// whole minutes at 200 words per minute, then the remainder divided by three
// as seconds.
func DurationEstimate(script string) string {
	words := len(strings.Fields(script))
	return fmt.Sprintf("%d min %d sec", words/wordsPerMinute, (words%wordsPerMinute)/3)
}
