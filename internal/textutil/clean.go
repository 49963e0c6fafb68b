package textutil

import (
	"regexp"
	"strings"

	"subtrans/internal/language"
)

var (
	parentheticalPattern = regexp.MustCompile(`[\(（][^)）]*[\)）]`)
	whitespaceRunPattern = regexp.MustCompile(`[\s\p{Zs}]{2,}`)
	noteLinePattern      = regexp.MustCompile(`(?i)^\s*(note|注意|请注意|译文|translation)\s*[:：]`)
	noteMarkerPattern    = regexp.MustCompile(`(?i)(note:|translation:|请注意|译文)`)
	quotedPrefixPattern  = regexp.MustCompile(`^(".*?")\s.*$`)
)

type quotePair struct {
	open, close string
}

var quotePairs = []quotePair{
	{open: `"`, close: `"`},
	{open: "“", close: "”"},
}

// CleanTranslation normalizes raw backend output for the target language.
// The pass is repeated until the text stops changing; every step only
// removes characters, so the loop ends and the result is a fixed point.
func CleanTranslation(text, lang string) string {
	ideographic := language.UsesIdeographicCleanup(lang)
	current := text
	for {
		next := cleanPass(current, ideographic)
		if next == current {
			return current
		}
		current = next
	}
}

func cleanPass(text string, ideographic bool) string {
	text = peelQuotes(text)
	if !ideographic {
		return text
	}
	text = parentheticalPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRunPattern.ReplaceAllString(text, " "))
	text = stripNotes(text)
	text = quotedPrefixPattern.ReplaceAllString(text, "$1")
	return peelQuotes(text)
}

// peelQuotes removes an outer quote pair spanning the whole text, repeating
// while one remains.
func peelQuotes(text string) string {
	text = strings.TrimSpace(text)
	for {
		peeled := false
		for _, pair := range quotePairs {
			if len(text) < len(pair.open)+len(pair.close) {
				continue
			}
			if !strings.HasPrefix(text, pair.open) || !strings.HasSuffix(text, pair.close) {
				continue
			}
			text = strings.TrimSpace(text[len(pair.open) : len(text)-len(pair.close)])
			peeled = true
			break
		}
		if !peeled {
			return text
		}
	}
}

func stripNotes(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if noteLinePattern.MatchString(line) {
			continue
		}
		if loc := noteMarkerPattern.FindStringIndex(line); loc != nil {
			line = strings.TrimSpace(line[:loc[0]])
			if line == "" {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
