package normalizer

import (
	"regexp"
	"strings"
)

// PositiveLabel is the raw dataset label encoded as the positive class.
const PositiveLabel = "bullying"

var (
	urlPattern     = regexp.MustCompile(`(?:https?|www)\S+`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	punctPattern   = regexp.MustCompile("[!\"#$%&'()*+,\\-./:;<=>?@\\[\\\\\\]^_`{|}~]")
	digitPattern   = regexp.MustCompile(`[0-9]`)
	spacePattern   = regexp.MustCompile(`\s+`)
)

// Normalize produces the canonical form of a raw message: lowercase, with
// URLs, @mentions, hashtag markers, ASCII punctuation, and digits removed,
// and whitespace collapsed to single spaces. It is deterministic and
// idempotent.
//
// The cleaning pass repeats until the text stops changing: removing
// punctuation or digits can splice the surrounding characters into a fresh
// URL-shaped token ("w.w.w.x" becomes "wwwx"), which only a further pass
// strips. A changed pass always shortens the text, so the loop terminates.
func Normalize(text string) string {
	s := strings.ToLower(text)
	for {
		next := cleanPass(s)
		if next == s {
			return s
		}
		s = next
	}
}

func cleanPass(s string) string {
	s = urlPattern.ReplaceAllString(s, "")
	s = mentionPattern.ReplaceAllString(s, "")
	s = punctPattern.ReplaceAllString(s, "")
	s = digitPattern.ReplaceAllString(s, "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EncodeLabel maps a raw dataset label to its binary class: 1 for the
// "bullying" label (case-insensitive), 0 for everything else. The match is
// exact after lowercasing; labels carrying stray whitespace do not count as
// positive, so upstream label vocabularies must be clean.
func EncodeLabel(raw string) int {
	if strings.ToLower(raw) == PositiveLabel {
		return 1
	}
	return 0
}
