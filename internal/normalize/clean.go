package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/dgallion1/quizgest/internal/lexicon"
)

var (
	pageMarker = regexp.MustCompile(`(?i)^(?:-*\s*page\s+\d+(?:\s+of\s+\d+)?\s*-*|-\s*\d+\s*-|\[\s*page\s+\d+\s*\]|-{2,}\s*page\s+break\s*-{2,}|\d{1,4})$`)
	legalLine  = regexp.MustCompile(`(?i)^(?:copyright\b|©|\(c\)\s*\d{4}|isbn\b|published\s+by\b|all\s+rights\s+reserved)`)
	hyphenWrap = regexp.MustCompile(`(\p{L})-\n[ \t]*(\p{Ll})`)
	blankLines = regexp.MustCompile(`\n[ \t]*\n`)
)

var artifactReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\f", "\n\n",
	"\ufb00", "ff",
	"\ufb01", "fi",
	"\ufb02", "fl",
	"\ufb03", "ffi",
	"\ufb04", "ffl",
	"\u00ad", "",
	"\u00a0", " ",
	"\u2018", "'",
	"\u2019", "'",
	"\u201c", `"`,
	"\u201d", `"`,
)

// clean removes extraction artifacts line by line: page markers, control
// characters, legal boilerplate and lines that are mostly symbol noise.
func clean(raw string) string {
	text := artifactReplacer.Replace(raw)
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || !unicode.IsControl(r) {
			return r
		}
		return -1
	}, text)
	text = hyphenWrap.ReplaceAllString(text, "$1$2")

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && (pageMarker.MatchString(trimmed) || legalLine.MatchString(trimmed) || isNoise(trimmed)) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// isNoise reports lines where letters make up less than 30% of the visible runes.
func isNoise(line string) bool {
	visible, letters := 0, 0
	for _, r := range line {
		if unicode.IsSpace(r) {
			continue
		}
		visible++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	return visible >= 3 && float64(letters) < 0.3*float64(visible)
}

// splitParagraphs splits on blank lines, drops boilerplate sections and
// collapses whitespace inside each remaining paragraph.
func splitParagraphs(text string, lex *lexicon.Lexicon) []string {
	var out []string
	for _, block := range blankLines.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" || isBoilerplate(block, lex) {
			continue
		}
		out = append(out, strings.Join(strings.Fields(block), " "))
	}
	return out
}

// isBoilerplate reports whether a block opens with a boilerplate heading such
// as "References" or "About the Author".
func isBoilerplate(block string, lex *lexicon.Lexicon) bool {
	first, _, _ := strings.Cut(block, "\n")
	first = strings.ToLower(strings.TrimSpace(first))
	first = strings.TrimRight(first, ":. ")
	for _, h := range lex.BoilerplateHeadings {
		if first == h {
			return true
		}
	}
	return false
}
