package facts

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/quizgest/internal/analyze"
	"github.com/dgallion1/quizgest/internal/calibrate"
	"github.com/dgallion1/quizgest/internal/lexicon"
	"github.com/dgallion1/quizgest/internal/normalize"
)

func candidates(t *testing.T, text string) []CandidateFact {
	t.Helper()
	lex := lexicon.Default()
	doc, err := normalize.Normalize(text, lex, normalize.DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return Candidates(doc, analyze.Analyze(doc, lex), calibrate.For(calibrate.Medium), lex)
}

func extract(t *testing.T, text string, count int) []CandidateFact {
	t.Helper()
	lex := lexicon.Default()
	doc, err := normalize.Normalize(text, lex, normalize.DefaultConfig())
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return Extract(doc, analyze.Analyze(doc, lex), calibrate.For(calibrate.Medium), lex, count)
}

func single(t *testing.T, text string) CandidateFact {
	t.Helper()
	cs := candidates(t, text)
	if len(cs) != 1 {
		t.Fatalf("expected 1 candidate for %q, got %d", text, len(cs))
	}
	return cs[0]
}

func TestExtract_ScenarioSubjects(t *testing.T) {
	fs := extract(t, "The mitochondria is the powerhouse of the cell. Photosynthesis occurs in chloroplasts.", 2)
	if len(fs) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(fs))
	}
	if fs[0].Subject != "mitochondria" || fs[1].Subject != "chloroplasts" {
		t.Errorf("expected subjects mitochondria, chloroplasts; got %q, %q", fs[0].Subject, fs[1].Subject)
	}
	if !fs[0].IsDefinition() || fs[0].Copula != "is" || fs[0].Predicate != "the powerhouse of the cell" {
		t.Errorf("expected copula definition, got %+v", fs[0])
	}
	if fs[1].IsDefinition() {
		t.Errorf("did not expect a definition for the second fact")
	}
	if fs[0].InformativenessScore <= fs[1].InformativenessScore {
		t.Errorf("expected the in-band sentence to score higher: %v <= %v", fs[0].InformativenessScore, fs[1].InformativenessScore)
	}
}

func TestExtract_CountLimits(t *testing.T) {
	text := "The mitochondria is the powerhouse of the cell. Photosynthesis occurs in chloroplasts."
	if got := extract(t, text, 1); len(got) != 1 {
		t.Errorf("expected 1 fact, got %d", len(got))
	}
	if got := extract(t, text, 10); len(got) != 2 {
		t.Errorf("expected pool to be exhausted at 2, got %d", len(got))
	}
	if got := extract(t, text, 0); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil result, got %v", got)
	}
}

func TestDetectSubject_CopulaWithProperSubject(t *testing.T) {
	f := single(t, "The Eiffel Tower was completed in 1889 for the fair.")
	if f.Subject != "Eiffel Tower" || f.Category != Proper {
		t.Errorf("expected proper subject Eiffel Tower, got %q (%s)", f.Subject, f.Category)
	}
	if f.Copula != "was" || f.Predicate != "completed in 1889 for the fair" {
		t.Errorf("unexpected copula/predicate %q / %q", f.Copula, f.Predicate)
	}
	if f.Span != [2]int{1, 3} {
		t.Errorf("expected span [1 3], got %v", f.Span)
	}
}

func TestDetectSubject_PronounFallsThroughToTail(t *testing.T) {
	f := single(t, "It is a large organ of the human body.")
	if f.IsDefinition() {
		t.Error("pronoun subject should not yield a definition")
	}
	if f.Subject != "human body" || f.Category != Term {
		t.Errorf("expected tail subject human body, got %q (%s)", f.Subject, f.Category)
	}
}

func TestDetectSubject_NumberAndYear(t *testing.T) {
	f := single(t, "Water boils at 100 degrees at sea level.")
	if f.Subject != "100" || f.Category != Number {
		t.Errorf("expected number subject 100, got %q (%s)", f.Subject, f.Category)
	}

	f = single(t, "Napoleon crowned himself emperor in 1804 at Notre Dame.")
	if f.Subject != "1804" || f.Category != Year {
		t.Errorf("expected year subject 1804, got %q (%s)", f.Subject, f.Category)
	}

	f = single(t, "Roughly 71% of the surface holds liquid water.")
	if f.Subject != "71%" || f.Category != Number {
		t.Errorf("expected percentage subject 71%%, got %q (%s)", f.Subject, f.Category)
	}
}

func TestDetectSubject_ProperRun(t *testing.T) {
	f := single(t, "The armies of Rome crossed the river quickly.")
	if f.Subject != "Rome" || f.Category != Proper {
		t.Errorf("expected proper subject Rome, got %q (%s)", f.Subject, f.Category)
	}
}

func TestDetectSubject_KeywordFallbackLowersSentenceStart(t *testing.T) {
	f := single(t, "Enzymes accelerate chemical reactions considerably.")
	if f.Subject != "enzymes" || f.Category != Term {
		t.Errorf("expected keyword subject enzymes, got %q (%s)", f.Subject, f.Category)
	}
	if f.Span != [2]int{0, 1} {
		t.Errorf("expected span [0 1], got %v", f.Span)
	}
}

func TestCandidates_FiltersQuestionsAndTrivia(t *testing.T) {
	cs := candidates(t, "Why do leaves change color in autumn? This chapter describes the cell cycle in detail. Chlorophyll absorbs light in the leaves.")
	if len(cs) != 1 {
		t.Fatalf("expected only the factual sentence, got %d: %+v", len(cs), cs)
	}
	if !strings.HasPrefix(cs[0].Statement, "Chlorophyll") {
		t.Errorf("unexpected statement %q", cs[0].Statement)
	}
}

func TestCandidates_DropsRepeatedStatements(t *testing.T) {
	cs := candidates(t, "Cells divide by mitosis in tissues. Cells divide by mitosis in tissues.")
	if len(cs) != 1 {
		t.Errorf("expected repeated sentence once, got %d", len(cs))
	}
}

func TestExamWorthy_LengthBounds(t *testing.T) {
	lex := lexicon.Default()
	if examWorthy("Ice melts.", lex) {
		t.Error("expected short sentence to be rejected")
	}
	if !examWorthy("Ice melts at zero.", lex) {
		t.Error("expected 18-char sentence to pass")
	}
	if examWorthy(strings.Repeat("word ", 81), lex) {
		t.Error("expected sentence over 400 chars to be rejected")
	}
}

func TestSelect_DefersSameParagraph(t *testing.T) {
	cands := []CandidateFact{
		{SourceSentenceIndex: 0, Paragraph: 0, InformativenessScore: 0.9},
		{SourceSentenceIndex: 1, Paragraph: 0, InformativenessScore: 0.8},
		{SourceSentenceIndex: 2, Paragraph: 1, InformativenessScore: 0.5},
	}
	got := Select(cands, 3)
	order := []int{got[0].SourceSentenceIndex, got[1].SourceSentenceIndex, got[2].SourceSentenceIndex}
	if !reflect.DeepEqual(order, []int{0, 2, 1}) {
		t.Errorf("expected order [0 2 1], got %v", order)
	}
}

func TestSelect_TiesBreakBySentenceIndex(t *testing.T) {
	cands := []CandidateFact{
		{SourceSentenceIndex: 4, Paragraph: 0, InformativenessScore: 0.7},
		{SourceSentenceIndex: 1, Paragraph: 1, InformativenessScore: 0.7},
		{SourceSentenceIndex: 3, Paragraph: 2, InformativenessScore: 0.7},
	}
	got := Select(cands, 2)
	if len(got) != 2 || got[0].SourceSentenceIndex != 1 || got[1].SourceSentenceIndex != 3 {
		t.Errorf("expected sentences 1 then 3, got %+v", got)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := `The heart is a muscular organ that pumps blood. Blood carries oxygen to every tissue in the body.

The lungs exchange gases with the air. About 70 percent of the body is water. Harvey described circulation in 1628.`
	first := extract(t, text, 5)
	for range 20 {
		if again := extract(t, text, 5); !reflect.DeepEqual(first, again) {
			t.Fatalf("selection differs between runs:\n%+v\n%+v", first, again)
		}
	}
}
