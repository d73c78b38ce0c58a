package tajwid

import (
	"regexp"
	"strings"
	"testing"
)

// Opening of Surah Al-Ikhlas plus constructed fragments that exercise the
// nasalization and gemination rules.
const (
	textGhunnah  = "إِنَّ"   // noon with shadda
	textQalqalah = "لَقَدْ" // dal with sukun
	textVerse    = "قُلْ هُوَ ٱللَّهُ أَحَدٌ"
	textPlain    = "كتاب"
)

func TestAnnotateRoundTrip(t *testing.T) {
	inputs := []string{textGhunnah, textQalqalah, textVerse, textPlain, ""}
	for _, in := range inputs {
		got := Strip(Annotate(in))
		if got != in {
			t.Errorf("Strip(Annotate(%q)) = %q; want input back unchanged", in, got)
		}
	}
}

func TestAnnotateDeterministic(t *testing.T) {
	first := Annotate(textVerse)
	for i := 0; i < 5; i++ {
		if again := Annotate(textVerse); again != first {
			t.Fatalf("annotation is not deterministic: %q vs %q", first, again)
		}
	}
}

func TestGhunnahWinsOverShadda(t *testing.T) {
	// Noon+shadda matches both the ghunnah rule and the generic shadda
	// rule over the same range; only the earlier rule may claim it.
	out := Annotate(textGhunnah)

	if !strings.Contains(out, markOpen+"ghunnah"+markClose) {
		t.Fatalf("expected a ghunnah span in %q", out)
	}
	if strings.Contains(out, markOpen+"shadda"+markClose) {
		t.Errorf("generic shadda rule re-claimed a ghunnah range: %q", out)
	}
}

func TestNoNestedSpans(t *testing.T) {
	out := Annotate(textVerse)

	depth := 0
	for _, tok := range regexp.MustCompile(markOpen+`(/?)[a-z]+`+markClose).FindAllStringSubmatch(out, -1) {
		if tok[1] == "" {
			depth++
		} else {
			depth--
		}
		if depth < 0 || depth > 1 {
			t.Fatalf("nested or unbalanced spans in %q", out)
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced spans in %q", out)
	}
}

func TestQalqalahAnnotated(t *testing.T) {
	out := Annotate(textQalqalah)
	if !strings.Contains(out, markOpen+"qalqalah"+markClose) {
		t.Errorf("expected a qalqalah span for the sukun on dal in %q", out)
	}
}

func TestPlainTextUntouched(t *testing.T) {
	if out := Annotate(textPlain); out != textPlain {
		t.Errorf("text without rule matches must pass through unchanged, got %q", out)
	}
}

func TestStripIdempotent(t *testing.T) {
	out := Annotate(textVerse)
	once := Strip(out)
	if twice := Strip(once); twice != once {
		t.Errorf("Strip must be idempotent")
	}
}

func TestCustomRuleOrderDecidesWinner(t *testing.T) {
	a := regexp.MustCompile("ab")
	b := regexp.MustCompile("abc")
	first := New(Rule{ID: "madd", Pattern: a}, Rule{ID: "ikhfa", Pattern: b})
	out := first.Annotate("abc")

	if !strings.Contains(out, markOpen+"madd"+markClose+"ab"+markOpen+"/madd"+markClose) {
		t.Fatalf("earlier rule must win the overlapping range, got %q", out)
	}
	if strings.Contains(out, "ikhfa") {
		t.Errorf("later overlapping rule must be dropped, got %q", out)
	}
}
