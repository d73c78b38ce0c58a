// Package tajwid decorates Arabic text with pronunciation-rule categories
// for visual highlighting. Rules are applied in a fixed priority order over
// non-overlapping spans; the original text is always recoverable by
// stripping the markers.
package tajwid

import (
	"regexp"
	"sort"
	"strings"
)

// Markers delimit an annotated span: ⟪id⟫text⟪/id⟫. The characters do not
// occur in Arabic script, so stripping them restores the input verbatim.
const (
	markOpen  = "⟪"
	markClose = "⟫"
)

type Rule struct {
	ID      string
	Pattern *regexp.Regexp
}

// Arabic codepoints used by the rule patterns.
const (
	sukun   = "ْ"
	shadda  = "ّ"
	maddah  = "ٓ"
	fatha   = "َ"
	noon    = "ن"
	meem    = "م"
	ba      = "ب"
	tanwin  = "ًٌٍ"
	harakat = "ً-ٕ"
)

// rules is the fixed priority order: the nasalization family (ghunnah,
// iqlab, idgham, ikhfa) claims text before qalqalah, prolongation claims
// before the generic gemination mark. Earlier rules win on overlap.
var rules = []Rule{
	{ID: "ghunnah", Pattern: regexp.MustCompile("[" + noon + meem + "][" + harakat + "]?" + shadda + "[" + harakat + "]?")},
	{ID: "iqlab", Pattern: regexp.MustCompile("(?:" + noon + sukun + "?|[" + tanwin + "])\\s?" + ba)},
	{ID: "idgham", Pattern: regexp.MustCompile("(?:" + noon + sukun + "?|[" + tanwin + "])\\s[يرملون]")},
	{ID: "ikhfa", Pattern: regexp.MustCompile("(?:" + noon + sukun + "?|[" + tanwin + "])\\s?[تثجدذزسشصضطظفقك]")},
	{ID: "qalqalah", Pattern: regexp.MustCompile("[قطبجد]" + sukun)},
	{ID: "madd", Pattern: regexp.MustCompile("[اوى]" + maddah + "|" + fatha + "[اى]" + maddah + "?")},
	{ID: "shadda", Pattern: regexp.MustCompile("\\S[" + harakat + "]?" + shadda)},
}

// Rules returns the fixed ordered rule set.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

type Annotator struct {
	rules []Rule
}

// New builds an annotator over the given rules, or the default set when
// none are given.
func New(custom ...Rule) *Annotator {
	if len(custom) == 0 {
		custom = Rules()
	}
	return &Annotator{rules: custom}
}

type span struct {
	start, end int
	ruleID     string
}

// Annotate wraps every rule match in category markers. Each byte of input
// belongs to at most one span: candidate matches from a later rule that
// overlap an already-claimed span are dropped, so no range is ever wrapped
// twice regardless of how the rule patterns overlap.
func (a *Annotator) Annotate(text string) string {
	if text == "" {
		return ""
	}

	var claimed []span
	for _, rule := range a.rules {
		for _, m := range rule.Pattern.FindAllStringIndex(text, -1) {
			if overlaps(claimed, m[0], m[1]) {
				continue
			}
			claimed = append(claimed, span{start: m[0], end: m[1], ruleID: rule.ID})
		}
	}
	if len(claimed) == 0 {
		return text
	}

	sort.Slice(claimed, func(i, j int) bool { return claimed[i].start < claimed[j].start })

	var sb strings.Builder
	pos := 0
	for _, sp := range claimed {
		sb.WriteString(text[pos:sp.start])
		sb.WriteString(markOpen + sp.ruleID + markClose)
		sb.WriteString(text[sp.start:sp.end])
		sb.WriteString(markOpen + "/" + sp.ruleID + markClose)
		pos = sp.end
	}
	sb.WriteString(text[pos:])
	return sb.String()
}

// Annotate applies the default rule set.
func Annotate(text string) string {
	return New().Annotate(text)
}

var markRe = regexp.MustCompile(markOpen + "/?[a-z]+" + markClose)

// Strip removes all annotation markers, restoring the original text.
func Strip(text string) string {
	return markRe.ReplaceAllString(text, "")
}

var spanRe = regexp.MustCompile(markOpen + "([a-z]+)" + markClose + "([^" + markOpen + "]*)" + markOpen + "/[a-z]+" + markClose)

// Render replaces each annotated span with fn(ruleID, spanText), leaving
// unannotated text untouched.
func Render(text string, fn func(ruleID, span string) string) string {
	return spanRe.ReplaceAllStringFunc(text, func(s string) string {
		parts := spanRe.FindStringSubmatch(s)
		return fn(parts[1], parts[2])
	})
}

func overlaps(claimed []span, start, end int) bool {
	for _, sp := range claimed {
		if start < sp.end && end > sp.start {
			return true
		}
	}
	return false
}
