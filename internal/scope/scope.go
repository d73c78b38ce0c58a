// Package scope models the three addressing schemes over the corpus and
// answers boundary/adjacency questions about the active view without any
// network access.
package scope

import "quran-tui/internal/api"

const (
	MaxPage = 604
	MaxJuz  = 30
)

// Scope is the active addressing mode. Exactly one scope is active at a
// time; it is replaced wholesale on every navigation action.
type Scope interface {
	isScope()
}

// Chapter addresses a whole chapter, or a single verse when Verse > 0.
type Chapter struct {
	Number int
	Verse  int
}

// Page addresses one of the 604 fixed print-layout pages.
type Page struct {
	Number int
}

// Juz addresses one of the 30 canonical divisions.
type Juz struct {
	Number int
}

// Search addresses the result set of a free-text query.
type Search struct {
	Query string
}

func (Chapter) isScope() {}
func (Page) isScope()    {}
func (Juz) isScope()     {}
func (Search) isScope()  {}

// AtEnd reports whether the loaded verse list has reached the end of the
// active scope. The check scans the loaded list only; it never consults the
// provider. Search results have no end to reach.
func AtEnd(s Scope, verses []api.Verse, meta *api.Chapter) bool {
	if len(verses) == 0 {
		return false
	}
	last := verses[len(verses)-1]
	switch s.(type) {
	case Chapter:
		return meta != nil && last.VerseNumber == meta.VerseCount
	case Page:
		for _, v := range verses {
			if v.PageNumber == last.PageNumber && v.VerseNumber > last.VerseNumber {
				return false
			}
		}
		return true
	case Juz:
		for _, v := range verses {
			if v.JuzNumber == last.JuzNumber && after(v, last) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AtStart mirrors AtEnd for the first loaded record. A one-verse scope is
// simultaneously at start and at end.
func AtStart(s Scope, verses []api.Verse) bool {
	if len(verses) == 0 {
		return false
	}
	first := verses[0]
	switch s.(type) {
	case Chapter:
		return first.VerseNumber == 1
	case Page:
		return first.PageNumber == 1
	case Juz:
		return first.JuzNumber == 1
	default:
		return false
	}
}

// Next returns the scope adjacent after s, or false at the corpus edge and
// for search results.
func Next(s Scope, chapters []api.Chapter) (Scope, bool) {
	switch sc := s.(type) {
	case Chapter:
		if hasChapter(chapters, sc.Number+1) {
			return Chapter{Number: sc.Number + 1}, true
		}
	case Page:
		if sc.Number < MaxPage {
			return Page{Number: sc.Number + 1}, true
		}
	case Juz:
		if sc.Number < MaxJuz {
			return Juz{Number: sc.Number + 1}, true
		}
	}
	return nil, false
}

// Prev returns the scope adjacent before s, or false at the corpus edge and
// for search results.
func Prev(s Scope, chapters []api.Chapter) (Scope, bool) {
	switch sc := s.(type) {
	case Chapter:
		if sc.Number > 1 && hasChapter(chapters, sc.Number-1) {
			return Chapter{Number: sc.Number - 1}, true
		}
	case Page:
		if sc.Number > 1 {
			return Page{Number: sc.Number - 1}, true
		}
	case Juz:
		if sc.Number > 1 {
			return Juz{Number: sc.Number - 1}, true
		}
	}
	return nil, false
}

// after reports whether a sorts after b in canonical (chapter, verse) order.
func after(a, b api.Verse) bool {
	if a.ChapterNumber != b.ChapterNumber {
		return a.ChapterNumber > b.ChapterNumber
	}
	return a.VerseNumber > b.VerseNumber
}

func hasChapter(chapters []api.Chapter, number int) bool {
	for _, ch := range chapters {
		if ch.Number == number {
			return true
		}
	}
	return false
}
