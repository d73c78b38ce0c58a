package scope

import (
	"testing"

	"quran-tui/internal/api"
)

func chapterList(n int) []api.Chapter {
	chapters := make([]api.Chapter, n)
	for i := range chapters {
		chapters[i] = api.Chapter{Number: i + 1}
	}
	return chapters
}

func TestNextAtCorpusEdges(t *testing.T) {
	chapters := chapterList(114)

	if _, ok := Next(Chapter{Number: 114}, chapters); ok {
		t.Errorf("chapter 114 must have no next scope")
	}
	if next, ok := Next(Chapter{Number: 1}, chapters); !ok || next != (Chapter{Number: 2}) {
		t.Errorf("next of chapter 1 = %v, %v; want chapter 2", next, ok)
	}
	if _, ok := Next(Page{Number: MaxPage}, chapters); ok {
		t.Errorf("page %d must have no next scope", MaxPage)
	}
	if _, ok := Next(Juz{Number: MaxJuz}, chapters); ok {
		t.Errorf("juz %d must have no next scope", MaxJuz)
	}
	if next, ok := Next(Juz{Number: 29}, chapters); !ok || next != (Juz{Number: 30}) {
		t.Errorf("next of juz 29 = %v, %v; want juz 30", next, ok)
	}
}

func TestPrevAtCorpusEdges(t *testing.T) {
	chapters := chapterList(114)

	if _, ok := Prev(Page{Number: 1}, chapters); ok {
		t.Errorf("page 1 must have no previous scope")
	}
	if _, ok := Prev(Chapter{Number: 1}, chapters); ok {
		t.Errorf("chapter 1 must have no previous scope")
	}
	if prev, ok := Prev(Juz{Number: 2}, chapters); !ok || prev != (Juz{Number: 1}) {
		t.Errorf("prev of juz 2 = %v, %v; want juz 1", prev, ok)
	}
}

func TestSearchHasNoNeighbors(t *testing.T) {
	chapters := chapterList(114)
	if _, ok := Next(Search{Query: "mercy"}, chapters); ok {
		t.Errorf("search results must have no next scope")
	}
	if _, ok := Prev(Search{Query: "mercy"}, chapters); ok {
		t.Errorf("search results must have no previous scope")
	}
}

func TestOneVerseChapterIsStartAndEnd(t *testing.T) {
	meta := &api.Chapter{Number: 108, VerseCount: 1}
	verses := []api.Verse{{ChapterNumber: 108, VerseNumber: 1, PageNumber: 602, JuzNumber: 30}}
	s := Chapter{Number: 108}

	if !AtStart(s, verses) {
		t.Errorf("one-verse chapter must be at start")
	}
	if !AtEnd(s, verses, meta) {
		t.Errorf("one-verse chapter must be at end")
	}
}

func TestChapterBoundaries(t *testing.T) {
	meta := &api.Chapter{Number: 1, VerseCount: 7}
	verses := make([]api.Verse, 7)
	for i := range verses {
		verses[i] = api.Verse{ChapterNumber: 1, VerseNumber: i + 1}
	}

	if !AtEnd(Chapter{Number: 1}, verses, meta) {
		t.Errorf("chapter loaded through its last verse must be at end")
	}
	if !AtStart(Chapter{Number: 1}, verses) {
		t.Errorf("chapter loaded from verse 1 must be at start")
	}
	if AtEnd(Chapter{Number: 1}, verses[:5], meta) {
		t.Errorf("chapter truncated before its last verse must not be at end")
	}
	if AtStart(Chapter{Number: 1, Verse: 3}, verses[2:3]) {
		t.Errorf("single verse 3 must not be at start")
	}
}

func TestPageBoundaries(t *testing.T) {
	verses := []api.Verse{
		{ChapterNumber: 2, VerseNumber: 6, PageNumber: 3, JuzNumber: 1},
		{ChapterNumber: 2, VerseNumber: 7, PageNumber: 3, JuzNumber: 1},
		{ChapterNumber: 2, VerseNumber: 8, PageNumber: 3, JuzNumber: 1},
	}

	if !AtEnd(Page{Number: 3}, verses, nil) {
		t.Errorf("fully loaded page must be at end")
	}
	if AtStart(Page{Number: 3}, verses) {
		t.Errorf("page 3 must not be at start")
	}
	if !AtStart(Page{Number: 1}, []api.Verse{{ChapterNumber: 1, VerseNumber: 1, PageNumber: 1}}) {
		t.Errorf("page 1 must be at start")
	}
	// Out-of-order list: a later verse of the same page follows the last record.
	shuffled := []api.Verse{verses[1], verses[2], verses[0]}
	if AtEnd(Page{Number: 3}, shuffled, nil) {
		t.Errorf("page with a later verse after the last record must not be at end")
	}
}

func TestJuzBoundariesAcrossChapters(t *testing.T) {
	// A juz spans a chapter boundary; verse numbers restart but canonical
	// (chapter, verse) order keeps increasing.
	verses := []api.Verse{
		{ChapterNumber: 1, VerseNumber: 6, JuzNumber: 1},
		{ChapterNumber: 1, VerseNumber: 7, JuzNumber: 1},
		{ChapterNumber: 2, VerseNumber: 1, JuzNumber: 1},
		{ChapterNumber: 2, VerseNumber: 2, JuzNumber: 1},
	}

	if !AtEnd(Juz{Number: 1}, verses, nil) {
		t.Errorf("juz loaded through its last record must be at end")
	}
	// Canonically later verses of the same juz after the last record.
	reordered := []api.Verse{verses[2], verses[3], verses[0], verses[1]}
	if AtEnd(Juz{Number: 1}, reordered, nil) {
		t.Errorf("juz with later verses after the last record must not be at end")
	}
	if !AtStart(Juz{Number: 1}, verses) {
		t.Errorf("juz 1 must be at start")
	}
	if AtStart(Juz{Number: 5}, []api.Verse{{ChapterNumber: 4, VerseNumber: 24, JuzNumber: 5}}) {
		t.Errorf("juz 5 must not be at start")
	}
}

func TestEmptyListIsNeitherStartNorEnd(t *testing.T) {
	if AtEnd(Page{Number: 1}, nil, nil) || AtStart(Page{Number: 1}, nil) {
		t.Errorf("empty verse list must be neither at start nor at end")
	}
}
