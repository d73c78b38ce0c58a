package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/chapters", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"number":1,"name":"Al-Fatihah","translatedName":"The Opening","verseCount":7}]`))
	})
	mux.HandleFunc("/chapters/1/verses", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"chapterNumber":1,"verseNumber":1,"arabicText":"بِسْمِ","pageNumber":1,"juzNumber":1},
			{"chapterNumber":1,"verseNumber":2,"arabicText":"ٱلْحَمْدُ","pageNumber":1,"juzNumber":1}
		]`))
	})
	mux.HandleFunc("/chapters/1/verses/9", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/pages/604", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/juz/31", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userId") != "tester" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId":"tester","chapterName":"Al-Fatihah","verseNumber":5,"pageNumber":1,"juzNumber":1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestChaptersFetchedOncePerClient(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"number":1,"name":"Al-Fatihah","verseCount":7}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL)
	for i := 0; i < 3; i++ {
		chapters, err := c.Chapters(context.Background())
		if err != nil {
			t.Fatalf("chapters: %v", err)
		}
		if len(chapters) != 1 || chapters[0].VerseCount != 7 {
			t.Fatalf("chapters = %v", chapters)
		}
	}
	if calls != 1 {
		t.Errorf("chapter list fetched %d times; want once per client lifetime", calls)
	}
}

func TestChapterVersesDecode(t *testing.T) {
	c := NewClient(testServer(t).URL)

	verses, err := c.ChapterVerses(context.Background(), 1)
	if err != nil {
		t.Fatalf("chapter verses: %v", err)
	}
	if len(verses) != 2 || verses[1].VerseNumber != 2 {
		t.Fatalf("verses = %v", verses)
	}
	if verses[0].JuzNumber != 1 || verses[0].PageNumber != 1 {
		t.Errorf("coordinates not decoded: %+v", verses[0])
	}
}

func TestEmptyVerseResultIsNotFound(t *testing.T) {
	c := NewClient(testServer(t).URL)

	_, err := c.ChapterVerse(context.Background(), 1, 9)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound for an empty single-verse result", err)
	}
}

func TestServerErrorIsUnavailable(t *testing.T) {
	c := NewClient(testServer(t).URL)

	_, err := c.Page(context.Background(), 604)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v; want ErrUnavailable on a 500", err)
	}
}

func TestMissingRouteIsNotFound(t *testing.T) {
	c := NewClient(testServer(t).URL)

	_, err := c.Juz(context.Background(), 31)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound on a 404", err)
	}
}

func TestBookmarkDecodedForKnownUser(t *testing.T) {
	c := NewClient(testServer(t).URL)

	b, err := c.Bookmark(context.Background(), "tester")
	if err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	if b.ChapterName != "Al-Fatihah" || b.VerseNumber != 5 || b.PageNumber != 1 {
		t.Errorf("bookmark = %+v", b)
	}
}

func TestMissingBookmarkIsNotFound(t *testing.T) {
	c := NewClient(testServer(t).URL)

	_, err := c.Bookmark(context.Background(), "stranger")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v; want ErrNotFound when no bookmark exists", err)
	}
}

func TestStripFootnotes(t *testing.T) {
	cases := []struct{ in, want string }{
		{"In the name of God[1], the Merciful[2].", "In the name of God, the Merciful."},
		{"No markers here.", "No markers here."},
		{"", ""},
		{"[3] leading marker", "leading marker"},
	}
	for _, c := range cases {
		if got := StripFootnotes(c.in); got != c.want {
			t.Errorf("StripFootnotes(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
