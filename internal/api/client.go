package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.alquran.cloud/v1"

// ErrUnavailable marks transport failures and non-2xx provider responses.
// ErrNotFound marks a valid selection that matched zero records.
var (
	ErrUnavailable = errors.New("content provider unavailable")
	ErrNotFound    = errors.New("not found")
)

type Client struct {
	rc       *resty.Client
	chapters []Chapter
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &Client{rc: rc}
}

type Chapter struct {
	Number         int    `json:"number"`
	Name           string `json:"name"`
	TranslatedName string `json:"translatedName"`
	VerseCount     int    `json:"verseCount"`
}

type Verse struct {
	ChapterNumber   int    `json:"chapterNumber"`
	VerseNumber     int    `json:"verseNumber"`
	ArabicText      string `json:"arabicText"`
	TranslationText string `json:"translationText,omitempty"`
	PageNumber      int    `json:"pageNumber,omitempty"`
	JuzNumber       int    `json:"juzNumber,omitempty"`
	ChapterName     string `json:"chapterName,omitempty"`
}

type Bookmark struct {
	UserID      string    `json:"userId"`
	ChapterName string    `json:"chapterName"`
	VerseNumber int       `json:"verseNumber"`
	PageNumber  int       `json:"pageNumber"`
	JuzNumber   int       `json:"juzNumber"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`
}

func (c *Client) get(ctx context.Context, out any, path string, args ...any) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetResult(out).
		Get(fmt.Sprintf(path, args...))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode())
	}
	return nil
}

// Chapters returns the static chapter list, fetched once and held for the
// client's lifetime.
func (c *Client) Chapters(ctx context.Context) ([]Chapter, error) {
	if c.chapters != nil {
		return c.chapters, nil
	}
	var chapters []Chapter
	if err := c.get(ctx, &chapters, "/chapters"); err != nil {
		return nil, err
	}
	c.chapters = chapters
	return chapters, nil
}

func (c *Client) Chapter(ctx context.Context, number int) (*Chapter, error) {
	var ch Chapter
	if err := c.get(ctx, &ch, "/chapters/%d", number); err != nil {
		return nil, err
	}
	return &ch, nil
}

func (c *Client) ChapterVerses(ctx context.Context, chapter int) ([]Verse, error) {
	var verses []Verse
	if err := c.get(ctx, &verses, "/chapters/%d/verses", chapter); err != nil {
		return nil, err
	}
	return verses, nil
}

// ChapterVerse fetches a single verse; the provider answers with a
// one-element list. An empty list is a NotFound, not a malformed response.
func (c *Client) ChapterVerse(ctx context.Context, chapter, verse int) ([]Verse, error) {
	var verses []Verse
	if err := c.get(ctx, &verses, "/chapters/%d/verses/%d", chapter, verse); err != nil {
		return nil, err
	}
	if len(verses) == 0 {
		return nil, ErrNotFound
	}
	return verses, nil
}

func (c *Client) Page(ctx context.Context, page int) ([]Verse, error) {
	var verses []Verse
	if err := c.get(ctx, &verses, "/pages/%d", page); err != nil {
		return nil, err
	}
	return verses, nil
}

func (c *Client) Juz(ctx context.Context, juz int) ([]Verse, error) {
	var verses []Verse
	if err := c.get(ctx, &verses, "/juz/%d", juz); err != nil {
		return nil, err
	}
	return verses, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]Verse, error) {
	var verses []Verse
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetResult(&verses).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode())
	}
	return verses, nil
}

// Bookmark returns the user's single bookmark, or ErrNotFound when none has
// been saved yet.
func (c *Client) Bookmark(ctx context.Context, userID string) (*Bookmark, error) {
	var b Bookmark
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&b).
		Get("/bookmarks")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode())
	}
	return &b, nil
}

// SaveBookmark upserts the user's single bookmark.
func (c *Client) SaveBookmark(ctx context.Context, b Bookmark) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetBody(b).
		Post("/bookmarks")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: provider returned status %d", ErrUnavailable, resp.StatusCode())
	}
	return nil
}

var footnoteRe = regexp.MustCompile(`\[\d+\]`)

// StripFootnotes removes [n]-style footnote markers from a translation.
func StripFootnotes(s string) string {
	return strings.Join(strings.Fields(footnoteRe.ReplaceAllString(s, "")), " ")
}
