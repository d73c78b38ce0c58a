package ui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"quran-tui/internal/api"
	"quran-tui/internal/audio"
	"quran-tui/internal/scope"
	"quran-tui/internal/settings"
	"quran-tui/internal/theme"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Provider is the content backend the reader navigates over. *api.Client
// satisfies it; tests supply fakes.
type Provider interface {
	Chapters(ctx context.Context) ([]api.Chapter, error)
	Chapter(ctx context.Context, number int) (*api.Chapter, error)
	ChapterVerses(ctx context.Context, chapter int) ([]api.Verse, error)
	ChapterVerse(ctx context.Context, chapter, verse int) ([]api.Verse, error)
	Page(ctx context.Context, page int) ([]api.Verse, error)
	Juz(ctx context.Context, juz int) ([]api.Verse, error)
	Search(ctx context.Context, query string) ([]api.Verse, error)
	Bookmark(ctx context.Context, userID string) (*api.Bookmark, error)
	SaveBookmark(ctx context.Context, b api.Bookmark) error
}

// versePlayer is the per-verse playback controller; audio.Player satisfies
// it, tests fake it.
type versePlayer interface {
	Toggle(ctx context.Context, sources []string) error
	Stop()
	State() audio.State
}

type inputMode int

const (
	modeReader inputMode = iota
	modeGotoChapter
	modeGotoVerse
	modeGotoPage
	modeGotoJuz
	modeSearch
)

type Model struct {
	client Provider
	userID string

	viewport  viewport.Model
	textInput textinput.Model
	mode      inputMode

	chapters    []api.Chapter
	chapterMeta *api.Chapter

	scope    scope.Scope
	verses   []api.Verse
	selected int

	title     string
	pageLabel string
	juzLabel  string

	seq     int
	loading bool
	errText string
	status  string

	players   map[string]versePlayer
	newPlayer func() versePlayer

	settings settings.Settings
	theme    theme.Theme

	width  int
	height int
	ready  bool
}

type chaptersLoadedMsg struct {
	chapters []api.Chapter
	err      error
}

type versesLoadedMsg struct {
	seq    int
	scope  scope.Scope
	verses []api.Verse
	meta   *api.Chapter
}

type loadFailedMsg struct {
	seq int
	err error
}

type audioDoneMsg struct {
	key string
	err error
}

type bookmarkSavedMsg struct{ err error }

type bookmarkLoadedMsg struct {
	bookmark *api.Bookmark
	err      error
}

func NewModel(client Provider, userID string, st settings.Settings) Model {
	ti := textinput.New()
	ti.CharLimit = 80
	ti.Width = 40

	m := Model{
		client:    client,
		userID:    userID,
		textInput: ti,
		scope:     scope.Chapter{Number: 1},
		seq:       1,
		players:   map[string]versePlayer{},
		settings:  st,
		theme:     theme.GetTheme(st.CurrentTheme),
	}
	m.newPlayer = func() versePlayer {
		backend, err := audio.NewHTTPBackend()
		if err != nil {
			return nil
		}
		return audio.NewPlayer(backend)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadChapters(), m.loadChapter(m.seq, 1), m.loadBookmark())
}

func (m *Model) loadChapters() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		chapters, err := client.Chapters(context.Background())
		return chaptersLoadedMsg{chapters: chapters, err: err}
	}
}

func (m *Model) loadBookmark() tea.Cmd {
	client := m.client
	userID := m.userID
	return func() tea.Msg {
		b, err := client.Bookmark(context.Background(), userID)
		return bookmarkLoadedMsg{bookmark: b, err: err}
	}
}

func (m *Model) loadChapter(seq, number int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx := context.Background()
		meta, err := client.Chapter(ctx, number)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		verses, err := client.ChapterVerses(ctx, number)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return versesLoadedMsg{seq: seq, scope: scope.Chapter{Number: number}, verses: verses, meta: meta}
	}
}

func (m *Model) loadVerse(seq, chapter, verse int) tea.Cmd {
	client := m.client
	meta := m.chapterMeta
	return func() tea.Msg {
		verses, err := client.ChapterVerse(context.Background(), chapter, verse)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return versesLoadedMsg{seq: seq, scope: scope.Chapter{Number: chapter, Verse: verse}, verses: verses, meta: meta}
	}
}

func (m *Model) loadPage(seq, page int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		verses, err := client.Page(context.Background(), page)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return versesLoadedMsg{seq: seq, scope: scope.Page{Number: page}, verses: verses}
	}
}

func (m *Model) loadJuz(seq, juz int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		verses, err := client.Juz(context.Background(), juz)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return versesLoadedMsg{seq: seq, scope: scope.Juz{Number: juz}, verses: verses}
	}
}

func (m *Model) loadSearch(seq int, query string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		verses, err := client.Search(context.Background(), query)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return versesLoadedMsg{seq: seq, scope: scope.Search{Query: query}, verses: verses}
	}
}

// dispatch starts the fetch for a freshly selected scope. Every call bumps
// the sequence number; a result carrying an older number is stale and gets
// dropped in Update (last selection wins).
func (m *Model) dispatch(s scope.Scope) tea.Cmd {
	m.seq++
	m.loading = true
	m.status = ""
	var cmd tea.Cmd
	switch sc := s.(type) {
	case scope.Chapter:
		if sc.Verse > 0 {
			cmd = m.loadVerse(m.seq, sc.Number, sc.Verse)
			break
		}
		m.chapterMeta = nil
		cmd = m.loadChapter(m.seq, sc.Number)
	case scope.Page:
		m.chapterMeta = nil
		cmd = m.loadPage(m.seq, sc.Number)
	case scope.Juz:
		m.chapterMeta = nil
		cmd = m.loadJuz(m.seq, sc.Number)
	case scope.Search:
		m.chapterMeta = nil
		cmd = m.loadSearch(m.seq, sc.Query)
	}
	if cmd != nil && m.chapters == nil {
		// The startup chapter list fetch may have failed; retry it with
		// the next navigation so chapter adjacency recovers.
		return tea.Batch(m.loadChapters(), cmd)
	}
	return cmd
}

// search is a no-op on blank queries; they are a normal boundary
// condition, not an error.
func (m *Model) search(query string) tea.Cmd {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return m.dispatch(scope.Search{Query: query})
}

func (m *Model) continueForward() tea.Cmd {
	next, ok := scope.Next(m.scope, m.chapters)
	if !ok {
		return nil
	}
	return m.dispatch(next)
}

func (m *Model) goBack() tea.Cmd {
	prev, ok := scope.Prev(m.scope, m.chapters)
	if !ok {
		return nil
	}
	return m.dispatch(prev)
}

func verseKey(v api.Verse) string {
	return fmt.Sprintf("%d:%d", v.ChapterNumber, v.VerseNumber)
}

// toggleAudio starts or stops recitation of the highlighted verse. Each
// verse owns an independent player; toggling one never affects another.
func (m *Model) toggleAudio() tea.Cmd {
	if m.selected >= len(m.verses) {
		return nil
	}
	v := m.verses[m.selected]
	key := verseKey(v)
	player, ok := m.players[key]
	if !ok {
		player = m.newPlayer()
		if player == nil {
			m.status = "no audio player available"
			return nil
		}
		m.players[key] = player
	}
	sources := audio.Sources(v.ChapterNumber, v.VerseNumber)
	return func() tea.Msg {
		return audioDoneMsg{key: key, err: player.Toggle(context.Background(), sources)}
	}
}

func (m *Model) saveBookmark() tea.Cmd {
	if m.selected >= len(m.verses) {
		return nil
	}
	v := m.verses[m.selected]
	name := v.ChapterName
	if name == "" && m.chapterMeta != nil {
		name = m.chapterMeta.Name
	}
	b := api.Bookmark{
		UserID:      m.userID,
		ChapterName: name,
		VerseNumber: v.VerseNumber,
		PageNumber:  v.PageNumber,
		JuzNumber:   v.JuzNumber,
	}
	client := m.client
	return func() tea.Msg {
		return bookmarkSavedMsg{err: client.SaveBookmark(context.Background(), b)}
	}
}

func (m *Model) saveSettings() {
	// Cosmetic preference only; a failed write is not worth surfacing.
	_ = settings.Save(m.settings)
}

// applyVerses commits a fetch result to the view and recomputes the scope
// metadata from what was actually returned.
func (m *Model) applyVerses(msg versesLoadedMsg) {
	m.loading = false
	m.errText = ""
	m.scope = msg.scope
	m.verses = msg.verses
	m.selected = 0
	if msg.meta != nil {
		m.chapterMeta = msg.meta
	}
	m.reapPlayers()

	m.pageLabel, m.juzLabel = "—", "—"
	if len(m.verses) > 0 {
		first := m.verses[0]
		if first.PageNumber > 0 {
			m.pageLabel = strconv.Itoa(first.PageNumber)
		}
		if first.JuzNumber > 0 {
			m.juzLabel = strconv.Itoa(first.JuzNumber)
		}
	}

	switch sc := msg.scope.(type) {
	case scope.Chapter:
		if m.chapterMeta != nil {
			m.title = fmt.Sprintf("%d. %s (%s)", m.chapterMeta.Number, m.chapterMeta.Name, m.chapterMeta.TranslatedName)
		} else {
			m.title = fmt.Sprintf("Chapter %d", sc.Number)
		}
		if sc.Verse > 0 {
			m.title += fmt.Sprintf(", verse %d", sc.Verse)
		}
	case scope.Page:
		m.title = fmt.Sprintf("Page %d", sc.Number)
		if name := firstChapterName(m.verses); name != "" {
			m.title += " — " + name
		}
	case scope.Juz:
		m.title = fmt.Sprintf("Juz %d", sc.Number)
		if name := firstChapterName(m.verses); name != "" {
			m.title += " — begins in " + name
		}
	case scope.Search:
		m.title = fmt.Sprintf("%q — %d matches", sc.Query, len(m.verses))
	}

	if len(m.verses) == 0 {
		if _, ok := msg.scope.(scope.Search); ok {
			m.errText = "no verses matched your search"
		} else {
			m.errText = "nothing found for this selection"
		}
	}
}

func firstChapterName(verses []api.Verse) string {
	for _, v := range verses {
		if v.ChapterName != "" {
			return v.ChapterName
		}
	}
	return ""
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeReader {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.stopAllPlayers()
			m.saveSettings()
			return m, tea.Quit
		case "j", "down":
			if m.selected < len(m.verses)-1 {
				m.selected++
				m.refreshContent()
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
				m.refreshContent()
			}
		case "n", "right":
			if c := m.continueForward(); c != nil {
				return m, c
			}
		case "p", "left":
			if c := m.goBack(); c != nil {
				return m, c
			}
		case "c":
			return m.prompt(modeGotoChapter, "chapter number (1-114)"), nil
		case "v":
			if m.chapterMeta != nil {
				return m.prompt(modeGotoVerse, "verse number"), nil
			}
		case "g":
			return m.prompt(modeGotoPage, fmt.Sprintf("page number (1-%d)", scope.MaxPage)), nil
		case "z":
			return m.prompt(modeGotoJuz, fmt.Sprintf("juz number (1-%d)", scope.MaxJuz)), nil
		case "/":
			return m.prompt(modeSearch, "search the corpus"), nil
		case "a":
			if c := m.toggleAudio(); c != nil {
				return m, c
			}
		case "b":
			if c := m.saveBookmark(); c != nil {
				return m, c
			}
		case "t":
			m.settings.ShowTranslation = !m.settings.ShowTranslation
			m.saveSettings()
			m.refreshContent()
		case "f":
			if m.settings.FontSize == settings.FontLarge {
				m.settings.FontSize = settings.FontNormal
			} else {
				m.settings.FontSize = settings.FontLarge
			}
			m.saveSettings()
			m.refreshContent()
		case "T":
			m.cycleTheme()
			m.saveSettings()
			m.refreshContent()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-6)
			m.viewport.YPosition = 4
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 6
		}
		m.refreshContent()

	case chaptersLoadedMsg:
		if msg.err != nil {
			m.status = "chapter list unavailable — chapter navigation may be limited"
			break
		}
		m.chapters = msg.chapters

	case bookmarkLoadedMsg:
		// Restore the reader to the saved position; no bookmark or a
		// failed read just leaves the default view.
		if msg.err == nil && msg.bookmark != nil && msg.bookmark.PageNumber >= 1 {
			if c := m.dispatch(scope.Page{Number: msg.bookmark.PageNumber}); c != nil {
				return m, c
			}
		}

	case versesLoadedMsg:
		if msg.seq != m.seq {
			break // superseded by a newer selection
		}
		m.applyVerses(msg)
		m.refreshContent()
		m.viewport.GotoTop()

	case loadFailedMsg:
		if msg.seq != m.seq {
			break
		}
		m.loading = false
		m.verses = nil
		if errors.Is(msg.err, api.ErrNotFound) {
			m.errText = "nothing found for this selection"
		} else {
			m.errText = "content is unavailable right now — try selecting again"
		}
		m.refreshContent()

	case audioDoneMsg:
		if errors.Is(msg.err, audio.ErrPlaybackUnavailable) {
			m.status = "recitation unavailable for " + msg.key
		} else if msg.err != nil {
			m.status = "playback stopped: " + msg.err.Error()
		}

	case bookmarkSavedMsg:
		if msg.err != nil {
			m.status = "could not save bookmark"
		} else {
			m.status = "bookmark saved"
		}
	}

	if m.mode == modeReader && m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) prompt(mode inputMode, placeholder string) Model {
	m.mode = mode
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeReader
		return m, nil
	case "enter":
		value := m.textInput.Value()
		mode := m.mode
		m.mode = modeReader
		return m.submit(mode, value)
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit turns a prompt entry into a selection. Out-of-range numbers are
// silently ignored, like a continuation past the corpus edge.
func (m Model) submit(mode inputMode, value string) (tea.Model, tea.Cmd) {
	switch mode {
	case modeSearch:
		return m, m.search(value)
	case modeGotoChapter:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 1 && n <= 114 {
			return m, m.dispatch(scope.Chapter{Number: n})
		}
	case modeGotoVerse:
		if m.chapterMeta == nil {
			return m, nil
		}
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 1 {
			return m, m.dispatch(scope.Chapter{Number: m.chapterMeta.Number, Verse: n})
		}
	case modeGotoPage:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 1 && n <= scope.MaxPage {
			return m, m.dispatch(scope.Page{Number: n})
		}
	case modeGotoJuz:
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n >= 1 && n <= scope.MaxJuz {
			return m, m.dispatch(scope.Juz{Number: n})
		}
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	themes := theme.AllThemes()
	for i, th := range themes {
		if th.Name == m.theme.Name {
			m.theme = themes[(i+1)%len(themes)]
			m.settings.CurrentTheme = strings.ToLower(m.theme.Name)
			return
		}
	}
	m.theme = themes[0]
}

func (m *Model) stopAllPlayers() {
	for _, p := range m.players {
		p.Stop()
	}
}

// reapPlayers stops and drops the player of every verse that is no longer
// displayed. A verse leaving the view is its unmount: playback must not
// outlive the only control that can reach it.
func (m *Model) reapPlayers() {
	keep := make(map[string]bool, len(m.verses))
	for _, v := range m.verses {
		keep[verseKey(v)] = true
	}
	for key, p := range m.players {
		if !keep[key] {
			p.Stop()
			delete(m.players, key)
		}
	}
}
