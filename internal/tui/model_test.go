package tui

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catalog-cli/internal/app"
	"github.com/glabrego/catalog-cli/internal/catalog"
	"github.com/glabrego/catalog-cli/internal/saved"
	"github.com/glabrego/catalog-cli/internal/thumbnail"
	tuiactions "github.com/glabrego/catalog-cli/internal/tui/actions"
)

type memKV struct {
	values map[string]string
	setErr error
}

func newMemKV() *memKV {
	return &memKV{values: make(map[string]string)}
}

func (k *memKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := k.values[key]
	return v, ok, nil
}

func (k *memKV) Set(_ context.Context, key, value string) error {
	if k.setErr != nil {
		return k.setErr
	}
	k.values[key] = value
	return nil
}

type failingProber struct {
	probed []string
}

func (p *failingProber) Probe(_ context.Context, imageURL string) error {
	p.probed = append(p.probed, imageURL)
	return errors.New("status 404")
}

const (
	gridMaxRes = "https://img.youtube.com/vi/abc123/maxresdefault.jpg"
	restLazy   = "https://img.youtube.com/vi/def456/sddefault.jpg"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{
		Title: "Video Library",
		Sections: []catalog.Section{
			{ID: "web", Title: "Web Development", Cards: []catalog.Card{
				{Section: "web", Position: 0, Title: "CSS Grid", Category: "frontend", VideoRef: "abc123",
					Thumbnail: gridMaxRes, MetaText: "1,200 views", Metric: 1200, HasMetric: true,
					URL: "https://www.youtube.com/watch?v=abc123"},
				{Section: "web", Position: 1, Title: "REST APIs", Category: "backend", VideoRef: "def456",
					Lazy: true, LazySrc: restLazy, MetaText: "45 views", Metric: 45, HasMetric: true},
				{Section: "web", Position: 2, Title: "Flexbox", Category: "frontend",
					Thumbnail: "/static/local.png", MetaText: "300 views", Metric: 300, HasMetric: true},
			}},
			{ID: "go", Title: "Go", Cards: []catalog.Card{
				{Section: "go", Position: 0, Title: "Goroutines", Category: "concurrency", VideoRef: "ghi789",
					Thumbnail: "https://img.youtube.com/vi/ghi789/sddefault.jpg", MetaText: "no views yet"},
			}},
		},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("expected Model after update, got %T", updated)
	}
	return next, cmd
}

func cardTitles(m Model) []string {
	var out []string
	for _, row := range m.rows() {
		if card, ok := m.cardForRow(row); ok {
			out = append(out, card.Title)
		}
	}
	return out
}

func TestModelView_ShowsSectionsAndCards(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{Saved: []string{"Goroutines"}})

	view := ansiFree(m.View())
	for _, want := range []string{"Video Library", "Web Development", "CSS Grid", "1,200 views [frontend]", "Goroutines", "light"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "★ Goroutines") {
		t.Fatalf("expected saved marker on Goroutines, got:\n%s", view)
	}
	if !strings.Contains(view, " > ") {
		t.Fatalf("expected cursor marker in view, got:\n%s", view)
	}
}

func TestModelUpdate_SortIsPerSectionAndStable(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})

	m, _ = press(t, m, keyRunes("n"))
	want := []string{"CSS Grid", "Flexbox", "REST APIs", "Goroutines"}
	if got := cardTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected newest order: got=%v want=%v", got, want)
	}

	m, _ = press(t, m, keyRunes("N"))
	want = []string{"REST APIs", "Flexbox", "CSS Grid", "Goroutines"}
	if got := cardTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected oldest order: got=%v want=%v", got, want)
	}
	if card, ok := m.currentCard(); !ok || card.Title != "CSS Grid" {
		t.Fatalf("expected selection to follow CSS Grid, got %+v", card)
	}

	goSection, _ := m.board.Section("go")
	if goSection.Sort() != "" {
		t.Fatalf("expected go section unsorted, got %q", goSection.Sort())
	}
}

func TestModelUpdate_FilterCyclesAndAllRestores(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})

	m, _ = press(t, m, keyRunes("f"))
	want := []string{"CSS Grid", "Flexbox", "Goroutines"}
	if got := cardTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected frontend filter: got=%v want=%v", got, want)
	}
	if !strings.Contains(m.status, "showing frontend") {
		t.Fatalf("expected filter status, got %q", m.status)
	}

	m, _ = press(t, m, keyRunes("a"))
	want = []string{"CSS Grid", "REST APIs", "Flexbox", "Goroutines"}
	if got := cardTitles(m); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected all cards back in markup order: got=%v want=%v", got, want)
	}
}

func TestModelUpdate_ToggleSavedPersistsThroughService(t *testing.T) {
	kv := newMemKV()
	svc := app.NewService(kv, nil, nil)
	m := NewModel(svc, testCatalog(), Options{})

	m, cmd := press(t, m, keyRunes("s"))
	if cmd == nil {
		t.Fatal("expected toggle command")
	}
	msg := cmd()
	if _, ok := msg.(tuiactions.ToggleSavedSuccessMsg); !ok {
		t.Fatalf("expected ToggleSavedSuccessMsg, got %T", msg)
	}
	m, _ = press(t, m, msg)
	if !m.IsSaved("CSS Grid") || m.status != "Saved for later" {
		t.Fatalf("expected saved state and toast, got saved=%v status=%q", m.IsSaved("CSS Grid"), m.status)
	}
	if kv.values[saved.StorageKey] != `["CSS Grid"]` {
		t.Fatalf("unexpected persisted set: %q", kv.values[saved.StorageKey])
	}

	m, cmd = press(t, m, keyRunes("s"))
	m, _ = press(t, m, cmd())
	if m.IsSaved("CSS Grid") || m.status != "Removed from saved videos" {
		t.Fatalf("expected removal, got saved=%v status=%q", m.IsSaved("CSS Grid"), m.status)
	}
}

func TestModelUpdate_ToggleSavedResultsOutOfOrderFollowStore(t *testing.T) {
	kv := newMemKV()
	svc := app.NewService(kv, nil, nil)
	m := NewModel(svc, testCatalog(), Options{})

	first := tuiactions.ToggleSavedCmd(svc, "CSS Grid")()
	second := tuiactions.ToggleSavedCmd(svc, "CSS Grid")()

	m, _ = press(t, m, second)
	m, _ = press(t, m, first)
	if svc.IsSaved("CSS Grid") {
		t.Fatal("expected store to hold CSS Grid as not saved after two toggles")
	}
	if m.IsSaved("CSS Grid") {
		t.Fatal("expected model saved state to match the store")
	}
	if m.status != "Removed from saved videos" {
		t.Fatalf("expected status to reflect store state, got %q", m.status)
	}
}

func TestModelUpdate_ToggleSavedWriteFailureShowsWarning(t *testing.T) {
	kv := newMemKV()
	kv.setErr = errors.New("quota exceeded")
	m := NewModel(app.NewService(kv, nil, nil), testCatalog(), Options{})

	m, cmd := press(t, m, keyRunes("s"))
	m, _ = press(t, m, cmd())
	if !m.IsSaved("CSS Grid") {
		t.Fatal("expected in-memory save to stick despite write failure")
	}
	if !strings.Contains(m.warning, "quota exceeded") {
		t.Fatalf("expected persistence warning, got %q", m.warning)
	}

	m, _ = press(t, m, clearStatusMsg{id: m.statusID})
	if m.status != "" || m.warning != "" {
		t.Fatalf("expected toast cleared, got status=%q warning=%q", m.status, m.warning)
	}
}

func TestModelUpdate_StaleClearKeepsNewerToast(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	m, _ = press(t, m, keyRunes("t"))
	stale := m.statusID
	m, _ = press(t, m, keyRunes("t"))
	m, _ = press(t, m, clearStatusMsg{id: stale})
	if m.status != "Switched to light mode" {
		t.Fatalf("expected newer toast kept, got %q", m.status)
	}
}

func TestModelUpdate_ThemeToggle(t *testing.T) {
	kv := newMemKV()
	svc := app.NewService(kv, nil, nil)
	m := NewModel(svc, testCatalog(), Options{Theme: svc.LoadTheme(context.Background())})
	if m.ThemeMode() != "light" {
		t.Fatalf("expected light default, got %q", m.ThemeMode())
	}

	m, cmd := press(t, m, keyRunes("t"))
	if m.ThemeMode() != "dark" || m.status != "Switched to dark mode" {
		t.Fatalf("expected dark mode toast, got mode=%q status=%q", m.ThemeMode(), m.status)
	}
	if cmd == nil {
		t.Fatal("expected theme persistence command")
	}
	if msg := tuiactions.SaveThemeCmd(svc, m.ThemeMode())(); msg != nil {
		t.Fatalf("expected theme saved, got %T", msg)
	}
	if got := svc.LoadTheme(context.Background()); got != "dark" {
		t.Fatalf("expected dark theme restored, got %q", got)
	}
}

func TestModelUpdate_ProbeFailuresWalkTheCascade(t *testing.T) {
	prober := &failingProber{}
	svc := app.NewService(newMemKV(), prober, nil)
	m := NewModel(svc, testCatalog(), Options{Probe: true})

	msg := tea.Msg(tuiactions.ProbeFailureMsg{Key: "web#0", URL: gridMaxRes})
	var seen []string
	for i := 0; i < 10; i++ {
		var cmd tea.Cmd
		m, cmd = press(t, m, msg)
		seen = append(seen, m.tracker.Current("web#0"))
		if cmd == nil {
			break
		}
		msg = cmd()
	}

	want := []string{
		"https://img.youtube.com/vi/abc123/sddefault.jpg",
		"https://img.youtube.com/vi/abc123/hqdefault.jpg",
		"https://img.youtube.com/vi/abc123/mqdefault.jpg",
		"https://img.youtube.com/vi/abc123/default.jpg",
		"https://via.placeholder.com/320x180?text=CSS+Grid",
	}
	if !reflect.DeepEqual(seen, want) {
		t.Fatalf("unexpected cascade: got=%v want=%v", seen, want)
	}
	state, _ := m.tracker.State("web#0")
	if !state.Terminal {
		t.Fatal("expected terminal placeholder state")
	}

	m, cmd := press(t, m, tuiactions.ProbeFailureMsg{Key: "web#0", URL: state.Current})
	if cmd != nil || m.tracker.Current("web#0") != state.Current {
		t.Fatal("expected terminal image to ignore further failures")
	}
}

func TestModelUpdate_StaleProbeFailureIgnored(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	m, _ = press(t, m, tuiactions.ProbeFailureMsg{Key: "go#0", URL: "https://img.youtube.com/vi/ghi789/sddefault.jpg"})
	advanced := m.tracker.Current("go#0")
	if advanced != "https://img.youtube.com/vi/ghi789/hqdefault.jpg" {
		t.Fatalf("expected hq after sd failure, got %q", advanced)
	}

	m, _ = press(t, m, tuiactions.ProbeFailureMsg{Key: "go#0", URL: "https://img.youtube.com/vi/ghi789/sddefault.jpg"})
	if got := m.tracker.Current("go#0"); got != advanced {
		t.Fatalf("expected stale failure ignored, got %q", got)
	}
}

func TestModelUpdate_MissingVideoRefIsLeftAlone(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	m, _ = press(t, m, tuiactions.ProbeFailureMsg{Key: "web#2", URL: "/static/local.png"})
	if got := m.tracker.Current("web#2"); got != "/static/local.png" {
		t.Fatalf("expected local image untouched, got %q", got)
	}
}

func TestModelUpdate_DegradeKey(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	m, _ = press(t, m, keyRunes("x"))
	if got := m.tracker.Current("web#0"); got != "https://img.youtube.com/vi/abc123/sddefault.jpg" {
		t.Fatalf("expected forced degrade to sd, got %q", got)
	}
	if m.status != "Thumbnail now sddefault" {
		t.Fatalf("unexpected degrade status: %q", m.status)
	}
}

func TestModelUpdate_LazyImagesRevealOnWindowSize(t *testing.T) {
	prober := &failingProber{}
	m := NewModel(app.NewService(newMemKV(), prober, nil), testCatalog(), Options{Probe: true})
	if m.tracker.Current("web#1") != "" {
		t.Fatalf("expected lazy image unloaded before reveal, got %q", m.tracker.Current("web#1"))
	}

	m, cmd := press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if got := m.tracker.Current("web#1"); got != restLazy {
		t.Fatalf("expected data-src swapped in, got %q", got)
	}
	if m.lazy.Len() != 0 {
		t.Fatalf("expected revealed image to be unobserved, %d pending", m.lazy.Len())
	}
	if cmd == nil {
		t.Fatal("expected a probe for the revealed image")
	}
	msgs := runCmd(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected exactly one probe, got %d", len(msgs))
	}
	failure, ok := msgs[0].(tuiactions.ProbeFailureMsg)
	if !ok || failure.Key != "web#1" || failure.URL != restLazy {
		t.Fatalf("unexpected probe result: %+v", failure)
	}

	_, cmd = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cmd != nil {
		t.Fatal("expected no second reveal")
	}
}

func TestModelUpdate_SectionSpyAndNavigation(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	m, _ = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 10})
	if m.spy.Active() != "web" {
		t.Fatalf("expected web active at top, got %q", m.spy.Active())
	}

	m, _ = press(t, m, keyRunes("G"))
	if m.spy.Active() != "go" {
		t.Fatalf("expected go active after scrolling to bottom, got %q", m.spy.Active())
	}

	m, _ = press(t, m, keyRunes("["))
	if m.spy.Active() != "web" || m.rowAt(m.treeCursor).Section != "web" {
		t.Fatalf("expected jump back to web, got active=%q", m.spy.Active())
	}
}

func TestModelUpdate_DetailAndHelp(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})

	m, _ = press(t, m, keyRunes("j"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.inDetail {
		t.Fatal("expected detail view")
	}
	view := ansiFree(m.View())
	if !strings.Contains(view, "REST APIs") || !strings.Contains(view, "Category: backend") {
		t.Fatalf("expected REST APIs detail, got:\n%s", view)
	}

	m, _ = press(t, m, keyRunes("]"))
	if card, _ := m.currentCard(); card.Title != "Flexbox" {
		t.Fatalf("expected next card in detail, got %q", card.Title)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.inDetail {
		t.Fatal("expected back to list")
	}

	m, _ = press(t, m, keyRunes("?"))
	if !m.showHelp || !strings.Contains(m.View(), "save for later") {
		t.Fatal("expected help overlay with bindings")
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showHelp {
		t.Fatal("expected esc to close help")
	}
}

func TestModelUpdate_OpenAndCopyURL(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	var opened string
	m.openURLFn = func(u string) error { opened = u; return nil }
	m.copyURLFn = func(string) error { return nil }

	m, cmd := press(t, m, keyRunes("o"))
	msg := cmd()
	if success, ok := msg.(tuiactions.OpenURLSuccessMsg); !ok || !success.Opened {
		t.Fatalf("expected opened URL, got %T", msg)
	}
	if opened != "https://www.youtube.com/watch?v=abc123" {
		t.Fatalf("unexpected opened URL: %q", opened)
	}
	m, _ = press(t, m, msg)
	if m.status != "Opened URL in browser" {
		t.Fatalf("unexpected status: %q", m.status)
	}

	m, _ = press(t, m, keyRunes("j"))
	m, _ = press(t, m, keyRunes("y"))
	if !strings.Contains(m.status, "card has no URL") {
		t.Fatalf("expected missing URL status, got %q", m.status)
	}
}

func TestModelInit_ProbesEagerThumbnails(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{Probe: true})
	if cmd := m.Init(); cmd != nil {
		t.Fatal("expected no probes without a service")
	}

	prober := &failingProber{}
	m = NewModel(app.NewService(newMemKV(), prober, nil), testCatalog(), Options{Probe: true, Resolver: thumbnail.NewResolver("", "")})
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected start-up probes")
	}
}

func TestModelInit_ShowsStartupWarningUntilCleared(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{Warning: "Saved videos will not persist"})
	if got := ansiFree(m.View()); !strings.Contains(got, "state: warning | Saved videos will not persist") {
		t.Fatalf("expected start-up warning in status line, got %q", got)
	}
	if cmd := m.Init(); cmd == nil {
		t.Fatal("expected a timer clearing the start-up warning")
	}
	m, _ = press(t, m, clearStatusMsg{id: m.statusID})
	if m.warning != "" {
		t.Fatalf("expected warning cleared, got %q", m.warning)
	}
}

// runCmd executes cmd, expanding batches. Only use it on commands that do not
// contain status timers.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func ansiFree(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape && r == 'm':
			inEscape = false
		case !inEscape:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestModelView_FooterShowsCardPosition(t *testing.T) {
	m := NewModel(nil, testCatalog(), Options{})
	if got := ansiFree(m.View()); !strings.Contains(got, "card 1/4") {
		t.Fatalf("expected first card position, got %q", got)
	}
	m, _ = press(t, m, keyRunes("j"))
	if got := ansiFree(m.View()); !strings.Contains(got, "card 2/4") {
		t.Fatalf("expected second card position, got %q", got)
	}
}
