package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catalog-cli/internal/catalog"
	"github.com/glabrego/catalog-cli/internal/pipeline"
	"github.com/glabrego/catalog-cli/internal/thumbnail"
	tuiactions "github.com/glabrego/catalog-cli/internal/tui/actions"
	tuiplatform "github.com/glabrego/catalog-cli/internal/tui/platform"
	tuistate "github.com/glabrego/catalog-cli/internal/tui/state"
	tuitheme "github.com/glabrego/catalog-cli/internal/tui/theme"
	tuitree "github.com/glabrego/catalog-cli/internal/tui/tree"
	tuiview "github.com/glabrego/catalog-cli/internal/tui/view"
	"github.com/glabrego/catalog-cli/internal/tui/viewport"
)

type Service = tuiactions.Service

type clearStatusMsg struct {
	id int
}

type Options struct {
	Theme string
	Saved []string
	// Probe enables HTTP checks of thumbnail URLs.
	Probe    bool
	Resolver *thumbnail.Resolver
	// Warning is shown as the first toast, e.g. a failed storage check.
	Warning string
}

type Model struct {
	service Service
	catalog catalog.Catalog
	board   *pipeline.Board
	tracker *thumbnail.Tracker
	lazy    *viewport.LazyImages
	spy     *viewport.SectionSpy
	keys    KeyMap

	saved     map[string]bool
	themeMode string
	theme     tuitheme.Theme
	probe     bool

	collapsed  map[string]bool
	treeCursor int
	inDetail   bool
	detailTop  int
	showHelp   bool
	width      int
	height     int

	status   string
	statusID int
	warning  string

	openURLFn func(string) error
	copyURLFn func(string) error
}

func NewModel(service Service, cat catalog.Catalog, opts Options) Model {
	m := Model{
		service:   service,
		catalog:   cat,
		board:     pipeline.NewBoard(cat),
		tracker:   thumbnail.NewTracker(opts.Resolver),
		lazy:      viewport.NewLazyImages(),
		keys:      DefaultKeyMap(),
		saved:     make(map[string]bool, len(opts.Saved)),
		themeMode: tuitheme.ForMode(opts.Theme).Mode,
		probe:     opts.Probe && service != nil,
		warning:   opts.Warning,
		collapsed: make(map[string]bool),
		openURLFn: tuiplatform.OpenURLInBrowser,
		copyURLFn: tuiplatform.CopyURLToClipboard,
	}
	m.theme = tuitheme.ForMode(m.themeMode)
	for _, title := range opts.Saved {
		m.saved[title] = true
	}

	first := ""
	for _, sec := range cat.Sections {
		if first == "" {
			first = sec.ID
		}
		for _, card := range sec.Cards {
			m.tracker.Track(card.Key(), card.VideoRef, card.DisplayTitle(), card.Thumbnail)
			if card.Lazy {
				m.lazy.Observe(card.Key())
			}
		}
	}
	m.spy = viewport.NewSectionSpy(viewport.DefaultSpyThreshold, first)
	m.treeCursor = tuitree.FirstCardRow(m.rows())
	return m
}

// Init probes every eagerly loaded thumbnail once, so images that were
// already broken at start-up enter the cascade.
func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, m.tracker.Len()+1)
	if m.warning != "" {
		cmds = append(cmds, clearStatusCmd(m.statusID, 3*time.Second))
	}
	if !m.probe {
		return tea.Batch(cmds...)
	}
	for _, sec := range m.catalog.Sections {
		for _, card := range sec.Cards {
			if card.Lazy || card.VideoRef == "" {
				continue
			}
			cmds = append(cmds, m.probeCmd(card.Key()))
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.reactViewport()
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Help) {
			m.showHelp = !m.showHelp
			return m, nil
		}
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.showHelp = false
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			}
			return m, nil
		}
		if m.inDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case tuiactions.ToggleSavedSuccessMsg:
		// Toggle results can arrive out of order; the store holds the answer.
		current := msg.Saved
		if m.service != nil {
			current = m.service.IsSaved(msg.Title)
		}
		m.saved[msg.Title] = current
		m.status = tuiactions.SavedStatus(current)
		m.warning = ""
		if msg.Warning != nil {
			m.warning = "Not persisted: " + msg.Warning.Error()
		}
		cmd := m.toast()
		return m, cmd
	case tuiactions.ToggleActionErrorMsg:
		m.warning = msg.Err.Error()
		cmd := m.toast()
		return m, cmd
	case tuiactions.ThemeSaveErrorMsg:
		m.warning = "Could not persist theme"
		cmd := m.toast()
		return m, cmd
	case tuiactions.ProbeFailureMsg:
		return m, m.failThumbnail(msg.Key, msg.URL)
	case tuiactions.ProbeSuccessMsg:
		return m, nil
	case tuiactions.OpenURLSuccessMsg:
		m.status = msg.Status
		m.warning = ""
		cmd := m.toast()
		return m, cmd
	case tuiactions.OpenURLErrorMsg:
		m.status = msg.Err.Error()
		cmd := m.toast()
		return m, cmd
	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.warning = ""
		}
		return m, nil
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursorBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursorBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursorBy(-tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursorBy(tuistate.PageStep(m.height, m.status != ""))
	case key.Matches(msg, m.keys.Top):
		m.treeCursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.treeCursor = len(m.rows()) - 1
	case key.Matches(msg, m.keys.PrevSection):
		m.jumpSection(-1)
	case key.Matches(msg, m.keys.NextSection):
		m.jumpSection(1)
	case key.Matches(msg, m.keys.NextFilter):
		if st, ok := m.currentSection(); ok {
			prev := m.rowAt(m.treeCursor)
			next := st.NextFilter()
			m.restoreCursor(prev)
			m.setStatus(fmt.Sprintf("%s: showing %s", st.Title, next))
			toast := m.toast()
			return m, tea.Batch(toast, m.reactViewport())
		}
	case key.Matches(msg, m.keys.FilterAll):
		if st, ok := m.currentSection(); ok {
			prev := m.rowAt(m.treeCursor)
			st.SetFilter(pipeline.FilterAll)
			m.restoreCursor(prev)
		}
	case key.Matches(msg, m.keys.SortNewest):
		return m.sortCurrent(pipeline.SortNewest)
	case key.Matches(msg, m.keys.SortOldest):
		return m.sortCurrent(pipeline.SortOldest)
	case key.Matches(msg, m.keys.ToggleSaved):
		return m.toggleSavedCurrent()
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Degrade):
		return m.degradeCurrent()
	case key.Matches(msg, m.keys.Open):
		return m.openCurrentURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.Details):
		row := m.rowAt(m.treeCursor)
		if row.Kind == tuitree.RowSection {
			m.collapsed[row.Section] = !m.collapsed[row.Section]
			break
		}
		if row.Kind == tuitree.RowCard {
			m.inDetail = true
			m.detailTop = 0
		}
		return m, nil
	default:
		return m, nil
	}
	m.ensureTreeCursorValid()
	return m, m.reactViewport()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inDetail = false
		m.detailTop = 0
		return m, m.reactViewport()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Open):
		return m.openCurrentURL()
	case key.Matches(msg, m.keys.Copy):
		return m.copyCurrentURL()
	case key.Matches(msg, m.keys.ToggleSaved):
		return m.toggleSavedCurrent()
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Degrade):
		return m.degradeCurrent()
	case key.Matches(msg, m.keys.Up):
		if m.detailTop > 0 {
			m.detailTop--
		}
	case key.Matches(msg, m.keys.Down):
		maxTop := tuiview.DetailMaxTop(len(m.detailLines()), m.detailBodyHeight())
		if m.detailTop < maxTop {
			m.detailTop++
		}
	case key.Matches(msg, m.keys.PrevSection):
		m.moveCardCursor(-1)
		return m, m.reactViewport()
	case key.Matches(msg, m.keys.NextSection):
		m.moveCardCursor(1)
		return m, m.reactViewport()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	title := strings.TrimSpace(m.catalog.Title)
	if title == "" {
		title = "Catalog"
	}
	b.WriteString(m.theme.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.sectionNav())
	b.WriteString("\n")

	switch {
	case m.showHelp:
		b.WriteString("Help (? to close)\n\n")
		b.WriteString(m.helpView())
		b.WriteString("\n")
	case m.inDetail:
		b.WriteString(tuiview.Toolbar(true))
		b.WriteString("\n\n")
		b.WriteString(m.detailView())
	default:
		b.WriteString(tuiview.Toolbar(false))
		b.WriteString("\n\n")
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(tuiview.Message(m.status, m.warning, m.theme))
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	rows := m.rows()
	if len(rows) == 0 {
		return "No videos available.\n"
	}
	start, end := m.listWindow(rows)
	return tuiview.RenderListBody(tuiview.ListRenderInput{
		Rows:       rows,
		Start:      start,
		End:        end,
		TreeCursor: m.treeCursor,
		RenderSectionLine: func(row tuitree.Row, active bool) string {
			st, _ := m.board.Section(row.Section)
			return tuiview.RenderSectionLine(st.Title, len(st.VisibleOrder()), st.Collection().Len(),
				m.contentWidth(), active, st.ID == m.spy.Active(), m.theme)
		},
		RenderCardLine: func(row tuitree.Row, active bool) string {
			card, _ := m.cardForRow(row)
			thumb, _ := m.tracker.State(card.Key())
			return tuiview.RenderCardLine(tuiview.CardLineParams{
				Card:   card,
				Saved:  m.saved[card.Title],
				Active: active,
				Thumb:  tuiview.ThumbLabel(string(thumb.Tier), thumb.Terminal),
				Width:  m.contentWidth(),
			}, m.theme)
		},
	})
}

func (m Model) detailView() string {
	lines := m.detailLines()
	if len(lines) == 0 {
		return "No video selected.\n"
	}
	return tuiview.RenderDetailLines(lines, m.detailTop, m.detailBodyHeight())
}

func (m Model) detailLines() []string {
	card, ok := m.currentCard()
	if !ok {
		return nil
	}
	thumb, _ := m.tracker.State(card.Key())
	return tuiview.DetailLines(card, m.saved[card.Title], thumb, m.contentWidth(), tuiview.WrapText)
}

func (m Model) helpView() string {
	lines := make([]string, 0, 24)
	for _, group := range m.keys.HelpGroups() {
		for _, binding := range group {
			h := binding.Help()
			lines = append(lines, fmt.Sprintf("  %-8s %s", h.Key, h.Desc))
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

func (m Model) sectionNav() string {
	titles := make([]string, 0, m.board.Len())
	ids := make([]string, 0, m.board.Len())
	for _, st := range m.board.Sections() {
		titles = append(titles, st.Title)
		ids = append(ids, st.ID)
	}
	return tuiview.SectionNav(titles, ids, m.spy.Active(), m.theme)
}

func (m Model) footer() string {
	in := tuiview.FooterInput{Saved: m.savedCount()}
	if st, ok := m.currentSection(); ok {
		in.Section = st.Title
		in.Filter = st.Filter()
		in.Sort = st.Sort()
		in.Shown = len(st.VisibleOrder())
		in.Total = st.Collection().Len()
	}
	rows := m.rows()
	if m.treeCursor >= 0 && m.treeCursor < len(rows) && rows[m.treeCursor].Kind == tuitree.RowCard {
		in.Position = tuistate.CardRowsBefore(rows, m.treeCursor+1)
		in.Cards = tuistate.CardRowsBefore(rows, len(rows))
	}
	return tuiview.Footer(in, m.theme)
}

func (m Model) savedCount() int {
	n := 0
	for _, on := range m.saved {
		if on {
			n++
		}
	}
	return n
}

func (m Model) sortCurrent(criterion string) (tea.Model, tea.Cmd) {
	st, ok := m.currentSection()
	if !ok {
		return m, nil
	}
	prev := m.rowAt(m.treeCursor)
	if err := st.SetSort(criterion); err != nil {
		m.warning = err.Error()
		cmd := m.toast()
		return m, cmd
	}
	m.restoreCursor(prev)
	return m, m.reactViewport()
}

func (m Model) toggleSavedCurrent() (tea.Model, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok || m.service == nil {
		return m, nil
	}
	if card.Title == "" {
		m.setStatus("Video has no title to save")
		cmd := m.toast()
		return m, cmd
	}
	return m, tuiactions.ToggleSavedCmd(m.service, card.Title)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.themeMode = tuitheme.Toggle(m.themeMode)
	m.theme = tuitheme.ForMode(m.themeMode)
	m.setStatus(fmt.Sprintf("Switched to %s mode", m.themeMode))
	toast := m.toast()
	if m.service == nil {
		return m, toast
	}
	return m, tea.Batch(tuiactions.SaveThemeCmd(m.service, m.themeMode), toast)
}

func (m Model) degradeCurrent() (tea.Model, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	before, _ := m.tracker.State(card.Key())
	cmd := m.failThumbnail(card.Key(), before.Current)
	after, _ := m.tracker.State(card.Key())
	switch {
	case after.Current == before.Current:
		m.setStatus("Thumbnail cannot degrade further")
	case after.Terminal:
		m.setStatus("Thumbnail replaced by placeholder")
	default:
		m.setStatus("Thumbnail now " + string(after.Tier))
	}
	toast := m.toast()
	return m, tea.Batch(cmd, toast)
}

// failThumbnail advances the cascade for an image-load failure and re-probes
// the replacement source.
func (m Model) failThumbnail(cardKey, failedURL string) tea.Cmd {
	next, changed := m.tracker.Fail(cardKey, failedURL)
	if !changed || !m.probe {
		return nil
	}
	if st, _ := m.tracker.State(cardKey); st.Terminal {
		return nil
	}
	return tuiactions.ProbeThumbnailCmd(m.service, cardKey, next)
}

func (m Model) probeCmd(cardKey string) tea.Cmd {
	if !m.probe {
		return nil
	}
	current := m.tracker.Current(cardKey)
	if current == "" || !strings.HasPrefix(current, "http") {
		return nil
	}
	return tuiactions.ProbeThumbnailCmd(m.service, cardKey, current)
}

func (m Model) openCurrentURL() (tea.Model, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	url, err := tuiplatform.ValidateCardURL(card.URL)
	if err != nil {
		m.setStatus("Cannot open URL: " + err.Error())
		cmd := m.toast()
		return m, cmd
	}
	return m, tuiactions.OpenURLCmd(url, m.openURLFn, m.copyURLFn)
}

func (m Model) copyCurrentURL() (tea.Model, tea.Cmd) {
	card, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	url, err := tuiplatform.ValidateCardURL(card.URL)
	if err != nil {
		m.setStatus("Cannot copy URL: " + err.Error())
		cmd := m.toast()
		return m, cmd
	}
	return m, tuiactions.CopyURLCmd(url, m.copyURLFn)
}

// reactViewport runs the lazy-image and section-spy reactors against the
// current list window.
func (m *Model) reactViewport() tea.Cmd {
	rows := m.rows()
	if len(rows) == 0 {
		return nil
	}
	start, end := m.listWindow(rows)

	keys := make([]string, 0, end-start)
	for _, row := range rows[start:end] {
		if card, ok := m.cardForRow(row); ok {
			keys = append(keys, card.Key())
		}
	}
	var cmds []tea.Cmd
	for _, cardKey := range m.lazy.Reveal(keys) {
		card, ok := m.cardByKey(cardKey)
		if !ok {
			continue
		}
		if card.LazySrc != "" {
			m.tracker.Swap(cardKey, card.LazySrc)
		}
		if card.VideoRef != "" {
			if cmd := m.probeCmd(cardKey); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	m.spy.Observe(viewport.Ratios(tuitree.RowSections(rows), start, end))
	return tea.Batch(cmds...)
}

func (m Model) rows() []tuitree.Row {
	return tuitree.BuildRows(m.board, tuitree.BuildOptions{CollapsedSections: m.collapsed})
}

func (m Model) rowAt(i int) tuitree.Row {
	rows := m.rows()
	if len(rows) == 0 {
		return tuitree.Row{}
	}
	return rows[tuistate.ClampCursor(i, len(rows))]
}

func (m Model) cardForRow(row tuitree.Row) (catalog.Card, bool) {
	if row.Kind != tuitree.RowCard {
		return catalog.Card{}, false
	}
	st, ok := m.board.Section(row.Section)
	if !ok || row.CardIndex < 0 || row.CardIndex >= st.Collection().Len() {
		return catalog.Card{}, false
	}
	return st.Collection().At(row.CardIndex), true
}

func (m Model) cardByKey(cardKey string) (catalog.Card, bool) {
	for _, sec := range m.catalog.Sections {
		for _, card := range sec.Cards {
			if card.Key() == cardKey {
				return card, true
			}
		}
	}
	return catalog.Card{}, false
}

func (m Model) currentCard() (catalog.Card, bool) {
	return m.cardForRow(m.rowAt(m.treeCursor))
}

func (m Model) currentSection() (*pipeline.SectionState, bool) {
	row := m.rowAt(m.treeCursor)
	if row.Section == "" {
		return nil, false
	}
	return m.board.Section(row.Section)
}

// restoreCursor keeps the selection on the same card after a filter or sort
// change, or as close to it as the section allows.
func (m *Model) restoreCursor(prev tuitree.Row) {
	rows := m.rows()
	if prev.Kind == tuitree.RowCard {
		if i := tuistate.CursorForCard(rows, prev.Section, prev.CardIndex); i >= 0 {
			m.treeCursor = i
			return
		}
	}
	m.treeCursor = tuistate.NearestRowInSection(rows, prev.Section, m.treeCursor)
}

func (m *Model) moveCursorBy(delta int) {
	m.treeCursor = tuistate.ClampCursor(m.treeCursor+delta, len(m.rows()))
}

func (m *Model) moveCardCursor(delta int) {
	rows := m.rows()
	for i := m.treeCursor + delta; i >= 0 && i < len(rows); i += delta {
		if rows[i].Kind == tuitree.RowCard {
			m.treeCursor = i
			m.detailTop = 0
			return
		}
	}
}

func (m *Model) jumpSection(delta int) {
	sections := m.board.Sections()
	if len(sections) == 0 {
		return
	}
	idx := m.board.Index(m.rowAt(m.treeCursor).Section)
	next := idx + delta
	if next < 0 || next >= len(sections) {
		return
	}
	id := sections[next].ID
	m.treeCursor = tuitree.SectionRow(m.rows(), id)
	m.spy.Set(id)
}

func (m *Model) ensureTreeCursorValid() {
	m.treeCursor = tuistate.ClampCursor(m.treeCursor, len(m.rows()))
}

func (m Model) listWindow(rows []tuitree.Row) (int, int) {
	return tuistate.CenteredWindow(len(rows), m.treeCursor, m.listBodyHeight())
}

func (m Model) listBodyHeight() int {
	if m.height <= 0 {
		return 0
	}
	if h := m.height - 8; h > 3 {
		return h
	}
	return 3
}

func (m Model) contentWidth() int {
	if m.width > 0 {
		return m.width - 1
	}
	return 100
}

func (m Model) detailBodyHeight() int {
	if m.height > 0 {
		if h := m.height - 8; h > 3 {
			return h
		}
	}
	return 16
}

func (m *Model) setStatus(status string) {
	m.status = status
	m.warning = ""
}

func (m *Model) toast() tea.Cmd {
	m.statusID++
	return clearStatusCmd(m.statusID, 3*time.Second)
}

func clearStatusCmd(id int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m Model) ThemeMode() string {
	return m.themeMode
}

func (m Model) IsSaved(title string) bool {
	return m.saved[title]
}
