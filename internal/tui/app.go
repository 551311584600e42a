package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jeremynwa/automated-tech-newsletter/internal/browser"
	"github.com/jeremynwa/automated-tech-newsletter/internal/config"
	"github.com/jeremynwa/automated-tech-newsletter/internal/digest"
	"github.com/jeremynwa/automated-tech-newsletter/internal/export"
	"github.com/jeremynwa/automated-tech-newsletter/internal/filter"
	"github.com/jeremynwa/automated-tech-newsletter/internal/share"
	"github.com/jeremynwa/automated-tech-newsletter/internal/similar"
	"github.com/jeremynwa/automated-tech-newsletter/internal/speech"
	"github.com/jeremynwa/automated-tech-newsletter/internal/store"
)

type mode int

const (
	modeHome mode = iota
	modeFeed
	modeSearch
	modeDate
	modeFilter
	modeSaved
	modeHelp
)

// Filter application is two-phased: a short transition delay before the
// pass, then a settle delay before the resync is considered done. The
// second is always scheduled from the first's completion.
const (
	applyDelay  = 150 * time.Millisecond
	resyncDelay = 50 * time.Millisecond
)

type App struct {
	cfg      *config.Config
	db       *store.Store
	days     []*digest.Day
	state    *filter.State
	engine   *filter.Engine
	narrator *speech.Controller

	mode   mode
	theme  Theme
	width  int
	height int

	// feed state, refreshed by the post-apply observers
	refs        []articleRef
	cursor      int
	chips       []filter.Chip
	noResults   bool
	readingTime int
	visibleTOC  []tocEntry
	tocEntries  []tocEntry
	savedState  map[string]bool

	// saved view
	savedList   []store.SavedArticle
	savedCursor int
	savedCount  int

	// similar articles expansion
	similarFor     *digest.Article
	similarMatches []similar.Match

	// inputs
	searchInput  textinput.Model
	dateInput    textinput.Model
	filterCursor int
	spinner      spinner.Model

	// narration display
	narrState  speech.ControllerState
	narrStatus string

	transitioning bool
	pendingChip   *filter.Chip
	notice        string
	err           error
}

// RunOpts holds all parameters for launching the TUI.
type RunOpts struct {
	Cfg      *config.Config
	DB       *store.Store
	Days     []*digest.Day
	Engine   *filter.Engine
	Narrator *speech.Controller
}

func NewApp(opts RunOpts) *App {
	si := textinput.New()
	si.Placeholder = "Search articles..."
	si.CharLimit = 100

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD"
	di.CharLimit = 10

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	a := &App{
		cfg:         opts.Cfg,
		db:          opts.DB,
		days:        opts.Days,
		state:       opts.Engine.State(),
		engine:      opts.Engine,
		narrator:    opts.Narrator,
		mode:        modeHome,
		theme:       ThemeByName(opts.DB.Theme()),
		tocEntries:  buildTOC(opts.Days),
		savedState:  make(map[string]bool),
		searchInput: si,
		dateInput:   di,
		spinner:     sp,
	}
	a.searchInput.Prompt = a.theme.Accent.Render("/ ")
	a.dateInput.Prompt = a.theme.Accent.Render("date: ")

	// Post-apply observers, in order: navigation sync, bookmark buttons,
	// reading-time estimate. The engine calls these after every pass.
	opts.Engine.Subscribe(a.syncTOC)
	opts.Engine.Subscribe(a.refreshBookmarks)
	opts.Engine.Subscribe(a.recomputeReadingTime)

	// Initial pass with the default state so every derived display starts
	// consistent.
	res := opts.Engine.Apply()
	a.chips = res.Chips
	a.noResults = res.NoResults
	a.reloadSaved()

	return a
}

// syncTOC rebuilds the visible navigation entries from day visibility.
func (a *App) syncTOC(filter.Result) {
	visible := a.visibleTOC[:0]
	for _, e := range a.tocEntries {
		if e.day.Visibility == digest.Visible {
			visible = append(visible, e)
		}
	}
	a.visibleTOC = visible
}

// refreshBookmarks re-flattens the visible articles and recomputes each
// one's saved state, since save toggles only exist on rendered articles.
func (a *App) refreshBookmarks(filter.Result) {
	a.refs = buildRefs(a.days)
	if a.cursor >= len(a.refs) {
		a.cursor = max(0, len(a.refs)-1)
	}

	a.savedState = make(map[string]bool, len(a.refs))
	for _, ref := range a.refs {
		id := store.ArticleID(ref.art.Title, ref.day.DateStr)
		saved, err := a.db.Saved(id)
		if err == nil {
			a.savedState[id] = saved
		}
	}
}

func (a *App) recomputeReadingTime(filter.Result) {
	a.readingTime = speech.ReadingTime(a.days)
}

func (a *App) Init() tea.Cmd {
	return a.waitForNarration()
}

func (a *App) waitForNarration() tea.Cmd {
	events := a.narrator.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return narrationMsg{ev: ev}
	}
}

// applyFilters starts the two-phase apply: narration stops immediately, the
// pass itself runs after the transition delay.
func (a *App) applyFilters() tea.Cmd {
	a.narrator.Stop()
	a.transitioning = true
	a.similarFor = nil
	return tea.Batch(
		tea.Tick(applyDelay, func(time.Time) tea.Msg { return applyTickMsg{} }),
		a.spinner.Tick,
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case applyTickMsg:
		var res filter.Result
		if a.pendingChip != nil {
			res = a.engine.RemoveChip(*a.pendingChip)
			a.pendingChip = nil
		} else {
			res = a.engine.Apply()
		}
		a.chips = res.Chips
		a.noResults = res.NoResults
		// The resync settle always nests inside the apply completion.
		return a, tea.Tick(resyncDelay, func(time.Time) tea.Msg { return resyncTickMsg{} })

	case resyncTickMsg:
		a.transitioning = false
		return a, nil

	case narrationMsg:
		a.narrState = msg.ev.State
		a.narrStatus = msg.ev.Status
		if msg.ev.Article != nil {
			a.scrollToArticle(msg.ev.Article)
		}
		return a, a.waitForNarration()

	case exportDoneMsg:
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		return a, a.flashNotice("Exported to " + msg.path)

	case noticeMsg:
		a.notice = msg.text
		return a, tea.Tick(2*time.Second, func(time.Time) tea.Msg { return clearNoticeMsg{} })

	case clearNoticeMsg:
		a.notice = ""
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.transitioning {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) flashNotice(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

// scrollToArticle moves the cursor to the ref holding art so the feed
// window follows narration.
func (a *App) scrollToArticle(art *digest.Article) {
	for i, ref := range a.refs {
		if ref.art == art {
			a.cursor = i
			return
		}
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.narrator.Stop()
		return a, tea.Quit
	}

	switch a.mode {
	case modeHome:
		return a.handleHomeKey(msg)
	case modeSearch:
		return a.handleSearchKey(msg)
	case modeDate:
		return a.handleDateKey(msg)
	case modeFilter:
		return a.handleFilterKey(msg)
	case modeSaved:
		return a.handleSavedKey(msg)
	case modeHelp:
		switch msg.String() {
		case "?", "esc", "q":
			a.mode = modeFeed
		}
		return a, nil
	}

	return a.handleFeedKey(msg)
}

func (a *App) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "enter":
		a.mode = modeFeed
	case "v":
		a.reloadSaved()
		a.mode = modeSaved
	case "q":
		return a, tea.Quit
	}
	return a, nil
}

func (a *App) handleFeedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.narrator.Stop()
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.refs)-1 {
			a.cursor++
			a.similarFor = nil
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
			a.similarFor = nil
		}
	case "g":
		a.cursor = 0
	case "G":
		a.cursor = max(0, len(a.refs)-1)
	case "o", "enter":
		if ref, ok := a.currentRef(); ok {
			return a, openBrowserCmd(ref.art.Link)
		}
	case "s":
		return a, a.toggleSave()
	case "m":
		a.toggleSimilar()
	case "y":
		if ref, ok := a.currentRef(); ok {
			if err := share.CopyLink(ref.art.Link); err != nil {
				a.err = err
				return a, nil
			}
			return a, a.flashNotice("Link copied")
		}
	case "L":
		if ref, ok := a.currentRef(); ok {
			return a, openBrowserCmd(share.LinkedInURL(ref.art.Link))
		}
	case "X":
		if ref, ok := a.currentRef(); ok {
			return a, openBrowserCmd(share.TwitterURL(ref.art.Link, ref.art.Title))
		}
	case "p":
		return a, a.toggleNarration()
	case "n":
		a.narrator.Skip()
	case "x":
		a.narrator.Stop()
	case "e":
		return a, a.exportCmd()
	case "t":
		a.toggleTheme()
	case "/":
		a.mode = modeSearch
		a.searchInput.SetValue(a.state.Keyword())
		a.searchInput.Focus()
		return a, textinput.Blink
	case "c":
		a.mode = modeDate
		a.dateInput.SetValue("")
		a.dateInput.Focus()
		return a, textinput.Blink
	case "f":
		a.mode = modeFilter
		a.filterCursor = 0
	case "v":
		a.reloadSaved()
		a.mode = modeSaved
	case "h":
		a.mode = modeHome
	case "?":
		a.mode = modeHelp
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.String()[0] - '1')
		if idx < len(a.chips) {
			chip := a.chips[idx]
			a.pendingChip = &chip
			return a, a.applyFilters()
		}
	}
	return a, nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeFeed
		a.searchInput.SetValue("")
		a.searchInput.Blur()
		a.state.SetKeyword("")
		return a, a.applyFilters()
	case "enter":
		a.mode = modeFeed
		a.searchInput.Blur()
		a.state.SetKeyword(a.searchInput.Value())
		return a, a.applyFilters()
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

func (a *App) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeFeed
		a.dateInput.Blur()
		return a, nil
	case "enter":
		d, err := time.Parse("2006-01-02", a.dateInput.Value())
		if err != nil {
			a.err = fmt.Errorf("invalid date %q (want YYYY-MM-DD)", a.dateInput.Value())
			return a, nil
		}
		a.mode = modeFeed
		a.dateInput.Blur()
		a.state.SetCustomDate(d)
		return a, a.applyFilters()
	}

	var cmd tea.Cmd
	a.dateInput, cmd = a.dateInput.Update(msg)
	return a, cmd
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f":
		a.mode = modeFeed
		return a, a.applyFilters()
	case "left", "h":
		if a.filterCursor > 0 {
			a.filterCursor--
		}
	case "right", "l":
		if a.filterCursor < filterOptionCount()-1 {
			a.filterCursor++
		}
	case " ", "enter":
		a.toggleFilterOption()
	}
	return a, nil
}

func (a *App) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "h":
		a.mode = modeFeed
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.savedCursor < len(a.savedList)-1 {
			a.savedCursor++
		}
	case "k", "up":
		if a.savedCursor > 0 {
			a.savedCursor--
		}
	case "o", "enter":
		if a.savedCursor < len(a.savedList) {
			return a, openBrowserCmd(a.savedList[a.savedCursor].Link)
		}
	case "d", "x":
		if a.savedCursor < len(a.savedList) {
			if err := a.db.Remove(a.savedList[a.savedCursor].ID); err != nil {
				a.err = err
				return a, nil
			}
			a.reloadSaved()
			a.refreshBookmarks(filter.Result{})
		}
	}
	return a, nil
}

func (a *App) currentRef() (articleRef, bool) {
	if len(a.refs) == 0 || a.cursor >= len(a.refs) {
		return articleRef{}, false
	}
	return a.refs[a.cursor], true
}

func (a *App) toggleSave() tea.Cmd {
	ref, ok := a.currentRef()
	if !ok {
		return nil
	}
	saved, err := a.db.Toggle(ref.art.Title, ref.art.Link, ref.art.Summary, ref.day.DateStr)
	if err != nil {
		a.err = err
		return nil
	}
	a.savedState[store.ArticleID(ref.art.Title, ref.day.DateStr)] = saved
	a.reloadSaved()
	if saved {
		return a.flashNotice("Saved")
	}
	return a.flashNotice("Removed from saved")
}

func (a *App) toggleSimilar() {
	ref, ok := a.currentRef()
	if !ok {
		return
	}
	// The similarity widget only exists on tech items.
	if ref.sec.Class != digest.ClassTech {
		return
	}
	if a.similarFor == ref.art {
		a.similarFor = nil
		a.similarMatches = nil
		return
	}
	a.similarFor = ref.art
	a.similarMatches = a.findSimilar(ref.art)
}

func (a *App) toggleNarration() tea.Cmd {
	switch a.narrator.State() {
	case speech.Idle:
		if err := a.narrator.Start(speech.BuildQueue(a.days)); err != nil {
			return a.flashNotice(err.Error())
		}
	case speech.Playing:
		a.narrator.Pause()
	case speech.Paused:
		a.narrator.Resume()
	}
	return nil
}

func (a *App) toggleTheme() {
	if a.theme.Name == "dark" {
		a.theme = LightTheme()
	} else {
		a.theme = DarkTheme()
	}
	if err := a.db.SetTheme(a.theme.Name); err != nil {
		a.err = err
	}
	a.searchInput.Prompt = a.theme.Accent.Render("/ ")
	a.dateInput.Prompt = a.theme.Accent.Render("date: ")
}

func (a *App) exportCmd() tea.Cmd {
	days := a.days
	dir := a.cfg.ResolveExportDir()
	opts := export.Options{Width: a.cfg.PageWidth, PageHeight: a.cfg.PageHeight}
	return func() tea.Msg {
		path, err := export.File(days, dir, opts)
		return exportDoneMsg{path: path, err: err}
	}
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) View() string {
	if a.width == 0 {
		return a.theme.Accent.Render("  techdigest")
	}

	if a.mode == modeHome {
		return a.renderHome()
	}
	if a.mode == modeHelp {
		return a.renderHelp()
	}

	headerHeight := 1
	barHeight := 1
	statusHeight := 1
	if a.mode == modeFilter {
		barHeight = 3
	}
	contentHeight := a.height - headerHeight - barHeight - statusHeight - 2
	if contentHeight < 3 {
		contentHeight = 3
	}

	// Header
	headerLeft := a.theme.Header.Render("techdigest")
	headerRight := a.theme.HeaderDate.Render(time.Now().Format("Jan 2"))
	gap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight) - 1
	if gap < 0 {
		gap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", gap, "") + headerRight

	// Filter bar / input row
	var bar string
	switch a.mode {
	case modeSearch:
		bar = a.searchInput.View()
	case modeDate:
		bar = a.dateInput.View()
	case modeFilter:
		bar = a.renderFilterPanel(a.width)
	default:
		bar = a.renderFilterBar(a.width)
	}

	// Content row
	var content string
	if a.mode == modeSaved {
		content = a.theme.ContentPane.Width(a.width - 2).Height(contentHeight).
			Render(a.renderSavedView(a.width-6, contentHeight))
	} else {
		tocWidth := 24
		if a.width < 70 {
			tocWidth = 0
		}
		feedWidth := a.width - tocWidth - 2

		var activeDay *digest.Day
		if ref, ok := a.currentRef(); ok {
			activeDay = ref.day
		}

		feed := a.theme.ContentPane.Width(feedWidth).Height(contentHeight).
			Render(a.renderFeed(feedWidth-4, contentHeight))

		if tocWidth > 0 {
			toc := a.theme.TocPane.Width(tocWidth - 2).Height(contentHeight).
				Render(renderTOC(a.visibleTOC, activeDay, a.theme, tocWidth-4, contentHeight))
			content = lipgloss.JoinHorizontal(lipgloss.Top, toc, feed)
		} else {
			content = feed
		}
	}

	status := a.renderStatusBar(a.width)

	return lipgloss.JoinVertical(lipgloss.Left, header, bar, content, status)
}

func (a *App) renderHome() string {
	title := a.theme.Accent.Render("techdigest")
	key := a.theme.Accent
	label := a.theme.Summary

	body := title + a.theme.Dim.Render(" · your tech digest, offline") + "\n\n" +
		"   " + key.Render("[e]") + "  " + label.Render("Read the digest") + "\n" +
		"   " + key.Render("[v]") + "  " + label.Render(fmt.Sprintf("Saved articles (%d)", a.savedCount)) + "\n\n" +
		"   " + key.Render("[q]") + "  " + label.Render("Quit")

	card := a.theme.HelpCard.Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

func (a *App) renderHelp() string {
	title := a.theme.Accent.Render("techdigest")
	dim := a.theme.Dim

	help := title + dim.Render(" · Keyboard Shortcuts") + "\n\n" +
		dim.Render("Navigation") + "\n" +
		"  j/k, ↑/↓     Move between articles\n" +
		"  g/G           Jump to first/last article\n\n" +
		dim.Render("Filtering") + "\n" +
		"  f             Filter mode (ranges, types)\n" +
		"  /             Keyword search\n" +
		"  c             Custom date\n" +
		"  1-9           Remove filter chip\n\n" +
		dim.Render("Listening") + "\n" +
		"  p             Play / pause / resume\n" +
		"  n             Skip to next article\n" +
		"  x             Stop\n\n" +
		dim.Render("Actions") + "\n" +
		"  o, enter      Open in browser\n" +
		"  s             Save / unsave article\n" +
		"  v             Saved articles view\n" +
		"  m             Similar articles\n" +
		"  y             Copy link\n" +
		"  L / X         Share on LinkedIn / Twitter\n" +
		"  e             Export visible articles\n" +
		"  t             Toggle light/dark theme\n\n" +
		dim.Render("General") + "\n" +
		"  h             Home screen\n" +
		"  ?             Toggle this help\n" +
		"  q, ctrl+c    Quit"

	card := a.theme.HelpCard.Render(help)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card)
}

// Run starts the TUI application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	app.narrator.Stop()
	return err
}
