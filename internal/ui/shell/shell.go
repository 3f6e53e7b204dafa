// Package shell is the interactive site: a scrolling page under the
// navigation bar.
package shell

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/navbar"
	"github.com/alexcabrera/ridgeline/internal/render"
	"github.com/alexcabrera/ridgeline/internal/schedule"
	"github.com/alexcabrera/ridgeline/internal/site"
	"github.com/alexcabrera/ridgeline/internal/ui/anim"
	"github.com/alexcabrera/ridgeline/internal/ui/shared"
)

// Options configures the shell.
type Options struct {
	StartRoute    string
	BarHeight     int
	SettleDelay   time.Duration
	BarTransition time.Duration
	HeroFallback  time.Duration
	Nav           navbar.Options
	// Reloads delivers catalogs from a content watcher. Nil disables
	// hot reload.
	Reloads <-chan *content.Catalog
	Log     zerolog.Logger
}

type (
	settleMsg     struct{}
	sampledMsg    struct{}
	heroLoadedMsg struct{ seq int }
	reloadMsg     struct{ catalog *content.Catalog }
)

// Model is the bubbletea model for the site shell.
type Model struct {
	opts    Options
	catalog *content.Catalog
	history *site.History
	page    *site.Page
	grid    *render.Grid

	surface *render.Surface
	ctrl    *navbar.Controller
	sched   *schedule.Scheduler
	hero    *site.Hero

	viewport viewport.Model
	keys     keyMap
	help     help.Model
	bar      *NavBar
	spinner  anim.Model
	audio    anim.Model
	slide    anim.Tween
	fade     anim.Tween

	token     navbar.Token
	focus     int
	audioOn   bool
	heroSeq   int
	ready     bool
	width     int
	height    int
	lastError error

	log zerolog.Logger
	now func() time.Time
}

// New creates the shell model.
func New(opts Options, catalog *content.Catalog) Model {
	if opts.BarHeight < 1 {
		opts.BarHeight = 3
	}
	if opts.StartRoute == "" {
		opts.StartRoute = "/"
	}
	log := opts.Log.With().Str("component", "shell").Logger()

	surface := render.NewSurface(opts.BarHeight)
	ctrl := navbar.NewController(surface, opts.Nav, opts.Log.With().Str("component", "navbar").Logger())

	bar := NewNavBar(opts.BarHeight)
	bar.SetBrand(catalog.Site.Brand)

	audio := anim.New(anim.Settings{Type: shared.SpinnerAudio, Interval: 180 * time.Millisecond})
	audio.Stop()

	return Model{
		opts:     opts,
		catalog:  catalog,
		history:  site.NewHistory(opts.StartRoute),
		surface:  surface,
		ctrl:     ctrl,
		sched:    schedule.New(8),
		hero:     site.NewHero(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		bar:      bar,
		spinner:  anim.New(anim.DefaultSettings()),
		audio:    audio,
		slide:    anim.NewTween(opts.BarTransition, 1, navbar.EaseInOut),
		fade:     anim.NewTween(opts.Nav.ThemeTransition, 1, nil),
		token:    navbar.TokenWhite,
		focus:    -1,
		log:      log,
		now:      time.Now,
	}
}

// Controller exposes the bar controller.
func (m Model) Controller() *navbar.Controller {
	return m.ctrl
}

// Route returns the current route.
func (m Model) Route() site.Route {
	if m.page == nil {
		r, _ := site.Resolve(m.history.Current())
		return r
	}
	return m.page.Route
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.spinner.Init(), m.waitReload())
}

// listen delivers the next scheduled message.
func (m Model) listen() tea.Cmd {
	s := m.sched
	return func() tea.Msg {
		msg, ok := s.Next()
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) waitReload() tea.Cmd {
	ch := m.opts.Reloads
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return reloadMsg{catalog: c}
	}
}

// sample runs a sampling pass off the update loop.
func (m Model) sample() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctrl.Sample()
		return sampledMsg{}
	}
}

func (m Model) loadHero() tea.Cmd {
	if strings.TrimSpace(m.catalog.Site.Hero.Art) == "" {
		return nil
	}
	seq := m.heroSeq
	return func() tea.Msg {
		return heroLoadedMsg{seq: seq}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		cmds = append(cmds, m.resize(msg.Width, msg.Height))

	case tea.KeyMsg:
		if !m.ready {
			if key.Matches(msg, m.keys.Quit) {
				return m, m.quit()
			}
			return m, nil
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		if m.ready {
			cmds = append(cmds, m.handleMouse(msg))
		}

	case settleMsg:
		cmds = append(cmds, m.sample(), m.listen())

	case site.HeroFallbackMsg:
		if m.hero.Fallback(msg) {
			m.log.Debug().Msg("hero art timed out, showing fallback")
			cmds = append(cmds, m.rebuild())
		}
		cmds = append(cmds, m.listen())

	case heroLoadedMsg:
		if msg.seq == m.heroSeq && m.hero.Loaded() {
			cmds = append(cmds, m.rebuild())
		}

	case sampledMsg:
		cmds = append(cmds, m.applyTheme())

	case reloadMsg:
		m.catalog = msg.catalog
		m.bar.SetBrand(m.catalog.Site.Brand)
		m.log.Info().Int("tours", len(m.catalog.Tours)).Msg("content reloaded")
		if m.ready {
			cmds = append(cmds, m.rebuild())
		}
		cmds = append(cmds, m.waitReload())

	case anim.TickMsg:
		var cmd tea.Cmd
		if msg.ID == m.audio.ID() {
			m.audio, cmd = m.audio.Update(msg)
		} else {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		cmds = append(cmds, cmd)

	case anim.FrameMsg:
		var cmd tea.Cmd
		if msg.ID == m.slide.ID() {
			m.slide, cmd = m.slide.Update(msg)
		} else {
			m.fade, cmd = m.fade.Update(msg)
		}
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) tea.Cmd {
	m.width, m.height = width, height
	m.help.Width = width
	m.bar.SetWidth(width)

	if !m.ready {
		m.viewport = viewport.New(width, m.bodyHeight())
		m.ready = true
		m.ctrl.Mount()
		cmd := m.navigate(m.history.Current(), false)
		m.sched.After(m.opts.SettleDelay, settleMsg{})
		return cmd
	}

	m.viewport.Width = width
	m.viewport.Height = m.bodyHeight()
	if !m.bar.Collapsed() {
		m.ctrl.CloseMobileMenu()
	}
	return tea.Batch(m.rebuild(), m.sample())
}

func (m Model) bodyHeight() int {
	h := m.height - lipgloss.Height(m.footerView())
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) builder() site.Builder {
	return site.Builder{
		Catalog:   m.catalog,
		Width:     m.width,
		BarHeight: m.opts.BarHeight,
		Hero:      m.hero.State(),
	}
}

// rebuild re-renders the current route in place, keeping the scroll
// offset where possible.
func (m *Model) rebuild() tea.Cmd {
	page, err := m.builder().Page(m.history.Current())
	if err != nil {
		m.log.Debug().Err(err).Msg("route not found")
	}
	m.lastError = err
	m.page = page
	m.grid = render.Paint(page.Doc, m.width)
	m.surface.SetDocument(page.Doc)
	m.surface.SetViewport(m.width, m.viewport.Height)
	m.viewport.SetContent(m.grid.String())
	if m.focus >= len(page.Doc.Links()) {
		m.focus = -1
	}
	return m.scrollTo(m.viewport.YOffset)
}

// navigate shows path. push records it in history.
func (m *Model) navigate(path string, push bool) tea.Cmd {
	wasHome := m.page != nil && m.page.Route.Kind == site.KindHome
	if push {
		m.history.Push(path)
	}
	m.ctrl.CloseMobileMenu()
	m.focus = -1

	r, _ := site.Resolve(m.history.Current())
	var cmds []tea.Cmd
	if wasHome && r.Kind != site.KindHome {
		m.hero.Unmount()
	}
	if r.Kind == site.KindHome && !wasHome {
		m.heroSeq++
		m.hero.Mount(m.sched, m.opts.HeroFallback)
		cmds = append(cmds, m.loadHero())
	}

	m.viewport.SetYOffset(0)
	cmds = append(cmds, m.rebuild())
	if m.page != nil {
		cmds = append(cmds, tea.SetWindowTitle(m.page.Title+" "+shared.IconDot+" "+m.catalog.Site.Brand))
	}
	m.log.Debug().Str("route", m.history.Current()).Msg("navigate")
	return tea.Batch(append(cmds, m.sample())...)
}

// scrollTo moves the viewport and forwards the offset to the controller.
func (m *Model) scrollTo(y int) tea.Cmd {
	m.viewport.SetYOffset(y)
	y = m.viewport.YOffset
	m.surface.SetScroll(y)

	before := m.ctrl.State().Visible
	moved := m.ctrl.Scroll(y)
	st := m.ctrl.State()
	m.surface.SetBarShown(st.Visible)

	var cmds []tea.Cmd
	if st.Visible != before {
		target := 0.0
		if st.Visible {
			target = 1
		}
		cmds = append(cmds, m.slide.Retarget(target, m.now()))
	}
	if moved {
		cmds = append(cmds, m.sample())
	}
	return tea.Batch(cmds...)
}

func (m *Model) applyTheme() tea.Cmd {
	th := m.ctrl.Theme()
	if th.Token == m.token {
		return nil
	}
	m.token = th.Token
	m.fade = anim.NewTween(m.opts.Nav.ThemeTransition, 0, nil)
	return m.fade.Retarget(1, m.now())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	y := m.viewport.YOffset
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Up):
		return m.scrollTo(y - 1)
	case key.Matches(msg, m.keys.Down):
		return m.scrollTo(y + 1)
	case key.Matches(msg, m.keys.PageUp):
		return m.scrollTo(y - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		return m.scrollTo(y + m.viewport.Height)
	case key.Matches(msg, m.keys.Top):
		return m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		return m.scrollTo(math.MaxInt32)
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Follow):
		links := m.page.Doc.Links()
		if m.focus >= 0 && m.focus < len(links) {
			return m.navigate(links[m.focus].Link, true)
		}
	case key.Matches(msg, m.keys.Back):
		if _, ok := m.history.Back(); ok {
			return m.navigate(m.history.Current(), false)
		}
	case key.Matches(msg, m.keys.Jump):
		i := int(msg.String()[0] - '1')
		if i < len(site.Main) {
			return m.navigate(site.Main[i].Path, true)
		}
	case key.Matches(msg, m.keys.Menu):
		if m.bar.Collapsed() {
			m.ctrl.ToggleMobileMenu()
		}
	case key.Matches(msg, m.keys.Audio):
		return m.toggleAudio()
	case key.Matches(msg, m.keys.Close):
		m.ctrl.CloseMobileMenu()
		m.help.ShowAll = false
		m.viewport.Height = m.bodyHeight()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
		m.surface.SetViewport(m.width, m.viewport.Height)
	}
	return nil
}

func (m *Model) toggleAudio() tea.Cmd {
	m.audioOn = !m.audioOn
	if m.audioOn {
		return m.audio.Start()
	}
	m.audio.Stop()
	return nil
}

// moveFocus cycles link focus and scrolls the focused link into view.
func (m *Model) moveFocus(delta int) tea.Cmd {
	links := m.page.Doc.Links()
	if len(links) == 0 {
		return nil
	}
	switch {
	case m.focus < 0 && delta < 0:
		m.focus = len(links) - 1
	case m.focus < 0:
		m.focus = 0
	default:
		m.focus = (m.focus + delta + len(links)) % len(links)
	}

	r := links[m.focus].Rect()
	top := m.viewport.YOffset
	switch {
	case r.Y < top+m.opts.BarHeight:
		return m.scrollTo(r.Y - m.opts.BarHeight)
	case r.Y+r.Height > top+m.viewport.Height:
		return m.scrollTo(r.Y + r.Height - m.viewport.Height)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return m.scrollTo(m.viewport.YOffset - 3)
	case tea.MouseButtonWheelDown:
		return m.scrollTo(m.viewport.YOffset + 3)
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionRelease {
			return nil
		}
	default:
		return nil
	}

	if m.ctrl.State().Visible {
		if h, ok := m.bar.HitTest(msg.X, msg.Y+m.barOffset()); ok {
			switch {
			case h.menu:
				m.ctrl.ToggleMobileMenu()
				return nil
			case h.audio:
				return m.toggleAudio()
			default:
				return m.navigate(h.href, true)
			}
		}
	}
	for n := m.page.Doc.Hit(msg.X, msg.Y+m.viewport.YOffset); n != nil; {
		if n.Link != "" {
			return m.navigate(n.Link, true)
		}
		p, ok := n.Parent().(*render.Node)
		if !ok {
			break
		}
		n = p
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.Close()
	return tea.Quit
}

// Close cancels pending tasks. It is safe to call more than once.
func (m Model) Close() {
	m.hero.Unmount()
	m.sched.Stop()
}

// barOffset is how many rows the bar has slid up.
func (m Model) barOffset() int {
	return int(math.Round((1 - m.slide.Value(m.now())) * float64(m.opts.BarHeight)))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready || m.grid == nil {
		return "\n  Loading..."
	}

	st := m.ctrl.State()
	m.bar.SetItems(site.Build(m.page.Route.Path))
	m.bar.SetTheme(m.ctrl.Theme(), m.ctrl.Foreground())
	m.bar.SetMenuOpen(st.MobileMenuOpen)
	if m.audioOn {
		m.bar.SetAudio(m.audio.Frame())
	} else {
		m.bar.SetAudio(shared.AudioOff)
	}

	top := m.viewport.YOffset
	offset := m.barOffset()
	var barRows [][]render.Span
	if offset < m.opts.BarHeight {
		barRows = m.bar.Rows(func(x, row int) string {
			return m.grid.Background(x, top+row-offset)
		})
	}

	overlays := make(map[int][]render.Span)
	m.focusSpans(overlays, top)
	if ph := m.page.Doc.Find("hero-placeholder"); ph != nil {
		for _, r := range ph.TextRects() {
			overlays[r.Y-top] = append(overlays[r.Y-top], render.Span{X: r.X, Text: m.spinner.Frame(), Fg: shared.Stone})
		}
	}
	for i, spans := range barRows {
		row := i - offset
		if row >= 0 {
			overlays[row] = append(overlays[row], spans...)
		}
	}

	lines := make([]string, 0, m.viewport.Height+1)
	for row := 0; row < m.viewport.Height; row++ {
		lines = append(lines, m.grid.Compose(top+row, overlays[row]...))
	}
	lines = append(lines, m.footerView())
	return strings.Join(lines, "\n")
}

func (m Model) focusSpans(overlays map[int][]render.Span, top int) {
	links := m.page.Doc.Links()
	if m.focus < 0 || m.focus >= len(links) {
		return
	}
	for _, r := range links[m.focus].TextRects() {
		row := r.Y - top
		if row < 0 || row >= m.viewport.Height {
			continue
		}
		overlays[row] = append(overlays[row], m.grid.Invert(r.Y, r.X, r.Width))
	}
}

func (m Model) footerView() string {
	muted := lipgloss.NewStyle().Foreground(shared.ColorMuted)
	left := m.help.View(m.keys)

	status := fmt.Sprintf("%s %3.f%%", m.Route().Path, m.viewport.ScrollPercent()*100)
	if m.lastError != nil {
		status = lipgloss.NewStyle().Foreground(shared.ColorError).Render("not found") + " " + status
	}
	right := muted.Render(status)

	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		return " " + right
	}
	return " " + left + strings.Repeat(" ", gap) + right
}

// Run starts the shell on the terminal and blocks until it quits.
func Run(ctx context.Context, opts Options, catalog *content.Catalog) error {
	m := New(opts, catalog)
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run shell: %w", err)
	}
	return nil
}
