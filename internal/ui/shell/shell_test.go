package shell

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/navbar"
	"github.com/alexcabrera/ridgeline/internal/site"
)

func testOptions() Options {
	return Options{
		StartRoute:    "/",
		BarHeight:     3,
		SettleDelay:   time.Hour,
		BarTransition: 0,
		HeroFallback:  time.Hour,
		Nav:           navbar.DefaultOptions(),
		Log:           zerolog.Nop(),
	}
}

func newTestModel(t *testing.T, width, height int) Model {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	m := New(testOptions(), c)
	t.Cleanup(m.Close)
	return update(m, tea.WindowSizeMsg{Width: width, Height: height})
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func press(m Model, k string) Model {
	switch k {
	case "down":
		return update(m, tea.KeyMsg{Type: tea.KeyDown})
	case "up":
		return update(m, tea.KeyMsg{Type: tea.KeyUp})
	case "tab":
		return update(m, tea.KeyMsg{Type: tea.KeyTab})
	case "enter":
		return update(m, tea.KeyMsg{Type: tea.KeyEnter})
	case "backspace":
		return update(m, tea.KeyMsg{Type: tea.KeyBackspace})
	case "esc":
		return update(m, tea.KeyMsg{Type: tea.KeyEsc})
	}
	return update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestViewBeforeResize(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	m := New(testOptions(), c)
	defer m.Close()
	if got := m.View(); !strings.Contains(got, "Loading") {
		t.Errorf("View() = %q, want loading text", got)
	}
}

func TestResizeMounts(t *testing.T) {
	m := newTestModel(t, 100, 24)

	if !m.ready {
		t.Fatal("model not ready after resize")
	}
	if got := m.Route().Kind; got != site.KindHome {
		t.Errorf("route = %v, want home", got)
	}
	if !m.ctrl.State().Visible {
		t.Error("bar hidden after mount")
	}
	if !m.hero.Pending() {
		t.Error("hero fallback not scheduled on mount")
	}
	if got := m.sched.Pending(); got != 2 {
		t.Errorf("pending tasks = %d, want settle and hero fallback", got)
	}

	view := ansi.Strip(m.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Errorf("view has %d lines, want 24", len(lines))
	}
	if !strings.Contains(lines[1], "RIDGELINE") {
		t.Errorf("bar row = %q, want brand", lines[1])
	}
	if !strings.Contains(lines[1], "2 Tours") {
		t.Errorf("bar row = %q, want numbered links", lines[1])
	}
}

func TestScrollHidesAndShowsBar(t *testing.T) {
	m := newTestModel(t, 100, 20)

	m = press(m, "down")
	if m.viewport.YOffset != 1 {
		t.Fatalf("offset = %d, want 1", m.viewport.YOffset)
	}
	if m.ctrl.State().Visible {
		t.Error("bar visible after scrolling down")
	}
	if m.surface.BarRect().Height != 3 {
		t.Error("bar rect changed with visibility")
	}

	m = press(m, "down")
	m = press(m, "up")
	if !m.ctrl.State().Visible {
		t.Error("bar hidden after scrolling up")
	}

	m = press(m, "down")
	m = press(m, "g")
	if !m.ctrl.State().Visible {
		t.Error("bar hidden at the top")
	}
}

func TestMouseWheelScrolls(t *testing.T) {
	m := newTestModel(t, 100, 20)
	m = update(m, tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.viewport.YOffset != 3 {
		t.Errorf("offset = %d, want 3", m.viewport.YOffset)
	}
	if m.ctrl.State().Visible {
		t.Error("bar visible after wheel down")
	}
}

func TestJumpAndBack(t *testing.T) {
	m := newTestModel(t, 100, 24)

	m = press(m, "2")
	if got := m.Route().Kind; got != site.KindTours {
		t.Fatalf("route after 2 = %v, want tours", got)
	}
	if m.hero.Pending() {
		t.Error("hero fallback still pending after leaving home")
	}
	if got := m.history.Len(); got != 2 {
		t.Errorf("history length = %d, want 2", got)
	}

	m = press(m, "backspace")
	if got := m.Route().Kind; got != site.KindHome {
		t.Errorf("route after back = %v, want home", got)
	}
	if !m.hero.Pending() {
		t.Error("hero fallback not rescheduled on return")
	}
}

func TestJumpOutOfRange(t *testing.T) {
	m := newTestModel(t, 100, 24)

	m = press(m, "7")
	if got := m.Route().Kind; got != site.KindHome {
		t.Fatalf("route after 7 = %v, want home", got)
	}
	if got := m.history.Len(); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestNavigateResetsScroll(t *testing.T) {
	m := newTestModel(t, 100, 20)
	for range 5 {
		m = press(m, "down")
	}
	m = press(m, "3")
	if m.viewport.YOffset != 0 {
		t.Errorf("offset = %d, want 0 after navigation", m.viewport.YOffset)
	}
	if !m.ctrl.State().Visible {
		t.Error("bar hidden after navigation")
	}
}

func TestFollowFocusedLink(t *testing.T) {
	m := newTestModel(t, 100, 24)

	links := m.page.Doc.Links()
	if len(links) == 0 {
		t.Fatal("home has no links")
	}
	want := links[0].Link

	m = press(m, "tab")
	if m.focus != 0 {
		t.Fatalf("focus = %d, want 0", m.focus)
	}
	m = press(m, "enter")
	if got := m.history.Current(); got != want {
		t.Errorf("current = %q, want %q", got, want)
	}
	if m.focus != -1 {
		t.Errorf("focus = %d after navigation, want cleared", m.focus)
	}
}

func TestFocusWraps(t *testing.T) {
	m := newTestModel(t, 100, 24)
	n := len(m.page.Doc.Links())

	m = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != n-1 {
		t.Errorf("focus = %d, want last link %d", m.focus, n-1)
	}
	m = press(m, "tab")
	if m.focus != 0 {
		t.Errorf("focus = %d, want wrap to 0", m.focus)
	}
}

func TestMobileMenu(t *testing.T) {
	m := newTestModel(t, 60, 24)
	if !m.bar.Collapsed() {
		t.Fatal("bar not collapsed at width 60")
	}

	m = press(m, "m")
	if !m.ctrl.State().MobileMenuOpen {
		t.Fatal("menu closed after m")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "3 Gallery") {
		t.Error("menu panel not drawn")
	}

	m = press(m, "down")
	if m.ctrl.State().MobileMenuOpen {
		t.Error("menu open after the bar hid")
	}
}

func TestMenuIgnoredWhenWide(t *testing.T) {
	m := newTestModel(t, 100, 24)
	m = press(m, "m")
	if m.ctrl.State().MobileMenuOpen {
		t.Error("menu opened on a wide bar")
	}
}

func TestWideningClosesMenu(t *testing.T) {
	m := newTestModel(t, 60, 24)
	m = press(m, "m")
	m = update(m, tea.WindowSizeMsg{Width: 100, Height: 24})
	if m.ctrl.State().MobileMenuOpen {
		t.Error("menu still open after widening")
	}
}

func TestAudioToggle(t *testing.T) {
	m := newTestModel(t, 100, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(Model)
	if !m.audioOn || !m.audio.IsActive() {
		t.Fatal("audio indicator off after s")
	}
	if cmd == nil {
		t.Error("no tick command for the indicator")
	}

	m = press(m, "s")
	if m.audioOn || m.audio.IsActive() {
		t.Error("audio indicator on after second s")
	}
	if !strings.Contains(ansi.Strip(m.View()), "▁▁▁") {
		t.Error("muted indicator not drawn")
	}
}

func TestSampleAppliesTheme(t *testing.T) {
	m := newTestModel(t, 100, 24)

	m.ctrl.Sample()
	m = update(m, sampledMsg{})
	if m.token != navbar.TokenWhite {
		t.Fatalf("token over hero = %v, want white", m.token)
	}

	about := m.page.Doc.Find("about")
	if about == nil {
		t.Fatal("home has no about section")
	}
	m.scrollTo(about.Rect().Y)
	m.ctrl.Sample()
	m = update(m, sampledMsg{})
	if m.token != navbar.TokenBlack {
		t.Errorf("token over about = %v, want black", m.token)
	}
	if !m.ctrl.State().BackgroundLight {
		t.Error("background not light over about")
	}
}

func TestSettleSamples(t *testing.T) {
	m := newTestModel(t, 100, 24)
	before := m.ctrl.Passes()

	next, cmd := m.Update(settleMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("settle returned no command")
	}

	// The batch also holds the scheduler listener, which blocks until
	// the next timer fires or the model closes.
	results := make(chan tea.Msg, 4)
	var run func(tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			results <- msg
		}()
	}
	run(cmd)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-results:
			if _, ok := msg.(sampledMsg); !ok {
				continue
			}
			if got := m.ctrl.Passes(); got <= before {
				t.Fatalf("passes = %d after settle, want more than %d", got, before)
			}
			m = update(m, msg)
			if m.token != navbar.TokenWhite {
				t.Errorf("token over hero = %v, want white", m.token)
			}
			return
		case <-deadline:
			t.Fatal("settle never produced a sample")
		}
	}
}

func TestHeroFallback(t *testing.T) {
	m := newTestModel(t, 100, 24)
	if m.page.Doc.Find("hero-placeholder") == nil {
		t.Fatal("no placeholder while loading")
	}

	m = update(m, site.HeroFallbackMsg{Seq: 1})
	if got := m.hero.State(); got != site.HeroFallback {
		t.Errorf("hero = %v, want fallback", got)
	}
	if m.page.Doc.Find("hero-placeholder") != nil {
		t.Error("placeholder still shown after fallback")
	}
}

func TestHeroLoaded(t *testing.T) {
	m := newTestModel(t, 100, 24)
	m = update(m, heroLoadedMsg{seq: m.heroSeq})
	if got := m.hero.State(); got != site.HeroReady {
		t.Fatalf("hero = %v, want ready", got)
	}
	if m.hero.Pending() {
		t.Error("fallback still pending after load")
	}
	if m.page.Doc.Find("hero-art") == nil {
		t.Error("art not shown")
	}

	// a late fallback is ignored
	m = update(m, site.HeroFallbackMsg{Seq: 1})
	if got := m.hero.State(); got != site.HeroReady {
		t.Errorf("hero = %v after late fallback, want ready", got)
	}
}

func TestReload(t *testing.T) {
	m := newTestModel(t, 100, 24)

	next := *m.catalog
	next.Site.Brand = "Summit"
	m = update(m, reloadMsg{catalog: &next})

	if m.page.Title != "Summit" {
		t.Errorf("title = %q, want Summit", m.page.Title)
	}
	if !strings.Contains(ansi.Strip(m.View()), "SUMMIT") {
		t.Error("bar still shows the old brand")
	}
}

func TestNotFound(t *testing.T) {
	m := newTestModel(t, 100, 24)
	m.navigate("/nowhere", true)

	if got := m.Route().Kind; got != site.KindNotFound {
		t.Errorf("route = %v, want not found", got)
	}
	if m.lastError == nil || !site.IsNotFound(m.lastError) {
		t.Errorf("lastError = %v, want not found", m.lastError)
	}
	if !strings.Contains(ansi.Strip(m.View()), "not found") {
		t.Error("footer does not report the missing route")
	}
}

func TestQuitStopsScheduler(t *testing.T) {
	m := newTestModel(t, 100, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("no quit command")
	}
	if !quits(cmd) {
		t.Error("q did not quit")
	}
	if got := m.sched.Pending(); got != 0 {
		t.Errorf("pending tasks = %d after quit, want 0", got)
	}
	if task := m.sched.After(time.Millisecond, settleMsg{}); task != nil {
		t.Error("scheduler accepted a task after quit")
	}
}

func TestClickBarLink(t *testing.T) {
	m := newTestModel(t, 100, 24)
	m.View()

	var x int
	for _, h := range m.bar.hits {
		if h.href == "/gallery" {
			x = h.x0
		}
	}
	if x == 0 {
		t.Fatal("no gallery link in the bar")
	}
	m = update(m, tea.MouseMsg{X: x, Y: 1, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if got := m.Route().Kind; got != site.KindGallery {
		t.Errorf("route = %v, want gallery", got)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t, 100, 24)
	h := m.viewport.Height
	m = press(m, "?")
	if !m.help.ShowAll {
		t.Fatal("full help not shown")
	}
	if m.viewport.Height >= h {
		t.Errorf("viewport height = %d, want less than %d with full help", m.viewport.Height, h)
	}
	m = press(m, "esc")
	if m.help.ShowAll || m.viewport.Height != h {
		t.Error("esc did not close help")
	}
}

func quits(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if quits(c) {
				return true
			}
		}
	}
	return false
}
