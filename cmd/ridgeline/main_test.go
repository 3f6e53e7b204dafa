package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/content"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("RIDGELINE_CONTENT_DIR", "")
	t.Setenv("RIDGELINE_START_ROUTE", "")
}

func testHeadless(t *testing.T, route string, width, height int) *headless {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	h, err := newHeadless(config.Default(), c, route, width, height, zerolog.Nop())
	if err != nil {
		t.Fatalf("newHeadless(%q): %v", route, err)
	}
	return h
}

func TestRootCommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"tours", "render", "trace", "contact", "doctor"} {
		if sub, _, err := cmd.Find([]string{name}); err != nil || sub.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "content", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("missing --%s", flag)
		}
	}
	if cmd.Flags().Lookup("watch") == nil {
		t.Error("missing --watch")
	}
}

func TestToursTable(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	out := ansi.Strip(toursTable(c.Tours))
	for _, want := range []string{"SLUG", "alpine-passes", "pyrenees-traverse", "€3450"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestHeadlessLines(t *testing.T) {
	h := testHeadless(t, "/tours", 100, 24)
	h.ctrl.Sample()

	lines := h.lines(0, 5)
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	bar := ansi.Strip(lines[1])
	if !strings.Contains(bar, "RIDGELINE") || !strings.Contains(bar, "2 Tours") {
		t.Errorf("bar row = %q", bar)
	}

	h.scroll(10)
	if strings.Contains(ansi.Strip(h.lines(10, 3)[1]), "RIDGELINE") {
		t.Error("bar drawn while hidden")
	}
}

func TestHeadlessNotFound(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	h, err := newHeadless(config.Default(), c, "/tours/nowhere", 100, 0, zerolog.Nop())
	if err == nil {
		t.Fatal("expected an error")
	}
	if h == nil || h.page.Doc.Find("not-found-header") == nil {
		t.Error("not-found page not built")
	}
}

func TestTrace(t *testing.T) {
	h := testHeadless(t, "/", 100, 24)

	var buf bytes.Buffer
	if err := trace(context.Background(), &buf, h, []int{0, 50, 120, 80, 0}); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 7 {
		t.Fatalf("trace has %d lines, want 7:\n%s", len(lines), buf.String())
	}
	fields := func(i int) []string { return strings.Fields(lines[i]) }

	settle := fields(1)
	if settle[2] != "true" || settle[3] != "false" || settle[4] != "white" {
		t.Errorf("settle row = %v, want visible dark white", settle)
	}
	if !strings.Contains(settle[6], "sample") {
		t.Errorf("settle events = %s, want sample", settle[6])
	}

	if got := fields(2)[6]; got != "-" {
		t.Errorf("offset 0 events = %s, want none", got)
	}

	down := fields(3)
	if down[2] != "false" || !strings.Contains(down[6], "visibility") {
		t.Errorf("scroll down row = %v, want hidden with a visibility event", down)
	}
	if fields(4)[2] != "false" {
		t.Errorf("row %v, want still hidden", fields(4))
	}
	if fields(5)[2] != "true" {
		t.Errorf("scroll up row %v, want visible", fields(5))
	}

	top := fields(6)
	if top[2] != "true" || top[3] != "false" || top[4] != "white" {
		t.Errorf("top row = %v, want visible dark white", top)
	}
}

func TestDoctorDefaults(t *testing.T) {
	isolate(t)
	g := &globals{cfgPath: filepath.Join(t.TempDir(), "missing.yaml")}

	var buf bytes.Buffer
	if err := doctor(&buf, g, true); err != nil {
		t.Fatalf("doctor: %v\n%s", err, buf.String())
	}
	out := ansi.Strip(buf.String())
	for _, want := range []string{"using defaults", "embedded", "alpine-passes"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorBadContent(t *testing.T) {
	isolate(t)
	g := &globals{
		cfgPath:    filepath.Join(t.TempDir(), "missing.yaml"),
		contentDir: t.TempDir(),
	}

	var buf bytes.Buffer
	if err := doctor(&buf, g, false); err == nil {
		t.Error("doctor passed on an empty content directory")
	}
}
