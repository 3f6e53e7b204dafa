package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/paths"
	"github.com/alexcabrera/ridgeline/internal/version"
)

func newDoctorCmd(g *globals) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and content",
		Long:  "Diagnose the ridgeline installation: config file, content directory, content schema and log file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return doctor(cmd.OutOrStdout(), g, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	return cmd
}

func doctor(w io.Writer, g *globals, verbose bool) error {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(22)

	failed := 0
	check := func(name string, ok bool, msg string) {
		status := okStyle.Render("OK")
		if !ok {
			status = errStyle.Render("FAIL")
			failed++
		}
		fmt.Fprintf(w, "  %s %s %s\n", labelStyle.Render(name), status, msg)
	}
	warn := func(name string, msg string) {
		fmt.Fprintf(w, "  %s %s %s\n", labelStyle.Render(name), warnStyle.Render("WARN"), msg)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("  Ridgeline Doctor"))
	fmt.Fprintln(w, headerStyle.Render("  "+strings.Repeat("-", 50)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("  System"))
	v := version.Version
	if _, ok := version.Release(); !ok {
		v += " (development build)"
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Version:"), v)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Go Version:"), runtime.Version())
	fmt.Fprintf(w, "  %s %s/%s\n", labelStyle.Render("Platform:"), runtime.GOOS, runtime.GOARCH)
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("  Configuration"))
	cfg := config.Default()
	if fileExists(g.cfgPath) {
		loaded, err := config.Load(g.cfgPath)
		check("Config File:", err == nil, g.cfgPath)
		if err == nil {
			cfg = loaded
			err = cfg.Validate()
			check("Values:", err == nil, errText(err))
		}
	} else {
		warn("Config File:", g.cfgPath+" (using defaults)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("  Content"))
	dir := g.content(cfg)
	if dir == "" {
		check("Source:", true, "embedded")
	} else {
		check("Source:", dirExists(dir), dir)
	}
	catalog, err := g.loadCatalog(cfg)
	check("Load:", err == nil, errText(err))
	if err == nil {
		check("Schema:", true, catalog.Site.Schema+" (accepts "+content.SchemaConstraint+")")
		check("Tours:", len(catalog.Tours) > 0, fmt.Sprintf("%d, %d featured", len(catalog.Tours), len(catalog.Featured())))
		if verbose {
			for _, t := range catalog.Tours {
				fmt.Fprintf(w, "       - %s\n", t.Slug)
			}
		}
		check("Gallery:", true, fmt.Sprintf("%d photos", len(catalog.Gallery)))
	}
	if verbose {
		for _, d := range paths.ContentDirs() {
			fmt.Fprintf(w, "       searched %s\n", d)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, headerStyle.Render("  Logging"))
	logFile := cfg.Log.File
	if logFile == "" {
		logFile = paths.LogFile()
	}
	if fileExists(logFile) {
		check("Log File:", true, logFile)
	} else {
		warn("Log File:", logFile+" (created on first run)")
	}
	fmt.Fprintln(w)

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func errText(err error) string {
	if err != nil {
		return err.Error()
	}
	return "valid"
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
