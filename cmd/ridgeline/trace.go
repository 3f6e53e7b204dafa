package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/navbar"
)

func newTraceCmd(g *globals) *cobra.Command {
	var (
		width   int
		height  int
		offsets []int
	)

	cmd := &cobra.Command{
		Use:   "trace [route]",
		Short: "Replay scroll offsets and print the bar's state after each",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withConfig(func(cfg config.Config) error {
				log := g.stderrLogger(cfg)
				catalog, err := g.loadCatalog(cfg)
				if err != nil {
					return err
				}
				route := "/"
				if len(args) == 1 {
					route = args[0]
				}

				h, err := newHeadless(cfg, catalog, route, width, height, log)
				if err != nil {
					return err
				}
				return trace(cmd.Context(), cmd.OutOrStdout(), h, offsets)
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", fallbackWidth, "page width")
	cmd.Flags().IntVar(&height, "height", 24, "viewport height")
	cmd.Flags().IntSliceVar(&offsets, "offsets", []int{0, 50, 120, 80, 0}, "scroll offsets to replay")
	return cmd
}

// trace runs the settle pass and then one scroll per offset, printing a
// row per step with the events the controller published for it.
func trace(ctx context.Context, w io.Writer, h *headless, offsets []int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := h.ctrl.Events().Subscribe(ctx)

	fmt.Fprintf(w, "%-6s %-7s %-8s %-17s %-6s %-7s %s\n", "STEP", "OFFSET", "VISIBLE", "BACKGROUND_LIGHT", "TOKEN", "MEAN", "EVENTS")
	row := func(step string, y int) {
		st := h.ctrl.State()
		r := h.ctrl.LastReading()
		mean := "-"
		if r.OK() {
			mean = fmt.Sprintf("%.1f", r.Mean)
		}
		fmt.Fprintf(w, "%-6s %-7d %-8t %-17t %-6s %-7s %s\n",
			step, y, st.Visible, st.BackgroundLight, h.ctrl.Theme().Token, mean, drain(events))
	}

	h.ctrl.Sample()
	row("settle", 0)
	for i, y := range offsets {
		h.scroll(y)
		row(fmt.Sprint(i+1), y)
	}
	return ctx.Err()
}

// drain collects the kinds already queued on ch. The broker queues a
// step's events before the controller call returns, and drops rather
// than blocks when the buffer is full.
func drain(ch <-chan navbar.Event) string {
	var kinds []string
	for {
		select {
		case e, ok := <-ch:
			if !ok {
				return join(kinds)
			}
			kinds = append(kinds, string(e.Kind))
		default:
			return join(kinds)
		}
	}
}

func join(kinds []string) string {
	if len(kinds) == 0 {
		return "-"
	}
	return strings.Join(kinds, ",")
}
