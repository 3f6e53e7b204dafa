package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/site"
)

func newRenderCmd(g *globals) *cobra.Command {
	var (
		width  int
		height int
		offset int
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "render [route]",
		Short: "Print a page with the navigation bar drawn over it",
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
				if width <= 0 {
					width = terminalWidth()
				}

				h, err := newHeadless(cfg, catalog, route, width, height, log)
				if err != nil && !site.IsNotFound(err) {
					return err
				}
				if err != nil {
					log.Warn().Err(err).Msg("rendering not-found page")
				}

				h.ctrl.Sample()
				if offset > 0 {
					h.scroll(offset)
				}

				n := height
				if n <= 0 {
					n = h.grid.Height() - offset
				}
				lines := h.lines(offset, n)
				if plain {
					for i, l := range lines {
						lines[i] = strings.TrimRight(ansi.Strip(l), " ")
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))

				r := h.ctrl.LastReading()
				log.Debug().
					Bool("background_light", h.ctrl.State().BackgroundLight).
					Float64("mean", r.Mean).
					Int("samples", r.Samples).
					Msg("sampled")
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "page width (default: terminal width, else 100)")
	cmd.Flags().IntVar(&height, "height", 0, "rows to print (default: whole page)")
	cmd.Flags().IntVar(&offset, "offset", 0, "scroll offset to render from")
	cmd.Flags().BoolVar(&plain, "plain", false, "strip colours")
	return cmd
}
