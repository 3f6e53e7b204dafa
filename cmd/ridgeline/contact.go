package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/ui/contact"
)

func newContactCmd(g *globals) *cobra.Command {
	var tour string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Write a tour enquiry and get a WhatsApp link for it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withConfig(func(cfg config.Config) error {
				catalog, err := g.loadCatalog(cfg)
				if err != nil {
					return err
				}
				if tour != "" {
					if _, err := catalog.Tour(tour); err != nil {
						return err
					}
				}

				link, err := contact.NewForm(catalog).Run(cmd.Context(), contact.Enquiry{Tour: tour})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&tour, "tour", "", "preselect a tour by slug")
	return cmd
}
