package main

import (
	"context"
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"leadform/internal/config"
	"leadform/internal/domain/reference"
)

func newRefsCmd(state *cliState) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:       "refs <entity>",
		Short:     "List a reference list (pais, carrera, producto, owner, status)",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"pais", "carrera", "producto", "owner", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := reference.ParseEntity(args[0])
			if err != nil {
				return err
			}
			if source == "" {
				source = state.cfg.ReferenceSource
			}

			var src reference.Source
			switch source {
			case config.ReferenceSourceStatic:
				src = reference.NewStaticSource()
			case config.ReferenceSourceLive:
				cfg := state.cfg
				src = reference.NewLiveSource(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, cfg.HTTPTimeout)
			default:
				return fmt.Errorf("unknown source %q", source)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st := reference.NewLoader(src, state.log).Load(ctx, entity)
			if st.Error != "" {
				return fmt.Errorf("%s", st.Error)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tACTIVE")
			for _, it := range st.Data {
				fmt.Fprintf(w, "%s\t%s\t%t\n", it.ID, it.Label, it.Active)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "static or live (default REFERENCE_SOURCE)")
	return cmd
}
