package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/spf13/cobra"

	"leadform/internal/domain/form"
	"leadform/internal/domain/lead"
	"leadform/internal/domain/notification"
)

// errSubmitFailed is returned after the failure outcome has been printed.
var errSubmitFailed = errors.New("lead was not created")

func newSubmitCmd(state *cliState) *cobra.Command {
	var (
		variant string
		fields  = make(map[string]*string)
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Validate a lead and send it to the broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if variant == "" {
				variant = state.cfg.FormVariant
			}
			v, err := lead.ParseVariant(variant)
			if err != nil {
				return err
			}

			values := make(map[string]string)
			for name, val := range fields {
				if cmd.Flags().Changed(name) {
					if !v.HasField(name) {
						return fmt.Errorf("--%s is not a %s form field", name, v)
					}
					values[name] = *val
				}
			}

			return runSubmit(cmd.Context(), cmd.OutOrStdout(), state, v, values)
		},
	}

	cmd.Flags().StringVar(&variant, "variant", "", "form variant: career or product (default FORM_VARIANT)")
	for _, name := range []string{
		lead.FieldNombre, lead.FieldEmail, lead.FieldTelefono, lead.FieldPais,
		lead.FieldCarrera, lead.FieldProducto, lead.FieldOwner, lead.FieldStatus,
	} {
		fields[name] = cmd.Flags().String(name, "", name+" field value")
	}
	return cmd
}

func runSubmit(ctx context.Context, out io.Writer, state *cliState, variant lead.Variant, values map[string]string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := state.cfg

	service := lead.NewService(
		lead.NewSchema(variant),
		lead.NewClient(cfg.APIURL, &http.Client{Timeout: cfg.HTTPTimeout}, cfg.HTTPTimeout),
		nil,
		state.log,
	)

	hub := notification.NewHub(nil, state.log)
	defer hub.Close()
	registry := form.NewRegistry(service, nil, hub, cfg.ErrorToastTTL, state.log)

	session := registry.Open(ctx)
	defer func() { _ = registry.Close(session.ID()) }()

	if err := session.SetFields(values); err != nil {
		return err
	}

	outcomes, cancel := hub.Subscribe(session.ID(), 4)
	defer cancel()

	if _, err := session.Submit(ctx); err != nil {
		state.log.WithError(err).Debug("submit failed")
	}

	for msg := range outcomes {
		if msg.Type != notification.TypeOutcome {
			continue
		}
		outcome, _ := msg.Payload.(lead.Outcome)
		printOutcome(out, outcome)
		if !outcome.OK() {
			return errSubmitFailed
		}
		return nil
	}
	return errSubmitFailed
}

func printOutcome(out io.Writer, o lead.Outcome) {
	if o.Detail != "" {
		fmt.Fprintf(out, "[%s] %s: %s\n", o.Severity, o.Summary, o.Detail)
	} else {
		fmt.Fprintf(out, "[%s] %s\n", o.Severity, o.Summary)
	}

	names := make([]string, 0, len(o.Fields))
	for name := range o.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s: %s\n", name, o.Fields[name])
	}
}
