package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fchimpan/matrix-rain/internal/contact"
	"github.com/fchimpan/matrix-rain/internal/mailrelay"
)

const relayHint = "hint: set EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and EMAILJS_PUBLIC_KEY, or the contact section of the config file"

var errInvalidForm = errors.New("contact form is invalid")

func newContactCmd(deps Deps, sf *sessionFlags) *cobra.Command {
	var form contact.Form

	c := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact form",
		Long: "Without flags an interactive form opens. With --name, --email and\n" +
			"--message set the message is validated and sent directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.SendContact == nil {
				return fmt.Errorf("deps.SendContact is nil")
			}
			if deps.RunContactForm == nil {
				return fmt.Errorf("deps.RunContactForm is nil")
			}
			s, err := loadSession(cmd, deps, *sf)
			if err != nil {
				return err
			}
			defer func() { _ = s.Logger.Sync() }()

			if !s.Config.Contact.Configured() {
				fmt.Fprintln(deps.Stderr, relayHint)
				return mailrelay.ErrNotConfigured
			}

			flags := cmd.Flags()
			if flags.Changed("name") || flags.Changed("email") || flags.Changed("message") {
				return sendDirect(cmd, deps, s, form)
			}

			if deps.IsTerminal == nil || !deps.IsTerminal() {
				return errNotTerminal
			}
			return deps.RunContactForm(cmd.Context(), s, func(ctx context.Context, f contact.Form) error {
				return deps.SendContact(ctx, s, f)
			})
		},
	}

	c.Flags().StringVar(&form.Name, "name", "", "your name")
	c.Flags().StringVar(&form.Email, "email", "", "your email address")
	c.Flags().StringVar(&form.Message, "message", "", "the message to send")
	return c
}

func sendDirect(cmd *cobra.Command, deps Deps, s Session, f contact.Form) error {
	if errs := contact.Validate(f); !errs.OK() {
		for _, field := range contact.Fields {
			if msg, ok := errs[field]; ok {
				fmt.Fprintf(deps.Stderr, "%s: %s\n", field, msg)
			}
		}
		return errInvalidForm
	}
	if err := deps.SendContact(cmd.Context(), s, f); err != nil {
		if mailrelay.IsNotConfigured(err) {
			fmt.Fprintln(deps.Stderr, relayHint)
		}
		fmt.Fprintln(deps.Stderr, contact.MsgSendFailed)
		return err
	}
	fmt.Fprintln(deps.Stdout, contact.MsgSent)
	return nil
}
