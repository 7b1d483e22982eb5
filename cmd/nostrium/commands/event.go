package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"nostrium/internal/event"
	"nostrium/internal/keys"
	"nostrium/internal/nip19"
)

func eventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Verify and generate events",
	}
	cmd.AddCommand(
		eventVerifyCmd(),
		eventGenerateCmd(),
		eventTextNoteCmd(),
		eventSetMetadataCmd(),
		eventRecommendRelayCmd(),
		eventDMCmd(),
	)
	return cmd
}

func eventVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Verify an event read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var e event.Event
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&e); err != nil {
				return fmt.Errorf("read event: %w", err)
			}
			ok, err := e.Verify()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("event %s failed verification", e.ID)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "event is valid")
			return nil
		},
	}
}

func eventGenerateCmd() *cobra.Command {
	var (
		kind    int
		subject string
	)
	cmd := &cobra.Command{
		Use:   "generate <content>",
		Short: "Sign an event with an arbitrary kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tags := event.WithSubject(nil, subject)
			e, err := event.New(kind, tags, args[0], appCtx.Pair())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
	cmd.Flags().IntVarP(&kind, "kind", "k", event.KindTextNote, "event kind")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "optional subject tag")
	return cmd
}

func eventTextNoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text-note <content>",
		Short: "Sign a plain text note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := event.NewTextNote(args[0], appCtx.Pair())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
}

func eventSetMetadataCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-metadata <name> <about> <picture>",
		Short: "Sign a profile metadata event",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			md := event.Metadata{Name: args[0], About: args[1], Picture: args[2]}
			e, err := event.NewSetMetadata(md, appCtx.Pair())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
}

func eventRecommendRelayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recommend-relay <url>",
		Short: "Sign a relay recommendation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := event.NewRecommendRelay(args[0], appCtx.Pair())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
}

func eventDMCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "dm <content>",
		Short: "Encrypt and sign a direct message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := parsePublicKey(to)
			if err != nil {
				return fmt.Errorf("recipient: %w", err)
			}
			e, err := event.NewEncryptedDirectMessage(args[0], pk, appCtx.Pair())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), e)
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "recipient public key (hex or npub)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parsePublicKey(s string) (keys.PublicKey, error) {
	if strings.HasPrefix(s, nip19.PrefixPublicKey+"1") {
		return nip19.DecodePublicKey(s)
	}
	return keys.ParsePublicKey(s)
}
