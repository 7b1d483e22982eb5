package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nostrium/internal/event"
	"nostrium/internal/message"
)

func messageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "message",
		Short: "Wrap payloads in client-relay envelopes",
	}
	cmd.AddCommand(messageEventCmd(), messageRequestCmd(), messageCloseCmd())
	return cmd
}

func messageEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event",
		Short: "Wrap a signed event from stdin in an EVENT envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var e event.Event
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&e); err != nil {
				return fmt.Errorf("read event: %w", err)
			}
			wire, err := message.Encode(message.EventMsg{Event: &e})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(wire))
			return nil
		},
	}
}

func messageRequestCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Wrap a filter object from stdin in a REQ envelope",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw json.RawMessage
			if err := json.NewDecoder(cmd.InOrStdin()).Decode(&raw); err != nil {
				return fmt.Errorf("read filter: %w", err)
			}
			wire, err := message.Encode(message.ReqMsg{
				SubscriptionID: id,
				Filters:        []json.RawMessage{raw},
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(wire))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "subscription id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func messageCloseCmd() *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "close",
		Short: "Build a CLOSE envelope for a subscription",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := message.Encode(message.CloseMsg{SubscriptionID: id})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(wire))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "subscription id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
