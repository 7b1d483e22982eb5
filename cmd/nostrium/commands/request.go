package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nostrium/internal/filter"
)

func requestCmd() *cobra.Command {
	var f filter.Filter
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Build a subscription filter from flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := f.Raw()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&f.IDs, "ids", nil, "event ids to match")
	cmd.Flags().StringSliceVar(&f.Authors, "authors", nil, "author public keys to match")
	cmd.Flags().IntSliceVar(&f.Kinds, "kinds", nil, "event kinds to match")
	cmd.Flags().StringSliceVar(&f.Events, "e", nil, "referenced event ids")
	cmd.Flags().StringSliceVar(&f.Profiles, "p", nil, "referenced profile keys")
	cmd.Flags().Int64Var(&f.Since, "since", 0, "match events after this unix time")
	cmd.Flags().Int64Var(&f.Until, "until", 0, "match events before this unix time")
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of events")
	return cmd
}
