package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"nostrium/internal/app"
)

var (
	appCfg app.Config
	appCtx *app.App
)

func Execute() error {
	root := &cobra.Command{
		Use:   "nostrium",
		Short: "Sign, verify and package protocol events",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			appCfg = cfg
			appCtx, err = app.New(cfg)
			return err
		},
	}

	root.AddCommand(eventCmd(), messageCmd(), requestCmd(), keyCmd())
	return root.Execute()
}

// writeJSON prints v without HTML escaping, so event content reaches stdout
// exactly as signed.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
