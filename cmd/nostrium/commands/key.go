package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"nostrium/internal/keys"
	"nostrium/internal/mnemonic"
	"nostrium/internal/nip19"
)

func keyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate, derive and display keys",
	}
	cmd.AddCommand(keyGenerateCmd(), keyPublicCmd(), keyDeriveCmd(), keyMnemonicCmd())
	return cmd
}

func keyGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Generate a fresh key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := keys.Generate()
			if err != nil {
				return err
			}
			return printPair(cmd, pair)
		},
	}
}

func keyPublicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "public",
		Short: "Print the configured public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCtx.Ephemeral() {
				return fmt.Errorf("no key configured: set NOSTRIUM_SECRET_KEY or NOSTRIUM_MNEMONIC")
			}
			pub := appCtx.Pair().Public
			npub, err := nip19.EncodePublicKey(pub)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), npub)
			fmt.Fprintln(cmd.OutOrStdout(), pub.Hex())
			return nil
		},
	}
}

func keyDeriveCmd() *cobra.Command {
	var (
		account    uint32
		index      uint32
		passphrase string
	)
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive a key pair from the configured mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if appCfg.Mnemonic == "" {
				return fmt.Errorf("NOSTRIUM_MNEMONIC not set")
			}
			pair, err := mnemonic.DeriveFromPhrase(appCfg.Mnemonic, passphrase, account, index)
			if err != nil {
				return err
			}
			return printPair(cmd, pair)
		},
	}
	cmd.Flags().Uint32Var(&account, "account", 0, "hardened account level")
	cmd.Flags().Uint32Var(&index, "index", 0, "address index")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "optional seed passphrase")
	return cmd
}

func keyMnemonicCmd() *cobra.Command {
	var bits int
	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a fresh seed phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrase, err := mnemonic.Generate(bits)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), phrase)
			return nil
		},
	}
	cmd.Flags().IntVar(&bits, "bits", 128, "entropy size in bits (128-256, steps of 32)")
	return cmd
}

func printPair(cmd *cobra.Command, pair keys.Pair) error {
	nsec, err := nip19.EncodeSecretKey(pair.Secret)
	if err != nil {
		return err
	}
	npub, err := nip19.EncodePublicKey(pair.Public)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), nsec)
	fmt.Fprintln(cmd.OutOrStdout(), npub)
	return nil
}
