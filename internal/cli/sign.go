package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ning0612/apkrepack/internal/config"
	"github.com/Ning0612/apkrepack/internal/domain"
)

// signingFlags are shared by sign and repack
type signingFlags struct {
	keystore  string
	alias     string
	storepass string
	keypass   string
	scheme    string
}

func (f *signingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.keystore, "keystore", "k", "", "keystore path (overrides config)")
	cmd.Flags().StringVarP(&f.alias, "alias", "a", "", "key alias (overrides config)")
	cmd.Flags().StringVarP(&f.storepass, "storepass", "p", "", "keystore password (overrides config)")
	cmd.Flags().StringVar(&f.keypass, "keypass", "", "key password (defaults to storepass)")
	cmd.Flags().StringVar(&f.scheme, "scheme", "", "signing scheme: v1, v2 or v1v2 (overrides config)")
}

// apply overlays the non-empty flags onto the loaded configuration
func (f *signingFlags) apply(cfg *config.Config) {
	if f.keystore != "" {
		cfg.Signing.Keystore.Path = config.ExpandPath(f.keystore)
	}
	if f.alias != "" {
		cfg.Signing.Keystore.Alias = f.alias
	}
	if f.storepass != "" {
		cfg.Signing.Keystore.StorePass = f.storepass
	}
	if f.keypass != "" {
		cfg.Signing.Keystore.KeyPass = f.keypass
	}
	if f.scheme != "" {
		cfg.Signing.Scheme = domain.SignScheme(f.scheme)
	}
}

// newSignCmd signs an existing APK in place
func newSignCmd() *cobra.Command {
	var (
		input string
		flags signingFlags
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign an APK with the configured keystore",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(flags.apply)
			if err != nil {
				return err
			}
			if err := svc.Sign(cmd.Context(), input); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed %s\n", input)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "APK to sign")
	cmd.MarkFlagRequired("input")
	flags.register(cmd)

	return cmd
}
