package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/codahale/ringvrf"
	"github.com/spf13/cobra"
)

func newPublicKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "public-key",
		Short: "Print the public key for a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := a.secretKey()
			if err != nil {
				return err
			}
			defer sk.Clear()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), sk.PublicKey())
			return err
		},
	}

	cmd.Flags().String("secret", "", "hex-encoded 32-byte secret key")
	return cmd
}

// secretKey parses the --secret flag.
func (a *app) secretKey() (*ringvrf.SecretKey, error) {
	seed, err := hex.DecodeString(a.v.GetString("secret"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ringvrf.ErrInvalidSecretKey, err)
	}
	return ringvrf.NewSecretKey(seed)
}
