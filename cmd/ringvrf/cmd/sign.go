package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign an input as an anonymous member of a ring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sk, err := a.secretKey()
			if err != nil {
				return err
			}
			defer sk.Clear()

			srs, err := a.srs()
			if err != nil {
				return err
			}

			r, err := a.ring(srs)
			if err != nil {
				return err
			}

			index := a.v.GetInt("index")
			sig, output, err := r.Sign(nil, sk, index, []byte(a.v.GetString("input")), []byte(a.v.GetString("aux")))
			if err != nil {
				return err
			}

			a.log.Info("signed", zap.Int("keys", r.Len()), zap.String("output", hex.EncodeToString(output[:])))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(sig.Bytes()))
			return err
		},
	}

	addRingFlags(cmd.Flags())
	cmd.Flags().String("secret", "", "hex-encoded 32-byte secret key")
	cmd.Flags().Int("index", 0, "position of the signer's public key in the ring")
	cmd.Flags().String("input", "", "VRF input")
	cmd.Flags().String("aux", "", "auxiliary data bound to the signature")
	return cmd
}
