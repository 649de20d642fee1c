package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newAggregateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Print the commitment to a ring of public keys",
		Long: `Aggregate builds the commitment to an ordered ring of public keys. The
commitment is all a verifier needs to check signatures by members of the ring.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srs, err := a.srs()
			if err != nil {
				return err
			}

			r, err := a.ring(srs)
			if err != nil {
				return err
			}

			c := r.Commitment()
			a.log.Info("aggregated ring", zap.Int("keys", r.Len()), zap.Int("capacity", c.Capacity()))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(c.Bytes()))
			return err
		},
	}

	addRingFlags(cmd.Flags())
	return cmd
}
