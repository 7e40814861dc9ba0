// Package enrich implements the enrich command.
package enrich

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/cmd/common"
	"github.com/fleetops/fuelimport/cmd/root"
	"github.com/fleetops/fuelimport/internal/telematics"
)

// Cmd is the enrich command.
var Cmd = &cobra.Command{
	Use:   "enrich",
	Short: "Attach GPS/odometer data to pending transactions",
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.Cfg.Telematics.BaseURL == "" {
			return fmt.Errorf("telematics.base_url is not configured")
		}

		txStore, closeStore, err := common.NewStore(cmd, root.Cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		client := telematics.NewClient(root.Cfg.Telematics.BaseURL, root.Cfg.Telematics.APIKey)
		enriched, failed, err := telematics.NewEnricher(txStore, client).Run(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Enriched %d transaction(s), %d failed\n", enriched, failed)
		return nil
	},
}
