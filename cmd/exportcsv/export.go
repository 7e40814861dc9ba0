// Package exportcsv implements the export command.
package exportcsv

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/cmd/common"
	"github.com/fleetops/fuelimport/cmd/root"
	"github.com/fleetops/fuelimport/internal/export"
	"github.com/fleetops/fuelimport/internal/models"
)

var (
	output    string
	vehicleNr string
)

// Cmd is the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a normalized CSV file",
	RunE: func(cmd *cobra.Command, args []string) error {
		txStore, closeStore, err := common.NewStore(cmd, root.Cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		var transactions []models.Transaction
		if vehicleNr != "" {
			transactions, err = txStore.FindByVehicleNr(vehicleNr)
		} else {
			transactions, err = txStore.All()
		}
		if err != nil {
			return err
		}
		if transactions == nil {
			transactions = []models.Transaction{}
		}

		if err := export.WriteTransactionsToFile(transactions, output); err != nil {
			return err
		}
		fmt.Printf("Exported %d transaction(s) to %s\n", len(transactions), output)
		return nil
	},
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "transactions.csv", "Output CSV file")
	Cmd.Flags().StringVar(&vehicleNr, "vehicle", "", "Only export transactions of this vehicle")
}
