// Package ingest implements the import command.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/cmd/common"
	"github.com/fleetops/fuelimport/cmd/root"
	"github.com/fleetops/fuelimport/internal/importer"
)

// Cmd is the import command.
var Cmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import a fuel-card CSV export",
	Long: `Import parses a fuel-card CSV export, normalizes each row into a
transaction record, persists the records and prints the batch report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0]) // #nosec G304 -- CLI takes a user-provided file path
		if err != nil {
			return fmt.Errorf("error reading input file: %w", err)
		}

		converter, err := common.NewConverter(root.Cfg)
		if err != nil {
			return err
		}
		clf, err := common.NewClassifier(root.Cfg)
		if err != nil {
			return err
		}
		txStore, closeStore, err := common.NewStore(cmd, root.Cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		parser := importer.NewRowParser(clf, converter, common.NewVehicleLookup(root.Cfg))
		report := importer.New(parser, txStore).ImportFromCSV(string(data))

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}
