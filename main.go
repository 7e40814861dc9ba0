package main

import (
	"fmt"
	"os"

	"github.com/fleetops/fuelimport/cmd/enrich"
	"github.com/fleetops/fuelimport/cmd/exportcsv"
	"github.com/fleetops/fuelimport/cmd/ingest"
	"github.com/fleetops/fuelimport/cmd/root"
	"github.com/fleetops/fuelimport/cmd/serve"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(exportcsv.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(enrich.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
