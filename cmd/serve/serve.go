// Package serve implements the serve command.
package serve

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/fleetops/fuelimport/cmd/common"
	"github.com/fleetops/fuelimport/cmd/root"
	"github.com/fleetops/fuelimport/internal/importer"
	"github.com/fleetops/fuelimport/internal/server"
)

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
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
		imp := importer.New(parser, txStore)
		srv := server.New(imp, txStore, root.Cfg.Server.AuthToken)

		httpServer := &http.Server{
			Addr:              root.Cfg.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		root.Log.WithField("addr", root.Cfg.Server.Addr).Info("Starting HTTP server")
		return httpServer.ListenAndServe()
	},
}
