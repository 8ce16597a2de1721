// @title Cat Registry API
// @version 1.0
// @description Registro de owners, breeders y gatos con pedigree (dam/sire).
// @BasePath /
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "catreg",
	Short: "Cat registry: owners, breeders, gatos y pedigrees",
	Long: `catreg expone la API HTTP del registro.

Subcomandos:
  serve    - levanta el servidor HTTP (default)
  migrate  - aplica el schema Postgres (requiere db.dsn)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Archivo de configuración (yaml), opcional")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
