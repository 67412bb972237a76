// Package cmd define los subcomandos de invoicectl.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/pkg/config"
	"github.com/jhoicas/facturador/pkg/logger"
)

var version = "1.0.0"

var (
	appCfg *config.Config
	appLog = logger.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Editor de facturas por línea de comandos",
	Long: `invoicectl crea una factura de ejemplo en JSON, calcula sus totales y la
exporta como HTML autocontenido o PDF A4 con el mismo motor que usa la API.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute corre el comando raíz con la configuración y el logger ya cargados.
func Execute(cfg *config.Config, log *logger.Logger) {
	appCfg, appLog = cfg, log
	if err := rootCmd.Execute(); err != nil {
		appLog.WithComponent("cmd").Error().Err(err).Msg("comando fallido")
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// readInvoice lee una factura JSON desde path ("-" es stdin).
func readInvoice(cmd *cobra.Command, path string) (entity.Invoice, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return entity.Invoice{}, fmt.Errorf("abrir factura: %w", err)
		}
		defer f.Close()
		r = f
	}
	var inv entity.Invoice
	if err := json.NewDecoder(r).Decode(&inv); err != nil {
		return entity.Invoice{}, fmt.Errorf("decodificar factura: %w", err)
	}
	return inv, nil
}

// writeOutput escribe data en path o en stdout si path está vacío.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", path, err)
	}
	return nil
}

func cfgOrDefault() (*config.Config, error) {
	if appCfg != nil {
		return appCfg, nil
	}
	return config.Load()
}
