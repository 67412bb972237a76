package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/domain/invoice"
)

var newOutput string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Genera la factura de ejemplo en JSON",
	Long: `Genera la factura semilla de una sesión nueva (número y fecha frescos, dos
líneas de ejemplo) para editarla a mano y exportarla luego.`,
	Example: `  invoicectl new -o factura.json`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := invoice.NewFactory().New()
		data, err := json.MarshalIndent(inv, "", "  ")
		if err != nil {
			return fmt.Errorf("codificar factura: %w", err)
		}
		appLog.WithComponent("new").Debug().Str("invoice_number", inv.InvoiceNumber).Msg("factura generada")
		return writeOutput(cmd, newOutput, append(data, '\n'))
	},
}

func init() {
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "archivo de salida (por defecto stdout)")
	rootCmd.AddCommand(newCmd)
}
