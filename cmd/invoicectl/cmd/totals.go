package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/domain/document"
	"github.com/jhoicas/facturador/internal/domain/totals"
)

var totalsJSON bool

var totalsCmd = &cobra.Command{
	Use:   "totals <invoice.json>",
	Short: "Calcula subtotal, impuesto y total",
	Example: `  invoicectl totals factura.json
  invoicectl new | invoicectl totals - --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := readInvoice(cmd, args[0])
		if err != nil {
			return err
		}
		t := totals.ForInvoice(inv)
		out := cmd.OutOrStdout()
		if totalsJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(t)
		}
		fmt.Fprintf(out, "Subtotal: %s %s\n", document.FormatAmount(t.Subtotal), inv.Currency)
		fmt.Fprintf(out, "Tax (%s%%): %s %s\n", inv.TaxRate.String(), document.FormatAmount(t.TaxAmount), inv.Currency)
		fmt.Fprintf(out, "Total: %s %s\n", document.FormatAmount(t.Total), inv.Currency)
		return nil
	},
}

func init() {
	totalsCmd.Flags().BoolVar(&totalsJSON, "json", false, "salida en JSON")
	rootCmd.AddCommand(totalsCmd)
}
