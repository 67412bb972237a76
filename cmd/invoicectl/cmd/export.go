package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jhoicas/facturador/internal/application/export"
	"github.com/jhoicas/facturador/internal/bootstrap"
	"github.com/jhoicas/facturador/internal/domain"
	"github.com/jhoicas/facturador/internal/domain/entity"
	"github.com/jhoicas/facturador/internal/domain/totals"
)

var (
	exportLocale   string
	exportFilename string
	exportDir      string
	exportStdout   bool
)

var exportCmd = &cobra.Command{
	Use:   "export <html|pdf> <invoice.json>",
	Short: "Exporta una factura como HTML o PDF",
	Long: `Renderiza la factura con el locale elegido y escribe el archivo
Invoice-{número}.html o .pdf en el directorio de salida. El motor de PDF se
elige con PDF_ENGINE (maroto o chrome).`,
	Example: `  invoicectl export html factura.json
  invoicectl export pdf factura.json --locale de -o out/
  invoicectl export pdf factura.json --filename borrador --stdout > borrador.pdf`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{domain.FormatHTML, domain.FormatPDF},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportLocale, "locale", "", "locale de presentación (en, de)")
	exportCmd.Flags().StringVar(&exportFilename, "filename", "", "nombre del archivo en lugar de Invoice-{número}")
	exportCmd.Flags().StringVarP(&exportDir, "output-dir", "o", ".", "directorio de salida")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "escribir el archivo en stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	format := args[0]
	if format != domain.FormatHTML && format != domain.FormatPDF {
		return fmt.Errorf("formato %q no soportado (html o pdf)", format)
	}
	inv, err := readInvoice(cmd, args[1])
	if err != nil {
		return err
	}
	cfg, err := cfgOrDefault()
	if err != nil {
		return err
	}
	locale := exportLocale
	if locale == "" {
		locale = cfg.Session.DefaultLocale
	}

	app, err := bootstrap.New(cfg, appLog)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := export.Options{Filename: exportFilename}
	t := totals.ForInvoice(inv)

	var res export.Result
	switch format {
	case domain.FormatHTML:
		res, err = app.Exporter.ExportMarkup(inv, t, locale, opts)
	case domain.FormatPDF:
		res, err = exportPDF(ctx, app.Exporter, inv, locale, opts)
	}
	if err != nil {
		return err
	}

	if exportStdout {
		return writeOutput(cmd, "", res.Data)
	}
	path := filepath.Join(exportDir, res.Filename)
	if err := writeOutput(cmd, path, res.Data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), path)
	return nil
}

func exportPDF(ctx context.Context, svc *export.Service, inv entity.Invoice, locale string, opts export.Options) (export.Result, error) {
	surface := export.NewSurface("invoicectl")
	defer surface.Close()
	if err := svc.Refresh(surface, inv, totals.ForInvoice(inv), locale); err != nil {
		return export.Result{}, domain.NewExportError(domain.FormatPDF, err)
	}
	return svc.ExportFixedLayout(ctx, surface, opts).Wait(ctx)
}
