package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tbscope/adapters/plotrender"
	"tbscope/app"
	"tbscope/internal"
	"tbscope/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Optional; environment wins over .env.
	_ = godotenv.Load()

	var csvPath string
	var outputDir string

	root := &cobra.Command{
		Use:   "tbscope",
		Short: "Exploratory analysis of the WHO TB burden dataset",
		Long: `tbscope loads the WHO tuberculosis burden dataset, cleans missing
values, derives per-100k rate columns and produces charts, console
statistics and a summary report.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if csvPath != "" {
				cfg.Input.CSVPath = csvPath
			}
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}

			renderer, err := plotrender.NewPNGRenderer(filepath.Join(cfg.Output.Dir, "charts"))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
				return err
			}

			pipeline := &app.Pipeline{
				Config:   cfg,
				Renderer: renderer,
				Out:      cmd.OutOrStdout(),
				Log:      internal.NewDefaultLogger(),
			}
			_, err = pipeline.Run(cmd.Context())
			return err
		},
	}
	root.Flags().StringVar(&csvPath, "csv", "", "path to the TB burden CSV or XLSX file")
	root.Flags().StringVar(&outputDir, "out", "", "directory for charts and reports")

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
