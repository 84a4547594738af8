// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitmore/catechism-press/internal/rasterize"
	"github.com/mwhitmore/catechism-press/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Rasterize a scanned PDF into per-page images",
	Long: `Extract renders each page of the source PDF into an image file under
the pages directory. Uses pdftoppm when available, falling back to mutool.
300 DPI gives the vision model enough detail for blackletter type.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	dpi, _ := cmd.Flags().GetInt("dpi")
	format, _ := cmd.Flags().GetString("format")
	pagesDir, _ := cmd.Flags().GetString("pages-dir")

	cfg := types.RasterizeConfig{
		DPI:      dpi,
		Format:   format,
		PagesDir: pagesDir,
	}

	if err := rasterize.Run(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("Rasterized %s into %s\n", args[0], pagesDir)
	return nil
}

func init() {
	extractCmd.Flags().Int("dpi", 300, "rendering resolution for page images")
	extractCmd.Flags().String("format", "png", "page image format: png or jpeg")
	extractCmd.Flags().String("pages-dir", "pages", "output directory for page images")

	rootCmd.AddCommand(extractCmd)
}
