package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/quizgest/internal/parser"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate questions from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, log, err := newEngine(cmd)
			if err != nil {
				return err
			}
			text, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			if text.Placeholder {
				log.Warn("no readable text extracted", "file", args[0], "error", text.Err)
			}

			resp, err := eng.GenerateFromText(cmd.Context(), text.Text, options(cmd))
			if err != nil {
				return err
			}
			if resp.Metadata.Partial {
				log.Warn("fewer questions than requested",
					"requested", resp.Metadata.RequestedCount,
					"generated", resp.Metadata.GeneratedCount)
			}
			return render(cmd, resp)
		},
	}
	questionFlags(cmd)
	cmd.Flags().Bool("pdftotext", false, "Retry unreadable PDFs with the pdftotext binary")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Report content analysis for a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := newEngine(cmd)
			if err != nil {
				return err
			}
			text, err := readDocument(cmd, args[0])
			if err != nil {
				return err
			}
			report, err := eng.Analyze(cmd.Context(), text.Text)
			if err != nil {
				return err
			}
			return render(cmd, report)
		},
	}
	cmd.Flags().Bool("pdftotext", false, "Retry unreadable PDFs with the pdftotext binary")
	return cmd
}

// readDocument loads path and extracts its text. Unsupported extensions are
// rejected before the file is read.
func readDocument(cmd *cobra.Command, path string) (parser.Result, error) {
	if !parser.IsSupportedExtension(path) {
		return parser.Result{}, fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return parser.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	fallback, _ := cmd.Flags().GetBool("pdftotext")
	cfg := parser.Config{PDFFallbackPdftotext: fallback}
	return cfg.ExtractText(data, filepath.Base(path), mime.TypeByExtension(filepath.Ext(path))), nil
}
