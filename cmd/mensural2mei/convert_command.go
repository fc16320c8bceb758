package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/catalog"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/convert"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/mensural"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/writer"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var humdrumFlag bool
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "convert <detections.json>...",
		Short: "Convert detection files into MEI documents",
		Long: "Convert runs one piece per detection file. Each piece is split into\n" +
			"documents at barlines and written as <label>_<NN>.mei, optionally with\n" +
			"a matching .mens flat encoding.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			humdrum := cfg.Conversion.Humdrum
			if cmd.Flags().Changed("humdrum") {
				humdrum = humdrumFlag
			}

			meiDir := cfg.Paths.MEIDir
			mensDir := cfg.Paths.HumdrumDir
			if outputFlag != "" {
				meiDir = filepath.Join(outputFlag, "mei")
				mensDir = filepath.Join(outputFlag, "humdrum")
			}
			if !humdrum {
				mensDir = ""
			}

			w, err := writer.New(logger, meiDir, mensDir)
			if err != nil {
				return err
			}
			defer w.Close()

			store, err := catalog.Open(cfg.Paths.CatalogDir)
			if err != nil {
				return err
			}
			defer store.Close()

			conv := convert.New(logger, w, convert.Options{
				Humdrum:          humdrum,
				GeneratorVersion: cfg.Conversion.GeneratorVersion,
			})
			logger.Info("conversion run started", "run_id", conv.RunID(), "pieces", len(args))

			var failures []string
			for _, path := range args {
				piece, err := mensural.LoadPiece(path)
				if err != nil {
					logger.Error("piece skipped", "path", path, "error", err)
					failures = append(failures, path)
					continue
				}
				if err := conv.Convert(cmd.Context(), piece); err != nil {
					if errors.Is(err, mensural.ErrNoClef) || errors.Is(err, mensural.ErrUnknownSymbol) {
						logger.Error("piece failed", "path", path, "error", err)
						failures = append(failures, path)
						continue
					}
					return err
				}
			}

			results := w.Results()
			for _, result := range results {
				if _, err := store.Record(cmd.Context(), catalog.Document{
					RunID:    conv.RunID(),
					Label:    result.Label,
					BaseName: result.BaseName,
					MEIPath:  result.MEIPath,
					MensPath: result.MensPath,
					Elements: result.Elements,
				}); err != nil {
					return fmt.Errorf("record document: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No documents written")
			} else {
				rows := make([][]string, 0, len(results))
				for _, result := range results {
					mens := "-"
					if result.MensPath != "" {
						mens = filepath.Base(result.MensPath)
					}
					rows = append(rows, []string{
						result.BaseName + ".mei",
						mens,
						result.Label,
						strconv.Itoa(result.Elements),
					})
				}
				fmt.Fprintln(out, renderTable(out,
					[]string{"MEI", "Humdrum", "Label", "Elements"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				))
			}

			if len(failures) > 0 {
				return fmt.Errorf("%d of %d pieces failed", len(failures), len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&humdrumFlag, "humdrum", true, "Write the flat **mens encoding alongside each document")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write outputs under this directory instead of the configured paths")
	return cmd
}
