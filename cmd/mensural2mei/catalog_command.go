package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/RobbStarkAustria/mensural-to-mei/internal/catalog"
	"github.com/RobbStarkAustria/mensural-to-mei/internal/textutil"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	var runFlag string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List documents written by past conversion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg.Paths.CatalogDir)
			if err != nil {
				return err
			}
			defer store.Close()

			docs, err := store.List(cmd.Context(), runFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(docs) == 0 {
				fmt.Fprintln(out, "Catalog is empty")
				return nil
			}

			rows := make([][]string, 0, len(docs))
			for _, doc := range docs {
				rows = append(rows, []string{
					strconv.FormatInt(doc.ID, 10),
					shortRunID(doc.RunID),
					textutil.DisplayTitle(doc.Label),
					doc.BaseName,
					strconv.Itoa(doc.Elements),
					doc.CreatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"ID", "Run", "Label", "Base", "Elements", "Created"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&runFlag, "run", "", "Only list documents from this run ID")
	return cmd
}

func shortRunID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
