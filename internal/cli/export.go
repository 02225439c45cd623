package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/export"
)

var exportDir string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump all data to CSV and JSON files",
	Long: `Dump sessions, exercises, session exercises and sets to per-table CSV
files plus a single JSON document. The dump is faithful: values are
written exactly as stored, in a fixed deterministic order.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}

	dir := exportDir
	if dir == "" {
		dir = cfg.Export.Dir
	}

	res, err := export.New(db, logger()).ExportAll(ctx, dir)
	if err != nil {
		return err
	}
	fmt.Printf("exported %d sessions, %d exercises, %d session exercises, %d sets\n",
		res.Sessions, res.Exercises, res.SessionExercises, res.Sets)
	fmt.Printf("export %s written to %s\n", res.ExportID, res.Dir)
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "export base directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}
