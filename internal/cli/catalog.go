package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/models"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and maintain the exercise catalog",
}

var catalogListLimit int

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog entries by name",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}

	limit := catalogListLimit
	if limit == 0 {
		limit = cfg.Limits.Exercises
	}
	exercises, err := db.ListExercises(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tMEASURED AS")
	for _, e := range exercises {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.MeasurementType)
	}
	return w.Flush()
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the seed catalog (one-time; safe to re-run)",
	Args:  cobra.NoArgs,
	RunE:  runCatalogSeed,
}

func runCatalogSeed(cmd *cobra.Command, args []string) error {
	// openStore seeds as part of initialization; this command exists to do
	// it explicitly and report the outcome.
	ctx := context.Background()
	_, _, err := openStore(ctx)
	if err != nil {
		return err
	}
	fmt.Println("catalog seeded")
	return nil
}

var catalogReclassifyCmd = &cobra.Command{
	Use:   "reclassify <name> <measurement-type>",
	Short: "Correct how a catalog exercise is measured",
	Long: `Correct the measurement type of a catalog entry. Valid types are
weight_reps, time_only, cardio and notes_only. Matching is by exact
name; no match is a no-op.`,
	Args: cobra.ExactArgs(2),
	RunE: runCatalogReclassify,
}

func runCatalogReclassify(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	mt, err := models.ParseMeasurementType(args[1])
	if err != nil {
		return err
	}
	if err := db.ReclassifyExercise(ctx, args[0], mt); err != nil {
		return err
	}
	fmt.Printf("%s is now measured as %s\n", args[0], mt)
	return nil
}

func init() {
	catalogListCmd.Flags().IntVar(&catalogListLimit, "limit", 0, "maximum entries to list")

	catalogCmd.AddCommand(catalogListCmd, catalogSeedCmd, catalogReclassifyCmd)
	rootCmd.AddCommand(catalogCmd)
}
