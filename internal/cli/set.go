package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/models"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Record and inspect sets",
}

var (
	setAddWeight   string
	setAddUnit     string
	setAddReps     string
	setAddDuration string
	setAddDistance string
	setAddAssisted bool
	setAddNotes    string
)

var setAddCmd = &cobra.Command{
	Use:   "add <session-exercise-id>",
	Short: "Record a set",
	Long: `Record a set under a session exercise. Every field is optional; which
ones matter depends on how the exercise is measured, but nothing is
rejected for leaving fields blank.

Examples:
  gymlog set add 1 --weight 100 --reps 5
  gymlog set add 2 --duration 600
  gymlog set add 3 --duration 1200 --distance 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runSetAdd,
}

func runSetAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	sessionExerciseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session exercise id %q", args[0])
	}

	in, err := models.ParseSetInput(setAddWeight, setAddUnit, setAddReps,
		setAddDuration, setAddDistance, setAddAssisted, setAddNotes)
	if err != nil {
		return err
	}

	set, err := db.InsertSet(ctx, sessionExerciseID, in)
	if err != nil {
		return err
	}
	fmt.Printf("set %d recorded: %s\n", set.ID, formatSet(set))
	return nil
}

var setListCmd = &cobra.Command{
	Use:   "list <session-exercise-id>",
	Short: "List the sets of a session exercise in order",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetList,
}

func runSetList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	sessionExerciseID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session exercise id %q", args[0])
	}
	sets, err := db.ListSets(ctx, sessionExerciseID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOS\tRECORDED")
	for _, s := range sets {
		fmt.Fprintf(w, "%d\t%d\t%s\n", s.ID, s.Position, formatSet(&s))
	}
	return w.Flush()
}

var setDeleteCmd = &cobra.Command{
	Use:   "delete <set-id>",
	Short: "Delete a set",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetDelete,
}

func runSetDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid set id %q", args[0])
	}
	if err := db.DeleteSet(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted set %d\n", id)
	return nil
}

var setLastCmd = &cobra.Command{
	Use:   "last <exercise-name>",
	Short: "Show the most recent set logged under an exercise name",
	Long: `Show the most recent set logged under an exercise name, across all
sessions. Useful as the starting point for the next set.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetLast,
}

func runSetLast(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	set, err := db.LatestSetFor(ctx, args[0])
	if err != nil {
		return err
	}
	if set == nil {
		fmt.Printf("no sets logged for %q\n", args[0])
		return nil
	}
	fmt.Println(formatSet(set))
	return nil
}

var setPBCmd = &cobra.Command{
	Use:   "pb <exercise-name>",
	Short: "Show the heaviest weight ever logged under an exercise name",
	Args:  cobra.ExactArgs(1),
	RunE:  runSetPB,
}

func runSetPB(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	best, err := db.PersonalBest(ctx, args[0])
	if err != nil {
		return err
	}
	if best == nil {
		fmt.Printf("no weighted sets logged for %q\n", args[0])
		return nil
	}
	fmt.Printf("%g\n", *best)
	return nil
}

func formatSet(s *models.Set) string {
	var parts []string
	if s.Weight != nil {
		unit := "kg"
		if s.WeightUnit != nil {
			unit = *s.WeightUnit
		}
		parts = append(parts, fmt.Sprintf("%g%s", *s.Weight, unit))
	}
	if s.Reps != nil {
		parts = append(parts, fmt.Sprintf("x%d", *s.Reps))
	}
	if s.DurationSec != nil {
		parts = append(parts, fmt.Sprintf("%ds", *s.DurationSec))
	}
	if s.DistanceM != nil {
		parts = append(parts, fmt.Sprintf("%gm", *s.DistanceM))
	}
	if s.Assisted {
		parts = append(parts, "assisted")
	}
	if s.Notes != nil {
		parts = append(parts, *s.Notes)
	}
	if len(parts) == 0 {
		return "(empty)"
	}
	return strings.Join(parts, " ")
}

func init() {
	setAddCmd.Flags().StringVar(&setAddWeight, "weight", "", "weight lifted")
	setAddCmd.Flags().StringVar(&setAddUnit, "unit", "", "weight unit")
	setAddCmd.Flags().StringVar(&setAddReps, "reps", "", "repetitions")
	setAddCmd.Flags().StringVar(&setAddDuration, "duration", "", "duration in seconds")
	setAddCmd.Flags().StringVar(&setAddDistance, "distance", "", "distance in meters")
	setAddCmd.Flags().BoolVar(&setAddAssisted, "assisted", false, "assisted set")
	setAddCmd.Flags().StringVar(&setAddNotes, "notes", "", "set notes")

	setCmd.AddCommand(setAddCmd, setListCmd, setDeleteCmd, setLastCmd, setPBCmd)
	rootCmd.AddCommand(setCmd)
}
