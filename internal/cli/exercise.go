package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercises of a session",
}

var (
	exerciseAddSession int64
	exerciseAddNotes   string
)

var exerciseAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an exercise to the active session",
	Long: `Add an exercise to a session by name. The name is free text; it is
matched against the catalog at read time to resolve how the exercise is
measured.

Examples:
  gymlog exercise add "Bench Press"
  gymlog exercise add "Lat pulldown" --session 3`,
	Args: cobra.ExactArgs(1),
	RunE: runExerciseAdd,
}

func runExerciseAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	sessionID := exerciseAddSession
	if sessionID == 0 {
		var err error
		sessionID, err = sessionIDArg(ctx, db, nil)
		if err != nil {
			return err
		}
	}

	var notes *string
	if exerciseAddNotes != "" {
		notes = &exerciseAddNotes
	}
	id, err := db.AddSessionExercise(ctx, sessionID, args[0], notes)
	if err != nil {
		return err
	}

	mt, err := db.ResolveMeasurementType(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("added exercise %d to session %d (%s)\n", id, sessionID, mt)
	return nil
}

var exerciseRemoveCmd = &cobra.Command{
	Use:   "remove <session-exercise-id>",
	Short: "Remove an exercise from its session",
	Args:  cobra.ExactArgs(1),
	RunE:  runExerciseRemove,
}

func runExerciseRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session exercise id %q", args[0])
	}
	if err := db.DeleteSessionExercise(ctx, id); err != nil {
		return err
	}
	fmt.Printf("removed session exercise %d\n", id)
	return nil
}

var exerciseListCmd = &cobra.Command{
	Use:   "list [session-id]",
	Short: "List the exercises of a session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExerciseList,
}

func runExerciseList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	sessionID, err := sessionIDArg(ctx, db, args)
	if err != nil {
		return err
	}
	exercises, err := db.ListSessionExercises(ctx, sessionID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOS\tEXERCISE\tMEASURED AS\tNOTES")
	for _, se := range exercises {
		notes := ""
		if se.Notes != nil {
			notes = *se.Notes
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n", se.ID, se.Position, se.ExerciseName, se.MeasurementType, notes)
	}
	return w.Flush()
}

func init() {
	exerciseAddCmd.Flags().Int64Var(&exerciseAddSession, "session", 0, "session id (default: active session)")
	exerciseAddCmd.Flags().StringVar(&exerciseAddNotes, "notes", "", "exercise notes")

	exerciseCmd.AddCommand(exerciseAddCmd, exerciseRemoveCmd, exerciseListCmd)
	rootCmd.AddCommand(exerciseCmd)
}
