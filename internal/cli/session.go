package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/claude/gymlog/internal/storage"
)

var (
	startDate     string
	startFocus    string
	startNotes    string
	startTemplate bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new session and make it active",
	Long: `Start a new workout session. The new session becomes the active one,
superseding any session that was active before.

Examples:
  gymlog start
  gymlog start --focus push --template
  gymlog start --date 2026-01-01 --focus legs`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}

	var notes *string
	if startNotes != "" {
		notes = &startNotes
	}

	id, err := db.CreateSession(ctx, startDate, startFocus, notes)
	if err != nil {
		return err
	}
	fmt.Printf("started session %d\n", id)

	if startTemplate {
		lib, err := loadTemplates(cfg)
		if err != nil {
			return err
		}
		session, err := db.GetSession(ctx, id)
		if err != nil {
			return err
		}
		n, err := db.PreloadTemplate(ctx, id, session.Focus, lib)
		if err != nil {
			return err
		}
		fmt.Printf("preloaded %d template exercises for %s\n", n, session.Focus)
	}
	return nil
}

var finishCmd = &cobra.Command{
	Use:   "finish [session-id]",
	Short: "Finish a session",
	Long: `Finish a session. Without an argument the active session is finished.
Finishing releases the active pointer when it references this session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFinish,
}

func runFinish(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	id, err := sessionIDArg(ctx, db, args)
	if err != nil {
		return err
	}
	if err := db.FinishSession(ctx, id); err != nil {
		return err
	}
	fmt.Printf("finished session %d\n", id)
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and everything recorded in it",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid session id %q", args[0])
	}
	if err := db.DeleteSession(ctx, id); err != nil {
		return err
	}
	fmt.Printf("deleted session %d\n", id)
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active session",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, _, err := openStore(ctx)
	if err != nil {
		return err
	}

	id, ok, err := db.ActiveSessionID(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("no active session")
		return nil
	}
	session, err := db.GetSession(ctx, id)
	if err != nil {
		return err
	}
	if session == nil {
		fmt.Printf("active pointer references missing session %d\n", id)
		return nil
	}

	fmt.Printf("session %d  %s  focus=%s  status=%s\n", session.ID, session.Date, session.Focus, session.Status)
	exercises, err := db.ListSessionExercises(ctx, id)
	if err != nil {
		return err
	}
	for _, se := range exercises {
		fmt.Printf("  [%d] %s (%s)\n", se.ID, se.ExerciseName, se.MeasurementType)
	}
	return nil
}

var sessionsLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func runSessions(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	db, cfg, err := openStore(ctx)
	if err != nil {
		return err
	}

	limit := sessionsLimit
	if limit == 0 {
		limit = cfg.Limits.Sessions
	}
	sessions, err := db.ListSessions(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tFOCUS\tSTATUS\tCREATED")
	for _, s := range sessions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			s.ID, s.Date, s.Focus, s.Status,
			time.UnixMilli(s.CreatedAt).Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

// sessionIDArg resolves an optional positional session id, defaulting to the
// active session.
func sessionIDArg(ctx context.Context, db *storage.DB, args []string) (int64, error) {
	if len(args) > 0 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid session id %q", args[0])
		}
		return id, nil
	}
	id, ok, err := db.ActiveSessionID(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no active session; pass a session id")
	}
	return id, nil
}

func init() {
	startCmd.Flags().StringVar(&startDate, "date", "", "session date (YYYY-MM-DD, default today)")
	startCmd.Flags().StringVar(&startFocus, "focus", "", `session focus (default "other")`)
	startCmd.Flags().StringVar(&startNotes, "notes", "", "session notes")
	startCmd.Flags().BoolVar(&startTemplate, "template", false, "preload the template for the chosen focus")
	sessionsCmd.Flags().IntVar(&sessionsLimit, "limit", 0, "maximum sessions to list")

	rootCmd.AddCommand(startCmd, finishCmd, deleteCmd, statusCmd, sessionsCmd)
}
