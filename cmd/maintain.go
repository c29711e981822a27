package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bridges/internal/bridge"
)

const dateLayout = "01/02/2006"

var (
	inspectDate string
	inspectBCI  float64
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <ids...>",
	Short: "Record an inspection of one or more bridges in the database",
	Long: `Stamps each bridge with the inspection date, prepends the new BCI to its
history and appends an entry to the inspection log. Run "bridges import"
first to load the inventory into the database.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		if _, err := time.Parse(dateLayout, inspectDate); err != nil {
			return fmt.Errorf("invalid date %q, want MM/DD/YYYY", inspectDate)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.RecordInspection(ctx, ids, inspectDate, inspectBCI)
		if err != nil {
			return err
		}
		fmt.Printf("Recorded inspection of %d of %d bridges on %s (BCI %.1f)\n", n, len(ids), inspectDate, inspectBCI)
		return nil
	},
}

var (
	rehabDate  string
	rehabMajor bool
)

var rehabCmd = &cobra.Command{
	Use:   "rehab <id>",
	Short: "Record a major or minor rehabilitation of a bridge in the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if _, err := time.Parse(dateLayout, rehabDate); err != nil {
			return fmt.Errorf("invalid date %q, want MM/DD/YYYY", rehabDate)
		}

		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		found, err := store.RecordRehab(ctx, id, rehabDate, rehabMajor)
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("No bridge found with id %d\n", id)
			return nil
		}

		kind := "minor"
		if rehabMajor {
			kind = "major"
		}
		fmt.Printf("Recorded %s rehab of bridge %d in %s\n", kind, id, bridge.RehabYear(rehabDate))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the logged inspections of a bridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		log, err := store.Inspections(ctx, id)
		if err != nil {
			return err
		}
		if len(log) == 0 {
			fmt.Printf("No inspections logged for bridge %d\n", id)
			return nil
		}
		for _, in := range log {
			fmt.Printf("%s | BCI %5.1f | recorded %s | %s\n", in.Date, in.BCI, in.RecordedAt.Local().Format(time.DateTime), in.ID)
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectDate, "date", time.Now().Format(dateLayout), "Inspection date (MM/DD/YYYY)")
	inspectCmd.Flags().Float64Var(&inspectBCI, "bci", 0, "Bridge condition index found")
	inspectCmd.MarkFlagRequired("bci")

	rehabCmd.Flags().StringVar(&rehabDate, "date", time.Now().Format(dateLayout), "Rehab date (MM/DD/YYYY)")
	rehabCmd.Flags().BoolVar(&rehabMajor, "major", false, "Record a major rather than minor rehab")

	rootCmd.AddCommand(inspectCmd, rehabCmd, historyCmd)
}
