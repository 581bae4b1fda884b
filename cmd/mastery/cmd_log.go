// Package main: manual practice-time entry.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mastery/internal/timefmt"
)

// logCmd records practice time against a skill. The value uses the
// hours.minutes entry format: "2.30" is two hours thirty minutes.
var logCmd = &cobra.Command{
	Use:   "log <name> <hours.minutes>",
	Short: "Record practice time for a skill",
	Long: `Record practice time for a skill.

The value is hours.minutes, not a decimal: "2.30" adds two hours and
thirty minutes, and "0.90" normalizes to one hour thirty minutes.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := tr.AddHoursString(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s [%s]\n", snap.Name, timefmt.FormatHoursMinutes(snap.Hours), snap.Level)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
