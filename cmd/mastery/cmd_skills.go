// Package main: skill container subcommands (list, add, rm, rename).
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mastery/internal/timefmt"
)

// listCmd prints every container with its hours and level.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked skills",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		snaps := tr.Snapshot()
		if len(snaps) == 0 {
			fmt.Println("No skills tracked yet. Use: mastery add <name>")
			return nil
		}

		fmt.Printf("%s\n", tr.Username())
		fmt.Println(strings.Repeat("─", 50))
		for _, s := range snaps {
			fmt.Printf("  %-20s %-18s %s\n", s.Name, s.Level, timefmt.FormatHoursMinutes(s.Hours))
		}
		fmt.Println(strings.Repeat("─", 50))
		fmt.Printf("Total: %d skills\n", len(snaps))
		return nil
	},
}

// addCmd creates a new skill container at zero hours.
var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Start tracking a new skill",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		snap, err := tr.CreateContainer(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Tracking %q (level %s)\n", snap.Name, snap.Level)
		return nil
	},
}

// rmCmd deletes a skill container.
var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Stop tracking a skill and delete its history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := tr.DeleteContainer(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	},
}

// renameCmd renames a skill container, keeping its hours.
var renameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a tracked skill",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := tr.RenameContainer(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Renamed %q to %q\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd, addCmd, rmCmd, renameCmd)
}
