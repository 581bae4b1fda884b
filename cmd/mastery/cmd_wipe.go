// Package main: database wipe.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mastery/internal/store"
)

var wipeYes bool

// wipeCmd deletes the database file. Guarded behind --yes; there is no undo.
var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the database and all tracked history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !wipeYes {
			return fmt.Errorf("refusing to wipe without --yes")
		}

		st, err := store.Open(cfg.DatabasePath, logger)
		if err != nil {
			return err
		}
		if err := st.Wipe(); err != nil {
			return err
		}
		fmt.Printf("%s has been deleted.\n", cfg.DatabasePath)
		return nil
	},
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "confirm deletion")
	rootCmd.AddCommand(wipeCmd)
}
