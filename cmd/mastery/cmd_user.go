// Package main: user profile subcommands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// userCmd shows or changes the profile's display name.
var userCmd = &cobra.Command{
	Use:   "user [name]",
	Short: "Show or change the username",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, tr, err := openTracker()
		if err != nil {
			return err
		}
		defer st.Close()

		if len(args) == 0 {
			fmt.Println(tr.Username())
			return nil
		}
		if err := tr.RenameUser(args[0]); err != nil {
			return err
		}
		fmt.Printf("Username changed to %q\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}
