package main

import (
	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle [-- command [args...]]",
	Short: "Open the overlay if it is closed, close it otherwise",
	Long: `Toggle the overlay terminal.

When no overlay window exists one is opened on the active output and
dropdown keeps running until focus moves to another window, then closes it.
When the overlay is already open it is closed and dropdown exits.`,
	Args: cobra.ArbitraryArgs,
	RunE: runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	ctrl, conn, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	return ctrl.Toggle(cmd.Context(), req)
}
