package main

import (
	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Close the overlay if it is open",
	Args:  cobra.NoArgs,
	RunE:  runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	ctrl, conn, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	return ctrl.Close(cmd.Context())
}
