package main

import (
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [-- command [args...]]",
	Short: "Open the overlay and close it when focus leaves",
	Long: `Open the overlay terminal on the active output, positioned under the
cursor. Does nothing if the overlay is already open.

dropdown blocks until another window receives focus and then closes the
overlay. Set ipc.watch_timeout in the config to bound the wait.`,
	Args: cobra.ArbitraryArgs,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	ctrl, conn, err := connect(cmd.Context())
	if err != nil {
		return err
	}
	defer conn.Close()

	return ctrl.Open(cmd.Context(), req)
}
