package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/dropdown/internal/overlay"
)

var statusOpts struct {
	json bool
}

// statusJSON is the machine-readable status output.
type statusJSON struct {
	State  string  `json:"state"`
	IDs    []int64 `json:"ids,omitempty"`
	Output string  `json:"output,omitempty"`
	Width  int     `json:"width,omitempty"`
	Height int     `json:"height,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the overlay is open",
	Long: `Print whether the overlay is open, the output it would open on and the
dimensions it would get, without changing anything.

The --width and --height flags are applied as they would be for open.
With no active output only the open/closed state is reported.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	req, err := buildRequest(nil)
	if err != nil {
		return err
	}

	ctrl, conn, err := connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	st, err := ctrl.Status(ctx, req)
	if err != nil {
		return err
	}

	if statusOpts.json {
		return writeStatusJSON(os.Stdout, st)
	}
	_, err = fmt.Fprintln(os.Stdout, formatStatus(st))
	return err
}

func stateName(st *overlay.Status) string {
	if st.Open {
		return "open"
	}
	return "closed"
}

// formatStatus renders st as a single line, e.g.
// "open 12 on eDP-1 576x432". The output part is left out when no output
// is active.
func formatStatus(st *overlay.Status) string {
	var b strings.Builder
	b.WriteString(stateName(st))
	for i, w := range st.Windows {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(w.ID, 10))
	}
	if st.Output.Name != "" {
		fmt.Fprintf(&b, " on %s %dx%d", st.Output.Name, st.Dimensions.Width, st.Dimensions.Height)
	}
	return b.String()
}

func writeStatusJSON(w io.Writer, st *overlay.Status) error {
	out := statusJSON{
		State:  stateName(st),
		Output: st.Output.Name,
		Width:  st.Dimensions.Width,
		Height: st.Dimensions.Height,
	}
	for _, win := range st.Windows {
		out.IDs = append(out.IDs, win.ID)
	}
	enc := json.NewEncoder(w)
	return enc.Encode(out)
}
