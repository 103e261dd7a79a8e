package cli

import (
	"fmt"
	"io"

	"awardeda/internal/clean"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var stepsListQuiet bool
var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List cleaning steps",
	Long: `Inspect the cleaning steps.

Every run applies all registered steps in order (see "awardeda --help").

Examples:
  # List all cleaning steps
  awardeda steps list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var stepsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cleaning steps in execution order",
	Long: `List all cleaning steps registered in this build, in the order they run.

Examples:
  awardeda steps list
  awardeda steps list -q

Output:
  A vertical list of steps:
    ----------------------------------------
    STEP {RANK}: {ID}
    ----------------------------------------
    {TITLE}
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, s := range clean.List() {
			if stepsListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), s.ID())
			} else {
				printStep(cmd.OutOrStdout(), s)
			}
		}
		return nil
	},
}

var stepsShowCmd = &cobra.Command{
	Use:   "show [step-id]",
	Short: "Show details of a cleaning step",
	Long: `Show details of a cleaning step by its ID.

Examples:
  awardeda steps show drop-duplicates
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := clean.Lookup(args[0])
		if err != nil {
			return err
		}
		printStep(cmd.OutOrStdout(), s)
		return nil
	},
}

func printStep(w io.Writer, s clean.Step) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "STEP %d: %s\n", s.Rank(), s.ID())
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintln(w, s.Title())
	fmt.Fprintln(w, s.Description())
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(stepsCmd)
	stepsCmd.AddCommand(stepsListCmd)
	stepsListCmd.Flags().BoolVarP(&stepsListQuiet, "quiet", "q", false, "Only print step IDs")
	stepsCmd.AddCommand(stepsShowCmd)
}
