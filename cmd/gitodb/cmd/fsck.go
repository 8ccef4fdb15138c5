package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fsckCmd = &cobra.Command{
	Use:   "fsck",
	Short: "Verify the integrity of all objects",
	Long:  "Decompress and re-hash every object, reporting the ones that are corrupt or malformed.",
	Args:  cobra.NoArgs,
	RunE:  runFsck,
}

func init() {
	rootCmd.AddCommand(fsckCmd)
}

func runFsck(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}

	report, err := db.Verify(cmd.Context())
	if err != nil {
		return err
	}

	for _, p := range report.Problems {
		fmt.Fprintf(cmd.OutOrStdout(), "broken object %s: %v\n", p.ID, p.Err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Checked %d objects.\n", report.Checked)

	if !report.OK() {
		return fmt.Errorf("%d of %d objects are broken", len(report.Problems), report.Checked)
	}
	return nil
}
