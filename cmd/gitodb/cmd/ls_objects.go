package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsObjectsCmd = &cobra.Command{
	Use:   "ls-objects",
	Short: "List stored objects",
	Long:  "List the ids of all loose objects, optionally with their type and size.",
	Args:  cobra.NoArgs,
	RunE:  runLsObjects,
}

func init() {
	lsObjectsCmd.Flags().BoolP("long", "l", false, "also show type and size")
	rootCmd.AddCommand(lsObjectsCmd)
}

func runLsObjects(cmd *cobra.Command, args []string) error {
	long, _ := cmd.Flags().GetBool("long")

	db, err := openDB()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	count := 0
	for id, err := range db.Objects(ctx) {
		if err != nil {
			return err
		}
		count++

		if !long {
			fmt.Fprintln(out, id)
			continue
		}
		t, size, err := db.Header(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s\t%d\n", id, t, size)
	}

	if count == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "(no objects)")
	}
	return nil
}
