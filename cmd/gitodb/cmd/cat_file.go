package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s | -e) <object>",
	Short: "Provide content or type and size information for repository objects",
	Long:  "Print the content (-p), type (-t) or size (-s) of an object, or only check that it exists (-e). Abbreviated ids of at least 4 characters are accepted.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatFile,
}

func init() {
	catFileCmd.Flags().BoolP("pretty", "p", false, "pretty-print the contents of <object> based on its type")
	catFileCmd.Flags().BoolP("type", "t", false, "show the object type")
	catFileCmd.Flags().BoolP("size", "s", false, "show the object size")
	catFileCmd.Flags().BoolP("exists", "e", false, "exit with zero status if <object> exists and is valid")
	rootCmd.AddCommand(catFileCmd)
}

func runCatFile(cmd *cobra.Command, args []string) error {
	var selected []string
	for _, name := range []string{"pretty", "type", "size", "exists"} {
		if on, _ := cmd.Flags().GetBool(name); on {
			selected = append(selected, name)
		}
	}
	if len(selected) != 1 {
		return fmt.Errorf("exactly one of -p, -t, -s or -e is required")
	}

	db, err := openDB()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	id, err := db.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch selected[0] {
	case "pretty":
		return db.PrettyPrint(ctx, out, id)
	case "type":
		t, _, err := db.Header(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, t)
	case "size":
		_, size, err := db.Header(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, size)
	case "exists":
		_, err := db.Get(ctx, id)
		return err
	}
	return nil
}
