package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aweris/gitodb"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty repository",
	Long:  "Create the objects and refs directories and a HEAD pointing at the main branch.",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	opts, err := openOptions()
	if err != nil {
		return err
	}

	db, err := gitodb.Init(getGitDir(), opts...)
	if err != nil {
		return err
	}

	dir, err := filepath.Abs(db.Root())
	if err != nil {
		dir = db.Root()
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized empty repository in %s\n", dir)
	return nil
}
