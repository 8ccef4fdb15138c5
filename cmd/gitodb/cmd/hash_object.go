package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aweris/gitodb"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-w] [-t <type>] (--stdin | <file>...)",
	Short: "Compute object ids and optionally store the objects",
	Long:  "Compute the object id of each file (or of standard input) and, with -w, write the objects into the database.",
	RunE:  runHashObject,
}

func init() {
	hashObjectCmd.Flags().BoolP("write", "w", false, "write the objects into the database")
	hashObjectCmd.Flags().StringP("type", "t", "blob", "object type")
	hashObjectCmd.Flags().Bool("stdin", false, "read the object from standard input")
	rootCmd.AddCommand(hashObjectCmd)
}

func runHashObject(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	typeName, _ := cmd.Flags().GetString("type")
	stdin, _ := cmd.Flags().GetBool("stdin")

	t, err := gitodb.ParseType(typeName)
	if err != nil {
		return err
	}

	if stdin == (len(args) > 0) {
		return fmt.Errorf("specify either --stdin or at least one file")
	}

	if write {
		return writeObjects(cmd, t, stdin, args)
	}

	contents, err := readInputs(cmd, stdin, args)
	if err != nil {
		return err
	}

	for _, content := range contents {
		id, err := gitodb.HashObject(t, content)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

// writeObjects stores stdin or a single file through the blob entry points
// and several files as one parallel batch.
func writeObjects(cmd *cobra.Command, t gitodb.Type, stdin bool, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var ids []gitodb.ID
	switch {
	case stdin && t == gitodb.TypeBlob:
		id, err := db.StoreBlob(ctx, cmd.InOrStdin())
		if err != nil {
			return err
		}
		ids = append(ids, id)
	case len(args) == 1 && t == gitodb.TypeBlob:
		id, err := db.StoreFile(ctx, args[0])
		if err != nil {
			return err
		}
		ids = append(ids, id)
	default:
		contents, err := readInputs(cmd, stdin, args)
		if err != nil {
			return err
		}
		ids, err = db.PutMulti(ctx, t, contents)
		if err != nil {
			return err
		}
	}

	for _, id := range ids {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func readInputs(cmd *cobra.Command, stdin bool, args []string) ([][]byte, error) {
	var contents [][]byte
	if stdin {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		contents = append(contents, data)
	}
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		contents = append(contents, data)
	}
	return contents, nil
}
