package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const helloID = "95d09f2b10159347eece71399a7e2e907ea3df4f"

// run executes the root command with fresh flag state and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), err
}

func initRepo(t *testing.T) string {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := filepath.Join(t.TempDir(), ".git")

	out, err := run(t, "", "--git-dir", dir, "init")
	require.NoError(t, err)
	require.Contains(t, out, "Initialized empty repository")

	head, err := os.ReadFile(filepath.Join(dir, "HEAD"))
	require.NoError(t, err)
	require.Equal(t, "ref: refs/heads/main\n", string(head))
	return dir
}

func TestInitTwice(t *testing.T) {
	dir := initRepo(t)
	_, err := run(t, "", "--git-dir", dir, "init")
	require.Error(t, err)
}

func TestHashObjectAndCatFile(t *testing.T) {
	dir := initRepo(t)

	file := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello world"), 0o644))

	out, err := run(t, "", "--git-dir", dir, "hash-object", file)
	require.NoError(t, err)
	require.Equal(t, helloID+"\n", out)

	_, err = run(t, "", "--git-dir", dir, "cat-file", "-e", helloID)
	require.Error(t, err, "hash-object without -w must not store")

	out, err = run(t, "", "--git-dir", dir, "hash-object", "-w", file)
	require.NoError(t, err)
	require.Equal(t, helloID+"\n", out)

	out, err = run(t, "", "--git-dir", dir, "cat-file", "-p", helloID)
	require.NoError(t, err)
	require.Equal(t, "hello world", out)

	out, err = run(t, "", "--git-dir", dir, "cat-file", "-p", helloID[:7])
	require.NoError(t, err)
	require.Equal(t, "hello world", out)

	out, err = run(t, "", "--git-dir", dir, "cat-file", "-t", helloID)
	require.NoError(t, err)
	require.Equal(t, "blob\n", out)

	out, err = run(t, "", "--git-dir", dir, "cat-file", "-s", helloID)
	require.NoError(t, err)
	require.Equal(t, "11\n", out)

	_, err = run(t, "", "--git-dir", dir, "cat-file", "-e", helloID)
	require.NoError(t, err)

	_, err = run(t, "", "--git-dir", dir, "cat-file", "-p", "-t", helloID)
	require.Error(t, err)

	_, err = run(t, "", "--git-dir", dir, "cat-file", "-p", strings.Repeat("0", 40))
	require.Error(t, err)
}

func TestHashObjectStdin(t *testing.T) {
	dir := initRepo(t)

	out, err := run(t, "a\x00b", "--git-dir", dir, "hash-object", "-w", "--stdin")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.Len(t, id, 40)

	out, err = run(t, "", "--git-dir", dir, "cat-file", "-p", id)
	require.NoError(t, err)
	require.Equal(t, "a\x00b", out)

	_, err = run(t, "", "--git-dir", dir, "hash-object")
	require.Error(t, err)

	_, err = run(t, "", "--git-dir", dir, "hash-object", "-t", "tree", "--stdin")
	require.Error(t, err)
}

func TestLsObjectsAndFsck(t *testing.T) {
	dir := initRepo(t)

	tmp := t.TempDir()
	var files []string
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(tmp, name)
		require.NoError(t, os.WriteFile(path, []byte("content "+name), 0o644))
		files = append(files, path)
	}

	out, err := run(t, "", append([]string{"--git-dir", dir, "hash-object", "-w"}, files...)...)
	require.NoError(t, err)
	ids := strings.Fields(out)
	require.Len(t, ids, 3)

	out, err = run(t, "", "--git-dir", dir, "ls-objects")
	require.NoError(t, err)
	require.ElementsMatch(t, ids, strings.Fields(out))

	out, err = run(t, "", "--git-dir", dir, "ls-objects", "-l")
	require.NoError(t, err)
	require.Contains(t, out, ids[0]+"\tblob\t9\n")

	_, err = run(t, "", "--git-dir", dir, "fsck")
	require.NoError(t, err)

	broken := filepath.Join(dir, "objects", ids[1][:2], ids[1][2:])
	require.NoError(t, os.Chmod(broken, 0o644))
	require.NoError(t, os.WriteFile(broken, []byte("garbage"), 0o644))

	out, err = run(t, "", "--git-dir", dir, "fsck")
	require.Error(t, err)
	require.Contains(t, out, "broken object "+ids[1])
}

func TestNotRepository(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	_, err := run(t, "", "--git-dir", filepath.Join(t.TempDir(), "missing"), "ls-objects")
	require.Error(t, err)
}

func TestHashObjectWriteSingleInput(t *testing.T) {
	dir := initRepo(t)

	missing := filepath.Join(t.TempDir(), "missing")
	_, err := run(t, "", "--git-dir", dir, "hash-object", "-w", missing)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.ErrorContains(t, err, "read "+missing)

	file := filepath.Join(t.TempDir(), "hello.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello world"), 0o644))

	out, err := run(t, "", "--git-dir", dir, "hash-object", "-w", file)
	require.NoError(t, err)
	require.Equal(t, helloID+"\n", out)

	_, err = os.Stat(filepath.Join(dir, "objects", helloID[:2], helloID[2:]))
	require.NoError(t, err)

	out, err = run(t, "hello world", "--git-dir", dir, "hash-object", "-w", "--stdin")
	require.NoError(t, err)
	require.Equal(t, helloID+"\n", out)
}
