package zfsengine

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/function61/gokit/assert"
)

// writes an executable standing in for the zfs binary. it records its argv (one
// invocation per line) to the returned log file.
func fakeZfs(t *testing.T, body string) (string, string) {
	t.Helper()

	dir := t.TempDir()
	invocations := filepath.Join(dir, "invocations.log")
	binary := filepath.Join(dir, "zfs")

	script := "#!/bin/sh\necho \"$@\" >> " + invocations + "\n" + body + "\n"

	assert.Assert(t, os.WriteFile(binary, []byte(script), 0700) == nil)

	return binary, invocations
}

func readInvocations(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	assert.Assert(t, err == nil)

	return string(content)
}

func TestZfsIssuesCommands(t *testing.T) {
	binary, invocations := fakeZfs(t, "exit 0")

	engine := Zfs(binary, nil)

	assert.Assert(t, engine.Create("pool1/pool1.db.trunk") == nil)
	assert.Assert(t, engine.Snapshot("pool1/pool1.db.trunk", "feature") == nil)
	assert.Assert(t, engine.Clone("pool1/pool1.db.trunk@feature", "pool1/pool1.db.feature") == nil)

	assert.EqualString(t, readInvocations(t, invocations), `create pool1/pool1.db.trunk
snapshot pool1/pool1.db.trunk@feature
clone pool1/pool1.db.trunk@feature pool1/pool1.db.feature
`)
}

func TestZfsFailure(t *testing.T) {
	binary, _ := fakeZfs(t, `echo "cannot create 'pool1/pool1.db.trunk': dataset already exists" >&2
exit 1`)

	err := Zfs(binary, nil).Create("pool1/pool1.db.trunk")
	assert.Assert(t, errors.Is(err, ErrEngineOperationFailed))

	var cmdErr *CommandError
	assert.Assert(t, errors.As(err, &cmdErr))
	assert.Assert(t, cmdErr.ExitCode == 1)
	assert.EqualString(t, strings.Join(cmdErr.Args, " "), binary+" create pool1/pool1.db.trunk")
	assert.EqualString(t, strings.Join(cmdErr.Output, "\n"), "cannot create 'pool1/pool1.db.trunk': dataset already exists")
	assert.EqualString(t, err.Error(), binary+" create pool1/pool1.db.trunk failed: exit status 1, exit code: 1, output: cannot create 'pool1/pool1.db.trunk': dataset already exists")
}

func TestZfsBinaryNotFound(t *testing.T) {
	err := Zfs(filepath.Join(t.TempDir(), "does-not-exist"), nil).Create("pool1/pool1.db.trunk")
	assert.Assert(t, errors.Is(err, ErrEngineOperationFailed))

	var cmdErr *CommandError
	assert.Assert(t, errors.As(err, &cmdErr))
	assert.Assert(t, cmdErr.ExitCode == -1)
}

func TestListMountRoot(t *testing.T) {
	root := t.TempDir()

	// created out of alphabetical order
	for _, dir := range []string{"pool1.z.trunk", "pool1.a.trunk", "pool1.m.trunk"} {
		assert.Assert(t, os.Mkdir(filepath.Join(root, dir), 0700) == nil)
	}
	assert.Assert(t, os.WriteFile(filepath.Join(root, "junkfile"), nil, 0600) == nil)

	rawDir, err := os.Open(root)
	assert.Assert(t, err == nil)
	defer rawDir.Close()
	raw, err := rawDir.Readdirnames(-1)
	assert.Assert(t, err == nil)

	children, err := Zfs("", nil).ListChildren(root)
	assert.Assert(t, err == nil)
	// exactly what the filesystem returned, not re-sorted
	assert.EqualString(t, strings.Join(children, ","), strings.Join(raw, ","))

	sorted := append([]string{}, children...)
	sort.Strings(sorted)
	assert.EqualString(t, strings.Join(sorted, ","), "junkfile,pool1.a.trunk,pool1.m.trunk,pool1.z.trunk")

	_, err = ListMountRoot(filepath.Join(root, "nonexistent"))
	assert.Assert(t, errors.Is(err, ErrEngineOperationFailed))
	assert.Assert(t, errors.Is(err, os.ErrNotExist))
}

func TestListMountRootNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	assert.Assert(t, os.WriteFile(file, nil, 0600) == nil)

	_, err := ListMountRoot(file)
	assert.Assert(t, errors.Is(err, ErrEngineOperationFailed))
}
