package ztest

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RunShell runs script with "bash -e -o pipefail" in dir.  The
// directories of path, a list like the PATH environment variable, are
// searched for commands before the inherited PATH.
func RunShell(ctx context.Context, dir, path, script string, stdin io.Reader, env []string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "bash", "-e", "-o", "pipefail", "-c", script)
	cmd.Dir = dir
	cmd.Stdin = stdin
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	searchPath, err := absPath(path)
	if err != nil {
		return "", "", err
	}
	cmd.Env = append(os.Environ(), "PATH="+searchPath+string(filepath.ListSeparator)+os.Getenv("PATH"))
	cmd.Env = append(cmd.Env, env...)
	err = cmd.Run()
	return stdout.String(), stderr.String(), err
}

func absPath(path string) (string, error) {
	var dirs []string
	for _, dir := range filepath.SplitList(path) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return "", err
		}
		dirs = append(dirs, abs)
	}
	return strings.Join(dirs, string(filepath.ListSeparator)), nil
}
