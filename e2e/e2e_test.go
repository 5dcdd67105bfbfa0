//go:build e2e

package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
	"github.com/xuri/excelize/v2"
)

var xlgraphBinary string

func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "xlgraph-e2e-*")
	if err != nil {
		panic(err)
	}

	xlgraphBinary = filepath.Join(tmpDir, "xlgraph")

	//nolint:gosec // Building binary with static arguments, not user input
	cmd := exec.Command("go", "build", "-o", xlgraphBinary, "./cmd/xlgraph")
	cmd.Dir = ".."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		panic("failed to build xlgraph binary: " + err.Error())
	}

	exitCode := m.Run()

	_ = os.RemoveAll(tmpDir)

	os.Exit(exitCode)
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir:   "testdata",
		Setup: setupE2E,
		Cmds: map[string]func(ts *testscript.TestScript, neg bool, args []string){
			"mkbook": mkbook,
		},
	})
}

func setupE2E(env *testscript.Env) error {
	env.Setenv("NO_COLOR", "1")
	env.Setenv("CI", "true")

	binDir := filepath.Dir(xlgraphBinary)
	currentPath := env.Getenv("PATH")
	env.Setenv("PATH", binDir+string(os.PathListSeparator)+currentPath)

	homeDir := filepath.Join(env.WorkDir, ".home")
	if err := os.MkdirAll(homeDir, 0o750); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("XDG_CACHE_HOME", filepath.Join(homeDir, ".cache"))
	env.Setenv("XDG_DATA_HOME", filepath.Join(homeDir, ".local", "share"))

	return nil
}

// mkbook writes an xlsx workbook from a cell listing.
//
//	mkbook <workbook> <listing>
//
// Each listing line is "Sheet!A1 content"; content starting with "=" is a formula.
func mkbook(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("unsupported: ! mkbook")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: mkbook <workbook> <listing>")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheets := map[string]bool{"Sheet1": true}
	for _, line := range strings.Split(ts.ReadFile(args[1]), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ref, content, ok := strings.Cut(line, " ")
		if !ok {
			ts.Fatalf("malformed listing line %q", line)
		}
		sheet, cell, ok := strings.Cut(ref, "!")
		if !ok {
			ts.Fatalf("listing cell %q must name its sheet", ref)
		}
		if !sheets[sheet] {
			_, err := f.NewSheet(sheet)
			ts.Check(err)
			sheets[sheet] = true
		}
		if formula, ok := strings.CutPrefix(content, "="); ok {
			ts.Check(f.SetCellFormula(sheet, cell, formula))
			continue
		}
		ts.Check(f.SetCellValue(sheet, cell, content))
	}

	ts.Check(f.SaveAs(ts.MkAbs(args[0])))
}
