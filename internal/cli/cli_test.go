package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tacogips/fsflash/internal/app"
	"github.com/tacogips/fsflash/internal/tool"
)

type recordingRunner struct {
	commands []tool.Command
}

func (r *recordingRunner) Run(_ context.Context, cmd tool.Command) error {
	r.commands = append(r.commands, cmd)
	return nil
}

// setupWorkspace creates a project layout in a temp dir, changes into it
// and routes output and tool runs to test doubles.
func setupWorkspace(t *testing.T) (*recordingRunner, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"partitions/v1/16m.csv": "# Name, Type, SubType, Offset, Size, Flags\n" +
			"nvs, data, nvs, 0x11000, 0x4000,\n" +
			"custom, data, spiffs, 0x9000, 0x6000,\n",
		"create_local_config/config.json.s3": `{"family":"s3"}`,
		"create_local_config/config.json.c3": `{"family":"c3"}`,
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origWd) })

	runner := &recordingRunner{}
	origRunner := newRunner
	newRunner = func(dryRun bool) tool.Runner {
		if dryRun {
			return &tool.DryRunner{}
		}
		return runner
	}

	var out bytes.Buffer
	origStdout, origStderr := stdout, stderr
	stdout, stderr = &out, &out

	t.Cleanup(func() {
		newRunner = origRunner
		stdout, stderr = origStdout, origStderr
		globalQuiet, globalNoColor, globalDebug = false, false, false
	})
	return runner, &out
}

func execute(args ...string) error {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(context.Background())
}

func TestBuildAndFlashEndToEnd(t *testing.T) {
	runner, out := setupWorkspace(t)

	err := execute("--build", "--flash", "-p", "/dev/ttyUSB0", "--target", "esp32-s3")
	if err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}

	if len(runner.commands) != 2 {
		t.Fatalf("Expected 2 commands, got %d", len(runner.commands))
	}
	wantBuild := []string{"python", "create_local_config/spiffsgen.py", "0x6000", "local_config", "config.bin"}
	if got := runner.commands[0].Argv; !reflect.DeepEqual(got, wantBuild) {
		t.Errorf("build argv = %q, want %q", got, wantBuild)
	}
	wantFlash := []string{"python", "-m", "esptool", "--chip", "esp32-s3", "-p", "/dev/ttyUSB0", "write_flash", "0x9000", "config.bin"}
	if got := runner.commands[1].Argv; !reflect.DeepEqual(got, wantFlash) {
		t.Errorf("flash argv = %q, want %q", got, wantFlash)
	}

	staged, err := os.ReadFile(filepath.Join("local_config", "config.json"))
	if err != nil {
		t.Fatalf("Staged config missing: %v", err)
	}
	if string(staged) != `{"family":"s3"}` {
		t.Errorf("Staged config = %q", staged)
	}

	output := out.String()
	if !strings.Contains(output, "Running build command for target esp32-s3") {
		t.Errorf("Output should echo the build command, got: %s", output)
	}
	if !strings.Contains(output, "Flashed config.bin to /dev/ttyUSB0") {
		t.Errorf("Output should report the flash, got: %s", output)
	}
}

func TestFlashWithoutPort(t *testing.T) {
	runner, _ := setupWorkspace(t)

	err := execute("--flash")
	if err == nil {
		t.Fatal("execute() expected error")
	}
	if code := ExitCode(err); code != 2 {
		t.Errorf("ExitCode() = %d, want 2", code)
	}
	if len(runner.commands) != 0 {
		t.Errorf("Flashing tool must not run, got %v", runner.commands)
	}
}

func TestMissingPartitionTable(t *testing.T) {
	runner, _ := setupWorkspace(t)

	err := execute("--flash", "-p", "/dev/ttyUSB0", "--partition-table", "partitions/none.csv")
	var appErr *app.AppError
	if !errors.As(err, &appErr) || appErr.Type != app.TableParseFailed {
		t.Fatalf("Expected table parse error, got %v", err)
	}
	if code := ExitCode(err); code != 1 {
		t.Errorf("ExitCode() = %d, want 1", code)
	}
	if len(runner.commands) != 0 {
		t.Errorf("No tool should run, got %v", runner.commands)
	}
}

func TestConfigFile(t *testing.T) {
	runner, _ := setupWorkspace(t)
	cfg := "output: fs.bin\n" +
		"target: esp32-c3\n" +
		"tools:\n" +
		"  flasher: esptool.py --baud 921600\n"
	if err := os.WriteFile("fsflash.yaml", []byte(cfg), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if err := execute("--flash", "-p", "COM4"); err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}
	want := []string{"esptool.py", "--baud", "921600", "--chip", "esp32-c3", "-p", "COM4", "write_flash", "0x9000", "fs.bin"}
	if got := runner.commands[0].Argv; !reflect.DeepEqual(got, want) {
		t.Errorf("flash argv = %q, want %q", got, want)
	}

	// Flags win over the config file.
	runner.commands = nil
	if err := execute("--flash", "-p", "COM4", "-o", "other.bin", "--target", "esp32-s3"); err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}
	got := runner.commands[0].Argv
	if got[4] != "esp32-s3" || got[len(got)-1] != "other.bin" {
		t.Errorf("Flags should override config, got %q", got)
	}
}

func TestExplicitConfigMissing(t *testing.T) {
	setupWorkspace(t)

	if err := execute("--build", "--config", "nope.yaml"); err == nil {
		t.Fatal("execute() expected error for missing --config file")
	}
}

func TestDryRun(t *testing.T) {
	runner, out := setupWorkspace(t)

	err := execute("--build", "--flash", "--blufi", "-p", "/dev/ttyUSB0", "--dry-run", "--target", "esp32-c3")
	if err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}
	if len(runner.commands) != 0 {
		t.Errorf("Dry run must not execute commands, got %v", runner.commands)
	}
	if _, err := os.Stat("local_config"); !os.IsNotExist(err) {
		t.Error("Dry run must not create local_config")
	}
	output := out.String()
	if !strings.Contains(output, "third_party/blufi_app/bin/blufi_app_c3.bin") {
		t.Errorf("Output should show the c3 blufi firmware, got: %s", output)
	}
}

func TestQuiet(t *testing.T) {
	_, out := setupWorkspace(t)

	if err := execute("--build", "-q"); err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Quiet run should print nothing, got: %s", out.String())
	}
}

func TestUnknownFlag(t *testing.T) {
	setupWorkspace(t)

	err := execute("--flsh")
	if code := ExitCode(err); code != 2 {
		t.Errorf("ExitCode() = %d, want 2 (%v)", code, err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "validation", err: app.NewValidationError("missing port", nil), want: 2},
		{name: "tool", err: app.NewToolError("failed", errors.New("exit 1")), want: 1},
		{name: "plain", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTargetsCommand(t *testing.T) {
	_, out := setupWorkspace(t)

	if err := execute("targets"); err != nil {
		t.Fatalf("execute() unexpected error: %v", err)
	}
	output := out.String()
	for _, want := range []string{"esp32-c3", "esp32-s3 (default)", "config.json.s3", "blufi_app_c3.bin"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q, got: %s", want, output)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	_, out := setupWorkspace(t)

	t.Run("short output", func(t *testing.T) {
		out.Reset()
		if err := execute("version", "--short"); err != nil {
			t.Fatalf("execute() unexpected error: %v", err)
		}
		if strings.TrimSpace(out.String()) == "" {
			t.Error("Expected a version number")
		}
	})

	t.Run("JSON output", func(t *testing.T) {
		out.Reset()
		if err := execute("version", "--json"); err != nil {
			t.Fatalf("execute() unexpected error: %v", err)
		}
		var info VersionInfo
		if err := json.Unmarshal(out.Bytes(), &info); err != nil {
			t.Fatalf("Invalid JSON %q: %v", out.String(), err)
		}
		if info.GoVersion == "" || info.OS == "" {
			t.Errorf("Incomplete version info: %+v", info)
		}
	})
}

// TestFormatBytes tests byte formatting
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "bytes", bytes: 512, want: "512 B"},
		{name: "kilobytes", bytes: 24576, want: "24.0 KB"},
		{name: "megabytes", bytes: 1048576, want: "1.0 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.bytes); got != tt.want {
				t.Errorf("formatBytes() = %v, want %v", got, tt.want)
			}
		})
	}
}
