// Package service installs `timely serve` as a macOS launchd agent.
package service

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/joho/godotenv"

	"github.com/chris/timely/config"
)

const (
	label   = "app.timely.serve"
	binDest = "/usr/local/bin/timely"
)

// Layout holds the filesystem locations the service touches.
type Layout struct {
	Home    string
	BinPath string
}

// DefaultLayout uses the current user's home directory.
func DefaultLayout() Layout {
	home, _ := os.UserHomeDir()
	return Layout{Home: home, BinPath: binDest}
}

func (l Layout) PlistPath() string {
	return filepath.Join(l.Home, "Library", "LaunchAgents", label+".plist")
}

func (l Layout) StdoutLog() string {
	return filepath.Join(l.Home, "Library", "Logs", "timely-stdout.log")
}

func (l Layout) StderrLog() string {
	return filepath.Join(l.Home, "Library", "Logs", "timely-stderr.log")
}

// Install copies the running binary to BinPath, seeds ~/.timely/config from
// ./.env when no config exists yet, writes the plist and loads it.
func Install(l Layout, out io.Writer) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("resolving symlinks: %w", err)
	}

	bin, err := os.ReadFile(exe)
	if err != nil {
		return fmt.Errorf("reading binary: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.BinPath), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(l.BinPath), err)
	}
	if err := os.WriteFile(l.BinPath, bin, 0o755); err != nil {
		return fmt.Errorf("copying binary to %s: %w", l.BinPath, err)
	}
	fmt.Fprintf(out, "installed binary to %s\n", l.BinPath)

	if err := seedConfig(".env", config.File(), out); err != nil {
		return err
	}

	plist, err := renderPlist(l, workDir(config.File()))
	if err != nil {
		return fmt.Errorf("generating plist: %w", err)
	}

	// Unload existing plist if present (ignore errors)
	if _, err := os.Stat(l.PlistPath()); err == nil {
		_ = launchctl("unload", l.PlistPath())
	}
	if err := os.MkdirAll(filepath.Dir(l.PlistPath()), 0o755); err != nil {
		return fmt.Errorf("creating LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(l.PlistPath(), []byte(plist), 0o644); err != nil {
		return fmt.Errorf("writing plist: %w", err)
	}
	fmt.Fprintf(out, "wrote plist to %s\n", l.PlistPath())

	if err := launchctl("load", l.PlistPath()); err != nil {
		return fmt.Errorf("loading plist: %w", err)
	}
	fmt.Fprintln(out, "service loaded and will start on login")
	return nil
}

// seedConfig copies envFile to configFile unless configFile already exists.
func seedConfig(envFile, configFile string, out io.Writer) error {
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(out, "config already exists at %s\n", configFile)
		return nil
	}
	data, err := os.ReadFile(envFile)
	if err != nil {
		return nil // nothing to seed from
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(out, "seeded config from %s -> %s\n", envFile, configFile)
	return nil
}

// workDir is the service's working directory: the current directory when
// the config uses a relative DATABASE_PATH, otherwise the config dir.
func workDir(configFile string) string {
	vars, _ := godotenv.Read(configFile)
	if dbPath, ok := vars["DATABASE_PATH"]; ok && !filepath.IsAbs(dbPath) {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return filepath.Dir(configFile)
}

// Uninstall unloads and removes the plist and the installed binary.
func Uninstall(l Layout, out io.Writer) error {
	if _, err := os.Stat(l.PlistPath()); err == nil {
		if err := launchctl("unload", l.PlistPath()); err != nil {
			fmt.Fprintf(out, "warning: unload failed: %v\n", err)
		}
		if err := os.Remove(l.PlistPath()); err != nil {
			return fmt.Errorf("removing plist: %w", err)
		}
		fmt.Fprintf(out, "removed %s\n", l.PlistPath())
	} else {
		fmt.Fprintln(out, "plist not found, skipping")
	}

	if _, err := os.Stat(l.BinPath); err == nil {
		if err := os.Remove(l.BinPath); err != nil {
			return fmt.Errorf("removing binary: %w", err)
		}
		fmt.Fprintf(out, "removed %s\n", l.BinPath)
	}

	fmt.Fprintln(out, "uninstalled")
	return nil
}

func Start() error { return launchctl("start", label) }

func Stop() error { return launchctl("stop", label) }

func Status(out io.Writer) error {
	cmd := exec.Command("launchctl", "list", label)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(out, "service is not loaded")
	}
	return nil
}

// Logs follows both log files until interrupted.
func Logs(l Layout, out io.Writer) error {
	cmd := exec.Command("tail", "-f", l.StdoutLog(), l.StderrLog())
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

func launchctl(args ...string) error {
	cmd := exec.Command("launchctl", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("launchctl %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return nil
}

var plistTemplate = template.Must(template.New("plist").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.BinPath}}</string>
		<string>serve</string>
	</array>
	<key>WorkingDirectory</key>
	<string>{{.WorkDir}}</string>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
	<key>StandardOutPath</key>
	<string>{{.StdoutLog}}</string>
	<key>StandardErrorPath</key>
	<string>{{.StderrLog}}</string>
</dict>
</plist>
`))

func renderPlist(l Layout, workDir string) (string, error) {
	var buf bytes.Buffer
	err := plistTemplate.Execute(&buf, map[string]string{
		"Label":     label,
		"BinPath":   l.BinPath,
		"WorkDir":   workDir,
		"StdoutLog": l.StdoutLog(),
		"StderrLog": l.StderrLog(),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
