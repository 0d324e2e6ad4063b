// Package console provides terminal color and formatting utilities
package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Colors for console output
var (
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
	Blue   = color.New(color.FgBlue).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	White  = color.New(color.FgWhite).SprintFunc()

	BoldRed   = color.New(color.FgRed, color.Bold).SprintFunc()
	BoldGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BoldWhite = color.New(color.FgWhite, color.Bold).SprintFunc()

	Dim = color.New(color.Faint).SprintFunc()
)

// Banner returns the reconvoy ASCII banner
func Banner(version string) string {
	banner := `
   ________  _________  ____ _   ______  __  __
  / ___/ _ \/ ___/ __ \/ __ \ | / / __ \/ / / /
 / /  /  __/ /__/ /_/ / / / / |/ / /_/ / /_/ /
/_/   \___/\___/\____/_/ /_/|___/\____/\__, /  %s
                                      /____/
`
	return fmt.Sprintf(banner, Cyan("v"+version))
}

// Info formats an info message
func Info(msg string) string {
	return fmt.Sprintf("[%s] %s", Blue("INF"), msg)
}

// Warn formats a warning message
func Warn(msg string) string {
	return fmt.Sprintf("[%s] %s", Yellow("WRN"), msg)
}

// Err formats an error message
func Err(msg string) string {
	return fmt.Sprintf("[%s] %s", BoldRed("ERR"), msg)
}

// Target formats a target with its detected type
func Target(name, typ string) string {
	s := fmt.Sprintf("      %s %s", "🎯", name)
	if typ != "" {
		s += fmt.Sprintf(" (%s)", typ)
	}
	return s
}

// ToolStart formats a tool start message
func ToolStart(name string) string {
	return Info(fmt.Sprintf("Tool %s started", BoldWhite(name)))
}

// ToolEnd formats a tool end message
func ToolEnd(name string, success bool, returnCode int) string {
	status := BoldGreen("SUCCESS")
	if !success {
		status = BoldRed("FAILURE")
	}
	return Info(fmt.Sprintf("Tool %s finished with status %s (exit code %d)",
		name, status, returnCode))
}

// Command formats a command line, trimmed to a readable width
func Command(argv []string) string {
	return fmt.Sprintf("%s %s", "⚡", Dim(TrimString(strings.Join(argv, " "), 500)))
}

// TrimString trims a string to max length with ellipsis
func TrimString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
