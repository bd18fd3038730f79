// Package cli provides the command-line conventions shared by osheap's
// tools: version reporting, a small leveled logger extended with a stats
// summary line, and a consistent way to fail with an error message.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"
)

const (
	Version   = "0.1.0"
	BuildDate = "2026-08-01"
	CommitSHA = "unknown"
)

// VersionInfo is the structured form of what --version reports.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

func currentVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion writes toolName's version, either as the plain multi-line
// form or as JSON when asJSON is set.
func PrintVersion(toolName string, asJSON bool) {
	info := currentVersionInfo()

	if asJSON {
		data, err := json.MarshalIndent(struct {
			Tool string `json:"tool"`
			VersionInfo
		}{toolName, info}, "", "  ")
		if err != nil {
			ExitWithError("marshaling version info: %v", err)
		}

		fmt.Println(string(data))

		return
	}

	fmt.Printf("%s v%s (%s, %s/%s)\n", toolName, info.Version, info.GoVersion, info.Platform, info.Arch)
	fmt.Printf("build date: %s\n", info.BuildDate)

	if info.CommitSHA != "unknown" {
		fmt.Printf("commit: %s\n", info.CommitSHA)
	}
}

// ExitWithError prints an error to stderr and exits with status 1.
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// Logger is a small timestamped logger; Info is silenced unless verbose.
type Logger struct {
	verbose bool
}

// NewLogger returns a Logger whose Info calls are only printed when
// verbose is true. Error always prints.
func NewLogger(verbose bool) *Logger {
	return &Logger{verbose: verbose}
}

func (l *Logger) stamp() string {
	return time.Now().Format("15:04:05")
}

// Info logs a message if the logger is verbose.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.verbose {
		fmt.Printf("[INFO] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
	}
}

// Error logs a message unconditionally.
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Printf("[ERROR] %s: %s\n", l.stamp(), fmt.Sprintf(format, args...))
}

// Stats logs a one-line allocator stats summary, so both the one-shot and
// watching tools report a Heap's registry/mapping state in the same shape.
func (l *Logger) Stats(label string, arenaBlocks int, arenaBytes uintptr, freeBlocks int, freeBytes uintptr, mappedBlocks int, mappedBytes uintptr) {
	fmt.Printf("[%s] %s: arena=%d/%dB free=%d/%dB mapped=%d/%dB\n",
		l.stamp(), label, arenaBlocks, arenaBytes, freeBlocks, freeBytes, mappedBlocks, mappedBytes)
}
