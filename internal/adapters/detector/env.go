// Package detector picks the watch renderer from the terminal and environment.
package detector

import (
	"fmt"
	"os"
	"strings"

	"go.trai.ch/courseware/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the watch command.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive dashboard.
	ModeTUI
	// ModeLinear forces one line per event.
	ModeLinear
)

// String returns the flag value selecting m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// Env is the part of the process environment detection looks at.
type Env struct {
	IsTTY  bool
	Getenv func(string) string
}

// ProcessEnv describes the running process, with stdout as the terminal.
func ProcessEnv() Env {
	return Env{
		IsTTY:  term.IsTerminal(int(os.Stdout.Fd())),
		Getenv: os.Getenv,
	}
}

// Detect returns ModeLinear when stdout is not a terminal, when running under CI
// or when TERM is "dumb". Otherwise it returns ModeTUI.
func Detect(env Env) OutputMode {
	getenv := env.Getenv
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	ci := strings.ToLower(getenv("CI"))
	isCI := ci == "true" || ci == "1"

	if !env.IsTTY || isCI || getenv("TERM") == "dumb" {
		return ModeLinear
	}
	return ModeTUI
}

// DetectEnvironment is Detect applied to the running process.
func DetectEnvironment() OutputMode {
	return Detect(ProcessEnv())
}

// ParseMode converts an --output flag value. "ci" is an alias for "linear".
func ParseMode(flag string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "", "auto":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(
			zerr.Wrap(domain.ErrInvalidOutputMode, fmt.Sprintf("unknown output %q", flag)), "output", flag)
	}
}

// ResolveMode applies the user's --output flag to the detected mode.
func ResolveMode(detected OutputMode, userFlag string) (OutputMode, error) {
	mode, err := ParseMode(userFlag)
	if err != nil {
		return detected, err
	}
	if mode == ModeAuto {
		return detected, nil
	}
	return mode, nil
}
