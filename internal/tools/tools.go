// Package tools invokes external clone-detection and metrics binaries.
// Similarity detection itself stays outside this tool; this is the seam
// where a configured binary is handed file pairs and returns matches.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Match is one similarity finding reported by an external detector.
type Match struct {
	FileA      string  `json:"file_a"`
	FileB      string  `json:"file_b"`
	Similarity float64 `json:"similarity"`
}

// Request is the JSON document handed to the detector on stdin.
type Request struct {
	Files []string `json:"files"`
}

// Detector runs clone detection over a set of files.
type Detector interface {
	Detect(ctx context.Context, files []string) ([]Match, error)
}

// ExecDetector invokes an external binary: Request JSON on stdin, a JSON
// array of matches on stdout.
type ExecDetector struct {
	Bin     string
	Timeout time.Duration
}

// Detect runs the configured binary over the given files.
func (d ExecDetector) Detect(ctx context.Context, files []string) ([]Match, error) {
	if d.Bin == "" {
		return nil, fmt.Errorf("no clone tool configured")
	}

	timeout := d.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input, err := json.Marshal(Request{Files: files})
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, d.Bin)
	cmd.Stdin = strings.NewReader(string(input))

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("clone tool timed out after %s", timeout)
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("clone tool failed: %s", string(exitErr.Stderr[:min(len(exitErr.Stderr), 200)]))
		}
		return nil, err
	}
	return parseMatches(out)
}

// parseMatches decodes the detector's stdout.
func parseMatches(out []byte) ([]Match, error) {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return nil, nil
	}
	var matches []Match
	if err := json.Unmarshal([]byte(trimmed), &matches); err != nil {
		return nil, fmt.Errorf("could not parse clone tool output as JSON: %s", trimmed[:min(len(trimmed), 300)])
	}
	return matches, nil
}
