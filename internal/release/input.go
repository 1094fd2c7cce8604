package release

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ariel-frischer/releasekit/internal/semver"
)

// ParseBumpKind validates the requested bump kind, treating an empty value as patch.
func ParseBumpKind(s string) (semver.BumpKind, error) {
	if strings.TrimSpace(s) == "" {
		return semver.Patch, nil
	}
	kind, err := semver.ParseBumpKind(s)
	if err != nil {
		return "", &InputError{Message: "invalid bump type", Err: err}
	}
	return kind, nil
}

// ParseCommitBatch decodes a JSON array of commit messages. An empty or
// whitespace-only payload is an empty batch; a null payload or a null
// element is rejected.
func ParseCommitBatch(payload string) ([]string, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil
	}

	var raw []*string
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, &InputError{Message: "commits must be a JSON array of strings", Err: err}
	}
	if raw == nil {
		return nil, &InputError{Message: "commits must be a JSON array of strings, got null"}
	}

	commits := make([]string, len(raw))
	for i, msg := range raw {
		if msg == nil {
			return nil, &InputError{Message: fmt.Sprintf("commit %d is null, expected a string", i)}
		}
		commits[i] = *msg
	}
	return commits, nil
}

// ReadCommitBatch reads a JSON commit batch from path, or from stdin when path is "-".
func ReadCommitBatch(path string, stdin io.Reader) ([]string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, readError("commits file", err)
	}
	return ParseCommitBatch(string(data))
}
