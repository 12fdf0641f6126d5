// Package parser turns task-list input text into task declarations.
//
// Two formats are accepted: the line-oriented CSV format
//
//	TaskA, 5, []
//	TaskB, 3, [TaskA]
//
// and a JSON array of {"name", "duration", "depends_on"} objects.
package parser

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Baig73381/WhiteFiber/internal/task"
)

// MalformedInputError reports an input entry that does not match the
// name, duration, [deps] schema. Line is 1-based (for JSON input it is the
// array index plus one).
type MalformedInputError struct {
	Line   int
	Reason string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input at line %d: %s", e.Line, e.Reason)
}

// ParseFile reads and parses a task list from a file. Files ending in .json
// are parsed as JSON; everything else goes through format sniffing.
func ParseFile(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task list: %w", err)
	}
	if strings.HasSuffix(path, ".json") {
		return parseJSON(string(data))
	}
	return ParseText(string(data))
}

// ParseText parses a task list, choosing the format by the first non-blank
// character: a leading '[' means JSON, anything else means CSV lines.
// Declaration order is preserved.
func ParseText(text string) ([]task.Task, error) {
	if strings.HasPrefix(strings.TrimSpace(text), "[") {
		return parseJSON(text)
	}
	return parseCSV(text)
}

func parseCSV(text string) ([]task.Task, error) {
	var tasks []task.Task

	for i, line := range strings.Split(text, "\n") {
		lineNo := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Split into at most three fields so the bracketed dependency list
		// keeps its internal commas.
		fields := strings.SplitN(line, ",", 3)
		if len(fields) < 2 {
			return nil, &MalformedInputError{Line: lineNo, Reason: "each task needs at least a name and a duration"}
		}

		name := strings.TrimSpace(fields[0])
		durStr := strings.TrimSpace(fields[1])
		dur, err := strconv.ParseFloat(durStr, 64)
		if err != nil {
			return nil, &MalformedInputError{Line: lineNo, Reason: fmt.Sprintf("invalid duration %q", durStr)}
		}

		var deps []string
		if len(fields) == 3 {
			deps, err = parseDeps(strings.TrimSpace(fields[2]))
			if err != nil {
				return nil, &MalformedInputError{Line: lineNo, Reason: err.Error()}
			}
		}

		t := task.Task{Name: name, Duration: dur, DependsOn: deps}
		if err := t.Validate(); err != nil {
			return nil, &MalformedInputError{Line: lineNo, Reason: err.Error()}
		}
		tasks = append(tasks, t)
	}

	return tasks, nil
}

// parseDeps parses a dependency list field: "[a, b]", "a, b", or empty.
func parseDeps(s string) ([]string, error) {
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return nil, fmt.Errorf("unterminated dependency list %q", s)
		}
		s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var deps []string
	for _, d := range strings.Split(s, ",") {
		deps = append(deps, strings.TrimSpace(d))
	}
	return deps, nil
}

func parseJSON(text string) ([]task.Task, error) {
	if !gjson.Valid(text) {
		return nil, &MalformedInputError{Line: 1, Reason: "invalid JSON"}
	}
	root := gjson.Parse(text)
	if !root.IsArray() {
		return nil, &MalformedInputError{Line: 1, Reason: "JSON input must be an array of task objects"}
	}

	var tasks []task.Task
	var parseErr error

	root.ForEach(func(_, item gjson.Result) bool {
		entry := len(tasks) + 1
		if !item.IsObject() {
			parseErr = &MalformedInputError{Line: entry, Reason: "task entries must be objects"}
			return false
		}

		name := item.Get("name")
		dur := item.Get("duration")
		if !name.Exists() || !dur.Exists() {
			parseErr = &MalformedInputError{Line: entry, Reason: "task objects need name and duration"}
			return false
		}
		if dur.Type != gjson.Number {
			parseErr = &MalformedInputError{Line: entry, Reason: fmt.Sprintf("invalid duration %q", dur.String())}
			return false
		}

		var deps []string
		for _, d := range item.Get("depends_on").Array() {
			deps = append(deps, d.String())
		}

		t := task.Task{Name: name.String(), Duration: dur.Float(), DependsOn: deps}
		if err := t.Validate(); err != nil {
			parseErr = &MalformedInputError{Line: entry, Reason: err.Error()}
			return false
		}
		tasks = append(tasks, t)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return tasks, nil
}
