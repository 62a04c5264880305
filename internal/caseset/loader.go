// Package caseset loads golden case files: line-delimited JSON, one curated
// case record per line. A corrupt suite cannot be trusted, so any malformed
// record aborts the whole load with a ParseError rather than being skipped.
package caseset

import (
	"bufio"
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/segmentio/encoding/json"

	"github.com/labelwise-ai/labelwise/harness/pkg/types"
)

// maxLineBytes bounds a single case record line.
const maxLineBytes = 1 * 1024 * 1024

// Load reads golden cases from the JSONL file at path. Blank lines are
// skipped. If maxItems > 0, only the first maxItems records are parsed;
// truncation happens before later lines are looked at, so a --max run is
// reproducible even when a later line is corrupt.
func Load(path string, maxItems int) ([]types.GoldenCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open case file: %w", err)
	}
	defer f.Close()

	sch, err := compileRecordSchema()
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, maxLineBytes), maxLineBytes)

	var cases []types.GoldenCase
	seen := make(map[string]int)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		if maxItems > 0 && len(cases) >= maxItems {
			break
		}

		// The schema validator wants values decoded with its own helper.
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(line))
		if err != nil {
			return nil, types.NewParseError(path, lineNo, "invalid JSON", err)
		}
		if err := sch.Validate(doc); err != nil {
			return nil, types.NewParseError(path, lineNo, "invalid case record", err)
		}

		var c types.GoldenCase
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, types.NewParseError(path, lineNo, "decode case record", err)
		}
		if prev, dup := seen[c.ID]; dup {
			return nil, types.NewParseError(path, lineNo,
				fmt.Sprintf("duplicate case id %q (first seen on line %d)", c.ID, prev), nil)
		}
		seen[c.ID] = lineNo
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read case file: %w", err)
	}

	return cases, nil
}
