package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"
)

func formatJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode json", err)
	}
}

// formatTable pads every column to its widest cell. Widths count runes so
// accented names stay aligned.
func formatTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	measure := func(cells []string) {
		for i, cell := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(cell))
			}
		}
	}

	measure(headers)
	for _, row := range rows {
		measure(row)
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.Reset()
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
			if i < len(widths) {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}

	writeRow(headers)

	rule := make([]string, len(widths))
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	writeRow(rule)

	for _, row := range rows {
		writeRow(row)
	}
}

// formatFields renders a JSON object as a FIELD/VALUE table sorted by field.
// It reports false when v does not encode to an object.
func formatFields(v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, cellValue(obj[k])})
	}

	formatTable([]string{"FIELD", "VALUE"}, rows)

	return true
}

func cellValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = cellValue(item)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, _ := json.Marshal(val)
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}

// output prints a single record in the selected format.
func output(v any, quietVal string) {
	switch flagFmt {
	case "quiet":
		fmt.Println(quietVal)
	case "table":
		if !formatFields(v) {
			formatJSON(v)
		}
	default:
		formatJSON(v)
	}
}
