package synth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"
)

// RenderTable renders rows as a text table with one column per entry of columns.
// When columns is empty the sorted keys of the first row are used. At most
// maxRows rows are rendered; a footer notes how many were left out.
func RenderTable(columns []string, rows []map[string]any, maxRows int) string {
	if len(columns) == 0 && len(rows) > 0 {
		for key := range rows[0] {
			columns = append(columns, key)
		}
		sort.Strings(columns)
	}

	shown := rows
	if maxRows > 0 && len(shown) > maxRows {
		shown = shown[:maxRows]
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(columns)

	for _, row := range shown {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = FormatValue(row[col])
		}
		table.Append(cells)
	}
	table.Render()

	if omitted := len(rows) - len(shown); omitted > 0 {
		fmt.Fprintf(&buf, "(%d more rows not shown)\n", omitted)
	}
	return buf.String()
}

// FormatValue renders one cell. Scalars print plainly, nil prints empty and
// anything structured is JSON encoded.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
