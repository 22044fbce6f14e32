package commands

import (
	"encoding/csv"
	"fmt"
	"io"

	"google.golang.org/api/sheets/v4"
)

// sheetToTSV writes a worksheet value range as TSV. The first row is taken
// as the header and every record is padded (or truncated) to the header
// width so that the output is rectangular.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) error {
	if len(data.Values) == 0 {
		return fmt.Errorf("empty worksheet")
	}

	header := []string{}
	for _, v := range data.Values[0] {
		header = append(header, fmt.Sprintf("%v", v))
	}

	if len(header) == 0 {
		return fmt.Errorf("missing/invalid header row")
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range data.Values[1:] {
		record := make([]string, len(header))
		for i := range record {
			if i < len(row) && row[i] != nil {
				record[i] = fmt.Sprintf("%v", row[i])
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
