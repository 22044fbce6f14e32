package commands

import (
	"bytes"
	"testing"

	"google.golang.org/api/sheets/v4"
)

func TestSheetToTSV(t *testing.T) {
	data := sheets.ValueRange{
		Values: [][]interface{}{
			{"id", "name", "active"},
			{"1", "a", "true"},
			{"2", "b", "false"},
		},
	}

	expected := "id\tname\tactive\n" +
		"1\ta\ttrue\n" +
		"2\tb\tfalse\n"

	var b bytes.Buffer

	if err := sheetToTSV(&b, &data); err != nil {
		t.Fatalf("Unexpected error creating TSV (%v)", err)
	}

	if b.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %v\n   got:      %v\n", expected, b.String())
	}
}

func TestSheetToTSVPadsShortRows(t *testing.T) {
	data := sheets.ValueRange{
		Values: [][]interface{}{
			{"id", "name", "active"},
			{"1"},
			{"2", "b", "false", "extra"},
		},
	}

	expected := "id\tname\tactive\n" +
		"1\t\t\n" +
		"2\tb\tfalse\n"

	var b bytes.Buffer

	if err := sheetToTSV(&b, &data); err != nil {
		t.Fatalf("Unexpected error creating TSV (%v)", err)
	}

	if b.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %v\n   got:      %v\n", expected, b.String())
	}
}

func TestSheetToTSVWithEmptySheet(t *testing.T) {
	data := sheets.ValueRange{
		Values: [][]interface{}{},
	}

	var b bytes.Buffer

	if err := sheetToTSV(&b, &data); err == nil {
		t.Fatalf("Expected error return for empty worksheet, got %v", err)
	}
}
