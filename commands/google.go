package commands

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/joeybream/supasheets/sync"
)

// googleDestination implements sync.Destination against a single Google
// Sheets spreadsheet.
type googleDestination struct {
	service       *sheets.Service
	spreadsheetId string
}

func newGoogleDestination(service *sheets.Service, spreadsheetId string) *googleDestination {
	return &googleDestination{
		service:       service,
		spreadsheetId: spreadsheetId,
	}
}

func (g *googleDestination) SheetByName(ctx context.Context, name string) (sync.Sheet, bool, error) {
	spreadsheet, err := g.service.Spreadsheets.Get(g.spreadsheetId).Context(ctx).Do()
	if err != nil {
		return sync.Sheet{}, false, fmt.Errorf("failed to fetch spreadsheet (%v)", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if strings.EqualFold(strings.TrimSpace(sheet.Properties.Title), strings.TrimSpace(name)) {
			return asSheet(sheet.Properties), true, nil
		}
	}

	return sync.Sheet{}, false, nil
}

func (g *googleDestination) AddSheet(ctx context.Context, name string, hidden bool) (sync.Sheet, error) {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title:  name,
						Hidden: hidden,
					},
				},
			},
		},
	}

	response, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetId, &rq).Context(ctx).Do()
	if err != nil {
		return sync.Sheet{}, fmt.Errorf("unable to create worksheet '%s' (%v)", name, err)
	}

	return asSheet(response.Replies[0].AddSheet.Properties), nil
}

func (g *googleDestination) DeleteSheet(ctx context.Context, id int64) error {
	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				DeleteSheet: &sheets.DeleteSheetRequest{
					SheetId: id,
				},
			},
		},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to delete worksheet (%v)", err)
	}

	return nil
}

// RenameSheet retitles and unhides the sheet in a single batch update so
// that swapping in a staged sheet is one discrete operation from the
// document's perspective.
func (g *googleDestination) RenameSheet(ctx context.Context, id int64, title string) error {
	properties := sheets.SheetProperties{
		SheetId:         id,
		Title:           title,
		Hidden:          false,
		ForceSendFields: []string{"Hidden"},
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &properties,
					Fields:     "title,hidden",
				},
			},
		},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to rename worksheet to '%s' (%v)", title, err)
	}

	return nil
}

func (g *googleDestination) SetHidden(ctx context.Context, id int64, hidden bool) error {
	properties := sheets.SheetProperties{
		SheetId:         id,
		Hidden:          hidden,
		ForceSendFields: []string{"Hidden"},
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &properties,
					Fields:     "hidden",
				},
			},
		},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to update worksheet visibility (%v)", err)
	}

	return nil
}

func (g *googleDestination) Resize(ctx context.Context, id int64, rows, columns int64) error {
	properties := sheets.SheetProperties{
		SheetId: id,
		GridProperties: &sheets.GridProperties{
			RowCount:    rows,
			ColumnCount: columns,
		},
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &properties,
					Fields:     "gridProperties.rowCount,gridProperties.columnCount",
				},
			},
		},
	}

	if _, err := g.service.Spreadsheets.BatchUpdate(g.spreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to resize worksheet (%v)", err)
	}

	return nil
}

func (g *googleDestination) UsedExtent(ctx context.Context, name string) (int64, int64, error) {
	area := fmt.Sprintf("'%s'", name)

	response, err := g.service.Spreadsheets.Values.Get(g.spreadsheetId, area).Context(ctx).Do()
	if err != nil {
		return 0, 0, fmt.Errorf("unable to retrieve data from worksheet '%s' (%v)", name, err)
	}

	rows := int64(len(response.Values))
	columns := int64(0)

	for _, row := range response.Values {
		if int64(len(row)) > columns {
			columns = int64(len(row))
		}
	}

	return rows, columns, nil
}

func (g *googleDestination) ClearRows(ctx context.Context, name string, from, to, columns int64) error {
	area := fmt.Sprintf("'%s'!A%v:%s%v", name, from, columnName(columns-1), to)

	rq := sheets.BatchClearValuesRequest{
		Ranges: []string{area},
	}

	if _, err := g.service.Spreadsheets.Values.BatchClear(g.spreadsheetId, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to clear worksheet range %s (%v)", area, err)
	}

	return nil
}

func (g *googleDestination) WriteRows(ctx context.Context, name string, row int64, rows [][]any) error {
	area := fmt.Sprintf("'%s'!A%v", name, row)

	values := sheets.ValueRange{
		Range:  area,
		Values: rows,
	}

	if _, err := g.service.Spreadsheets.Values.Update(g.spreadsheetId, area, &values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do(); err != nil {
		return fmt.Errorf("unable to write to worksheet '%s' (%v)", name, err)
	}

	return nil
}

func asSheet(properties *sheets.SheetProperties) sync.Sheet {
	sheet := sync.Sheet{
		ID:     properties.SheetId,
		Title:  properties.Title,
		Hidden: properties.Hidden,
	}

	if properties.GridProperties != nil {
		sheet.Rows = properties.GridProperties.RowCount
		sheet.Columns = properties.GridProperties.ColumnCount
	}

	return sheet
}

// columnName converts a zero-based column index to its A1 column letters
// e.g. 0 => A, 25 => Z, 26 => AA.
func columnName(ix int64) string {
	name := ""

	for {
		name = string(rune('A'+ix%26)) + name
		if ix = ix/26 - 1; ix < 0 {
			break
		}
	}

	return name
}
