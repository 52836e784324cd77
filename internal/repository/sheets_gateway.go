package repository

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/seido-dojo/portal-api/internal/models"
	appErrors "github.com/seido-dojo/portal-api/pkg/errors"
)

// Reads cover every populated column; sheets never grow past ZZ here.
const (
	tableRange  = "A1:ZZ"
	headerRange = "1:1"
)

// SheetsGateway is the portal's only durable-state collaborator: two Google
// spreadsheets exposed as header-keyed tables with get-all and append-row
// operations.
type SheetsGateway struct {
	service *sheets.Service
}

// NewSheetsGateway authenticates with service-account credentials and builds
// the Sheets client.
func NewSheetsGateway(ctx context.Context, credentialsFile string) (*SheetsGateway, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse sheets credentials: %w", err)
	}

	service, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsGateway{service: service}, nil
}

// ReadTable fetches the whole sheet and maps data rows onto the header row.
// Rows shorter than the header are padded with empty strings.
func (g *SheetsGateway) ReadTable(ctx context.Context, spreadsheetID string) (models.Table, error) {
	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, tableRange).Context(ctx).Do()
	if err != nil {
		return models.Table{}, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}

	if len(resp.Values) == 0 {
		return models.Table{}, nil
	}

	headers := cellStrings(resp.Values[0])
	table := models.Table{Headers: headers, Rows: make([]models.Row, 0, len(resp.Values)-1)}
	for _, raw := range resp.Values[1:] {
		cells := cellStrings(raw)
		row := make(models.Row, len(headers))
		for i, header := range headers {
			if i < len(cells) {
				row[header] = cells[i]
			} else {
				row[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// ReadHeader fetches only the current header row. Writers call this at append
// time so values line up with whatever column order the sheet has today.
func (g *SheetsGateway) ReadHeader(ctx context.Context, spreadsheetID string) ([]string, error) {
	resp, err := g.service.Spreadsheets.Values.Get(spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return cellStrings(resp.Values[0]), nil
}

// AppendRow appends one row of raw values beneath the existing data.
func (g *SheetsGateway) AppendRow(ctx context.Context, spreadsheetID string, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{cells}}
	_, err := g.service.Spreadsheets.Values.Append(spreadsheetID, tableRange, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, appErrors.ErrUpstream.Message)
	}
	return nil
}

func cellStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		if v == nil {
			continue
		}
		out[i] = fmt.Sprint(v)
	}
	return out
}
