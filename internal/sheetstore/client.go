package sheetstore

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/yungbote/skillbridge-backend/internal/logger"
)

// CellUpdate writes Value into the 0-based (Row, Col) cell of a table.
type CellUpdate struct {
	Row   int
	Col   int
	Value interface{}
}

// API is the thin surface of the remote spreadsheet consumed by the Store.
// Each call is one blocking network round trip.
type API interface {
	GetValues(ctx context.Context, table string) ([][]string, error)
	AppendRows(ctx context.Context, table string, rows [][]interface{}) error
	UpdateCells(ctx context.Context, table string, updates []CellUpdate) error
	DeleteRows(ctx context.Context, table string, rowIndexes []int) error
}

// Client implements API against the Google Sheets v4 API. One spreadsheet
// holds every table, one worksheet per table name.
type Client struct {
	log           *logger.Logger
	svc           *sheetsv4.Service
	spreadsheetID string
	timeout       time.Duration

	mu       sync.Mutex
	sheetIDs map[string]int64
}

func NewClient(ctx context.Context, log *logger.Logger, timeout time.Duration) (*Client, error) {
	clientLog := log.With("client", "SheetsClient")

	spreadsheetID := strings.TrimSpace(os.Getenv("SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, fmt.Errorf("SPREADSHEET_ID is not set")
	}

	opts := append(credentialOptionsFromEnv(), option.WithScopes(sheetsv4.SpreadsheetsScope))
	svc, err := sheetsv4.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		log:           clientLog,
		svc:           svc,
		spreadsheetID: spreadsheetID,
		timeout:       timeout,
		sheetIDs:      map[string]int64{},
	}, nil
}

func credentialOptionsFromEnv() []option.ClientOption {
	creds := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON"))
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

func (c *Client) GetValues(ctx context.Context, table string) ([][]string, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get values of %s: %w", table, err)
	}
	values := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		values = append(values, cells)
	}
	return values, nil
}

func (c *Client) AppendRows(ctx context.Context, table string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append %d rows to %s: %w", len(rows), table, err)
	}
	return nil
}

func (c *Client) UpdateCells(ctx context.Context, table string, updates []CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	data := make([]*sheetsv4.ValueRange, 0, len(updates))
	for _, u := range updates {
		data = append(data, &sheetsv4.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", table, columnLetter(u.Col), u.Row+1),
			Values: [][]interface{}{{u.Value}},
		})
	}
	req := &sheetsv4.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("update %d cells of %s: %w", len(updates), table, err)
	}
	return nil
}

// DeleteRows removes the given 0-based rows. Deletions are applied in
// descending row order so earlier deletions cannot shift the rows targeted
// by later ones.
func (c *Client) DeleteRows(ctx context.Context, table string, rowIndexes []int) error {
	if len(rowIndexes) == 0 {
		return nil
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	sheetID, err := c.sheetID(ctx, table)
	if err != nil {
		return err
	}

	sorted := append([]int(nil), rowIndexes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	requests := make([]*sheetsv4.Request, 0, len(sorted))
	for _, row := range sorted {
		requests = append(requests, &sheetsv4.Request{
			DeleteDimension: &sheetsv4.DeleteDimensionRequest{
				Range: &sheetsv4.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row),
					EndIndex:   int64(row + 1),
				},
			},
		})
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{Requests: requests}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("delete %d rows from %s: %w", len(sorted), table, err)
	}
	return nil
}

// EnsureTable creates the worksheet if missing, then clears it and writes
// the header row. Used by the bulk export tool, not the request path.
func (c *Client) EnsureTable(ctx context.Context, table string, headers []string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if _, err := c.sheetID(ctx, table); err != nil {
		addReq := &sheetsv4.BatchUpdateSpreadsheetRequest{
			Requests: []*sheetsv4.Request{{
				AddSheet: &sheetsv4.AddSheetRequest{
					Properties: &sheetsv4.SheetProperties{Title: table},
				},
			}},
		}
		if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, addReq).Context(ctx).Do(); err != nil {
			return fmt.Errorf("add sheet %s: %w", table, err)
		}
		c.mu.Lock()
		c.sheetIDs = map[string]int64{}
		c.mu.Unlock()
		c.log.Info("Created worksheet", "table", table)
	} else {
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, table, &sheetsv4.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return fmt.Errorf("clear sheet %s: %w", table, err)
		}
		c.log.Info("Cleared existing worksheet", "table", table)
	}

	header := make([]interface{}, 0, len(headers))
	for _, h := range headers {
		header = append(header, h)
	}
	return c.AppendRows(ctx, table, [][]interface{}{header})
}

func (c *Client) sheetID(ctx context.Context, table string) (int64, error) {
	c.mu.Lock()
	if id, ok := c.sheetIDs[table]; ok {
		c.mu.Unlock()
		return id, nil
	}
	c.mu.Unlock()

	resp, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("get spreadsheet metadata: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sheet := range resp.Sheets {
		if sheet.Properties != nil {
			c.sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
		}
	}
	id, ok := c.sheetIDs[table]
	if !ok {
		return 0, fmt.Errorf("worksheet %s not found", table)
	}
	return id, nil
}

// columnLetter converts a 0-based column index to its A1 letter form.
func columnLetter(col int) string {
	letters := ""
	for col >= 0 {
		letters = string(rune('A'+col%26)) + letters
		col = col/26 - 1
	}
	return letters
}
