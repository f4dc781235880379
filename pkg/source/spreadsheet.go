package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"datamig/pkg/dataset"
)

// Spreadsheet reads user and dependant data from a remote spreadsheet.
// Access uses an OAuth client-secrets file plus an on-disk token cache; the
// first run prompts for an authorization code and saves the token for later
// runs.
type Spreadsheet struct {
	SpreadsheetID   string
	UsersRange      string
	DependantsRange string
	CredentialsFile string
	TokenFile       string
	logger          *logrus.Logger
}

// NewSpreadsheet builds the adapter with the conventional sheet names and
// credential file locations.
func NewSpreadsheet(spreadsheetID string, logger *logrus.Logger) *Spreadsheet {
	return &Spreadsheet{
		SpreadsheetID:   spreadsheetID,
		UsersRange:      "usuarios",
		DependantsRange: "dependentes",
		CredentialsFile: "credentials.json",
		TokenFile:       "token.json",
		logger:          logger,
	}
}

func (s *Spreadsheet) Name() string {
	return s.SpreadsheetID
}

// Load fetches the users and dependants ranges. The first row of each range
// is the header. All spreadsheet cells arrive as formatted text, so every
// column is Text kind.
func (s *Spreadsheet) Load(ctx context.Context) (*dataset.Dataset, *dataset.Dataset, error) {
	secrets, err := os.ReadFile(s.CredentialsFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, &NotFoundError{Path: s.CredentialsFile}
		}
		return nil, nil, &ReadError{Source: s.CredentialsFile, Err: err}
	}

	config, err := google.ConfigFromJSON(secrets, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, nil, &ReadError{Source: s.CredentialsFile, Err: fmt.Errorf("invalid client secrets: %w", err)}
	}

	client, err := s.client(ctx, config)
	if err != nil {
		return nil, nil, &ReadError{Source: s.SpreadsheetID, Err: err}
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, nil, &ReadError{Source: s.SpreadsheetID, Err: err}
	}

	users, err := s.fetch(ctx, service, s.UsersRange)
	if err != nil {
		return nil, nil, err
	}
	dependants, err := s.fetch(ctx, service, s.DependantsRange)
	if err != nil {
		return nil, nil, err
	}
	return users, dependants, nil
}

func (s *Spreadsheet) fetch(ctx context.Context, service *sheets.Service, readRange string) (*dataset.Dataset, error) {
	resp, err := service.Spreadsheets.Values.Get(s.SpreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, &ReadError{Source: s.SpreadsheetID, Err: fmt.Errorf("fetching range %s: %w", readRange, err)}
	}
	ds, err := gridToDataset(resp.Values)
	if err != nil {
		return nil, &ReadError{Source: s.SpreadsheetID, Err: fmt.Errorf("range %s: %w", readRange, err)}
	}
	return ds, nil
}

// gridToDataset converts a spreadsheet value grid to a dataset. The first
// grid row is the header; short data rows are padded (the API drops trailing
// empty cells).
func gridToDataset(values [][]any) (*dataset.Dataset, error) {
	if len(values) == 0 {
		return nil, errors.New("range is empty: no header row found")
	}

	columns := make([]dataset.Column, len(values[0]))
	for i, h := range values[0] {
		columns[i] = dataset.Column{Name: fmt.Sprint(h), Kind: dataset.Text}
	}

	rows := make([][]string, 0, len(values)-1)
	for _, grid := range values[1:] {
		row := make([]string, len(columns))
		for i := range columns {
			if i < len(grid) {
				row[i] = fmt.Sprint(grid[i])
			}
		}
		rows = append(rows, row)
	}
	return dataset.New(columns, rows), nil
}

// client returns an HTTP client backed by a cached token, running the
// authorization-code prompt when no valid token is cached yet.
func (s *Spreadsheet) client(ctx context.Context, config *oauth2.Config) (*http.Client, error) {
	token, err := tokenFromFile(s.TokenFile)
	if err != nil {
		token, err = s.tokenFromPrompt(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(s.TokenFile, token); err != nil && s.logger != nil {
			s.logger.Warnf("could not cache oauth token: %v", err)
		}
	}
	return config.Client(ctx, token), nil
}

// tokenFromPrompt asks the user to visit the authorization URL and paste the
// code back, then exchanges it for a token.
func (s *Spreadsheet) tokenFromPrompt(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return token, nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
