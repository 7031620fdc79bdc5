package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type warnLogger struct {
	warnings []string
}

func (l *warnLogger) Debugf(string, ...interface{}) {}
func (l *warnLogger) Infof(string, ...interface{})  {}
func (l *warnLogger) Warnf(format string, args ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
func (l *warnLogger) Errorf(string, ...interface{}) {}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
	assert.False(t, parser.Strict)
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	book, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, book, "Should return nil book")
	assert.Contains(t, err.Error(), "failed to read file", "Should have specific error message")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0644))

	parser := NewInputParser()
	book, err := parser.LoadFromFile(invalidFile)

	assert.Error(t, err, "Should error for invalid YAML")
	assert.Nil(t, book)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_InvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidFile, []byte(`{"clients": [`), 0644))

	_, err := NewInputParser().LoadFromFile(invalidFile)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestInputParser_LoadFromFile_YAML(t *testing.T) {
	parser := NewInputParser()

	book, err := parser.LoadFromFile(filepath.Join("testdata", "clients.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "INR", book.Currency)
	assert.Equal(t, []string{"John Doe", "Anita Sharma"}, book.Names())
	require.NotNil(t, book.Policy)
	assert.False(t, book.Policy.ClampBudgeting)
	require.Len(t, book.Rules, 2)
	assert.Equal(t, domain.SeverityError, book.Rules[1].Severity)

	john, ok := book.Find("John Doe")
	require.True(t, ok)
	assert.Equal(t, "INR", john.Currency, "client inherits book currency")
	assert.Equal(t, []string{"Cash", "FDs", "Equity", "MFs", "EPF", "Gold", "Real Estate"}, john.Assets.Categories())
	assert.True(t, john.EmergencyFund.Equal(decimal.NewFromInt(100000)))
}

func TestInputParser_LoadFromFile_MatchesSampleBook(t *testing.T) {
	book, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "clients.yaml"))
	require.NoError(t, err)
	sample := SampleBook()

	require.Len(t, book.Clients, len(sample.Clients))
	for i, want := range sample.Clients {
		got := book.Clients[i]
		assert.Equal(t, want.Name, got.Name)
		assert.True(t, want.Income.Equal(got.Income), want.Name)
		assert.True(t, want.Expenses.Equal(got.Expenses), want.Name)
		assert.True(t, want.EmergencyFund.Equal(got.EmergencyFund), want.Name)
		assert.Equal(t, want.Assets.Categories(), got.Assets.Categories(), want.Name)
		assert.True(t, want.Assets.Total().Equal(got.Assets.Total()), want.Name)
		assert.True(t, want.Liabilities.Total().Equal(got.Liabilities.Total()), want.Name)
		assert.True(t, want.Portfolio.Total().Equal(got.Portfolio.Total()), want.Name)
	}
}

func TestInputParser_LoadFromFile_JSON(t *testing.T) {
	book, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "clients.json"))
	require.NoError(t, err)

	assert.Equal(t, "USD", book.Currency, "currency is upper-cased")
	require.Len(t, book.Clients, 1)
	maria := book.Clients[0]
	assert.Equal(t, "USD", maria.CurrencyCode())
	assert.Equal(t, []string{"Checking", "Brokerage", "401k"}, maria.Assets.Categories())
	assert.Nil(t, book.Policy)
}

func TestInputParser_SampleBookRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(SampleBook())
	require.NoError(t, err)

	book, err := NewInputParser().Parse(data, "yaml")
	require.NoError(t, err)

	sample := SampleBook()
	require.Equal(t, sample.Names(), book.Names())
	for i := range sample.Clients {
		assert.Equal(t, sample.Clients[i].Assets.Entries(), book.Clients[i].Assets.Entries())
		assert.Equal(t, sample.Clients[i].Portfolio.Entries(), book.Clients[i].Portfolio.Entries())
	}
}

func TestInputParser_Parse_UnsupportedFormat(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("a,b"), "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported client book format")
}

func TestInputParser_Parse_NoClients(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("currency: INR\n"), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clients provided")
}

func TestInputParser_BadStructure(t *testing.T) {
	_, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "bad_structure.yaml"))
	require.Error(t, err)

	msg := err.Error()
	assert.Contains(t, msg, "client book validation failed")
	assert.Contains(t, msg, `duplicate client name "Twin"`)
	assert.Contains(t, msg, "client 2: name is required")
	assert.Contains(t, msg, `unknown currency "XYZ"`)
	assert.Contains(t, msg, "low savings threshold must be in (0, 1]")
	assert.Contains(t, msg, `rule id "high-debt-ratio" is reserved`)
	assert.Contains(t, msg, "failed to compile rule broken")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.GreaterOrEqual(t, len(verr.Errors), 5)
}

func TestInputParser_BadRecordsLoadInLenientMode(t *testing.T) {
	logger := &warnLogger{}
	parser := NewInputParser()
	parser.Logger = logger

	book, err := parser.LoadFromFile(filepath.Join("testdata", "bad_records.yaml"))
	require.NoError(t, err, "record problems are reported per client by the engine")
	assert.Len(t, book.Clients, 3)

	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], `portfolio category "Crypto" is not listed in assets`)
}

func TestInputParser_ValidateBook(t *testing.T) {
	parser := NewInputParser()
	book, err := parser.LoadFromFile(filepath.Join("testdata", "bad_records.yaml"))
	require.NoError(t, err)

	err = parser.ValidateBook(book)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidRecord))
	assert.True(t, errors.Is(err, domain.ErrMalformedCategoryMap))
	assert.False(t, errors.Is(err, domain.ErrPortfolioMismatch), "subset only checked in strict mode")

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Errors, 2)
	assert.Contains(t, verr.Errors[0].Error(), "client 0: client Zero Income: income must be positive")

	parser.Strict = true
	err = parser.ValidateBook(book)
	assert.True(t, errors.Is(err, domain.ErrPortfolioMismatch))
}

func TestInputParser_StrictRejectsBadRecords(t *testing.T) {
	parser := NewInputParser()
	parser.Strict = true

	_, err := parser.LoadFromFile(filepath.Join("testdata", "bad_records.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPortfolioMismatch)

	_, err = parser.LoadFromFile(filepath.Join("testdata", "clients.yaml"))
	assert.NoError(t, err, "the sample clients satisfy strict mode")
}

func TestNormalize_FillsPolicy(t *testing.T) {
	book := &domain.ClientBook{
		Policy:  &domain.ScoringPolicy{HighDebtThreshold: decimal.NewFromFloat(0.5)},
		Clients: []domain.ClientRecord{{Name: "  Padded  ", Currency: "eur"}},
	}

	Normalize(book)

	assert.Equal(t, domain.DefaultCurrency, book.Currency)
	assert.Equal(t, "Padded", book.Clients[0].Name)
	assert.Equal(t, "EUR", book.Clients[0].Currency)
	assert.True(t, book.Policy.EmergencyTargetMonths.Equal(decimal.NewFromInt(6)))
	assert.True(t, book.Policy.HighDebtThreshold.Equal(decimal.NewFromFloat(0.5)))
}

func TestInputParser_ZeroThresholdMeansDefault(t *testing.T) {
	data := []byte(`
policy:
  high_debt_threshold: 0
clients:
  - name: Zero Policy
    income: 100
    expenses: 50
`)
	book, err := NewInputParser().Parse(data, "yaml")
	require.NoError(t, err)
	require.NotNil(t, book.Policy)
	assert.True(t, book.Policy.HighDebtThreshold.Equal(decimal.NewFromFloat(0.4)))

	data = []byte(`
policy:
  high_debt_threshold: -0.1
clients:
  - name: Negative Policy
    income: 100
    expenses: 50
`)
	_, err = NewInputParser().Parse(data, "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "high debt threshold must be positive")
}

func TestInputParser_DuplicateRuleIDs(t *testing.T) {
	data := []byte(`
clients:
  - name: Rule Owner
    income: 100
    expenses: 50
rules:
  - id: low-cash
    expression: "metrics.emergency_months < 1.0"
  - id: low-cash
    expression: "metrics.emergency_months < 2.0"
  - id: off-and-broken
    disabled: true
    expression: "metrics +"
`)
	_, err := NewInputParser().Parse(data, "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate rule id "low-cash"`)
	assert.NotContains(t, err.Error(), "off-and-broken", "disabled rules are not compiled")
}

func TestStaticSource(t *testing.T) {
	source := NewSampleSource()

	book, err := source.Clients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"John Doe", "Anita Sharma"}, book.Names())

	book.Clients[0].Assets.Set("Cash", decimal.NewFromInt(1))
	again, err := source.Clients(context.Background())
	require.NoError(t, err)
	cash, _ := again.Clients[0].Assets.Get("Cash")
	assert.True(t, cash.Equal(decimal.NewFromInt(200000)), "source hands out copies")

	_, err = StaticSource{}.Clients(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = source.Clients(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSourceFor(t *testing.T) {
	assert.IsType(t, StaticSource{}, SourceFor("", nil))

	source := SourceFor(filepath.Join("testdata", "clients.json"), NewInputParser())
	require.IsType(t, FileSource{}, source)
	book, err := source.Clients(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Maria Lopez"}, book.Names())

	book, err = FileSource{Path: filepath.Join("testdata", "clients.yaml")}.Clients(context.Background())
	require.NoError(t, err)
	assert.Len(t, book.Clients, 2)
}
