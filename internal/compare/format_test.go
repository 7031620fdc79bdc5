package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/shopspring/decimal"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseName: "John Doe",
		Source:   "/path/to/clients.yaml",
		BaseResult: &ComparisonResult{
			Name:            "John Doe",
			Kind:            KindBase,
			NetWorth:        decimal.NewFromInt(1500000),
			SavingsRate:     decimal.RequireFromString("0.3333"),
			DebtRatio:       decimal.RequireFromString("0.8333"),
			EmergencyMonths: decimal.NewFromFloat(1.5),
			Scores:          domain.ScoreCard{Investment: 58, Debt: 16, Budgeting: 33, EmergencyFund: 25},
			AdvisoryCount:   2,
		},
		AlternativeResults: []ComparisonResult{
			{
				Name:            "John Doe_repay_smallest_loan",
				Kind:            KindWhatIf,
				Description:     "Repay the smallest liability from cash",
				NetWorth:        decimal.NewFromInt(1500000),
				SavingsRate:     decimal.RequireFromString("0.3333"),
				DebtRatio:       decimal.RequireFromString("0.6667"),
				EmergencyMonths: decimal.NewFromFloat(1.5),
				Scores:          domain.ScoreCard{Investment: 58, Debt: 33, Budgeting: 33, EmergencyFund: 25},
				AdvisoryCount:   2,
				ScoreDiff:       domain.ScoreCard{Debt: 17},
			},
			{
				Name:  "Broken Client",
				Kind:  KindClient,
				Error: "client Broken Client: income must be positive (got 0)",
			},
		},
		Recommendations: []string{
			"Best Debt Score: John Doe_repay_smallest_loan raises it from 16 to 33 (+17)",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}
	result := formatter.Format(sampleSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	expected := []string{
		"FINANCIAL HEALTH COMPARISON",
		"Base Client: John Doe",
		"Client Book: /path/to/clients.yaml",
		"John Doe (base)",
		"1.50M",
		"COMPARISON TO BASE",
		"Repay the smallest liability from cash",
		"Debt Score:       +17 (16 -> 33)",
		"N/A: client Broken Client: income must be positive (got 0)",
		"RECOMMENDATIONS",
		"• Best Debt Score",
	}
	for _, want := range expected {
		if !contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}

	if contains(result, "Investment Score:") {
		t.Error("Unchanged scores should not be listed in the comparison section")
	}
}

func TestTableFormatter_NoSource(t *testing.T) {
	compSet := sampleSet()
	compSet.Source = ""
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := (&TableFormatter{}).Format(compSet)

	if contains(result, "Client Book:") {
		t.Error("Did not expect a client book line without a source")
	}
	if contains(result, "COMPARISON TO BASE") || contains(result, "RECOMMENDATIONS") {
		t.Error("Did not expect comparison sections without alternatives")
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	result := (&TableFormatter{}).FormatCompact(sampleSet())

	if result != "Base: John Doe | John Doe_repay_smallest_loan: +17 pts | Broken Client: N/A" {
		t.Errorf("Unexpected compact output: %s", result)
	}
}

func TestTableFormatter_FormatDecimal(t *testing.T) {
	tf := &TableFormatter{}

	tests := []struct {
		input    decimal.Decimal
		expected string
	}{
		{decimal.NewFromInt(2500000), "2.50M"},
		{decimal.NewFromInt(-170000), "-170.0K"},
		{decimal.NewFromInt(1000), "1.0K"},
		{decimal.NewFromInt(999), "999"},
		{decimal.Zero, "0"},
	}

	for _, tt := range tests {
		if got := tf.formatDecimal(tt.input); got != tt.expected {
			t.Errorf("formatDecimal(%s) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}

	if got := tf.truncate("short", 10); got != "short" {
		t.Errorf("Expected short string unchanged, got %s", got)
	}
	if got := tf.truncate("a very long client name indeed", 10); got != "a very ..." {
		t.Errorf("Expected truncated string, got %s", got)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	result, err := (&CSVFormatter{}).Format(sampleSet())
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(records))
	}
	for i, rec := range records {
		if len(rec) != 17 {
			t.Errorf("Row %d: expected 17 columns, got %d", i, len(rec))
		}
	}

	base := records[1]
	if base[0] != "John Doe" || base[1] != KindBase {
		t.Errorf("Unexpected base row: %v", base)
	}
	if base[2] != "1500000.00" || base[6] != "58" || base[10] != "2" {
		t.Errorf("Unexpected base metrics: %v", base)
	}

	if records[2][13] != "17" {
		t.Errorf("Expected debt diff 17, got %s", records[2][13])
	}

	broken := records[3]
	if broken[2] != "" || broken[16] == "" {
		t.Errorf("Expected failed row to carry only its error, got %v", broken)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := sampleSet()
	compSet.AlternativeResults[0].Name = "Tom & Jerry"

	compact, err := (&JSONFormatter{}).Format(compSet)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	if contains(compact, "\n  ") {
		t.Error("Expected compact JSON without indentation")
	}
	if !contains(compact, `"Tom & Jerry"`) {
		t.Error("Expected client names without HTML escaping")
	}

	pretty, err := (&JSONFormatter{Pretty: true}).Format(compSet)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(pretty), &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if decoded["baseName"] != "John Doe" {
		t.Errorf("Expected baseName John Doe, got %v", decoded["baseName"])
	}
	alts, ok := decoded["alternativeResults"].([]interface{})
	if !ok || len(alts) != 2 {
		t.Fatalf("Expected 2 alternative results, got %v", decoded["alternativeResults"])
	}
	if _, ok := alts[0].(map[string]interface{})["Report"]; ok {
		t.Error("Report should not be serialized")
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
