package output

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// HTMLFormatter produces a self-contained HTML dashboard
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/dashboard.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"pct":    FormatPercentage,
	"months": FormatMonths,
	"score":  FormatScore,
	"barpct": func(score int) int { return ScoreBarLength(score, 100) },
	"lower":  func(s domain.Severity) string { return strings.ToLower(s.String()) },
}).Parse(htmlTemplateSource))

type htmlClient struct {
	domain.ClientReport
	Currency string
	Bars     []Bar
	Shares   []Slice
}

func (h HTMLFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	clients := make([]htmlClient, 0, len(reports))
	for _, r := range reports {
		clients = append(clients, htmlClient{
			ClientReport: r,
			Currency:     r.Client.CurrencyCode(),
			Bars:         AssetBars(r.Client.Assets, 100),
			Shares:       PortfolioShares(r.Client.Portfolio),
		})
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, struct{ Clients []htmlClient }{clients}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
