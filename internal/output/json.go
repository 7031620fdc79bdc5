package output

import (
	"encoding/json"

	"github.com/rgehrsitz/finhealth/internal/domain"
)

// JSONFormatter writes the reports as an indented JSON document
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	Name       string                 `json:"name"`
	Currency   string                 `json:"currency"`
	Metrics    *domain.DerivedMetrics `json:"metrics,omitempty"`
	Scores     *domain.ScoreCard      `json:"scores,omitempty"`
	Advisories []domain.Advisory      `json:"advisories"`
	Error      string                 `json:"error,omitempty"`
}

func (j JSONFormatter) Format(reports []domain.ClientReport) ([]byte, error) {
	doc := struct {
		Clients []jsonReport `json:"clients"`
	}{Clients: make([]jsonReport, 0, len(reports))}

	for _, r := range reports {
		jr := jsonReport{
			Name:       r.Client.Name,
			Currency:   r.Client.CurrencyCode(),
			Advisories: []domain.Advisory{},
		}
		if r.OK() {
			metrics, scores := r.Metrics, r.Scores
			jr.Metrics, jr.Scores = &metrics, &scores
			if r.Advisories != nil {
				jr.Advisories = r.Advisories
			}
		} else {
			jr.Error = r.ErrorText()
		}
		doc.Clients = append(doc.Clients, jr)
	}

	return json.MarshalIndent(doc, "", "  ")
}
