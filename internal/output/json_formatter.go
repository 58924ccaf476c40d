package output

import (
	"encoding/json"

	"github.com/Lianag2018/calcauto-final-sub001/internal/domain"
)

// JSONFormatter serializes the quote report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.QuoteReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
