package report

import (
	"encoding/base64"
	"errors"
	"html/template"
	"strings"

	"financial-analyzer/models"
)

const dataURLPrefix = "data:file/txt;base64,"

// Download is a client-side download link for a report. Href embeds the
// whole file, so no server endpoint is involved.
type Download struct {
	Filename string       `json:"filename"`
	Href     template.URL `json:"href"`
}

func Filename(ticker string) string {
	return ticker + "_financial_report.txt"
}

func DownloadLink(r *models.Report) Download {
	return Download{
		Filename: Filename(r.Ticker),
		Href:     template.URL(dataURLPrefix + base64.StdEncoding.EncodeToString([]byte(r.Text))),
	}
}

// Decode returns the file content embedded in a download link.
func (d Download) Decode() ([]byte, error) {
	href := string(d.Href)
	if !strings.HasPrefix(href, dataURLPrefix) {
		return nil, errors.New("report: not a base64 text data link")
	}
	return base64.StdEncoding.DecodeString(strings.TrimPrefix(href, dataURLPrefix))
}
