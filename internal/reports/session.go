package reports

import (
	"bytes"
	"fmt"
	"regexp"

	"front-auditor/internal/apperr"
	"front-auditor/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const reportSessionField = "ReportSession"

var reportSessionPattern = regexp.MustCompile(`ReportSession["']?\s*[=:]\s*["']?([A-Za-z0-9]+)`)

// ReportSessionID finds the id the report server assigned to a freshly
// generated report, either as a hidden input or inside the page's scripts
// and urls.
func ReportSessionID(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", apperr.New(apperr.KindReportNotFound, "report session", err)
	}
	value, ok := htmlutil.InputValue(doc, reportSessionField)
	if ok && value != "" {
		return value, nil
	}

	groups := reportSessionPattern.FindSubmatch(page)
	if len(groups) < 2 {
		return "", apperr.New(apperr.KindReportNotFound, "report session", fmt.Errorf("no %s in page", reportSessionField))
	}
	return string(groups[1]), nil
}
