package reports

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"front-auditor/internal/apperr"
	"front-auditor/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// OpenFileMarker identifies links to stored archives on the audit listing.
const OpenFileMarker = "p_OpenFile.aspx"

var archiveName = regexp.MustCompile(`CECJS[\w.\-]*?\.zip`)

// ArchiveNames returns every audit archive linked from the listing page in
// document order.
func ArchiveNames(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse audit listing: %w", err)
	}

	names := []string{}
	anchors := htmlutil.GetAnchors(doc.Find(fmt.Sprintf("a[href*='%s']", OpenFileMarker)))
	for _, a := range anchors {
		name := archiveName.FindString(a.Href)
		if name == "" {
			name = archiveName.FindString(a.Name)
		}
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// LatestArchiveName picks the archive to print from the audit listing. The
// portal lists archives oldest first and the final entry is the one still
// being generated, so the latest complete archive is the second to last.
func LatestArchiveName(page []byte) (string, error) {
	names, err := ArchiveNames(page)
	if err != nil {
		return "", apperr.New(apperr.KindReportNotFound, "audit listing", err)
	}
	if len(names) < 2 {
		return "", apperr.New(
			apperr.KindReportNotFound, "audit listing",
			fmt.Errorf("expected at least 2 archives, found %d: %s", len(names), strings.Join(names, ", ")),
		)
	}
	return names[len(names)-2], nil
}
