package pit

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"front-auditor/internal/apperr"
	"front-auditor/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	PageName       = "pit-result.html"
	StylesheetName = "style.css"
)

//go:embed assets
var assets embed.FS

var pageTemplate = template.Must(template.ParseFS(assets, "assets/pit-result.html.tmpl"))

// Reservation is one row of the in-house listing.
type Reservation struct {
	ID           string
	Guest        string
	Membership   string
	DateIn       string
	DateOut      string
	Nights       string
	Room         string
	Rate         string
	VariableRate bool
	Total        string
	Status       string
	Observations string
}

func (r Reservation) Paid() bool {
	return strings.EqualFold(r.Status, "PAID")
}

// listing column order
const (
	colID = iota
	colGuest
	colDateIn
	colDateOut
	colNights
	colRoom
	colRate
	colTotal
	colStatus
	colObservations
	columnCount
)

func cellText(s *goquery.Selection) string {
	clone := s.Clone()
	clone.Find(".badge").Remove()
	return htmlutil.CleanText(clone.Text())
}

// ParseListing reads reservations from every table row that has at least
// the expected number of cells. Header rows and short rows are skipped.
func ParseListing(page []byte) ([]Reservation, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse pit listing: %w", err)
	}

	reservations := []Reservation{}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() < columnCount {
			return
		}
		cell := func(i int) *goquery.Selection {
			return cells.Eq(i)
		}

		r := Reservation{
			ID:           cellText(cell(colID)),
			Guest:        cellText(cell(colGuest)),
			Membership:   htmlutil.CleanText(cell(colGuest).Find(".badge").Text()),
			DateIn:       cellText(cell(colDateIn)),
			DateOut:      cellText(cell(colDateOut)),
			Nights:       cellText(cell(colNights)),
			Room:         cellText(cell(colRoom)),
			Rate:         cellText(cell(colRate)),
			VariableRate: strings.Contains(strings.ToUpper(cell(colRate).Text()), "VARIABLE"),
			Total:        cellText(cell(colTotal)),
			Status:       htmlutil.CleanText(cell(colStatus).Text()),
			Observations: cellText(cell(colObservations)),
		}
		if r.ID == "" {
			return
		}
		reservations = append(reservations, r)
	})
	return reservations, nil
}

type pageData struct {
	GeneratedAt  time.Time
	Reservations []Reservation
	Pending      int
}

// WritePage renders the result page and its stylesheet into dir and returns
// the page path.
func WritePage(dir string, reservations []Reservation, generatedAt time.Time) (string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return "", apperr.New(apperr.KindDirectoryCreate, "pit page", err)
	}

	data := pageData{GeneratedAt: generatedAt, Reservations: reservations}
	for _, r := range reservations {
		if !r.Paid() {
			data.Pending++
		}
	}

	var page bytes.Buffer
	err = pageTemplate.Execute(&page, data)
	if err != nil {
		return "", fmt.Errorf("render pit page: %w", err)
	}
	pagePath := filepath.Join(dir, PageName)
	err = os.WriteFile(pagePath, page.Bytes(), 0644)
	if err != nil {
		return "", apperr.New(apperr.KindWrite, "pit page", err)
	}

	style, err := assets.ReadFile("assets/" + StylesheetName)
	if err != nil {
		return "", err
	}
	err = os.WriteFile(filepath.Join(dir, StylesheetName), style, 0644)
	if err != nil {
		return "", apperr.New(apperr.KindWrite, "pit stylesheet", err)
	}
	return pagePath, nil
}
