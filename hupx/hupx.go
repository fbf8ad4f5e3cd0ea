// Package hupx fetches day-ahead hourly prices from the HUPX weekly
// market-data page. The page carries one HTML table with an "Hours"
// column (rows 1..24 plus Base/Peak aggregate rows) and one column per
// delivery day, headed like "Fri 21/02". Prices are EUR/MWh.
package hupx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/angas/solarvalue-go/hours"
	"github.com/angas/solarvalue-go/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

type Hupx struct {
	url string
}

func New(url string) Hupx {
	return Hupx{url: url}
}

func (h Hupx) GetDayAheadPrices(ctx context.Context) ([]types.PricePoint, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", h.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	year := hours.LocationBudapest(time.Now()).Year()
	return ParseWeeklyTable(resp.Body, year)
}

var dayMonthRe = regexp.MustCompile(`(\d{2})/(\d{2})`)

// ParseWeeklyTable extracts price points from the weekly page. The table
// headers carry only day and month; the given year is assumed for all
// columns, matching how the page always shows the running week.
func ParseWeeklyTable(r io.Reader, year int) ([]types.PricePoint, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price page: %w", err)
	}

	table := findHourlyTable(doc)
	if table == nil {
		return nil, fmt.Errorf("hourly prices table not found")
	}

	var header []string
	var prices []types.PricePoint
	for _, row := range tableRows(table) {
		cells := rowCells(row)
		if len(cells) < 2 {
			continue
		}

		if header == nil {
			header = cells
			continue
		}

		// Rows are labelled with the plain hour number; aggregate rows
		// (Base, Peak) don't parse and are skipped.
		hour := hours.LabelKey("H" + cells[0])
		if hour == 0 {
			continue
		}

		for i := 1; i < len(cells) && i < len(header); i++ {
			date, ok := headerDate(header[i], year)
			if !ok {
				continue
			}
			price, err := parsePrice(cells[i])
			if err != nil {
				continue
			}
			prices = append(prices, types.PricePoint{
				Hour:  hours.DateHour{Date: date, Hour: hour},
				Price: price,
			})
		}
	}

	if len(prices) == 0 {
		return nil, fmt.Errorf("no prices found in hourly table")
	}

	return prices, nil
}

// headerDate resolves a column header like "Fri 21/02" to YYYY-MM-DD.
func headerDate(header string, year int) (string, bool) {
	m := dayMonthRe.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

func parsePrice(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	return strconv.ParseFloat(s, 64)
}

// findHourlyTable returns the first table whose first row mentions
// the Hours column.
func findHourlyTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		rows := tableRows(n)
		if len(rows) > 0 {
			for _, cell := range rowCells(rows[0]) {
				if strings.EqualFold(cell, "Hours") {
					return n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if table := findHourlyTable(c); table != nil {
			return table
		}
	}
	return nil
}

func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			rows = append(rows, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(table)
	return rows
}

func rowCells(row *html.Node) []string {
	var cells []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
