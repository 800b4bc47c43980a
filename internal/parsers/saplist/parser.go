package saplist

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/sapbatch/internal/core/domain"
)

const (
	listTableSelector = "table.list"
	labelSelector     = "nobr"
)

// Layout describes one version of the list export.
type Layout struct {
	// SkipTables is the number of leading metadata tables.
	SkipTables int

	// FirstCellLabel is the label offset read for the leading cell of a
	// data row. All other cells read label 0.
	FirstCellLabel int
}

// V1 is the layout of the "01" exports: two metadata tables and the
// leading value at label offset 2.
var V1 = Layout{SkipTables: 2, FirstCellLabel: 2}

// Parse extracts the table from content using the V1 layout.
func Parse(content []byte) (*domain.Table, error) {
	return V1.Parse(content)
}

// Parse extracts the table from content. Any row whose cells do not line
// up with the header fails the whole parse; no partial table is returned.
func (l Layout) Parse(content []byte) (*domain.Table, error) {
	doc, err := load(content)
	if err != nil {
		return nil, err
	}

	lists := doc.Find(listTableSelector)
	if lists.Length() <= l.SkipTables {
		return nil, &domain.TableError{
			Table:  lists.Length(),
			Row:    -1,
			Cell:   -1,
			Reason: fmt.Sprintf("found %d list tables, need more than %d", lists.Length(), l.SkipTables),
		}
	}

	var table *domain.Table
	for ti := l.SkipTables; ti < lists.Length(); ti++ {
		bodies := lists.Eq(ti).Find("tbody")
		row := 0
		for bi := 0; bi < bodies.Length(); bi++ {
			body := bodies.Eq(bi)
			if bi == 0 {
				if ti == l.SkipTables {
					header, err := l.header(ti, body)
					if err != nil {
						return nil, err
					}
					table = domain.NewTable(header)
				}
				continue
			}
			if table == nil {
				return nil, &domain.TableError{Table: ti, Row: -1, Cell: -1, Reason: "data before header"}
			}

			rows := body.Find("tr")
			for ri := 0; ri < rows.Length(); ri++ {
				values, err := l.row(ti, row, rows.Eq(ri), len(table.Header))
				if err != nil {
					return nil, err
				}
				table.AppendRow(values)
				row++
			}
		}
	}

	if table == nil {
		return nil, &domain.TableError{Table: l.SkipTables, Row: -1, Cell: -1, Reason: "no header body"}
	}
	return table, nil
}

func (l Layout) header(ti int, body *goquery.Selection) ([]string, error) {
	first := body.Find("tr").First()
	cells := first.Find("td")
	if cells.Length() == 0 {
		return nil, &domain.TableError{Table: ti, Row: -1, Cell: -1, Reason: "no header cells"}
	}

	header := make([]string, 0, cells.Length())
	for ci := 0; ci < cells.Length(); ci++ {
		labels := cells.Eq(ci).Find(labelSelector)
		if labels.Length() == 0 {
			return nil, &domain.TableError{Table: ti, Row: -1, Cell: -1, Reason: fmt.Sprintf("header cell %d has no label", ci)}
		}
		header = append(header, clean(labels.First().Text()))
	}
	return header, nil
}

func (l Layout) row(ti, ri int, tr *goquery.Selection, width int) ([]string, error) {
	cells := tr.Find("td")
	if cells.Length() != width {
		return nil, &domain.TableError{
			Table:  ti,
			Row:    ri,
			Cell:   -1,
			Reason: fmt.Sprintf("%d cells for %d headers", cells.Length(), width),
		}
	}

	values := make([]string, width)
	for ci := 0; ci < width; ci++ {
		offset := 0
		if ci == 0 {
			offset = l.FirstCellLabel
		}
		labels := cells.Eq(ci).Find(labelSelector)
		if labels.Length() <= offset {
			return nil, &domain.TableError{
				Table:  ti,
				Row:    ri,
				Cell:   ci,
				Reason: fmt.Sprintf("%d labels, value expected at %d", labels.Length(), offset),
			}
		}
		values[ci] = clean(labels.Eq(offset).Text())
	}
	return values, nil
}

// load decodes content using its declared charset and builds the tree.
func load(content []byte) (*goquery.Document, error) {
	r, err := charset.NewReader(bytes.NewReader(content), "text/html")
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrMalformedSourceTable, err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrMalformedSourceTable, err)
	}
	return doc, nil
}

// clean trims the text and turns non-breaking spaces into plain spaces.
func clean(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\u00a0", " ")
}
