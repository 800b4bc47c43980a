package saplist

import "strings"

// listDoc renders a list export: two metadata tables followed by the given
// data tables. Each data table is a slice of tbody markup.
func listDoc(tables ...[]string) string {
	var b strings.Builder
	b.WriteString(`<html><head><meta http-equiv="content-type" content="text/html; charset=utf-8"></head><body>`)
	b.WriteString(`<table class="list"><tbody><tr><td><nobr>Report ZI73</nobr></td></tr></tbody></table>`)
	b.WriteString(`<table class="list"><tbody><tr><td><nobr>Run 06.06.2020 02:00</nobr></td></tr></tbody></table>`)
	for _, bodies := range tables {
		b.WriteString(`<table class="list">`)
		for _, body := range bodies {
			b.WriteString(body)
		}
		b.WriteString(`</table>`)
	}
	b.WriteString(`</body></html>`)
	return b.String()
}

func tbody(rows ...string) string {
	return "<tbody>" + strings.Join(rows, "") + "</tbody>"
}

// headerRow renders header cells, one label each.
func headerRow(names ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, n := range names {
		b.WriteString("<td><nobr>" + n + "</nobr></td>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// dataRow renders a data row. The leading cell carries two icon labels
// before its value, like the real export.
func dataRow(values ...string) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for i, v := range values {
		if i == 0 {
			b.WriteString(`<td><nobr><img src="s_s_ledg.gif"></nobr><nobr>&nbsp;</nobr><nobr>` + v + "</nobr></td>")
			continue
		}
		b.WriteString("<td><nobr>" + v + "</nobr></td>")
	}
	b.WriteString("</tr>")
	return b.String()
}
