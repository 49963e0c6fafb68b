package main

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// maxCellWidth bounds wide columns such as output paths.
const maxCellWidth = 60

// column describes one table column. Counts align right; wide columns wrap
// at maxCellWidth.
type column struct {
	title string
	count bool
	wide  bool
}

type tableView struct {
	tw    table.Writer
	width int
}

func newTableView(columns ...column) *tableView {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault

	header := make(table.Row, len(columns))
	configs := make([]table.ColumnConfig, len(columns))
	for i, col := range columns {
		header[i] = col.title
		cfg := table.ColumnConfig{Number: i + 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft}
		if col.count {
			cfg.Align = text.AlignRight
			cfg.AlignFooter = text.AlignRight
		}
		if col.wide {
			cfg.WidthMax = maxCellWidth
			cfg.WidthMaxEnforcer = text.WrapSoft
		}
		configs[i] = cfg
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)
	return &tableView{tw: tw, width: len(columns)}
}

// row appends cells, padding short rows and dropping extra cells.
func (v *tableView) row(cells ...any) {
	v.tw.AppendRow(v.fit(cells))
}

func (v *tableView) footer(cells ...any) {
	v.tw.AppendFooter(v.fit(cells))
}

func (v *tableView) fit(cells []any) table.Row {
	r := make(table.Row, v.width)
	n := copy(r, cells)
	for i := n; i < v.width; i++ {
		r[i] = ""
	}
	return r
}

func (v *tableView) render() string {
	if v.width == 0 {
		return ""
	}
	return v.tw.Render()
}
