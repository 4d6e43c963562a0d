// Package export writes dashboard reports to XLSX workbooks.
package export

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/sales-dashboard/internal/analytics"
	"github.com/sells-group/sales-dashboard/internal/leaderboard"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
)

// Report is the exportable bundle of one dashboard computation.
type Report struct {
	GeneratedAt time.Time
	Metrics     snapshot.Metrics
	Leaderboard []leaderboard.Entry
	Renewals    []analytics.MonthBucket
}

// WriteReport writes the report as a three-sheet workbook.
func WriteReport(path string, rep Report) error {
	f := xlsx.NewFile()

	summary, err := f.AddSheet("Summary")
	if err != nil {
		return eris.Wrap(err, "export: add summary sheet")
	}
	addKV(summary, "Generated At", rep.GeneratedAt.Format(time.RFC3339))
	addKVFloat(summary, "Total Pipeline Value", rep.Metrics.TotalPipelineValue)
	addKVInt(summary, "Stalled Deals", rep.Metrics.StalledDeals)
	addKVInt(summary, "Execution Confidence", rep.Metrics.ExecutionConfidence)
	for _, stage := range analytics.SortedStages(rep.Metrics.Leakage) {
		addKVInt(summary, "Leakage: "+string(stage), rep.Metrics.Leakage[stage])
	}

	board, err := f.AddSheet("Leaderboard")
	if err != nil {
		return eris.Wrap(err, "export: add leaderboard sheet")
	}
	header := board.AddRow()
	for _, h := range []string{"Rank", "Name", "Revenue", "Win Rate", "Deals", "Score", "Badges"} {
		header.AddCell().Value = h
	}
	for i, e := range rep.Leaderboard {
		row := board.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().Value = e.Name
		row.AddCell().SetFloat(e.Revenue)
		row.AddCell().SetFloat(e.WinRate)
		row.AddCell().SetInt(e.DealCount)
		row.AddCell().SetFloat(e.Score)
		row.AddCell().Value = strings.Join(e.Badges, ", ")
	}

	renewals, err := f.AddSheet("Renewals")
	if err != nil {
		return eris.Wrap(err, "export: add renewals sheet")
	}
	header = renewals.AddRow()
	for _, h := range []string{"Month", "Contracts", "Total Value", "High Risk"} {
		header.AddCell().Value = h
	}
	for _, b := range rep.Renewals {
		row := renewals.AddRow()
		row.AddCell().Value = b.Month.Format("2006-01")
		row.AddCell().SetInt(b.Count)
		row.AddCell().SetFloat(b.TotalValue)
		row.AddCell().SetInt(b.HighRisk)
	}

	return eris.Wrapf(f.Save(path), "export: save %s", path)
}

func addKV(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().Value = value
}

func addKVFloat(sheet *xlsx.Sheet, key string, value float64) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().SetFloat(value)
}

func addKVInt(sheet *xlsx.Sheet, key string, value int) {
	row := sheet.AddRow()
	row.AddCell().Value = key
	row.AddCell().SetInt(value)
}
