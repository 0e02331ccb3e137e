package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/pitchlens/pitchlens/internal/model"
)

const (
	chartWidth  = 1200
	chartHeight = 800
)

// bar is one labelled value on a bar chart
type bar struct {
	label string
	value int
}

// WriteCharts renders the PNG bar charts under plots/. Charts with no
// non-zero data are skipped rather than drawn empty.
func (e *Exporter) WriteCharts(report *model.Report) error {
	if err := os.MkdirAll(e.plotsDir, 0o755); err != nil {
		return fmt.Errorf("creating plots directory: %w", err)
	}

	if o := report.Overview; o != nil {
		if ci := o.CompanyInvestor; ci != nil {
			if err := e.rankedChart("top_investors.png", "Top Investors by Number of Companies", ci.TopInvestors); err != nil {
				return err
			}
			if err := e.rankedChart("top_companies.png", "Top Companies by Number of Investors", ci.TopCompanies); err != nil {
				return err
			}
		}
		if c := o.Companies; c != nil {
			if err := e.countChart("financing_status.png", "Company Financing Status", c.FinancingDist); err != nil {
				return err
			}
			if err := e.rankedChart("employee_distribution.png", "Largest Companies by Employees", c.TopByEmployees); err != nil {
				return err
			}
		}
		if inv := o.Investors; inv != nil {
			if err := e.countChart("investor_locations.png", "Top Investor Locations", inv.TopLocations); err != nil {
				return err
			}
		}
	}

	if len(report.Summary) > 0 {
		entities := make([]bar, 0, len(report.Summary))
		patents := make([]bar, 0, len(report.Summary))
		for _, row := range report.Summary {
			total := row.IntlInvestors + row.IntlServiceProviders + row.IntlLeadPartners + row.IntlAffiliates
			entities = append(entities, bar{row.CompanyName, total})
			patents = append(patents, bar{row.CompanyName, row.Patents})
		}
		if err := e.barChart("international_entities_by_company.png", "International Entities by Company", entities); err != nil {
			return err
		}
		if err := e.barChart("patents_by_company.png", "Patents by Company", patents); err != nil {
			return err
		}

		people := make([]bar, 0)
		for _, item := range internationalPeopleByCompany(report.Summary, report.International) {
			people = append(people, bar{item.Name, item.Count})
		}
		if err := e.barChart("international_people_by_company.png", "International People by Company", people); err != nil {
			return err
		}
	}

	if p := report.Positions; p != nil {
		seats := make([]bar, 0, len(p.TopBoardSeats))
		for _, item := range p.TopBoardSeats {
			if item.Count < 2 {
				continue
			}
			label := item.Name
			if label == "" {
				label = item.ID
			}
			seats = append(seats, bar{label, item.Count})
		}
		if err := e.barChart("board_members_multiple_positions.png", "Board Members with Multiple Positions", seats); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) rankedChart(name, title string, items []model.RankedEntity) error {
	bars := make([]bar, 0, len(items))
	for _, item := range items {
		label := item.Name
		if label == "" {
			label = item.ID
		}
		bars = append(bars, bar{label, item.Count})
	}
	return e.barChart(name, title, bars)
}

func (e *Exporter) countChart(name, title string, items []model.CountItem) error {
	bars := make([]bar, 0, len(items))
	for _, item := range items {
		bars = append(bars, bar{item.Key, item.Count})
	}
	return e.barChart(name, title, bars)
}

// shortLabel truncates by rune so multi-byte names are never cut
// mid-character
func shortLabel(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// barChart draws descending bars with value labels and writes the PNG
func (e *Exporter) barChart(name, title string, bars []bar) error {
	kept := make([]bar, 0, len(bars))
	for _, b := range bars {
		if b.value > 0 {
			kept = append(kept, b)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].value > kept[j].value })
	if e.chartTopN > 0 && len(kept) > e.chartTopN {
		kept = kept[:e.chartTopN]
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, chartWidth/2, 30, 0.5, 0.5)

	const (
		marginLeft   = 80.0
		marginRight  = 40.0
		marginTop    = 60.0
		marginBottom = 160.0
	)
	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom

	maxVal := kept[0].value
	slot := plotW / float64(len(kept))
	barW := slot * 0.7

	// Axes
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(1)
	dc.DrawLine(marginLeft, marginTop, marginLeft, marginTop+plotH)
	dc.DrawLine(marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH)
	dc.Stroke()

	for i, b := range kept {
		h := float64(b.value) / float64(maxVal) * (plotH - 20)
		x := marginLeft + float64(i)*slot + (slot-barW)/2
		y := marginTop + plotH - h

		dc.SetRGB(0.27, 0.47, 0.71)
		dc.DrawRectangle(x, y, barW, h)
		dc.Fill()

		dc.SetRGB(0.1, 0.1, 0.1)
		dc.DrawStringAnchored(strconv.Itoa(b.value), x+barW/2, y-10, 0.5, 0.5)

		label := shortLabel(b.label, 24)
		lx := x + barW/2
		ly := marginTop + plotH + 12
		dc.Push()
		dc.RotateAbout(gg.Radians(-45), lx, ly)
		dc.DrawStringAnchored(label, lx, ly, 1, 0.5)
		dc.Pop()
	}

	path := filepath.Join(e.plotsDir, name)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	e.logf("✓ wrote plots/%s (%d bars)", name, len(kept))
	return nil
}
