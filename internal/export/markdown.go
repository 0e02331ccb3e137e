package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pitchlens/pitchlens/internal/model"
)

// WriteMarkdown writes the human-readable report as report.md
func (e *Exporter) WriteMarkdown(report *model.Report) error {
	path := filepath.Join(e.dir, "report.md")
	if err := os.WriteFile(path, []byte(e.RenderMarkdown(report)), 0o644); err != nil {
		return fmt.Errorf("writing report.md: %w", err)
	}
	e.logf("✓ wrote report.md")
	return nil
}

// RenderMarkdown renders the report as Markdown. Sections the run did
// not compute are omitted.
func (e *Exporter) RenderMarkdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# PitchBook Dataset Analysis\n\n")
	fmt.Fprintf(&b, "- **Data directory**: %s\n", report.DataDir)
	fmt.Fprintf(&b, "- **Generated**: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	renderLoad(&b, report.Load)
	if report.Overview != nil {
		renderOverview(&b, report.Overview)
	}
	if report.Network != nil {
		renderNetwork(&b, report.Network)
	}
	if report.International != nil {
		renderInternational(&b, report.International)
	}
	if report.Positions != nil {
		renderPositions(&b, report.Positions)
	}
	if report.SecondLevel != nil {
		renderSecondLevel(&b, report.SecondLevel)
	}
	if len(report.Summary) > 0 {
		fmt.Fprintf(&b, "## Company Summary\n\n")
		fmt.Fprintf(&b, "%d companies; full table in company_summary_table.csv\n\n", len(report.Summary))
	}
	if report.LLM != nil && report.LLM.Enabled && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "## Narrative Summary (%s)\n\n", report.LLM.Provider)
		b.WriteString(report.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if e.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by pitchlens. Every figure above is computed directly from the source CSV files.\n")
	}

	return b.String()
}

func renderLoad(b *strings.Builder, load model.LoadReport) {
	fmt.Fprintf(b, "## Data Load\n\n")
	fmt.Fprintf(b, "- Loaded: %d files (%d rows)\n", len(load.Loaded), load.TotalRows)
	if len(load.Skipped) > 0 {
		fmt.Fprintf(b, "- Skipped (over size limit): %d\n", len(load.Skipped))
		for _, s := range load.Skipped {
			fmt.Fprintf(b, "  - %s (%d bytes)\n", s.File, s.Bytes)
		}
	}
	if len(load.Missing) > 0 {
		fmt.Fprintf(b, "- Missing: %s\n", strings.Join(load.Missing, ", "))
	}
	b.WriteString("\n")
}

func renderCounts(b *strings.Builder, title string, items []model.CountItem, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s: %d\n", item.Key, item.Count)
	}
	b.WriteString("\n")
}

func renderRanked(b *strings.Builder, title string, items []model.RankedEntity) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**\n\n", title)
	for i, item := range items {
		name := item.Name
		if name == "" {
			name = item.ID
		}
		fmt.Fprintf(b, "%d. %s: %d\n", i+1, name, item.Count)
	}
	b.WriteString("\n")
}

func renderOverview(b *strings.Builder, o *model.OverviewReport) {
	fmt.Fprintf(b, "## Overview\n\n")
	fmt.Fprintf(b, "| Table | Rows | Columns |\n|---|---|---|\n")
	for _, t := range o.Tables {
		fmt.Fprintf(b, "| %s | %d | %d |\n", t.Name, t.Rows, t.Columns)
	}
	b.WriteString("\n")

	if ci := o.CompanyInvestor; ci != nil {
		fmt.Fprintf(b, "### Company-Investor Relationships\n\n")
		fmt.Fprintf(b, "Total relationships: %d\n\n", ci.Total)
		renderCounts(b, "Investor status", ci.StatusDist, 0)
		renderCounts(b, "Holding", ci.HoldingDist, 0)
		renderRanked(b, "Top investors by companies", ci.TopInvestors)
		renderRanked(b, "Top companies by investors", ci.TopCompanies)
	}
	if d := o.Deals; d != nil {
		fmt.Fprintf(b, "### Deals\n\n")
		fmt.Fprintf(b, "Total deals: %d\n\n", d.Total)
		renderRanked(b, "Most active companies", d.TopCompaniesByDeals)
		renderRanked(b, "Most active deal investors", d.TopInvestorsByDeals)
	}
	if c := o.Companies; c != nil {
		fmt.Fprintf(b, "### Companies\n\n")
		fmt.Fprintf(b, "Total companies: %d\n\n", c.Total)
		renderCounts(b, "Financing status", c.FinancingDist, 0)
		if c.Employees != nil {
			fmt.Fprintf(b, "**Employees** (n=%d): mean %.1f, median %.1f, range %.0f-%.0f\n\n",
				c.Employees.Count, c.Employees.Mean, c.Employees.Median, c.Employees.Min, c.Employees.Max)
		}
	}
	if inv := o.Investors; inv != nil {
		fmt.Fprintf(b, "### Investors\n\n")
		fmt.Fprintf(b, "Total investors: %d\n\n", inv.Total)
		renderCounts(b, "Top locations", inv.TopLocations, 0)
	}
	if len(o.NameOverlap) > 0 {
		fmt.Fprintf(b, "### Company/Investor Name Overlap\n\n")
		for _, name := range o.NameOverlap {
			fmt.Fprintf(b, "- %s\n", name)
		}
		b.WriteString("\n")
	}
	renderRanked(b, "Most frequent co-investors", o.CoInvestors)
}

func renderNetwork(b *strings.Builder, n *model.NetworkReport) {
	fmt.Fprintf(b, "## Investment Network\n\n")
	fmt.Fprintf(b, "- Unique companies: %d\n", n.UniqueCompanies)
	fmt.Fprintf(b, "- Unique investors: %d\n", n.UniqueInvestors)
	fmt.Fprintf(b, "- Relationships: %d\n", n.Relationships)
	fmt.Fprintf(b, "- Avg investors per company: %.2f\n", n.AvgPerCompany)
	fmt.Fprintf(b, "- Avg companies per investor: %.2f\n", n.AvgPerInvestor)
	fmt.Fprintf(b, "- Network density: %.4f\n\n", n.Density)

	if len(n.StatusShares) > 0 {
		fmt.Fprintf(b, "**Status**\n\n")
		for _, s := range n.StatusShares {
			fmt.Fprintf(b, "- %s: %d (%.1f%%)\n", s.Key, s.Count, s.Percent)
		}
		b.WriteString("\n")
	}
	renderCounts(b, "Investments by year", n.ByYear, 0)
}

func renderInternational(b *strings.Builder, intl *model.InternationalReport) {
	fmt.Fprintf(b, "## International Entities\n\n")
	fmt.Fprintf(b, "| Entity type | Total | International | Null country |\n|---|---|---|---|\n")
	for _, bucket := range intl.Entities {
		fmt.Fprintf(b, "| %s | %d | %d | %d |\n", bucket.EntityType, bucket.Total, bucket.International, bucket.NullCountry)
	}
	b.WriteString("\n")

	fmt.Fprintf(b, "**Connections to companies**\n\n")
	fmt.Fprintf(b, "- Investor: %d\n", intl.Breakdown.Investor)
	fmt.Fprintf(b, "- Service provider: %d\n", intl.Breakdown.ServiceProvider)
	fmt.Fprintf(b, "- Limited partner: %d\n", intl.Breakdown.LimitedPartner)
	fmt.Fprintf(b, "- Person: %d\n", intl.Breakdown.Person)
	fmt.Fprintf(b, "- Total: %d\n\n", intl.Breakdown.Total)
}

func renderPositions(b *strings.Builder, p *model.PositionReport) {
	fmt.Fprintf(b, "## Positions and Board Seats\n\n")
	fmt.Fprintf(b, "- Positions at dataset companies: %d (%d unique people)\n", p.PositionsAtCompanies, p.UniquePositionPersons)
	fmt.Fprintf(b, "- Board members at dataset companies: %d unique people\n", p.UniqueBoardPersons)
	fmt.Fprintf(b, "- Employee board members: %d\n", p.EmployeeBoardMembers)
	fmt.Fprintf(b, "- Employees only: %d\n", p.OnlyEmployees)
	fmt.Fprintf(b, "- Board only: %d\n\n", p.OnlyBoardMembers)
	renderCounts(b, "Positions by entity type", p.EntityTypeDist, 0)
	renderRanked(b, "Most positions held", p.TopByPositions)
}

func renderSecondLevel(b *strings.Builder, s *model.SecondLevelReport) {
	fmt.Fprintf(b, "## Second-Level Relationships\n\n")
	fmt.Fprintf(b, "- Intermediaries: %d investors, %d service providers, %d lead partners, %d affiliates (%d distinct)\n",
		s.Intermediaries.Investors, s.Intermediaries.ServiceProviders,
		s.Intermediaries.LeadPartners, s.Intermediaries.Affiliates, s.Intermediaries.Total)
	fmt.Fprintf(b, "- Positions at intermediaries: %d\n", s.Positions)
	fmt.Fprintf(b, "- Unique second-level people: %d\n", s.UniquePeople)
	fmt.Fprintf(b, "- International positions: %d (%d unique people)\n\n", s.InternationalPositions, s.InternationalPeople)

	if len(s.ByRelation) > 0 {
		fmt.Fprintf(b, "| Relation | Positions | Unique people |\n|---|---|---|\n")
		for _, r := range s.ByRelation {
			fmt.Fprintf(b, "| %s | %d | %d |\n", r.Relation, r.Positions, r.UniquePeople)
		}
		b.WriteString("\n")
	}
	renderCounts(b, "Positions by entity type", s.ByEntityType, 0)
}
