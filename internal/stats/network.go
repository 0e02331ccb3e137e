package stats

import (
	"sort"
	"strconv"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// Network computes company-investor network statistics: unique node
// counts, average degree, density, status/holding shares, and the
// investment timeline by InvestorSince year.
func (a *Analyzer) Network(res *dataset.Result) *model.NetworkReport {
	rel := res.Table(model.TableCompanyInvestorRel)
	if rel == nil {
		return nil
	}

	companies := rel.IDSet(model.ColCompanyID)
	investors := rel.IDSet(model.ColInvestorID)
	out := &model.NetworkReport{
		UniqueCompanies: len(companies),
		UniqueInvestors: len(investors),
		Relationships:   rel.Len(),
	}
	if len(companies) > 0 {
		out.AvgPerCompany = float64(rel.Len()) / float64(len(companies))
	}
	if len(investors) > 0 {
		out.AvgPerInvestor = float64(rel.Len()) / float64(len(investors))
	}
	// Density of the bipartite graph: edges over possible edges
	if possible := len(companies) * len(investors); possible > 0 {
		out.Density = float64(rel.Len()) / float64(possible)
	}

	status := newCounter()
	holding := newCounter()
	byYear := newCounter()
	for r := range rel.Rows {
		status.Add(rel.Value(r, model.ColInvestorStatus), "")
		holding.Add(rel.Value(r, model.ColHolding), "")
		if y, ok := parseYear(rel.Value(r, model.ColInvestorSince)); ok {
			byYear.Add(strconv.Itoa(y), "")
		}
	}
	out.StatusShares = status.Shares()
	out.HoldingShares = holding.Shares()

	// Timeline sorts chronologically, not by count
	years := byYear.Items(0)
	sort.Slice(years, func(i, j int) bool { return years[i].Key < years[j].Key })
	out.ByYear = years
	return out
}

// parseYear extracts a plausible four-digit year from a date value.
// Exports carry dates in several formats; scanning for the year avoids
// caring which one.
func parseYear(s string) (int, bool) {
	for i := 0; i < len(s); {
		if !isDigit(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j-i == 4 {
			y, err := strconv.Atoi(s[i:j])
			if err == nil && y >= 1900 && y <= 2100 {
				return y, true
			}
		}
		i = j
	}
	return 0, false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
