package stats

import (
	"sort"
	"strings"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// Overview computes the descriptive statistics section: per-table
// shapes, company-investor relationship distributions, top-N rankings,
// deal activity, and company/investor characteristics.
func (a *Analyzer) Overview(res *dataset.Result) *model.OverviewReport {
	out := &model.OverviewReport{}

	names := make([]string, 0, len(res.Tables))
	for name := range res.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := res.Tables[name]
		out.Tables = append(out.Tables, model.TableStats{
			Name:        name,
			Rows:        t.Len(),
			Columns:     len(t.Headers),
			ApproxBytes: t.ApproxBytes(),
		})
	}

	topN := a.cfg.Analysis.TopN
	out.CompanyInvestor = a.relationshipStats(res, topN)
	out.Deals = a.dealStats(res, topN)
	out.Companies = a.companyStats(res, topN)
	out.Investors = a.investorStats(res, topN)
	out.NameOverlap = nameOverlap(res.Table(model.TableCompany), res.Table(model.TableInvestor))
	out.CoInvestors = coInvestors(res.Table(model.TableInvestorCoInvestorRel), topN)
	return out
}

func (a *Analyzer) relationshipStats(res *dataset.Result, topN int) *model.RelationshipStats {
	rel := res.Table(model.TableCompanyInvestorRel)
	if rel == nil {
		return nil
	}
	out := &model.RelationshipStats{Total: rel.Len()}

	status := newCounter()
	holding := newCounter()
	byInvestor := newCounter() // Distinct companies per investor
	byCompany := newCounter()  // Distinct investors per company
	seenPair := make(map[string]struct{})
	for r := range rel.Rows {
		status.Add(rel.Value(r, model.ColInvestorStatus), "")
		holding.Add(rel.Value(r, model.ColHolding), "")

		inv := rel.Value(r, model.ColInvestorID)
		comp := rel.Value(r, model.ColCompanyID)
		if inv == "" || comp == "" {
			continue
		}
		pair := inv + "\x00" + comp
		if _, dup := seenPair[pair]; dup {
			continue
		}
		seenPair[pair] = struct{}{}
		byInvestor.Add(inv, rel.Value(r, model.ColInvestorNm))
		byCompany.Add(comp, rel.Value(r, model.ColCompanyName))
	}
	out.StatusDist = status.Items(0)
	out.HoldingDist = holding.Items(0)
	out.TopInvestors = byInvestor.Ranked(topN)
	out.TopCompanies = byCompany.Ranked(topN)
	return out
}

func (a *Analyzer) dealStats(res *dataset.Result, topN int) *model.DealStats {
	deals := res.Table(model.TableDeal)
	if deals == nil {
		return nil
	}
	out := &model.DealStats{Total: deals.Len()}

	byCompany := newCounter()
	for r := range deals.Rows {
		byCompany.Add(deals.Value(r, model.ColCompanyID), deals.Value(r, model.ColCompanyName))
	}
	out.TopCompaniesByDeals = byCompany.Ranked(topN)

	if di := res.Table(model.TableDealInvestorRel); di != nil {
		out.DealInvestorTotal = di.Len()
		byInvestor := newCounter()
		for r := range di.Rows {
			byInvestor.Add(di.Value(r, model.ColInvestorID), di.Value(r, model.ColInvestorNm))
		}
		out.TopInvestorsByDeals = byInvestor.Ranked(topN)
	}
	return out
}

func (a *Analyzer) companyStats(res *dataset.Result, topN int) *model.CompanyStats {
	companies := res.Table(model.TableCompany)
	if companies == nil {
		return nil
	}
	out := &model.CompanyStats{Total: companies.Len()}
	out.FinancingDist = distribution(companies, model.ColFinancingStatus, 0)
	out.OwnershipDist = distribution(companies, model.ColOwnershipStatus, 0)
	out.UniverseDist = distribution(companies, model.ColUniverse, 0)

	if companies.HasColumn(model.ColEmployees) {
		var values []float64
		byEmployees := newCounter()
		for r := range companies.Rows {
			v, ok := companies.Float(r, model.ColEmployees)
			if !ok {
				continue
			}
			values = append(values, v)
			byEmployees.Set(companies.Value(r, model.ColCompanyID), companies.Value(r, model.ColCompanyName), int(v))
		}
		out.Employees = summarize(values)
		out.TopByEmployees = byEmployees.Ranked(topN)
	}
	return out
}

func (a *Analyzer) investorStats(res *dataset.Result, topN int) *model.InvestorStats {
	investors := res.Table(model.TableInvestor)
	if investors == nil {
		return nil
	}
	return &model.InvestorStats{
		Total:        investors.Len(),
		TopLocations: distribution(investors, model.ColHQLocation, topN),
		Countries:    distribution(investors, model.ColHQCountry, 0),
	}
}

// distribution counts a column's non-null values, sorted descending
func distribution(t *dataset.Table, column string, limit int) []model.CountItem {
	if t == nil || !t.HasColumn(column) {
		return nil
	}
	c := newCounter()
	for r := range t.Rows {
		c.Add(strings.TrimSpace(t.Value(r, column)), "")
	}
	return c.Items(limit)
}

// summarize computes descriptive statistics over the given values
func summarize(values []float64) *model.NumericSummary {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range sorted {
		sum += v
	}
	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return &model.NumericSummary{
		Count:  len(sorted),
		Mean:   sum / float64(len(sorted)),
		Median: median,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// nameOverlap returns company names that also appear as investor
// names, compared case-insensitively, sorted alphabetically
func nameOverlap(companies, investors *dataset.Table) []string {
	if companies == nil || investors == nil {
		return nil
	}
	investorNames := make(map[string]struct{})
	for r := range investors.Rows {
		name := strings.TrimSpace(investors.Value(r, model.ColInvestorNm))
		if name != "" {
			investorNames[strings.ToLower(name)] = struct{}{}
		}
	}
	seen := make(map[string]struct{})
	var overlap []string
	for r := range companies.Rows {
		name := strings.TrimSpace(companies.Value(r, model.ColCompanyName))
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := investorNames[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		overlap = append(overlap, name)
	}
	sort.Strings(overlap)
	return overlap
}

// coInvestors ranks co-investors by how often they appear alongside
// the dataset's investors
func coInvestors(rel *dataset.Table, topN int) []model.RankedEntity {
	if rel == nil {
		return nil
	}
	c := newCounter()
	for r := range rel.Rows {
		name := strings.TrimSpace(rel.Value(r, model.ColCoInvestorName))
		c.Add(name, name)
	}
	return c.Ranked(topN)
}
