package stats

import (
	"testing"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

func testAnalyzer() *Analyzer {
	return NewAnalyzer(model.DefaultConfig())
}

func resultWith(tables ...*dataset.Table) *dataset.Result {
	res := &dataset.Result{Tables: make(map[string]*dataset.Table)}
	for _, t := range tables {
		res.Tables[t.Name] = t
	}
	return res
}

func TestCounterRankedMaxFirst(t *testing.T) {
	c := newCounter()
	for i := 0; i < 3; i++ {
		c.Add("a", "Alpha")
	}
	c.Add("b", "Beta")
	for i := 0; i < 5; i++ {
		c.Add("c", "Gamma")
	}

	ranked := c.Ranked(2)
	if len(ranked) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(ranked))
	}
	if ranked[0].ID != "c" || ranked[0].Count != 5 {
		t.Errorf("expected c/5 first, got %s/%d", ranked[0].ID, ranked[0].Count)
	}
	if ranked[0].Name != "Gamma" {
		t.Errorf("expected name Gamma, got %q", ranked[0].Name)
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Count > ranked[0].Count {
			t.Errorf("entry %d count %d exceeds first entry %d", i, ranked[i].Count, ranked[0].Count)
		}
	}
}

func TestCounterSharesSumToHundred(t *testing.T) {
	c := newCounter()
	c.Add("x", "")
	c.Add("x", "")
	c.Add("y", "")
	c.Add("z", "")

	total := 0.0
	for _, s := range c.Shares() {
		total += s.Percent
	}
	if total < 99.99 || total > 100.01 {
		t.Errorf("shares should sum to 100, got %f", total)
	}
}

func TestOverviewTopInvestorsCountDistinctCompanies(t *testing.T) {
	rel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "CompanyName", "InvestorID", "InvestorName", "InvestorStatus", "Holding"},
		[][]string{
			{"c1", "Acme", "i1", "First Fund", "Active", "Minority"},
			{"c1", "Acme", "i1", "First Fund", "Active", "Minority"}, // duplicate pair
			{"c2", "Globex", "i1", "First Fund", "Former", "Majority"},
			{"c2", "Globex", "i2", "Second Fund", "Active", "Minority"},
		})

	report := testAnalyzer().Overview(resultWith(rel))
	if report.CompanyInvestor == nil {
		t.Fatal("expected company-investor stats")
	}
	top := report.CompanyInvestor.TopInvestors
	if len(top) == 0 {
		t.Fatal("expected ranked investors")
	}
	if top[0].ID != "i1" || top[0].Count != 2 {
		t.Errorf("expected i1 with 2 distinct companies, got %s/%d", top[0].ID, top[0].Count)
	}
	if report.CompanyInvestor.Total != 4 {
		t.Errorf("expected 4 relationship rows, got %d", report.CompanyInvestor.Total)
	}
}

func TestOverviewNameOverlapCaseInsensitive(t *testing.T) {
	companies := dataset.NewTable(model.TableCompany,
		[]string{"CompanyID", "CompanyName"},
		[][]string{{"c1", "Acme Capital"}, {"c2", "Globex"}})
	investors := dataset.NewTable(model.TableInvestor,
		[]string{"InvestorID", "InvestorName"},
		[][]string{{"i1", "ACME CAPITAL"}, {"i2", "Initech Partners"}})

	report := testAnalyzer().Overview(resultWith(companies, investors))
	if len(report.NameOverlap) != 1 || report.NameOverlap[0] != "Acme Capital" {
		t.Errorf("expected single overlap Acme Capital, got %v", report.NameOverlap)
	}
}

func TestSummarizeMedianEvenCount(t *testing.T) {
	s := summarize([]float64{10, 20, 30, 40})
	if s.Median != 25 {
		t.Errorf("expected median 25, got %f", s.Median)
	}
	if s.Mean != 25 {
		t.Errorf("expected mean 25, got %f", s.Mean)
	}
	if s.Min != 10 || s.Max != 40 {
		t.Errorf("unexpected min/max: %f/%f", s.Min, s.Max)
	}
}

func TestNetworkDensity(t *testing.T) {
	rel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "InvestorID", "InvestorStatus", "Holding", "InvestorSince"},
		[][]string{
			{"c1", "i1", "Active", "Minority", "2015-06-01"},
			{"c1", "i2", "Active", "Minority", "2017-01-15"},
			{"c2", "i1", "Former", "Majority", "2015-11-30"},
		})

	report := testAnalyzer().Network(resultWith(rel))
	if report.UniqueCompanies != 2 || report.UniqueInvestors != 2 {
		t.Fatalf("unexpected node counts: %d companies, %d investors", report.UniqueCompanies, report.UniqueInvestors)
	}
	if report.Density != 0.75 {
		t.Errorf("expected density 0.75, got %f", report.Density)
	}
	if len(report.ByYear) != 2 {
		t.Fatalf("expected 2 years, got %v", report.ByYear)
	}
	if report.ByYear[0].Key != "2015" || report.ByYear[0].Count != 2 {
		t.Errorf("expected 2015 first with 2, got %s/%d", report.ByYear[0].Key, report.ByYear[0].Count)
	}
}

func TestParseYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"2015-06-01", 2015, true},
		{"01/02/1998", 1998, true},
		{"2021", 2021, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"123456", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseYear(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("parseYear(%q) = %d,%v want %d,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestInternationalBucketCounts(t *testing.T) {
	investors := dataset.NewTable(model.TableInvestor,
		[]string{"InvestorID", "InvestorName", "HQCountry"},
		[][]string{
			{"i1", "Domestic Fund", "United States"},
			{"i2", "UK Fund", "United Kingdom"},
			{"i3", "Mystery Fund", ""},
		})

	report := testAnalyzer().International(resultWith(investors))
	if len(report.Entities) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(report.Entities))
	}
	bucket := report.Entities[0]
	if bucket.Total != 3 {
		t.Errorf("expected total 3, got %d", bucket.Total)
	}
	// Null-country rows are not domestic, so they count as
	// international and again under the null metric
	if bucket.International != 2 {
		t.Errorf("expected 2 international, got %d", bucket.International)
	}
	if bucket.NullCountry != 1 {
		t.Errorf("expected 1 null-country, got %d", bucket.NullCountry)
	}
	if len(bucket.Countries) != 1 || bucket.Countries[0].Key != "United Kingdom" {
		t.Errorf("unexpected country distribution: %v", bucket.Countries)
	}
}

func TestInternationalConnectionsAndBreakdown(t *testing.T) {
	investors := dataset.NewTable(model.TableInvestor,
		[]string{"InvestorID", "InvestorName", "HQCountry"},
		[][]string{
			{"i1", "UK Fund", "United Kingdom"},
			{"i2", "US Fund", "United States"},
		})
	rel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "CompanyName", "InvestorID", "InvestorName", "InvestorStatus"},
		[][]string{
			{"c1", "Acme", "i1", "UK Fund", "Active"},
			{"c1", "Acme", "i2", "US Fund", "Active"},
			{"c2", "Globex", "i1", "UK Fund", ""},
		})

	report := testAnalyzer().International(resultWith(investors, rel))
	if report.Breakdown.Investor != 2 {
		t.Errorf("expected 2 investor connections, got %d", report.Breakdown.Investor)
	}
	if report.Breakdown.Total != 2 {
		t.Errorf("expected breakdown total 2, got %d", report.Breakdown.Total)
	}
	for _, conn := range report.Connections {
		if conn.EntityID == "i2" {
			t.Error("domestic investor should not appear in connections")
		}
		if conn.Status == "" {
			t.Error("blank status should default to Unknown")
		}
	}
}

func TestPositionsSetBreakdown(t *testing.T) {
	companies := dataset.NewTable(model.TableCompany,
		[]string{"CompanyID", "CompanyName"},
		[][]string{{"c1", "Acme"}})
	positions := dataset.NewTable(model.TablePersonPositionRel,
		[]string{"PersonID", "EntityID", "EntityType", "EntityName"},
		[][]string{
			{"p1", "c1", "Company", "Acme"},
			{"p2", "c1", "Company", "Acme"},
			{"p3", "other", "Venture Capital", "Some Fund"}, // not at a dataset company
		})
	board := dataset.NewTable(model.TablePersonBoardSeatRel,
		[]string{"PersonID", "CompanyID"},
		[][]string{
			{"p2", "c1"}, // employee and board member
			{"p4", "c1"}, // board only
		})

	report := testAnalyzer().Positions(resultWith(companies, positions, board))
	if report.PositionsAtCompanies != 2 {
		t.Errorf("expected 2 positions at companies, got %d", report.PositionsAtCompanies)
	}
	if report.EmployeeBoardMembers != 1 {
		t.Errorf("expected 1 employee board member, got %d", report.EmployeeBoardMembers)
	}
	if report.OnlyEmployees != 1 {
		t.Errorf("expected 1 employee-only person, got %d", report.OnlyEmployees)
	}
	if report.OnlyBoardMembers != 1 {
		t.Errorf("expected 1 board-only person, got %d", report.OnlyBoardMembers)
	}
	total := report.OnlyEmployees + report.EmployeeBoardMembers + report.OnlyBoardMembers
	if total != 3 {
		t.Errorf("set categories should partition the people, got %d", total)
	}
}

func TestSecondLevelDeduplicatesPeople(t *testing.T) {
	invRel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "InvestorID"},
		[][]string{{"c1", "e1"}})
	spRel := dataset.NewTable(model.TableCompanyServProvRel,
		[]string{"CompanyID", "ServiceProviderID"},
		[][]string{{"c1", "e2"}})
	positions := dataset.NewTable(model.TablePersonPositionRel,
		[]string{"PersonID", "EntityID", "EntityType"},
		[][]string{
			{"p1", "e1", "Venture Capital"},
			{"p1", "e2", "Lender"}, // same person at a second intermediary
			{"p2", "e1", "Venture Capital"},
		})

	report := testAnalyzer().SecondLevel(resultWith(invRel, spRel, positions))
	if report.Positions != 3 {
		t.Errorf("expected 3 positions, got %d", report.Positions)
	}
	if report.UniquePeople != 2 {
		t.Errorf("one person at two intermediaries must count once, got %d", report.UniquePeople)
	}
	if report.Intermediaries.Total != 2 {
		t.Errorf("expected 2 distinct intermediaries, got %d", report.Intermediaries.Total)
	}
	if report.InternationalPositions != 2 {
		t.Errorf("expected 2 positions at international entity types, got %d", report.InternationalPositions)
	}
	if report.InternationalPeople != 2 {
		t.Errorf("expected 2 people at international entity types, got %d", report.InternationalPeople)
	}
}

func TestSummaryRowsSortedAndCounted(t *testing.T) {
	companies := dataset.NewTable(model.TableCompany,
		[]string{"CompanyID", "CompanyName", "Website"},
		[][]string{
			{"c2", "Zenith", "zenith.example"},
			{"c1", "Acme", "acme.example"},
		})
	investors := dataset.NewTable(model.TableInvestor,
		[]string{"InvestorID", "InvestorName", "HQCountry"},
		[][]string{
			{"i1", "UK Fund", "United Kingdom"},
			{"i2", "US Fund", "United States"},
		})
	invRel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "InvestorID"},
		[][]string{
			{"c1", "i1"},
			{"c1", "i2"},
			{"c2", "i2"},
		})
	deals := dataset.NewTable(model.TableDeal,
		[]string{"DealID", "CompanyID"},
		[][]string{{"d1", "c1"}, {"d2", "c1"}})

	rows := testAnalyzer().Summary(resultWith(companies, investors, invRel, deals))
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CompanyName != "Acme" || rows[1].CompanyName != "Zenith" {
		t.Errorf("rows should sort by company name, got %s, %s", rows[0].CompanyName, rows[1].CompanyName)
	}
	acme := rows[0]
	if acme.Investors != 2 {
		t.Errorf("expected 2 investors, got %d", acme.Investors)
	}
	if acme.IntlInvestors != 1 {
		t.Errorf("expected 1 international investor, got %d", acme.IntlInvestors)
	}
	if acme.Deals != 2 {
		t.Errorf("expected 2 deals, got %d", acme.Deals)
	}
	if rows[1].Investors != 1 || rows[1].Deals != 0 {
		t.Errorf("unexpected Zenith counts: %d investors, %d deals", rows[1].Investors, rows[1].Deals)
	}
}

func TestSummaryLevelPeopleCountedOncePerCompany(t *testing.T) {
	companies := dataset.NewTable(model.TableCompany,
		[]string{"CompanyID", "CompanyName"},
		[][]string{{"c1", "Acme"}})
	invRel := dataset.NewTable(model.TableCompanyInvestorRel,
		[]string{"CompanyID", "InvestorID"},
		[][]string{{"c1", "e1"}})
	spRel := dataset.NewTable(model.TableCompanyServProvRel,
		[]string{"CompanyID", "ServiceProviderID"},
		[][]string{{"c1", "e2"}})
	deals := dataset.NewTable(model.TableDeal,
		[]string{"DealID", "CompanyID"},
		[][]string{{"d1", "c1"}})
	dealInv := dataset.NewTable(model.TableDealInvestorRel,
		[]string{"DealID", "InvestorID"},
		[][]string{{"d1", "e1"}})
	dealSP := dataset.NewTable(model.TableDealServProvRel,
		[]string{"DealID", "ServiceProviderID"},
		[][]string{{"d1", "e2"}})
	positions := dataset.NewTable(model.TablePersonPositionRel,
		[]string{"PersonID", "EntityID", "EntityType"},
		[][]string{
			{"p1", "e1", "Venture Capital"},
			{"p1", "e2", "Lender"}, // same person at both intermediaries
			{"p2", "e2", "Lender"},
		})

	rows := testAnalyzer().Summary(resultWith(companies, invRel, spRel, deals, dealInv, dealSP, positions))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.SecondLevelPeople != 2 {
		t.Errorf("a person at two of the company's intermediaries must count once, got %d", row.SecondLevelPeople)
	}
	if row.IntlSecondLevelPeople != 1 {
		t.Errorf("expected 1 second-level person at an international entity type, got %d", row.IntlSecondLevelPeople)
	}
	// Both deal participants employ the same two people
	if row.DealLevelPeople != 2 {
		t.Errorf("a person at two deal participants must count once, got %d", row.DealLevelPeople)
	}
	if row.IntlDealLevelPeople != 1 {
		t.Errorf("expected 1 deal-level person at an international entity type, got %d", row.IntlDealLevelPeople)
	}
}

func TestSummaryEmployeeCategoriesDoNotOverlap(t *testing.T) {
	companies := dataset.NewTable(model.TableCompany,
		[]string{"CompanyID", "CompanyName"},
		[][]string{{"c1", "Acme"}})
	positions := dataset.NewTable(model.TablePersonPositionRel,
		[]string{"PersonID", "EntityID", "EntityType"},
		[][]string{
			{"p1", "c1", "Company"},
			{"p2", "c1", "Company"},
		})
	board := dataset.NewTable(model.TablePersonBoardSeatRel,
		[]string{"PersonID", "CompanyID"},
		[][]string{
			{"p2", "c1"},
			{"p3", "c1"},
		})

	rows := testAnalyzer().Summary(resultWith(companies, positions, board))
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Employees != 1 {
		t.Errorf("expected 1 pure employee, got %d", row.Employees)
	}
	if row.EmployeeBoardMembers != 1 {
		t.Errorf("expected 1 employee board member, got %d", row.EmployeeBoardMembers)
	}
	if row.OtherBoardMembers != 1 {
		t.Errorf("expected 1 outside board member, got %d", row.OtherBoardMembers)
	}
}
