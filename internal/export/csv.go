package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// writeCSV writes one CSV file with a UTF-8 BOM so Excel opens it
// correctly
func (e *Exporter) writeCSV(name string, headers []string, records [][]string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("writing BOM to %s: %w", name, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("writing headers to %s: %w", name, err)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing record to %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	e.logf("✓ wrote %s (%d rows)", name, len(records))
	return nil
}

// writeRawTable exports a loaded table unchanged
func (e *Exporter) writeRawTable(res *dataset.Result, table, name string) error {
	t := res.Table(table)
	if t == nil {
		return nil
	}
	return e.writeCSV(name, t.Headers, t.Rows)
}

func (e *Exporter) writeTables(report *model.Report, res *dataset.Result) error {
	if err := e.writeRawTable(res, model.TableCompany, "companies.csv"); err != nil {
		return err
	}
	if err := e.writeRawTable(res, model.TableInvestor, "investors.csv"); err != nil {
		return err
	}
	if err := e.writeRawTable(res, model.TableCompanyInvestorRel, "company_investor_relations.csv"); err != nil {
		return err
	}

	if report.Overview != nil && report.Overview.CompanyInvestor != nil {
		ci := report.Overview.CompanyInvestor
		records := make([][]string, 0, len(ci.TopInvestors))
		for _, r := range ci.TopInvestors {
			records = append(records, []string{r.ID, strconv.Itoa(r.Count), r.Name})
		}
		if err := e.writeCSV("top_investors.csv", []string{"InvestorID", "CompanyCount", "InvestorName"}, records); err != nil {
			return err
		}

		records = records[:0]
		for _, r := range ci.TopCompanies {
			records = append(records, []string{r.ID, strconv.Itoa(r.Count), r.Name})
		}
		if err := e.writeCSV("top_companies.csv", []string{"CompanyID", "InvestorCount", "CompanyName"}, records); err != nil {
			return err
		}
	}

	if report.International != nil {
		if err := e.writeCompliance(report.International); err != nil {
			return err
		}
		if err := e.writeNullSummary(report.International); err != nil {
			return err
		}
	}

	if len(report.Summary) > 0 {
		if err := e.writeSummaryTable(report.Summary); err != nil {
			return err
		}
		if err := e.writeCompanyMetrics(report.Summary, report.International); err != nil {
			return err
		}
	}

	if report.Positions != nil {
		records := make([][]string, 0, len(report.Positions.TopBoardSeats))
		for _, r := range report.Positions.TopBoardSeats {
			if r.Count < 2 {
				continue
			}
			records = append(records, []string{r.ID, r.Name, strconv.Itoa(r.Count)})
		}
		if err := e.writeCSV("board_members_multiple_positions.csv", []string{"PersonID", "FullName", "BoardPositions"}, records); err != nil {
			return err
		}
	}
	return nil
}

var complianceHeaders = []string{
	"EntityType", "EntityID", "EntityName", "Country",
	"Website", "HQLocation", "HQAddressLine1", "HQCity", "HQState_Province", "HQPostCode", "HQEmail",
	"PrimaryContact", "PrimaryContactEmail",
	"LinkedInProfileURL", "PrimaryCompanyID", "PrimaryCompany", "PrimaryCompanyWebsite",
	"Biography", "PrimaryPosition", "PrimaryPositionLevel",
	"LimitedPartnerType", "AUM", "Description",
}

func (e *Exporter) writeCompliance(intl *model.InternationalReport) error {
	records := make([][]string, 0, len(intl.Compliance))
	for _, c := range intl.Compliance {
		records = append(records, []string{
			c.EntityType, c.EntityID, c.EntityName, c.Country,
			c.Website, c.HQLocation, c.HQAddressLine1, c.HQCity, c.HQStateProvince, c.HQPostCode, c.HQEmail,
			c.PrimaryContact, c.PrimaryContactEmail,
			c.LinkedInProfileURL, c.PrimaryCompanyID, c.PrimaryCompany, c.PrimaryCompanyWebsite,
			c.Biography, c.PrimaryPosition, c.PrimaryPositionLevel,
			c.LimitedPartnerType, c.AUM, c.Description,
		})
	}
	return e.writeCSV("international_entities_compliance.csv", complianceHeaders, records)
}

func (e *Exporter) writeNullSummary(intl *model.InternationalReport) error {
	records := make([][]string, 0, len(intl.Entities))
	for _, bucket := range intl.Entities {
		records = append(records, []string{
			bucket.EntityType,
			strconv.Itoa(bucket.NullCountry),
			"Entities with null or empty country field",
		})
	}
	return e.writeCSV("null_country_entities_summary.csv", []string{"EntityType", "Count", "Description"}, records)
}

var summaryHeaders = []string{
	"CompanyID", "CompanyName", "Website",
	"Employees", "EmployeeBoardMembers", "OtherBoardMembers",
	"EmployeeAffiliations", "InternationalEmployeeAffiliations", "NullCountryEmployeeAffiliations",
	"InternationalBoardMembers", "NullCountryBoardMembers",
	"Affiliates", "AffiliateAffiliations", "InternationalAffiliateAffiliations", "NullCountryAffiliateAffiliations", "InternationalAffiliates",
	"LeadPartners", "LeadPartnerAffiliations", "InternationalLeadPartnerAffiliations", "NullCountryLeadPartnerAffiliations", "InternationalLeadPartners",
	"Investors", "InvestorAffiliations", "InternationalInvestorAffiliations", "NullCountryInvestorAffiliations", "InternationalInvestors", "NullCountryInvestors",
	"ServiceProviders", "ServiceProviderAffiliations", "InternationalServiceProviderAffiliations", "NullCountryServiceProviderAffiliations", "InternationalServiceProviders", "NullCountryServiceProviders",
	"LimitedPartnerAffiliations", "InternationalLimitedPartnerAffiliations", "NullCountryLimitedPartnerAffiliations",
	"SecondLevelPeople", "InternationalSecondLevelPeople", "NullCountrySecondLevelPeople",
	"DealLevelPeople", "InternationalDealLevelPeople", "NullCountryDealLevelPeople",
	"Deals", "Patents",
}

func summaryRecord(row model.SummaryRow) []string {
	itoa := strconv.Itoa
	return []string{
		row.CompanyID, row.CompanyName, row.Website,
		itoa(row.Employees), itoa(row.EmployeeBoardMembers), itoa(row.OtherBoardMembers),
		itoa(row.EmployeeAffiliations), itoa(row.IntlEmployeeAffiliations), itoa(row.NullEmployeeAffiliations),
		itoa(row.IntlBoardMembers), itoa(row.NullBoardMembers),
		itoa(row.Affiliates), itoa(row.AffiliateAffiliations), itoa(row.IntlAffiliateAffiliations), itoa(row.NullAffiliateAffiliations), itoa(row.IntlAffiliates),
		itoa(row.LeadPartners), itoa(row.LeadPartnerAffiliations), itoa(row.IntlLeadPartnerAffiliations), itoa(row.NullLeadPartnerAffiliations), itoa(row.IntlLeadPartners),
		itoa(row.Investors), itoa(row.InvestorAffiliations), itoa(row.IntlInvestorAffiliations), itoa(row.NullInvestorAffiliations), itoa(row.IntlInvestors), itoa(row.NullInvestors),
		itoa(row.ServiceProviders), itoa(row.ServiceProviderAffiliations), itoa(row.IntlServProviderAffiliations), itoa(row.NullServProviderAffiliations), itoa(row.IntlServiceProviders), itoa(row.NullServiceProviders),
		itoa(row.LimitedPartnerAffiliations), itoa(row.IntlLimitedPartnerAffiliations), itoa(row.NullLimitedPartnerAffiliations),
		itoa(row.SecondLevelPeople), itoa(row.IntlSecondLevelPeople), itoa(row.NullSecondLevelPeople),
		itoa(row.DealLevelPeople), itoa(row.IntlDealLevelPeople), itoa(row.NullDealLevelPeople),
		itoa(row.Deals), itoa(row.Patents),
	}
}

func (e *Exporter) writeSummaryTable(rows []model.SummaryRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, summaryRecord(row))
	}
	return e.writeCSV("company_summary_table.csv", summaryHeaders, records)
}

// writeCompanyMetrics writes the per-company datasets backing the
// company charts
func (e *Exporter) writeCompanyMetrics(rows []model.SummaryRow, intl *model.InternationalReport) error {
	entities := make([][]string, 0, len(rows))
	patents := make([][]string, 0, len(rows))
	for _, row := range rows {
		total := row.IntlInvestors + row.IntlServiceProviders + row.IntlLeadPartners + row.IntlAffiliates
		entities = append(entities, []string{row.CompanyID, row.CompanyName, strconv.Itoa(total)})
		patents = append(patents, []string{row.CompanyID, row.CompanyName, strconv.Itoa(row.Patents)})
	}
	if err := e.writeCSV("international_entities_by_company.csv", []string{"CompanyID", "CompanyName", "InternationalEntities"}, entities); err != nil {
		return err
	}
	if err := e.writeCSV("patents_by_company.csv", []string{"CompanyID", "CompanyName", "PatentCount"}, patents); err != nil {
		return err
	}

	people := make([][]string, 0)
	for _, item := range internationalPeopleByCompany(rows, intl) {
		people = append(people, []string{item.ID, item.Name, strconv.Itoa(item.Count)})
	}
	return e.writeCSV("international_people_by_company.csv", []string{"CompanyID", "CompanyName", "InternationalPeople"}, people)
}

// internationalPeopleByCompany counts international persons whose
// primary employer is one of the companies
func internationalPeopleByCompany(rows []model.SummaryRow, intl *model.InternationalReport) []model.RankedEntity {
	names := make(map[string]string, len(rows))
	order := make([]string, 0, len(rows))
	for _, row := range rows {
		names[row.CompanyID] = row.CompanyName
		order = append(order, row.CompanyID)
	}
	counts := make(map[string]int)
	if intl != nil {
		for _, conn := range intl.Connections {
			if conn.EntityType != "Person" {
				continue
			}
			if _, ok := names[conn.CompanyID]; ok {
				counts[conn.CompanyID]++
			}
		}
	}
	out := make([]model.RankedEntity, 0, len(order))
	for _, id := range order {
		out = append(out, model.RankedEntity{ID: id, Name: names[id], Count: counts[id]})
	}
	return out
}
