package stats

import (
	"sort"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// groupIDs collects, per group column value, the set of values in the
// id column
func groupIDs(t *dataset.Table, groupCol, idCol string) map[string]map[string]struct{} {
	out := make(map[string]map[string]struct{})
	if t == nil {
		return out
	}
	for r := range t.Rows {
		group := t.Value(r, groupCol)
		id := t.Value(r, idCol)
		if group == "" || id == "" {
			continue
		}
		set, ok := out[group]
		if !ok {
			set = make(map[string]struct{})
			out[group] = set
		}
		set[id] = struct{}{}
	}
	return out
}

// groupCounts counts rows per group column value
func groupCounts(t *dataset.Table, groupCol string) map[string]int {
	out := make(map[string]int)
	if t == nil {
		return out
	}
	for r := range t.Rows {
		if g := t.Value(r, groupCol); g != "" {
			out[g]++
		}
	}
	return out
}

// affiliationCounts holds the three affiliation variants for one
// intermediary kind
type affiliationCounts struct {
	total map[string]int
	intl  map[string]int
	null  map[string]int
}

// Summary builds the wide per-company table, one row per company,
// sorted by company name. Every column is a count derived from the
// relation tables; companies absent from a relation get zeroes.
func (a *Analyzer) Summary(res *dataset.Result) []model.SummaryRow {
	companies := res.Table(model.TableCompany)
	if companies == nil {
		return nil
	}
	positions := res.Table(model.TablePersonPositionRel)
	board := res.Table(model.TablePersonBoardSeatRel)
	persons := res.Table(model.TablePerson)

	companyIDs := companies.IDSet(model.ColCompanyID)

	// Person attribute sets; empty when the Person file was skipped,
	// which zeroes every null-country person metric rather than
	// guessing
	var intlPersons, nullPersons map[string]struct{}
	if persons != nil {
		intlPersons = internationalIDs(persons, model.ColPersonID, model.ColCountry, a.domestic())
		nullPersons = nullCountryIDs(persons, model.ColPersonID, model.ColCountry)
	}

	// Employee and board sets, globally and per company
	employeesByCompany := make(map[string]map[string]struct{})
	positionPersons := make(map[string]struct{})
	if positions != nil {
		for r := range positions.Rows {
			entity := positions.Value(r, model.ColEntityID)
			if !contains(companyIDs, entity) {
				continue
			}
			person := positions.Value(r, model.ColPersonID)
			if person == "" {
				continue
			}
			positionPersons[person] = struct{}{}
			set, ok := employeesByCompany[entity]
			if !ok {
				set = make(map[string]struct{})
				employeesByCompany[entity] = set
			}
			set[person] = struct{}{}
		}
	}
	boardByCompany := make(map[string]map[string]struct{})
	boardPersons := make(map[string]struct{})
	intlBoardByCompany := make(map[string]int)
	nullBoardByCompany := make(map[string]int)
	if board != nil {
		for r := range board.Rows {
			company := board.Value(r, model.ColCompanyID)
			if !contains(companyIDs, company) {
				continue
			}
			person := board.Value(r, model.ColPersonID)
			if person == "" {
				continue
			}
			boardPersons[person] = struct{}{}
			set, ok := boardByCompany[company]
			if !ok {
				set = make(map[string]struct{})
				boardByCompany[company] = set
			}
			set[person] = struct{}{}
			if contains(intlPersons, person) {
				intlBoardByCompany[company]++
			}
			if contains(nullPersons, person) {
				nullBoardByCompany[company]++
			}
		}
	}

	// Per-relation intermediary IDs, per company
	investorIDs := groupIDs(res.Table(model.TableCompanyInvestorRel), model.ColCompanyID, model.ColInvestorID)
	servProvIDs := groupIDs(res.Table(model.TableCompanyServProvRel), model.ColCompanyID, model.ColServProviderID)
	leadPartnerIDs := groupIDs(res.Table(model.TableCompanyLeadPartnerRel), model.ColCompanyID, model.ColLeadPartnerID)
	affiliateIDs := groupIDs(res.Table(model.TableCompanyAffiliateRel), model.ColCompanyID, model.ColAffiliateID)

	invAff := a.intermediaryAffiliations(positions, investorIDs, nullPersons)
	spAff := a.intermediaryAffiliations(positions, servProvIDs, nullPersons)
	leadAff := a.intermediaryAffiliations(positions, leadPartnerIDs, nullPersons)
	affAff := a.intermediaryAffiliations(positions, affiliateIDs, nullPersons)

	// Entity attribute sets for the intl/null intermediary columns
	intlInvestors := internationalIDs(res.Table(model.TableInvestor), model.ColInvestorID, model.ColHQCountry, a.domestic())
	nullInvestors := nullCountryIDs(res.Table(model.TableInvestor), model.ColInvestorID, model.ColHQCountry)
	intlServProviders := internationalIDs(res.Table(model.TableServProvider), model.ColServProviderID, model.ColHQCountry, a.domestic())
	nullServProviders := nullCountryIDs(res.Table(model.TableServProvider), model.ColServProviderID, model.ColHQCountry)

	dealsByCompany := groupCounts(res.Table(model.TableDeal), model.ColCompanyID)
	patentsByCompany := groupCounts(res.Table(model.TableCompanyPatentRel), model.ColCompanyID)
	dealIDsByCompany := groupIDs(res.Table(model.TableDeal), model.ColCompanyID, model.ColDealID)
	dealInvestorIDs := groupIDs(res.Table(model.TableDealInvestorRel), model.ColDealID, model.ColInvestorID)
	dealServProvIDs := groupIDs(res.Table(model.TableDealServProvRel), model.ColDealID, model.ColServProviderID)

	// Affiliate relation rows carry the affiliate's country inline
	affiliateRel := res.Table(model.TableCompanyAffiliateRel)
	intlAffiliatesByCompany := make(map[string]int)
	if affiliateRel != nil && affiliateRel.HasColumn(model.ColHQCountry) {
		for r := range affiliateRel.Rows {
			country := affiliateRel.Value(r, model.ColHQCountry)
			if country == "" || country == a.domestic() {
				continue
			}
			intlAffiliatesByCompany[affiliateRel.Value(r, model.ColCompanyID)]++
		}
	}

	var rows []model.SummaryRow
	for r := range companies.Rows {
		id := companies.Value(r, model.ColCompanyID)
		if id == "" {
			continue
		}
		row := model.SummaryRow{
			CompanyID:   id,
			CompanyName: companies.Value(r, model.ColCompanyName),
			Website:     companies.Value(r, model.ColWebsite),
		}

		// Employee categories do not overlap: a person is an employee,
		// an employee board member, or an outside board member
		empIDs := employeesByCompany[id]
		brdIDs := boardByCompany[id]
		for p := range empIDs {
			if contains(boardPersons, p) {
				continue
			}
			row.Employees++
		}
		for p := range brdIDs {
			if contains(positionPersons, p) {
				row.EmployeeBoardMembers++
			} else {
				row.OtherBoardMembers++
			}
		}
		row.IntlBoardMembers = intlBoardByCompany[id]
		row.NullBoardMembers = nullBoardByCompany[id]

		// Positions the company's own people hold elsewhere
		if positions != nil {
			people := make(map[string]struct{}, len(empIDs)+len(brdIDs))
			for p := range empIDs {
				people[p] = struct{}{}
			}
			for p := range brdIDs {
				people[p] = struct{}{}
			}
			for pr := range positions.Rows {
				if !contains(people, positions.Value(pr, model.ColPersonID)) {
					continue
				}
				if positions.Value(pr, model.ColEntityID) == id {
					continue
				}
				row.EmployeeAffiliations++
				if a.intlType(positions.Value(pr, model.ColEntityType)) {
					row.IntlEmployeeAffiliations++
				}
				if contains(nullPersons, positions.Value(pr, model.ColPersonID)) {
					row.NullEmployeeAffiliations++
				}
			}
		}

		row.Investors = setLen(investorIDs[id])
		row.InvestorAffiliations = invAff.total[id]
		row.IntlInvestorAffiliations = invAff.intl[id]
		row.NullInvestorAffiliations = invAff.null[id]
		row.IntlInvestors = intersect(investorIDs[id], intlInvestors)
		row.NullInvestors = intersect(investorIDs[id], nullInvestors)

		row.ServiceProviders = setLen(servProvIDs[id])
		row.ServiceProviderAffiliations = spAff.total[id]
		row.IntlServProviderAffiliations = spAff.intl[id]
		row.NullServProviderAffiliations = spAff.null[id]
		row.IntlServiceProviders = intersect(servProvIDs[id], intlServProviders)
		row.NullServiceProviders = intersect(servProvIDs[id], nullServProviders)

		row.LeadPartners = setLen(leadPartnerIDs[id])
		row.LeadPartnerAffiliations = leadAff.total[id]
		row.IntlLeadPartnerAffiliations = leadAff.intl[id]
		row.NullLeadPartnerAffiliations = leadAff.null[id]
		row.IntlLeadPartners = intersect(leadPartnerIDs[id], intlInvestors)

		row.Affiliates = setLen(affiliateIDs[id])
		row.AffiliateAffiliations = affAff.total[id]
		row.IntlAffiliateAffiliations = affAff.intl[id]
		row.NullAffiliateAffiliations = affAff.null[id]
		row.IntlAffiliates = intlAffiliatesByCompany[id]

		// Limited partners reach companies only through funds; without
		// a fund-to-company mapping these stay zero
		row.LimitedPartnerAffiliations = 0
		row.IntlLimitedPartnerAffiliations = 0
		row.NullLimitedPartnerAffiliations = 0

		// Depth-2: people at any of the company's intermediaries
		if positions != nil {
			connected := unionSets(investorIDs[id], servProvIDs[id], leadPartnerIDs[id], affiliateIDs[id])
			sl := a.peopleAtEntities(positions, connected, nullPersons)
			row.SecondLevelPeople = sl.total
			row.IntlSecondLevelPeople = sl.intl
			row.NullSecondLevelPeople = sl.null

			dealEntities := make(map[string]struct{})
			for dealID := range dealIDsByCompany[id] {
				for e := range dealInvestorIDs[dealID] {
					dealEntities[e] = struct{}{}
				}
				for e := range dealServProvIDs[dealID] {
					dealEntities[e] = struct{}{}
				}
			}
			dl := a.peopleAtEntities(positions, dealEntities, nullPersons)
			row.DealLevelPeople = dl.total
			row.IntlDealLevelPeople = dl.intl
			row.NullDealLevelPeople = dl.null
		}

		row.Deals = dealsByCompany[id]
		row.Patents = patentsByCompany[id]
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CompanyName < rows[j].CompanyName
	})
	return rows
}

// intermediaryAffiliations counts, per company, positions held by that
// company's intermediaries at entities other than the company itself
func (a *Analyzer) intermediaryAffiliations(positions *dataset.Table, idsByCompany map[string]map[string]struct{}, nullPersons map[string]struct{}) affiliationCounts {
	out := affiliationCounts{
		total: make(map[string]int),
		intl:  make(map[string]int),
		null:  make(map[string]int),
	}
	if positions == nil {
		return out
	}

	// Invert: which companies each intermediary serves
	companiesByID := make(map[string][]string)
	for company, ids := range idsByCompany {
		for id := range ids {
			companiesByID[id] = append(companiesByID[id], company)
		}
	}

	for r := range positions.Rows {
		holder := positions.Value(r, model.ColPersonID)
		for _, company := range companiesByID[holder] {
			if positions.Value(r, model.ColEntityID) == company {
				continue
			}
			out.total[company]++
			if a.intlType(positions.Value(r, model.ColEntityType)) {
				out.intl[company]++
			}
			if contains(nullPersons, holder) {
				out.null[company]++
			}
		}
	}
	return out
}

// peopleCounts holds the unique-person variants for one entity set
type peopleCounts struct {
	total int
	intl  int
	null  int
}

// peopleAtEntities deduplicates people holding positions at the given
// entities
func (a *Analyzer) peopleAtEntities(positions *dataset.Table, entities map[string]struct{}, nullPersons map[string]struct{}) peopleCounts {
	people := make(map[string]struct{})
	intl := make(map[string]struct{})
	nulls := make(map[string]struct{})
	for r := range positions.Rows {
		if !contains(entities, positions.Value(r, model.ColEntityID)) {
			continue
		}
		person := positions.Value(r, model.ColPersonID)
		if person == "" {
			continue
		}
		people[person] = struct{}{}
		if a.intlType(positions.Value(r, model.ColEntityType)) {
			intl[person] = struct{}{}
		}
		if contains(nullPersons, person) {
			nulls[person] = struct{}{}
		}
	}
	return peopleCounts{total: len(people), intl: len(intl), null: len(nulls)}
}

func setLen(s map[string]struct{}) int {
	return len(s)
}

func intersect(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}

func unionSets(sets ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, s := range sets {
		for k := range s {
			out[k] = struct{}{}
		}
	}
	return out
}
