package stats

import (
	"strings"

	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// entityKind describes where one entity type keeps its identity and
// country columns
type entityKind struct {
	label      string
	table      string
	idCol      string
	nameCol    string
	countryCol string
}

var entityKinds = []entityKind{
	{"Investor", model.TableInvestor, model.ColInvestorID, model.ColInvestorNm, model.ColHQCountry},
	{"ServiceProvider", model.TableServProvider, model.ColServProviderID, model.ColServProviderNm, model.ColHQCountry},
	{"LimitedPartner", model.TableLimitedPartner, model.ColLimitedPartnID, model.ColLimitedPartnNm, model.ColHQCountry},
	{"Person", model.TablePerson, model.ColPersonID, model.ColFullName, model.ColCountry},
}

// International identifies entities whose country differs from the
// domestic reference, traces their connections back to companies, and
// assembles the compliance export rows. Rows with a null country count
// as international and are additionally reported on their own.
func (a *Analyzer) International(res *dataset.Result) *model.InternationalReport {
	out := &model.InternationalReport{}
	intl := make(map[string]map[string]struct{}, len(entityKinds))

	for _, kind := range entityKinds {
		t := res.Table(kind.table)
		if t == nil || !t.HasColumn(kind.countryCol) {
			continue
		}
		ids := internationalIDs(t, kind.idCol, kind.countryCol, a.domestic())
		intl[kind.label] = ids

		bucket := model.EntityBucket{
			EntityType:    kind.label,
			Total:         t.Len(),
			International: len(ids),
			NullCountry:   len(nullCountryIDs(t, kind.idCol, kind.countryCol)),
		}
		countries := newCounter()
		for r := range t.Rows {
			country := strings.TrimSpace(t.Value(r, kind.countryCol))
			if country == "" || country == a.domestic() {
				continue
			}
			countries.Add(country, "")
		}
		bucket.Countries = countries.Items(0)
		out.Entities = append(out.Entities, bucket)
	}

	a.collectConnections(res, intl, out)
	a.collectCompliance(res, intl, out)
	return out
}

func (a *Analyzer) collectConnections(res *dataset.Result, intl map[string]map[string]struct{}, out *model.InternationalReport) {
	// Investors connect to companies directly
	if rel := res.Table(model.TableCompanyInvestorRel); rel != nil {
		investors := res.Table(model.TableInvestor)
		idx := indexByID(investors, model.ColInvestorID)
		for r := range rel.Rows {
			id := rel.Value(r, model.ColInvestorID)
			if !contains(intl["Investor"], id) {
				continue
			}
			status := rel.Value(r, model.ColInvestorStatus)
			if status == "" {
				status = "Unknown"
			}
			country := ""
			if row, ok := idx[id]; ok {
				country = investors.Value(row, model.ColHQCountry)
			}
			out.Connections = append(out.Connections, model.ConnectionRecord{
				EntityType:     "Investor",
				EntityID:       id,
				EntityName:     rel.Value(r, model.ColInvestorNm),
				EntityCountry:  country,
				CompanyID:      rel.Value(r, model.ColCompanyID),
				CompanyName:    rel.Value(r, model.ColCompanyName),
				ConnectionType: "Investment",
				Status:         status,
			})
			out.Breakdown.Investor++
		}
	}

	// Service providers connect through deals, not companies
	if rel := res.Table(model.TableDealServProvRel); rel != nil {
		providers := res.Table(model.TableServProvider)
		idx := indexByID(providers, model.ColServProviderID)
		for r := range rel.Rows {
			id := rel.Value(r, model.ColServProviderID)
			if !contains(intl["ServiceProvider"], id) {
				continue
			}
			country := ""
			if row, ok := idx[id]; ok {
				country = providers.Value(row, model.ColHQCountry)
			}
			out.Connections = append(out.Connections, model.ConnectionRecord{
				EntityType:     "ServiceProvider",
				EntityID:       id,
				EntityName:     rel.Value(r, model.ColServProviderNm),
				EntityCountry:  country,
				CompanyID:      "N/A",
				CompanyName:    "N/A",
				ConnectionType: "Service",
				Status:         "Active",
			})
			out.Breakdown.ServiceProvider++
		}
	}

	// Limited partners connect through funds
	if rel := res.Table(model.TableFundLimitedPartnerRel); rel != nil {
		partners := res.Table(model.TableLimitedPartner)
		idx := indexByID(partners, model.ColLimitedPartnID)
		for r := range rel.Rows {
			id := rel.Value(r, model.ColLimitedPartnID)
			if !contains(intl["LimitedPartner"], id) {
				continue
			}
			country := ""
			if row, ok := idx[id]; ok {
				country = partners.Value(row, model.ColHQCountry)
			}
			out.Connections = append(out.Connections, model.ConnectionRecord{
				EntityType:     "LimitedPartner",
				EntityID:       id,
				EntityName:     rel.Value(r, model.ColLimitedPartnNm),
				EntityCountry:  country,
				CompanyID:      "N/A",
				CompanyName:    "N/A",
				ConnectionType: "Fund Investment",
				Status:         "Active",
			})
			out.Breakdown.LimitedPartner++
		}
	}

	// Persons connect through their primary employer
	if persons := res.Table(model.TablePerson); persons != nil && persons.HasColumn(model.ColPrimaryCompanyID) {
		for r := range persons.Rows {
			id := persons.Value(r, model.ColPersonID)
			if !contains(intl["Person"], id) || persons.IsNull(r, model.ColPrimaryCompanyID) {
				continue
			}
			out.Connections = append(out.Connections, model.ConnectionRecord{
				EntityType:     "Person",
				EntityID:       id,
				EntityName:     persons.Value(r, model.ColFullName),
				EntityCountry:  persons.Value(r, model.ColCountry),
				CompanyID:      persons.Value(r, model.ColPrimaryCompanyID),
				CompanyName:    persons.Value(r, model.ColPrimaryCompany),
				ConnectionType: "Employment",
				Status:         "Active",
			})
			out.Breakdown.Person++
		}
	}

	out.Breakdown.Total = out.Breakdown.Investor + out.Breakdown.ServiceProvider +
		out.Breakdown.LimitedPartner + out.Breakdown.Person
}

func (a *Analyzer) collectCompliance(res *dataset.Result, intl map[string]map[string]struct{}, out *model.InternationalReport) {
	if persons := res.Table(model.TablePerson); persons != nil {
		for r := range persons.Rows {
			if !contains(intl["Person"], persons.Value(r, model.ColPersonID)) {
				continue
			}
			out.Compliance = append(out.Compliance, model.ComplianceEntity{
				EntityType:            "Person",
				EntityID:              persons.Value(r, model.ColPersonID),
				EntityName:            persons.Value(r, model.ColFullName),
				Country:               persons.Value(r, model.ColCountry),
				LinkedInProfileURL:    persons.Value(r, "LinkedInProfileURL"),
				PrimaryCompanyID:      persons.Value(r, model.ColPrimaryCompanyID),
				PrimaryCompany:        persons.Value(r, model.ColPrimaryCompany),
				PrimaryCompanyWebsite: persons.Value(r, "PrimaryCompanyWebsite"),
				Biography:             persons.Value(r, "Biography"),
				PrimaryPosition:       persons.Value(r, "PrimaryPosition"),
				PrimaryPositionLevel:  persons.Value(r, "PrimaryPositionLevel"),
			})
		}
	}

	if investors := res.Table(model.TableInvestor); investors != nil {
		for r := range investors.Rows {
			if !contains(intl["Investor"], investors.Value(r, model.ColInvestorID)) {
				continue
			}
			out.Compliance = append(out.Compliance, model.ComplianceEntity{
				EntityType:          "Investor",
				EntityID:            investors.Value(r, model.ColInvestorID),
				EntityName:          investors.Value(r, model.ColInvestorNm),
				Country:             investors.Value(r, model.ColHQCountry),
				Website:             investors.Value(r, model.ColWebsite),
				HQLocation:          investors.Value(r, model.ColHQLocation),
				HQAddressLine1:      investors.Value(r, "HQAddressLine1"),
				HQCity:              investors.Value(r, "HQCity"),
				HQStateProvince:     investors.Value(r, "HQState_Province"),
				HQPostCode:          investors.Value(r, "HQPostCode"),
				HQEmail:             investors.Value(r, "HQEmail"),
				PrimaryContact:      investors.Value(r, "PrimaryContact"),
				PrimaryContactEmail: investors.Value(r, "PrimaryContactEmail"),
			})
		}
	}

	if providers := res.Table(model.TableServProvider); providers != nil {
		for r := range providers.Rows {
			if !contains(intl["ServiceProvider"], providers.Value(r, model.ColServProviderID)) {
				continue
			}
			out.Compliance = append(out.Compliance, model.ComplianceEntity{
				EntityType:      "ServiceProvider",
				EntityID:        providers.Value(r, model.ColServProviderID),
				EntityName:      providers.Value(r, model.ColServProviderNm),
				Country:         providers.Value(r, model.ColHQCountry),
				Website:         providers.Value(r, model.ColWebsite),
				HQLocation:      providers.Value(r, model.ColHQLocation),
				HQCity:          providers.Value(r, "HQCity"),
				HQStateProvince: providers.Value(r, "HQState_Province"),
			})
		}
	}

	if partners := res.Table(model.TableLimitedPartner); partners != nil {
		for r := range partners.Rows {
			if !contains(intl["LimitedPartner"], partners.Value(r, model.ColLimitedPartnID)) {
				continue
			}
			out.Compliance = append(out.Compliance, model.ComplianceEntity{
				EntityType:         "LimitedPartner",
				EntityID:           partners.Value(r, model.ColLimitedPartnID),
				EntityName:         partners.Value(r, model.ColLimitedPartnNm),
				Country:            partners.Value(r, model.ColHQCountry),
				Website:            partners.Value(r, model.ColWebsite),
				HQLocation:         partners.Value(r, model.ColHQLocation),
				HQAddressLine1:     partners.Value(r, "HQAddressLine1"),
				HQCity:             partners.Value(r, "HQCity"),
				HQStateProvince:    partners.Value(r, "HQState_Province"),
				HQPostCode:         partners.Value(r, "HQPostCode"),
				LimitedPartnerType: partners.Value(r, "LimitedPartnerType"),
				AUM:                partners.Value(r, "AUM"),
				Description:        partners.Value(r, "Description"),
			})
		}
	}
}
