package stats

import (
	"github.com/pitchlens/pitchlens/internal/dataset"
	"github.com/pitchlens/pitchlens/internal/model"
)

// relationSource names one first-hop relation table and the column
// carrying the intermediary entity ID
type relationSource struct {
	label string
	table string
	idCol string
}

var relationSources = []relationSource{
	{"Investor", model.TableCompanyInvestorRel, model.ColInvestorID},
	{"ServiceProvider", model.TableCompanyServProvRel, model.ColServProviderID},
	{"LeadPartner", model.TableCompanyLeadPartnerRel, model.ColLeadPartnerID},
	{"Affiliate", model.TableCompanyAffiliateRel, model.ColAffiliateID},
}

// SecondLevel walks two hops out from the companies: first to their
// investors, service providers, lead partners, and affiliates, then to
// the people holding positions at those intermediaries. People are
// deduplicated by PersonID; one person at three intermediaries counts
// once.
func (a *Analyzer) SecondLevel(res *dataset.Result) *model.SecondLevelReport {
	positions := res.Table(model.TablePersonPositionRel)

	out := &model.SecondLevelReport{}
	sets := make(map[string]map[string]struct{}, len(relationSources))
	union := make(map[string]struct{})
	for _, src := range relationSources {
		ids := make(map[string]struct{})
		if t := res.Table(src.table); t != nil {
			ids = t.IDSet(src.idCol)
		}
		sets[src.label] = ids
		for id := range ids {
			union[id] = struct{}{}
		}
	}
	out.Intermediaries = model.IntermediaryCounts{
		Investors:        len(sets["Investor"]),
		ServiceProviders: len(sets["ServiceProvider"]),
		LeadPartners:     len(sets["LeadPartner"]),
		Affiliates:       len(sets["Affiliate"]),
		Total:            len(union),
	}
	if positions == nil {
		return out
	}

	people := make(map[string]struct{})
	intlPeople := make(map[string]struct{})
	perRelation := make(map[string]*model.RelationPeople, len(relationSources))
	perRelationPeople := make(map[string]map[string]struct{}, len(relationSources))
	for _, src := range relationSources {
		perRelation[src.label] = &model.RelationPeople{Relation: src.label}
		perRelationPeople[src.label] = make(map[string]struct{})
	}

	entityTypes := newCounter()
	for r := range positions.Rows {
		entity := positions.Value(r, model.ColEntityID)
		if !contains(union, entity) {
			continue
		}
		out.Positions++
		person := positions.Value(r, model.ColPersonID)
		if person != "" {
			people[person] = struct{}{}
		}
		entityType := positions.Value(r, model.ColEntityType)
		entityTypes.Add(entityType, "")

		// No country column this far out; certain entity types only
		// occur for overseas records in these exports and stand in
		// for an international flag
		if a.intlType(entityType) {
			out.InternationalPositions++
			if person != "" {
				intlPeople[person] = struct{}{}
			}
		}

		for _, src := range relationSources {
			if !contains(sets[src.label], entity) {
				continue
			}
			perRelation[src.label].Positions++
			if person != "" {
				perRelationPeople[src.label][person] = struct{}{}
			}
		}
	}

	out.UniquePeople = len(people)
	out.InternationalPeople = len(intlPeople)
	out.ByEntityType = entityTypes.Items(0)
	for _, src := range relationSources {
		rp := perRelation[src.label]
		rp.UniquePeople = len(perRelationPeople[src.label])
		out.ByRelation = append(out.ByRelation, *rp)
	}
	return out
}
