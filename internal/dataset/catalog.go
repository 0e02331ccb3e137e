package dataset

import "github.com/pitchlens/pitchlens/internal/model"

// The file lists below mirror the fixed dataset layout. Behaviour is
// fully determined by these lists plus the size threshold; there is no
// per-file configuration.

// CoreFiles are the entity tables
func CoreFiles() []string {
	return []string{
		model.TableCompany,
		model.TableInvestor,
		model.TablePerson,
		model.TableDeal,
		model.TableFund,
		model.TableLimitedPartner,
		model.TableServProvider,
	}
}

// RelationFiles are the many-to-many edge tables
func RelationFiles() []string {
	return []string{
		model.TableCompanyInvestorRel,
		model.TableCompanyBoardTeamRel,
		model.TableCompanyLocationRel,
		model.TableCompanyPatentRel,
		model.TableCompanyAffiliateRel,
		model.TableCompanyServProvRel,
		model.TableCompanyLeadPartnerRel,
		model.TableDealInvestorRel,
		model.TableDealSellerRel,
		model.TableDealServProvRel,
		model.TableInvestorBoardTeamRel,
		model.TableInvestorCoInvestorRel,
		model.TableInvestorLeadPartnRel,
		model.TableFundInvestorRel,
		model.TableFundLimitedPartnerRel,
		model.TableFundTeamRel,
		model.TablePersonPositionRel,
		model.TablePersonBoardSeatRel,
		model.TablePersonAffilDealRel,
		model.TablePersonAffilFundRel,
	}
}

// CountryFiles are the tables carrying country information, used by the
// international analysis
func CountryFiles() []string {
	return []string{
		model.TableCompany,
		model.TableInvestor,
		model.TableServProvider,
		model.TableLimitedPartner,
		model.TablePerson,
		model.TableCompanyInvestorRel,
		model.TableDealInvestorRel,
		model.TableDealServProvRel,
		model.TableFundLimitedPartnerRel,
	}
}

// SummaryFiles are the tables needed for the company summary table
func SummaryFiles() []string {
	return []string{
		model.TableCompany,
		model.TablePerson,
		model.TableInvestor,
		model.TableServProvider,
		model.TableLimitedPartner,
		model.TableDeal,
		model.TableCompanyInvestorRel,
		model.TableCompanyPatentRel,
		model.TableCompanyAffiliateRel,
		model.TableCompanyLeadPartnerRel,
		model.TableCompanyServProvRel,
		model.TableDealInvestorRel,
		model.TableDealServProvRel,
		model.TableFundLimitedPartnerRel,
		model.TablePersonPositionRel,
		model.TablePersonBoardSeatRel,
	}
}

// AllFiles is the union of every table any analysis section reads
func AllFiles() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, group := range [][]string{CoreFiles(), RelationFiles()} {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}
