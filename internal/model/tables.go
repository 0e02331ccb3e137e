package model

// Well-known table names (CSV file name without the .csv suffix)
const (
	TableCompany        = "Company"
	TableInvestor       = "Investor"
	TablePerson         = "Person"
	TableDeal           = "Deal"
	TableFund           = "Fund"
	TableLimitedPartner = "LimitedPartner"
	TableServProvider   = "ServiceProvider"

	TableCompanyInvestorRel    = "CompanyInvestorRelation"
	TableCompanyBoardTeamRel   = "CompanyBoardTeamRelation"
	TableCompanyLocationRel    = "CompanyLocationRelation"
	TableCompanyPatentRel      = "CompanyPatentRelation"
	TableCompanyAffiliateRel   = "CompanyAffiliateRelation"
	TableCompanyServProvRel    = "CompanyServiceProviderRelation"
	TableCompanyLeadPartnerRel = "CompanyInvLeadPartnerRelation"
	TableDealInvestorRel       = "DealInvestorRelation"
	TableDealSellerRel         = "DealSellerRelation"
	TableDealServProvRel       = "DealServiceProviderRelation"
	TableInvestorBoardTeamRel  = "InvestorBoardTeamRelation"
	TableInvestorCoInvestorRel = "InvestorCoInvestorRelation"
	TableInvestorLeadPartnRel  = "InvestorLeadPartnerRelation"
	TableFundInvestorRel       = "FundInvestorRelation"
	TableFundLimitedPartnerRel = "FundLimitedPartnerRelation"
	TableFundTeamRel           = "FundTeamRelation"
	TablePersonPositionRel     = "PersonPositionRelation"
	TablePersonBoardSeatRel    = "PersonBoardSeatRelation"
	TablePersonAffilDealRel    = "PersonAffiliatedDealRelation"
	TablePersonAffilFundRel    = "PersonAffiliatedFundRelation"
)

// Column names shared across tables
const (
	ColCompanyID   = "CompanyID"
	ColCompanyName = "CompanyName"
	ColInvestorID  = "InvestorID"
	ColInvestorNm  = "InvestorName"
	ColPersonID    = "PersonID"
	ColDealID      = "DealID"
	ColFundID      = "FundID"
	ColEntityID    = "EntityID"
	ColEntityType  = "EntityType"
	ColEntityName  = "EntityName"

	ColHQCountry  = "HQCountry"
	ColHQLocation = "HQLocation"
	ColCountry    = "Country"

	ColInvestorStatus = "InvestorStatus"
	ColHolding        = "Holding"
	ColInvestorSince  = "InvestorSince"

	ColFinancingStatus = "CompanyFinancingStatus"
	ColOwnershipStatus = "OwnershipStatus"
	ColUniverse        = "Universe"
	ColEmployees       = "Employees"
	ColWebsite         = "Website"

	ColFullName         = "FullName"
	ColFullTitle        = "FullTitle"
	ColPrimaryCompanyID = "PrimaryCompanyID"
	ColPrimaryCompany   = "PrimaryCompany"

	ColServProviderID = "ServiceProviderID"
	ColServProviderNm = "ServiceProviderName"
	ColLimitedPartnID = "LimitedPartnerID"
	ColLimitedPartnNm = "LimitedPartnerName"
	ColLeadPartnerID  = "LeadPartnerID"
	ColAffiliateID    = "AffiliateID"
	ColCoInvestorName = "Co_InvestorName"
)
