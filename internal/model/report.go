package model

import "time"

// Report represents the complete pitchlens analysis report.
// Every section is derived from the loaded tables; nothing here is ever
// written back to the source data.
type Report struct {
	DataDir     string     `json:"data_dir"`     // Dataset directory that was analysed
	GeneratedAt time.Time  `json:"generated_at"` // When the run occurred
	Load        LoadReport `json:"load"`         // Per-file load outcomes

	Overview      *OverviewReport      `json:"overview,omitempty"`
	Network       *NetworkReport       `json:"network,omitempty"`
	International *InternationalReport `json:"international,omitempty"`
	Positions     *PositionReport      `json:"positions,omitempty"`
	SecondLevel   *SecondLevelReport   `json:"second_level,omitempty"`
	Summary       []SummaryRow         `json:"summary,omitempty"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional LLM narrative (never affects any number)
}

// LoadReport describes what the bulk loader found
type LoadReport struct {
	Loaded    []TableLoad `json:"loaded"`
	Skipped   []TableLoad `json:"skipped,omitempty"` // Over the size threshold, by design
	Missing   []string    `json:"missing,omitempty"` // Files not present (non-fatal)
	TotalRows int         `json:"total_rows"`
}

// TableLoad is the load outcome for a single file
type TableLoad struct {
	Name    string `json:"name"`
	File    string `json:"file"`
	Rows    int    `json:"rows,omitempty"`
	Columns int    `json:"columns,omitempty"`
	Bytes   int64  `json:"bytes"`
}

// CountItem is a labelled count within a distribution or ranking
type CountItem struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Share is a count with its percentage of the whole
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// RankedEntity is one entry of a top-N ranking
type RankedEntity struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NumericSummary holds descriptive statistics for a numeric column
type NumericSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// TableStats describes one loaded table
type TableStats struct {
	Name        string `json:"name"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	ApproxBytes int64  `json:"approx_bytes"`
}

// OverviewReport covers the basic descriptive statistics
type OverviewReport struct {
	Tables          []TableStats       `json:"tables"`
	CompanyInvestor *RelationshipStats `json:"company_investor,omitempty"`
	Deals           *DealStats         `json:"deals,omitempty"`
	Companies       *CompanyStats      `json:"companies,omitempty"`
	Investors       *InvestorStats     `json:"investors,omitempty"`

	// Company names that also appear as investor names (case-insensitive)
	NameOverlap []string       `json:"name_overlap,omitempty"`
	CoInvestors []RankedEntity `json:"co_investors,omitempty"`
}

// RelationshipStats summarises the company-investor relation table
type RelationshipStats struct {
	Total        int            `json:"total"`
	StatusDist   []CountItem    `json:"status_dist,omitempty"`
	HoldingDist  []CountItem    `json:"holding_dist,omitempty"`
	TopInvestors []RankedEntity `json:"top_investors"` // By number of companies
	TopCompanies []RankedEntity `json:"top_companies"` // By number of investors
}

// DealStats summarises deals and deal-investor relations
type DealStats struct {
	Total               int            `json:"total"`
	TopCompaniesByDeals []RankedEntity `json:"top_companies_by_deals"`
	DealInvestorTotal   int            `json:"deal_investor_total,omitempty"`
	TopInvestorsByDeals []RankedEntity `json:"top_investors_by_deals,omitempty"`
}

// CompanyStats summarises company characteristics
type CompanyStats struct {
	Total          int             `json:"total"`
	FinancingDist  []CountItem     `json:"financing_dist,omitempty"`
	OwnershipDist  []CountItem     `json:"ownership_dist,omitempty"`
	UniverseDist   []CountItem     `json:"universe_dist,omitempty"`
	Employees      *NumericSummary `json:"employees,omitempty"`
	TopByEmployees []RankedEntity  `json:"top_by_employees,omitempty"`
}

// InvestorStats summarises investor characteristics
type InvestorStats struct {
	Total        int         `json:"total"`
	TopLocations []CountItem `json:"top_locations,omitempty"`
	Countries    []CountItem `json:"countries,omitempty"`
}

// NetworkReport holds company-investor network statistics
type NetworkReport struct {
	UniqueCompanies int     `json:"unique_companies"`
	UniqueInvestors int     `json:"unique_investors"`
	Relationships   int     `json:"relationships"`
	AvgPerCompany   float64 `json:"avg_per_company"`
	AvgPerInvestor  float64 `json:"avg_per_investor"`
	Density         float64 `json:"density"`

	StatusShares  []Share     `json:"status_shares,omitempty"`
	HoldingShares []Share     `json:"holding_shares,omitempty"`
	ByYear        []CountItem `json:"by_year,omitempty"` // Investments per InvestorSince year
}

// EntityBucket holds international/null-country counts for one entity type
type EntityBucket struct {
	EntityType    string      `json:"entity_type"`
	Total         int         `json:"total"`
	International int         `json:"international"` // Country differs from the domestic reference (nulls included)
	NullCountry   int         `json:"null_country"`  // Tracked separately, never excluded from totals
	Countries     []CountItem `json:"countries,omitempty"`
}

// ConnectionRecord is one international entity-to-company connection
type ConnectionRecord struct {
	EntityType     string `json:"entity_type"`
	EntityID       string `json:"entity_id"`
	EntityName     string `json:"entity_name"`
	EntityCountry  string `json:"entity_country"`
	CompanyID      string `json:"company_id"`
	CompanyName    string `json:"company_name"`
	ConnectionType string `json:"connection_type"`
	Status         string `json:"status"`
}

// ConnectionBreakdown counts connections per entity type
type ConnectionBreakdown struct {
	Investor        int `json:"investor"`
	ServiceProvider int `json:"service_provider"`
	LimitedPartner  int `json:"limited_partner"`
	Person          int `json:"person"`
	Total           int `json:"total"`
}

// ComplianceEntity is one row of the compliance export. The populated
// fields depend on the entity type; the CSV carries the union.
type ComplianceEntity struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name"`
	Country    string `json:"country"`

	Website         string `json:"website,omitempty"`
	HQLocation      string `json:"hq_location,omitempty"`
	HQAddressLine1  string `json:"hq_address_line1,omitempty"`
	HQCity          string `json:"hq_city,omitempty"`
	HQStateProvince string `json:"hq_state_province,omitempty"`
	HQPostCode      string `json:"hq_post_code,omitempty"`
	HQEmail         string `json:"hq_email,omitempty"`

	PrimaryContact      string `json:"primary_contact,omitempty"`
	PrimaryContactEmail string `json:"primary_contact_email,omitempty"`

	LinkedInProfileURL    string `json:"linkedin_profile_url,omitempty"`
	PrimaryCompanyID      string `json:"primary_company_id,omitempty"`
	PrimaryCompany        string `json:"primary_company,omitempty"`
	PrimaryCompanyWebsite string `json:"primary_company_website,omitempty"`
	Biography             string `json:"biography,omitempty"`
	PrimaryPosition       string `json:"primary_position,omitempty"`
	PrimaryPositionLevel  string `json:"primary_position_level,omitempty"`

	LimitedPartnerType string `json:"limited_partner_type,omitempty"`
	AUM                string `json:"aum,omitempty"`
	Description        string `json:"description,omitempty"`
}

// InternationalReport covers international and null-country analysis
type InternationalReport struct {
	Entities    []EntityBucket      `json:"entities"`
	Connections []ConnectionRecord  `json:"connections,omitempty"`
	Breakdown   ConnectionBreakdown `json:"breakdown"`
	Compliance  []ComplianceEntity  `json:"compliance,omitempty"`
}

// PositionReport covers employee / board-member set analysis
type PositionReport struct {
	TotalPositions       int `json:"total_positions"`
	TotalBoardSeats      int `json:"total_board_seats"`
	PositionsAtCompanies int `json:"positions_at_companies"`

	UniquePositionPersons int `json:"unique_position_persons"`
	UniqueBoardPersons    int `json:"unique_board_persons"`
	EmployeeBoardMembers  int `json:"employee_board_members"` // Both an employee and a board member
	OnlyEmployees         int `json:"only_employees"`
	OnlyBoardMembers      int `json:"only_board_members"`

	EntityTypeDist []CountItem    `json:"entity_type_dist,omitempty"`
	TopByPositions []RankedEntity `json:"top_by_positions,omitempty"`
	TopBoardSeats  []RankedEntity `json:"top_board_seats,omitempty"` // By number of board positions
}

// IntermediaryCounts counts the first-hop entities of the traversal
type IntermediaryCounts struct {
	Investors        int `json:"investors"`
	ServiceProviders int `json:"service_providers"`
	LeadPartners     int `json:"lead_partners"`
	Affiliates       int `json:"affiliates"`
	Total            int `json:"total"` // Distinct union, not the sum
}

// RelationPeople counts positions and unique people per relation kind
type RelationPeople struct {
	Relation     string `json:"relation"`
	Positions    int    `json:"positions"`
	UniquePeople int    `json:"unique_people"`
}

// SecondLevelReport covers the depth-2 traversal
type SecondLevelReport struct {
	Intermediaries IntermediaryCounts `json:"intermediaries"`
	Positions      int                `json:"positions"`     // Positions held at intermediaries
	UniquePeople   int                `json:"unique_people"` // Deduplicated by PersonID
	ByEntityType   []CountItem        `json:"by_entity_type,omitempty"`
	ByRelation     []RelationPeople   `json:"by_relation,omitempty"`

	InternationalPositions int `json:"international_positions"`
	InternationalPeople    int `json:"international_people"`
}

// SummaryRow is one company's row of the wide summary table
type SummaryRow struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Website     string `json:"website,omitempty"`

	Employees            int `json:"employees"`
	EmployeeBoardMembers int `json:"employee_board_members"`
	OtherBoardMembers    int `json:"other_board_members"`

	EmployeeAffiliations     int `json:"employee_affiliations"`
	IntlEmployeeAffiliations int `json:"intl_employee_affiliations"`
	NullEmployeeAffiliations int `json:"null_employee_affiliations"`

	IntlBoardMembers int `json:"intl_board_members"`
	NullBoardMembers int `json:"null_board_members"`

	Affiliates                int `json:"affiliates"`
	AffiliateAffiliations     int `json:"affiliate_affiliations"`
	IntlAffiliateAffiliations int `json:"intl_affiliate_affiliations"`
	NullAffiliateAffiliations int `json:"null_affiliate_affiliations"`
	IntlAffiliates            int `json:"intl_affiliates"`

	LeadPartners                int `json:"lead_partners"`
	LeadPartnerAffiliations     int `json:"lead_partner_affiliations"`
	IntlLeadPartnerAffiliations int `json:"intl_lead_partner_affiliations"`
	NullLeadPartnerAffiliations int `json:"null_lead_partner_affiliations"`
	IntlLeadPartners            int `json:"intl_lead_partners"`

	Investors                int `json:"investors"`
	InvestorAffiliations     int `json:"investor_affiliations"`
	IntlInvestorAffiliations int `json:"intl_investor_affiliations"`
	NullInvestorAffiliations int `json:"null_investor_affiliations"`
	IntlInvestors            int `json:"intl_investors"`
	NullInvestors            int `json:"null_investors"`

	ServiceProviders             int `json:"service_providers"`
	ServiceProviderAffiliations  int `json:"service_provider_affiliations"`
	IntlServProviderAffiliations int `json:"intl_service_provider_affiliations"`
	NullServProviderAffiliations int `json:"null_service_provider_affiliations"`
	IntlServiceProviders         int `json:"intl_service_providers"`
	NullServiceProviders         int `json:"null_service_providers"`

	LimitedPartnerAffiliations     int `json:"limited_partner_affiliations"`
	IntlLimitedPartnerAffiliations int `json:"intl_limited_partner_affiliations"`
	NullLimitedPartnerAffiliations int `json:"null_limited_partner_affiliations"`

	SecondLevelPeople     int `json:"second_level_people"`
	IntlSecondLevelPeople int `json:"intl_second_level_people"`
	NullSecondLevelPeople int `json:"null_second_level_people"`

	DealLevelPeople     int `json:"deal_level_people"`
	IntlDealLevelPeople int `json:"intl_deal_level_people"`
	NullDealLevelPeople int `json:"null_deal_level_people"`

	Deals   int `json:"deals"`
	Patents int `json:"patents"`
}

// LLMSummary contains the optional LLM-generated narrative.
// It is generated after every number is final and never feeds back.
type LLMSummary struct {
	Enabled       bool     `json:"enabled"`
	Provider      string   `json:"provider,omitempty"`
	Model         string   `json:"model,omitempty"`
	StrictNumbers bool     `json:"strict_numbers"`
	SummaryMD     string   `json:"summary_md,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}
