package model

// BeneficialOwnerFact is one structured ownership fact extracted from a
// founder string. Nullable fields are pointers: nil means the field could
// not be resolved (or the category legitimately has no such field).
type BeneficialOwnerFact struct {
	CompanyID      string        `json:"company_id"`
	SourceCategory Category      `json:"source_category"`
	Flags          CategoryFlags `json:"flags,omitempty"`

	Name        *string    `json:"name"`
	Country     *string    `json:"country"`      // Canonical name when resolvable, else raw form
	CountryCode *string    `json:"country_code"` // ISO 3166-1 alpha-2 when resolvable
	Address     *string    `json:"address"`
	EntityType  EntityType `json:"entity_type"`

	// Confidence is in [0, 1]. Unparsed facts always carry 0.
	Confidence float64 `json:"confidence"`

	// RawText is the full original founder string, kept for audit.
	RawText string `json:"raw_text"`

	// Rule records which categorizer rule or model label produced this
	// fact (e.g. "phrase:no-owner", "model:name").
	Rule string `json:"rule,omitempty"`
}

// CompanyRecord is one company from the registry feed, as handed over by
// the loading collaborator.
type CompanyRecord struct {
	EDRPOU   string   `json:"edrpou"`
	Name     string   `json:"name"`
	Founders []string `json:"founders"`
}

// CompanyResult is the ordered list of facts extracted for one company.
// Order follows the input founders list, then split order within a string.
type CompanyResult struct {
	EDRPOU string                `json:"edrpou"`
	Name   string                `json:"name"`
	Facts  []BeneficialOwnerFact `json:"beneficial_owners"`
}
