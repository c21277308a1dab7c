package model

// Category labels the kind of ownership assertion a founder string makes.
// It is always paired with CategoryFlags: a string can assert several
// signals at once (e.g. "no beneficial owner" padded with a founder name),
// so a bare enum is not enough.
type Category string

const (
	// CategoryNoBeneficialOwner covers explicit statements that no
	// beneficial owner exists or could be established.
	CategoryNoBeneficialOwner Category = "no_beneficial_owner"

	// CategoryOwnerSameAsFounder covers statements that the founder is
	// itself the beneficial owner, without naming anyone.
	CategoryOwnerSameAsFounder Category = "owner_same_as_founder"

	// CategoryNamedIndividualOwner covers strings naming a natural person.
	CategoryNamedIndividualOwner Category = "named_individual_owner"

	// CategoryLegalEntityOwner covers strings naming a company or other
	// legal entity (often foreign) as the owner.
	CategoryLegalEntityOwner Category = "legal_entity_owner"

	// CategoryMultipleOwners covers strings asserting several owners in
	// one sentence.
	CategoryMultipleOwners Category = "multiple_owners"

	// CategoryUnparsed marks strings no rule matched and the model could
	// not classify above the confidence threshold. Raw text is preserved
	// for manual review.
	CategoryUnparsed Category = "unparsed"
)

// CategoryFlags are auxiliary boolean signals computed independently of
// the primary category. The primary tag follows first-match precedence;
// the flags record everything the string asserted.
type CategoryFlags struct {
	AssertsNoOwner       bool `json:"asserts_no_owner,omitempty"`
	AssertsSameAsFounder bool `json:"asserts_same_as_founder,omitempty"`
	MentionsForeignEntity bool `json:"mentions_foreign_entity,omitempty"`
	MentionsMultiple     bool `json:"mentions_multiple,omitempty"`
}

// EntityType tells whether the owner is a natural person or an organization.
type EntityType string

const (
	EntityIndividual  EntityType = "individual"
	EntityLegalEntity EntityType = "legal_entity"
	EntityUnknown     EntityType = "unknown"
)
