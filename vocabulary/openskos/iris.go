package openskos

import "github.com/c360studio/semstreams/vocabulary"

// Namespaces used by the service.
const (
	RDFNamespace      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	SkosNamespace     = "http://www.w3.org/2004/02/skos/core#"
	SkosXLNamespace   = "http://www.w3.org/2008/05/skos-xl#"
	DcTermsNamespace  = "http://purl.org/dc/terms/"
	FoafNamespace     = "http://xmlns.com/foaf/0.1/"
	VCardNamespace    = "http://www.w3.org/2006/vcard/ns#"
	OrgNamespace      = "http://www.w3.org/ns/org#"
	OpenSkosNamespace = "http://openskos.org/xmlns#"
)

// Class IRIs, one per entity type.
const (
	// ClassConcept is a SKOS concept.
	ClassConcept = SkosNamespace + "Concept"

	// ClassConceptScheme is a SKOS concept scheme.
	ClassConceptScheme = SkosNamespace + "ConceptScheme"

	// ClassLabel is a SKOS-XL label resource.
	ClassLabel = SkosXLNamespace + "Label"

	// ClassSet is a publication set grouping concept schemes.
	ClassSet = OpenSkosNamespace + "Set"

	// ClassInstitution is a tenant organization.
	ClassInstitution = OrgNamespace + "FormalOrganization"

	// ClassUser is a person with an account in a tenant.
	ClassUser = FoafNamespace + "Person"
)

// Predicate IRIs. SKOS labels, relations and Dublin Core title and identifier come
// from the semstreams standards table.
const (
	RDFType = RDFNamespace + "type"

	SkosPrefLabel    = vocabulary.SkosPrefLabel
	SkosAltLabel     = vocabulary.SkosAltLabel
	SkosHiddenLabel  = SkosNamespace + "hiddenLabel"
	SkosNotation     = SkosNamespace + "notation"
	SkosDefinition   = SkosNamespace + "definition"
	SkosScopeNote    = SkosNamespace + "scopeNote"
	SkosNote         = SkosNamespace + "note"
	SkosExample      = SkosNamespace + "example"
	SkosInScheme     = SkosNamespace + "inScheme"
	SkosTopConceptOf = SkosNamespace + "topConceptOf"
	SkosHasTop       = SkosNamespace + "hasTopConcept"
	SkosBroader      = vocabulary.SkosBroader
	SkosNarrower     = vocabulary.SkosNarrower
	SkosRelated      = vocabulary.SkosRelated

	SkosXLPrefLabel   = SkosXLNamespace + "prefLabel"
	SkosXLAltLabel    = SkosXLNamespace + "altLabel"
	SkosXLHiddenLabel = SkosXLNamespace + "hiddenLabel"
	SkosXLLiteralForm = SkosXLNamespace + "literalForm"

	DcTitle         = vocabulary.DcTitle
	DcIdentifier    = vocabulary.DcIdentifier
	DcDescription   = DcTermsNamespace + "description"
	DcCreator       = DcTermsNamespace + "creator"
	DcPublisher     = DcTermsNamespace + "publisher"
	DcLicense       = DcTermsNamespace + "license"
	DcDateSubmitted = DcTermsNamespace + "dateSubmitted"
	DcModified      = DcTermsNamespace + "modified"

	FoafName     = FoafNamespace + "name"
	FoafMbox     = FoafNamespace + "mbox"
	FoafHomepage = FoafNamespace + "homepage"

	VCardOrganizationName = VCardNamespace + "organization-name"
	VCardEmail            = VCardNamespace + "email"
	VCardURL              = VCardNamespace + "url"

	OpenSkosUUID           = OpenSkosNamespace + "uuid"
	OpenSkosTenant         = OpenSkosNamespace + "tenant"
	OpenSkosSet            = OpenSkosNamespace + "set"
	OpenSkosStatus         = OpenSkosNamespace + "status"
	OpenSkosCode           = OpenSkosNamespace + "code"
	OpenSkosRole           = OpenSkosNamespace + "role"
	OpenSkosAllowOAI       = OpenSkosNamespace + "allow_oai"
	OpenSkosOAIBaseURL     = OpenSkosNamespace + "OAI_baseURL"
	OpenSkosConceptBaseURI = OpenSkosNamespace + "conceptBaseUri"
	OpenSkosEnableStatuses = OpenSkosNamespace + "enableStatussesSystem"
	OpenSkosEnableSkosXL   = OpenSkosNamespace + "enableSkosXl"
)
