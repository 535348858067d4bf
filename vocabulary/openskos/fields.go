package openskos

// EntityType names an entity type of the service.
type EntityType string

// Entity types.
const (
	EntityTypeConcept       EntityType = "concept"
	EntityTypeConceptScheme EntityType = "concept_scheme"
	EntityTypeInstitution   EntityType = "institution"
	EntityTypeLabel         EntityType = "label"
	EntityTypeSet           EntityType = "set"
	EntityTypeUser          EntityType = "user"
)

// Binding ties a field of an entity type to its graph predicate.
type Binding struct {
	// Field is the local field name.
	Field string
	// IRI is the predicate stored in the graph.
	IRI string
	// DataType is the object type: string, lang_string, entity_id, datetime, bool.
	DataType string
	// Description documents the field.
	Description string
}

// ClassIRIs maps each entity type to its rdf:type class.
var ClassIRIs = map[EntityType]string{
	EntityTypeConcept:       ClassConcept,
	EntityTypeConceptScheme: ClassConceptScheme,
	EntityTypeInstitution:   ClassInstitution,
	EntityTypeLabel:         ClassLabel,
	EntityTypeSet:           ClassSet,
	EntityTypeUser:          ClassUser,
}

// EntityTypes lists the entity types in a stable order.
var EntityTypes = []EntityType{
	EntityTypeConcept,
	EntityTypeConceptScheme,
	EntityTypeInstitution,
	EntityTypeLabel,
	EntityTypeSet,
	EntityTypeUser,
}

var typeBinding = Binding{"type", RDFType, "entity_id", "Class of the resource"}
var uuidBinding = Binding{"uuid", OpenSkosUUID, "string", "Stable UUID of the resource"}
var tenantBinding = Binding{"tenant", OpenSkosTenant, "entity_id", "Owning institution"}
var modifiedBinding = Binding{"modified", DcModified, "datetime", "Last modification time"}

// ConceptFields is the concept field table.
var ConceptFields = []Binding{
	typeBinding,
	uuidBinding,
	{"prefLabel", SkosPrefLabel, "lang_string", "Preferred label"},
	{"altLabel", SkosAltLabel, "lang_string", "Alternative label"},
	{"hiddenLabel", SkosHiddenLabel, "lang_string", "Hidden label used for search"},
	{"notation", SkosNotation, "string", "Notation within the scheme"},
	{"definition", SkosDefinition, "lang_string", "Definition"},
	{"scopeNote", SkosScopeNote, "lang_string", "Scope note"},
	{"note", SkosNote, "lang_string", "General note"},
	{"example", SkosExample, "lang_string", "Usage example"},
	{"inScheme", SkosInScheme, "entity_id", "Concept scheme membership"},
	{"topConceptOf", SkosTopConceptOf, "entity_id", "Scheme this concept is a top concept of"},
	{"broader", SkosBroader, "entity_id", "Broader concept"},
	{"narrower", SkosNarrower, "entity_id", "Narrower concept"},
	{"related", SkosRelated, "entity_id", "Related concept"},
	{"xlPrefLabel", SkosXLPrefLabel, "entity_id", "SKOS-XL preferred label resource"},
	{"xlAltLabel", SkosXLAltLabel, "entity_id", "SKOS-XL alternative label resource"},
	{"xlHiddenLabel", SkosXLHiddenLabel, "entity_id", "SKOS-XL hidden label resource"},
	{"status", OpenSkosStatus, "string", "Editorial status"},
	{"set", OpenSkosSet, "entity_id", "Publication set"},
	tenantBinding,
	{"creator", DcCreator, "entity_id", "Creating user"},
	{"dateSubmitted", DcDateSubmitted, "datetime", "Submission time"},
	modifiedBinding,
}

// ConceptSchemeFields is the concept scheme field table.
var ConceptSchemeFields = []Binding{
	typeBinding,
	uuidBinding,
	{"title", DcTitle, "lang_string", "Scheme title"},
	{"description", DcDescription, "lang_string", "Scheme description"},
	{"hasTopConcept", SkosHasTop, "entity_id", "Top concept"},
	{"creator", DcCreator, "entity_id", "Creating user"},
	{"set", OpenSkosSet, "entity_id", "Publication set"},
	tenantBinding,
	modifiedBinding,
}

// InstitutionFields is the institution field table.
var InstitutionFields = []Binding{
	typeBinding,
	uuidBinding,
	{"code", OpenSkosCode, "string", "Short tenant code"},
	{"name", VCardOrganizationName, "string", "Organization name"},
	{"email", VCardEmail, "string", "Contact email"},
	{"website", VCardURL, "entity_id", "Organization website"},
	{"enableStatusesSystem", OpenSkosEnableStatuses, "bool", "Whether editorial statuses are enforced"},
	{"enableSkosXl", OpenSkosEnableSkosXL, "bool", "Whether SKOS-XL labels are maintained"},
}

// LabelFields is the SKOS-XL label field table.
var LabelFields = []Binding{
	typeBinding,
	uuidBinding,
	{"literalForm", SkosXLLiteralForm, "lang_string", "Lexical form of the label"},
	tenantBinding,
	modifiedBinding,
}

// SetFields is the publication set field table.
var SetFields = []Binding{
	typeBinding,
	uuidBinding,
	{"code", OpenSkosCode, "string", "Short set code"},
	{"title", DcTitle, "lang_string", "Set title"},
	{"description", DcDescription, "lang_string", "Set description"},
	{"publisher", DcPublisher, "entity_id", "Publishing institution"},
	{"license", DcLicense, "entity_id", "License of the set"},
	{"allowOai", OpenSkosAllowOAI, "bool", "Whether OAI-PMH harvesting is allowed"},
	{"oaiBaseUrl", OpenSkosOAIBaseURL, "entity_id", "OAI-PMH endpoint"},
	{"conceptBaseUri", OpenSkosConceptBaseURI, "entity_id", "Namespace for new concepts"},
	{"webPage", FoafHomepage, "entity_id", "Home page"},
	tenantBinding,
}

// UserFields is the user field table.
var UserFields = []Binding{
	typeBinding,
	uuidBinding,
	{"name", FoafName, "string", "Display name"},
	{"email", FoafMbox, "string", "Email address"},
	{"role", OpenSkosRole, "string", "Role within the tenant"},
	tenantBinding,
}

// Fields returns the field table of an entity type.
func Fields(t EntityType) []Binding {
	switch t {
	case EntityTypeConcept:
		return ConceptFields
	case EntityTypeConceptScheme:
		return ConceptSchemeFields
	case EntityTypeInstitution:
		return InstitutionFields
	case EntityTypeLabel:
		return LabelFields
	case EntityTypeSet:
		return SetFields
	case EntityTypeUser:
		return UserFields
	default:
		return nil
	}
}
