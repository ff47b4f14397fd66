package model

const (
	ConclusionV1XMLMediaType  = "application/x-gedcomx-conclusion-v1+xml"
	ConclusionV1JSONMediaType = "application/x-gedcomx-conclusion-v1+json"
	ConclusionV1YAMLMediaType = "application/x-gedcomx-conclusion-v1+yaml"
	ProtobufMediaType         = "application/x-protobuf"
)

const (
	ConclusionNamespace = "http://gedcomx.org/conclusion/v1/"
	FoafNamespace       = "http://xmlns.com/foaf/0.1/"
	RDFNamespace        = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	DCTermsNamespace    = "http://purl.org/dc/terms/"
	DCElementsNamespace = "http://purl.org/dc/elements/1.1/"
	OAIDCNamespace      = "http://www.openarchives.org/OAI/2.0/oai_dc/"
)

// Known type URIs.
const (
	GenderMale   = "http://gedcomx.org/Male"
	GenderFemale = "http://gedcomx.org/Female"

	NameTypeBirthName = "http://gedcomx.org/BirthName"

	FactBirth = "http://gedcomx.org/Birth"
	FactDeath = "http://gedcomx.org/Death"

	RelationshipParentChild = "http://gedcomx.org/ParentChild"
	RelationshipCouple      = "http://gedcomx.org/Couple"
)
