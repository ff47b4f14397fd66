package model

import "encoding/xml"

// FoafPerson describes a contributor.
type FoafPerson struct {
	XMLName  xml.Name `xml:"http://xmlns.com/foaf/0.1/ Person" json:"-" yaml:"-"`
	ID       string   `xml:"id,attr,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Name     string   `xml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"`
	Mbox     string   `xml:"mbox,omitempty" json:"mbox,omitempty" yaml:"mbox,omitempty"`
	Homepage string   `xml:"homepage,omitempty" json:"homepage,omitempty" yaml:"homepage,omitempty"`
}

// Description is an RDF description of a resource using Dublin Core terms.
type Description struct {
	XMLName  xml.Name `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# Description" json:"-" yaml:"-"`
	ID       string   `xml:"id,attr,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	About    string   `xml:"about,attr,omitempty" json:"about,omitempty" yaml:"about,omitempty"`
	Title    string   `xml:"http://purl.org/dc/terms/ title,omitempty" json:"title,omitempty" yaml:"title,omitempty"`
	Creator  string   `xml:"http://purl.org/dc/terms/ creator,omitempty" json:"creator,omitempty" yaml:"creator,omitempty"`
	Source   string   `xml:"http://purl.org/dc/terms/ source,omitempty" json:"source,omitempty" yaml:"source,omitempty"`
	Modified string   `xml:"http://purl.org/dc/terms/ modified,omitempty" json:"modified,omitempty" yaml:"modified,omitempty"`
}

// DublinCoreRecord is a flat oai_dc record of Dublin Core elements.
type DublinCoreRecord struct {
	XMLName     xml.Name `xml:"http://www.openarchives.org/OAI/2.0/oai_dc/ dc" json:"-" yaml:"-"`
	ID          string   `xml:"id,attr,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Title       []string `xml:"http://purl.org/dc/elements/1.1/ title,omitempty" json:"title,omitempty" yaml:"title,omitempty"`
	Creator     []string `xml:"http://purl.org/dc/elements/1.1/ creator,omitempty" json:"creator,omitempty" yaml:"creator,omitempty"`
	Subject     []string `xml:"http://purl.org/dc/elements/1.1/ subject,omitempty" json:"subject,omitempty" yaml:"subject,omitempty"`
	Description []string `xml:"http://purl.org/dc/elements/1.1/ description,omitempty" json:"description,omitempty" yaml:"description,omitempty"`
	Date        []string `xml:"http://purl.org/dc/elements/1.1/ date,omitempty" json:"date,omitempty" yaml:"date,omitempty"`
	Identifier  []string `xml:"http://purl.org/dc/elements/1.1/ identifier,omitempty" json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Language    []string `xml:"http://purl.org/dc/elements/1.1/ language,omitempty" json:"language,omitempty" yaml:"language,omitempty"`
}
