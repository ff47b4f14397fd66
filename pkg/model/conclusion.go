// Package model holds the GEDCOM X resource types that every binding context
// knows about: conclusion persons and relationships, FOAF persons, Dublin Core
// records and RDF descriptions.
package model

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

type Person struct {
	XMLName      xml.Name `xml:"http://gedcomx.org/conclusion/v1/ person" json:"-" yaml:"-"`
	ID           string   `xml:"id,attr,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	PersistentID string   `xml:"persistentId,omitempty" json:"persistentId,omitempty" yaml:"persistentId,omitempty"`
	Gender       *Gender  `xml:"gender,omitempty" json:"gender,omitempty" yaml:"gender,omitempty"`
	Names        []Name   `xml:"name,omitempty" json:"names,omitempty" yaml:"names,omitempty"`
	Facts        []Fact   `xml:"fact,omitempty" json:"facts,omitempty" yaml:"facts,omitempty"`
}

type Relationship struct {
	XMLName xml.Name           `xml:"http://gedcomx.org/conclusion/v1/ relationship" json:"-" yaml:"-"`
	ID      string             `xml:"id,attr,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Type    string             `xml:"type,attr,omitempty" json:"type,omitempty" yaml:"type,omitempty"`
	Person1 *ResourceReference `xml:"person1,omitempty" json:"person1,omitempty" yaml:"person1,omitempty"`
	Person2 *ResourceReference `xml:"person2,omitempty" json:"person2,omitempty" yaml:"person2,omitempty"`
	Facts   []Fact             `xml:"fact,omitempty" json:"facts,omitempty" yaml:"facts,omitempty"`
}

// ResourceReference points at another resource, usually "#<id>".
type ResourceReference struct {
	Resource string `xml:"resource,attr" json:"resource" yaml:"resource"`
}

type Gender struct {
	Type string `xml:"type,attr,omitempty" json:"type,omitempty" yaml:"type,omitempty"`
}

type Name struct {
	Type        string    `xml:"type,attr,omitempty" json:"type,omitempty" yaml:"type,omitempty"`
	PrimaryForm *NameForm `xml:"primaryForm,omitempty" json:"primaryForm,omitempty" yaml:"primaryForm,omitempty"`
}

type NameForm struct {
	FullText string `xml:"fullText,omitempty" json:"fullText,omitempty" yaml:"fullText,omitempty"`
}

type Fact struct {
	Type  string `xml:"type,attr,omitempty" json:"type,omitempty" yaml:"type,omitempty"`
	Date  *Date  `xml:"date,omitempty" json:"date,omitempty" yaml:"date,omitempty"`
	Place *Place `xml:"place,omitempty" json:"place,omitempty" yaml:"place,omitempty"`
}

type Date struct {
	Original string `xml:"original,omitempty" json:"original,omitempty" yaml:"original,omitempty"`
}

// Place is a place as recorded, optionally with WGS84 coordinates kept at
// their original precision.
type Place struct {
	Original  string           `xml:"original,omitempty" json:"original,omitempty" yaml:"original,omitempty"`
	Latitude  *decimal.Decimal `xml:"latitude,omitempty" json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude *decimal.Decimal `xml:"longitude,omitempty" json:"longitude,omitempty" yaml:"longitude,omitempty"`
}
