// Package testutil provides a small GEDCOM X data set shared by the tests:
// one person with parents, spouse and child, and the four relationships that
// link them.
package testutil

import (
	"encoding/xml"
	"reflect"

	"github.com/shopspring/decimal"

	"github.com/noders-team/go-gedcomx/pkg/model"
)

const (
	PrimaryPersonID = "98765"
	PrimaryEntry    = "persons/" + PrimaryPersonID
	CreatedBy       = "FamilySearch Platform API 0.1"
)

func person(id, gender, fullText string) *model.Person {
	return &model.Person{
		ID:     id,
		Gender: &model.Gender{Type: gender},
		Names: []model.Name{{
			PrimaryForm: &model.NameForm{FullText: fullText},
		}},
	}
}

func relationship(id, relType, person1, person2 string) *model.Relationship {
	return &model.Relationship{
		ID:      id,
		Type:    relType,
		Person1: &model.ResourceReference{Resource: "#" + person1},
		Person2: &model.ResourceReference{Resource: "#" + person2},
	}
}

// ExampleResources returns a fresh copy of the data set: five persons followed
// by four relationships.
func ExampleResources() []any {
	primary := person(PrimaryPersonID, model.GenderMale, "Israel Heaton")
	primary.PersistentID = "http://familysearch.org/persons/" + PrimaryPersonID
	primary.Names[0].Type = model.NameTypeBirthName
	lat := decimal.RequireFromString("37.3325")
	lng := decimal.RequireFromString("-112.636")
	primary.Facts = []model.Fact{
		{
			Type:  model.FactBirth,
			Date:  &model.Date{Original: "30 January 1880"},
			Place: &model.Place{Original: "Orderville, UT", Latitude: &lat, Longitude: &lng},
		},
		{
			Type:  model.FactDeath,
			Date:  &model.Date{Original: "29 August 1936"},
			Place: &model.Place{Original: "Kanab, Kane, UT"},
		},
	}

	father := person("87654", model.GenderMale, "Jonathan Heaton")
	mother := person("76543", model.GenderFemale, "Clarissa Hoyt")
	spouse := person("65432", model.GenderFemale, "Charlotte Cox")
	child := person("54321", model.GenderMale, "Alma Heaton")

	return []any{
		primary,
		father,
		mother,
		spouse,
		child,
		relationship("RRRR-F01", model.RelationshipParentChild, father.ID, primary.ID),
		relationship("RRRR-M01", model.RelationshipParentChild, mother.ID, primary.ID),
		relationship("RRRR-S01", model.RelationshipCouple, primary.ID, spouse.ID),
		relationship("RRRR-C01", model.RelationshipParentChild, primary.ID, child.ID),
	}
}

// EntryName returns the archive entry name the tests store a resource under:
// "persons/<id>" or "relationships/<id>". It returns "" for other types.
func EntryName(resource any) string {
	switch r := resource.(type) {
	case *model.Person:
		return "persons/" + r.ID
	case *model.Relationship:
		return "relationships/" + r.ID
	}
	return ""
}

// ResourceID returns the id of a person or relationship, or "" for other
// types.
func ResourceID(resource any) string {
	switch r := resource.(type) {
	case *model.Person:
		return r.ID
	case *model.Relationship:
		return r.ID
	}
	return ""
}

// ClearXMLName returns a shallow copy of a struct pointer with its XMLName
// field zeroed, so resources decoded from XML compare equal to ones built in
// code. Other values are returned unchanged.
func ClearXMLName(resource any) any {
	rv := reflect.ValueOf(resource)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return resource
	}
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	if f := cp.Elem().FieldByName("XMLName"); f.IsValid() && f.Type() == reflect.TypeOf(xml.Name{}) {
		f.Set(reflect.Zero(f.Type()))
	}
	return cp.Interface()
}
