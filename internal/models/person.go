// Package models contains domain types for the roster manager.
package models

import "strings"

// NullMarker is the text a missing CSV cell is coerced to during ingestion.
const NullMarker = "nan"

// Person holds the attributes of one roster entry. Every attribute is text,
// including Salary, which is only interpreted as a number by salary search.
type Person struct {
	State    string `json:"State" msgpack:"State"`
	Salary   string `json:"Salary" msgpack:"Salary"`
	Grade    string `json:"Grade" msgpack:"Grade"`
	Room     string `json:"Room" msgpack:"Room"`
	Telnum   string `json:"Telnum" msgpack:"Telnum"`
	Picture  string `json:"Picture" msgpack:"Picture"`
	Keywords string `json:"Keywords" msgpack:"Keywords"`
}

// HasPicture reports whether a photo filename is assigned.
func (p Person) HasPicture() bool {
	return !IsBlank(p.Picture)
}

// PersonUpdate carries the editable fields of a Person. Name and Picture are
// not editable.
type PersonUpdate struct {
	State    string `form:"state"`
	Salary   string `form:"salary"`
	Grade    string `form:"grade"`
	Room     string `form:"room"`
	Telnum   string `form:"telnum"`
	Keywords string `form:"keywords"`
}

// Apply overwrites the editable fields of p.
func (u PersonUpdate) Apply(p *Person) {
	p.State = u.State
	p.Salary = u.Salary
	p.Grade = u.Grade
	p.Room = u.Room
	p.Telnum = u.Telnum
	p.Keywords = u.Keywords
}

// Entry pairs a person with the name it is stored under.
type Entry struct {
	Name   string `json:"name" msgpack:"name"`
	Person Person `json:"data" msgpack:"data"`
}

// SearchResult is one row of a search response.
type SearchResult = Entry

// IsBlank reports whether an attribute value carries no information: empty,
// whitespace only, or the ingestion null marker.
func IsBlank(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == NullMarker
}
