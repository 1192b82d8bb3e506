// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jflow

// Token is the type of a structural or value token produced by a Parser and
// consumed by a Generator.
type Token byte

// Constants defining the valid Token values. NotAvailable is both the
// initial state of a fresh Parser/Generator and the sentinel returned at
// the end of a well-formed stream.
const (
	NotAvailable Token = iota
	StartObject
	EndObject
	StartArray
	EndArray
	FieldName
	String
	Integer
	Float
	True
	False
	Null
)

var tokenStr = [...]string{
	NotAvailable: "not available",
	StartObject:  "start object",
	EndObject:    "end object",
	StartArray:   "start array",
	EndArray:     "end array",
	FieldName:    "field name",
	String:       "string",
	Integer:      "integer",
	Float:        "float",
	True:         "true",
	False:        "false",
	Null:         "null",
}

func (t Token) String() string {
	v := int(t)
	if v < 0 || v >= len(tokenStr) {
		return "invalid token"
	}
	return tokenStr[v]
}
