package models

import "database/sql"

// Column is the metadata of a single table column.
type Column struct {
	Field   string
	Type    string
	Null    string
	Default sql.NullString
	Key     string
	Comment sql.NullString
}

// FlexFormReplacement replaces Old with New inside FlexForm XML.
type FlexFormReplacement struct {
	Old string
	New string
}
