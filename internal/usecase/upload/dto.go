package upload

import "io"

// Request is the upload form. All fields except CargoID are required;
// dimensions stay strings since no numeric range is enforced anywhere in
// the workflow.
type Request struct {
	FileName  string `validate:"required"`
	File      io.Reader
	Region    string `validate:"required"`
	Country   string `validate:"required"`
	Warehouse string `validate:"required"`
	StageName string `validate:"required,stage_name"`
	Length    string `validate:"required"`
	Breadth   string `validate:"required"`
	Height    string `validate:"required"`
	// CargoID attaches the upload to an existing cargo; empty lets the
	// backend mint a new identifier.
	CargoID string
}

// Result merges the backend's response with the submitted form fields and
// tells the client where to navigate.
type Result struct {
	CargoID    string                 `json:"cargo_id"`
	StageName  string                 `json:"stage_name"`
	RedirectTo string                 `json:"redirect_to"`
	Details    map[string]interface{} `json:"details"`
}
