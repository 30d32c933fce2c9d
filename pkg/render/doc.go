// Package render turns a harvested model.Export into JSON, YAML, plain text
// or the output of a user-supplied pongo2 template.
package render
