// Package prompt holds the interactive pieces of the CLI: choosing a form
// and asking for a missing password. Terminal access goes through Driver;
// NewSurveyDriver is the real implementation.
package prompt
