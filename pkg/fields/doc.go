// Package fields classifies raw field definitions returned by the upstream
// form service into model.FieldDefinition values. Classification never fails:
// unsupported classifier codes produce a FieldKindUnknown definition together
// with a warning in the returned Result.
package fields
