package logging

// Structured field names.
const (
	FieldError  = "error"
	FieldFile   = "file"
	FieldDir    = "dir"
	FieldUnit   = "unit"
	FieldSource = "source"
	FieldOutput = "output"
	FieldCount  = "count"

	FieldProcessed = "processed"
	FieldFailed    = "failed"
	FieldWeeks     = "weeks"
)
