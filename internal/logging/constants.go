package logging

// Standardized field names for structured logging. Keeping them in one place
// makes log output consistent and easy to filter.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldFormat     = "format"
	FieldLine       = "line"
	FieldCount      = "count"
	FieldErrorCount = "error_count"
	FieldCategory   = "category"
	FieldRule       = "rule"
	FieldAccount    = "account"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
)
