package logging

// Field names for structured logging.
const (
	FieldError    = "error"
	FieldInput    = "input"
	FieldOutput   = "output"
	FieldConfig   = "config"
	FieldEngine   = "engine"
	FieldStyle    = "style"
	FieldStage    = "stage"
	FieldDuration = "duration"
	FieldBytes    = "bytes"
	FieldFiles    = "files"
	FieldWorkers  = "workers"
	FieldFailed   = "failed"
	FieldVersion  = "version"
	FieldProcs    = "gomaxprocs"
)
