package main

// Exit codes used by every command.
const (
	ExitSuccess         = 0 // Success
	ExitError           = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError     = 2 // Configuration error (missing workspace, invalid paths)
	ExitDataError       = 3 // Data error (missing columns, unreadable template, validation failure)
	ExitGenerationError = 4 // Generation service call failed
	ExitExportError     = 5 // Document serialization/write failed
)
