package main

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

var validOutputs = []string{OutputTable, OutputJSON}

// Process exit codes.
const (
	ExitFailure    = 1
	ExitBadRequest = 2
	ExitNotFound   = 3
	ExitConflict   = 4
)
