// Formcheck validates form submissions against form definitions from the
// command line, without starting the HTTP server.
//
// Usage:
//
//	# List the definitions in ./forms
//	formcheck forms
//
//	# Validate a JSON or YAML submission
//	formcheck validate signup --input submission.json
//
//	# Validate from stdin, text output
//	cat submission.yaml | formcheck validate signup --format text
//
//	# Try a rule expression on a single value
//	formcheck check "required|length:3-10" "hello"
//
//	# List built-in rules
//	formcheck rules
package main

func main() {
	Execute()
}
