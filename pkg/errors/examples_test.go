package errors_test

import (
	"fmt"

	"github.com/agentstation/hostlists/pkg/errors"
)

// Example demonstrates basic error creation and checking.
func Example() {
	// Create a not found error
	err := &errors.NotFoundError{
		Resource: "filter",
		ID:       "404_filter",
	}

	// Check error type
	if errors.IsNotFound(err) {
		fmt.Println("Resource not found")
	}

	// Output: Resource not found
}

// Example_compileError demonstrates compiler failure handling.
func Example_compileError() {
	err := &errors.CompileError{
		FilterID: "1_popular",
		Output:   "Error: failed to download source",
		Err:      fmt.Errorf("exit status 1"),
	}

	if errors.IsCompileFailed(err) {
		fmt.Printf("Filter %s failed to compile\n", err.FilterID)
	}

	// Output: Filter 1_popular failed to compile
}

// Example_assetError shows icon validation errors.
func Example_assetError() {
	err := &errors.AssetError{
		ServiceID: "discord",
		Asset:     "icon",
		Message:   "root element is not svg",
	}

	fmt.Println(err.Error())

	// Output: invalid icon asset for service discord: root element is not svg
}

// Example_errorWrapping demonstrates error wrapping patterns.
func Example_errorWrapping() {
	// Original error
	originalErr := fmt.Errorf("no such file or directory")

	// Wrap with IO error
	ioErr := errors.WrapIO("read", "filters/1/metadata.json", originalErr)

	// Wrap with resource error
	_ = &errors.ResourceError{
		Operation: "load",
		Resource:  "filter",
		ID:        "1",
		Message:   "descriptor missing",
		Err:       ioErr,
	}

	fmt.Println("Resource error occurred")

	// Output: Resource error occurred
}

// Example_validationError shows input validation errors.
func Example_validationError() {
	// Validate input
	homepage := ""
	if homepage == "" {
		err := &errors.ValidationError{
			Field:   "homepage",
			Value:   homepage,
			Message: "homepage cannot be empty",
		}
		fmt.Println(err.Error())
	}

	// Output: validation failed for field homepage: homepage cannot be empty
}

// Example_processError demonstrates subprocess error handling.
func Example_processError() {
	// Create process error
	err := &errors.ProcessError{
		Operation: "compile filter",
		Command:   "hostlist-compiler -c configuration.json -o filter.txt",
		Output:    "fatal: transformation failed",
		ExitCode:  2,
	}

	// Handle process errors
	fmt.Printf("Command failed with exit code %d\n", err.ExitCode)
	if err.ExitCode != 0 {
		fmt.Println("Compiler error")
	}

	// Output:
	// Command failed with exit code 2
	// Compiler error
}

// Example_errorChaining shows chained error handling.
func Example_errorChaining() {
	// Create a chain of errors
	baseErr := &errors.NotFoundError{
		Resource: "file",
		ID:       "metadata.json",
	}

	parseErr := &errors.ParseError{
		Format:  "json",
		File:    "metadata.json",
		Message: "failed to parse descriptor",
		Err:     baseErr,
	}

	// Check through the chain using standard library
	if parseErr.Err != nil {
		if _, ok := parseErr.Err.(*errors.NotFoundError); ok {
			fmt.Println("File not found in parse chain")
		}
	}

	// Output: File not found in parse chain
}
