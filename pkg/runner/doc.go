// Package runner executes verification scenarios and records their outcome.
//
// A Runner takes one scenario at a time through the same lifecycle:
//
//  1. Run preflight checks (optional reachability probe of the entry URL)
//  2. Open a browser page through a Driver
//  3. Execute steps in order, stopping at the first failure
//  4. On failure, print the fixed timeout or error message and save
//     error.png plus a cleaned DOM snapshot (error.html)
//  5. Close the page, whatever happened
//  6. Write result.json, summary.md and evidence.pdf
//
// Failures are values, not errors: Run always returns a Result and never
// panics, so a standalone verification binary can exit 0 after reporting.
//
// # Output
//
// Console output goes through a Reporter at one of four verbosity levels
// (quiet, normal, verbose, debug). Independent of verbosity, these lines are
// always printed verbatim:
//
//	Screenshot taken successfully.
//	Timeout error: The page or a specific element took too long to load.
//	An error occurred: <error>
//
// Debug logs go to the shared file logger from package logging.
package runner
