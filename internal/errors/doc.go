// Package errors defines sentinel errors used throughout Trustee.
//
// Errors are grouped by concern: validation, resolution, generation,
// and backup. Callers match them with errors.Is and decide whether to
// re-prompt, degrade, or abort. Only the validation errors are fatal;
// everything raised inside the reveal loop re-issues the current prompt.
package errors
