// Package errors provides the classified error primitives used across docsite.
//
// A ClassifiedError carries a category (config, validation, content, linkcheck, ...),
// a severity and a small structured context. The CLI adapter turns
// a classified error into an exit code and a user-facing message.
//
// Example usage:
//
//	err := errors.ValidationError("site configuration is invalid").
//		WithContext("issues", issues).
//		Build()
package errors
