// Package errors provides the classified error primitives used across doctheme.
//
// A ClassifiedError carries a category (config, render, theme, ...), a severity and
// structured context. Categories drive CLI exit codes and log levels; they never
// drive recovery. The only locally recovered condition in the rendering core is an
// unavailable theme or code block context, which is detected with
// theme.IsContextUnavailable rather than through this package.
//
// Example usage:
//
//	err := errors.RenderError("render page").
//		WithContext("page", path).
//		WithCause(convertErr).
//		Build()
package errors
