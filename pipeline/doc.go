// Package pipeline runs clang-format on one document per request.
//
// Each Run serializes the request's configuration with package style, starts
// the formatter with that flag as a single argument, streams the document to
// its standard input and collects standard output and standard error until
// it exits. The result is classified as Unchanged, Rewritten or Failed:
//
//   - a request with a Range is Unchanged without starting a process, since
//     range formatting is not supported;
//   - a non-zero exit is Failed with an *ExitError carrying standard error;
//   - a launch failure is Failed with a *StartError;
//   - output equal to the input is Unchanged, anything else is Rewritten.
//
// Output that is not valid UTF-8 is decoded with replacement characters
// rather than failing. Runs are independent and may execute concurrently.
// WithTimeout bounds a run; the context passed to Run cancels it.
package pipeline
