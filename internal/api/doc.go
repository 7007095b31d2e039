// Package api handles incoming HTTP requests: decoding and validating
// request bodies, calling the account and task services, and turning their
// results and errors into JSON responses. Error responses never carry
// internal details; see MapErrorToStatusCode and GetSafeErrorMessage.
package api
