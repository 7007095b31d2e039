// Package domain contains the core business entities of the tasks API:
// users, the tasks they own, and the validation rules both must satisfy.
// It has no knowledge of HTTP, SQL, or token formats.
package domain
