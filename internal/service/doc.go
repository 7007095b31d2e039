// Package service contains the application use cases: account registration
// and login, and the owner-scoped task operations. It orchestrates the
// stores from internal/store, the password hasher and the token service, and
// applies transactional boundaries around read-modify-write sequences.
//
// Expected outcomes are reported as sentinel errors (ErrDuplicateUsername,
// ErrInvalidCredentials) or as the domain and store errors they originate
// from (*domain.ValidationError, store.ErrTaskNotFound, domain.ErrUnidentified).
// Anything else is an infrastructure failure wrapped in a *ServiceError.
//
// The service layer depends on store interfaces, never on a concrete
// database backend.
package service
