// Package mocks provides centralized mock implementations for testing.
//
// Two styles are used. Function-field mocks (MockJWTService,
// MockPasswordHasher, MockAccountService, MockTaskService) return canned
// values unless a Fn field overrides them, which suits handler tests.
// Testify mocks (TestifyMockUserStore, TestifyMockTaskStore) record calls and
// assert expectations, which suits service tests:
//
//	users := new(mocks.TestifyMockUserStore)
//	users.On("GetByUsername", mock.Anything, "alice").Return(nil, store.ErrUserNotFound)
//	...
//	users.AssertExpectations(t)
package mocks
