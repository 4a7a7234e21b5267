package auth

import "sync"

// MockStore is an in-memory CredentialStore for tests
type MockStore struct {
	mu       sync.RWMutex
	profiles map[string]*Credentials

	// Fail forces every operation to return ErrStoreUnavailable
	Fail bool
}

// NewMockStore creates an empty in-memory store
func NewMockStore() *MockStore {
	return &MockStore{
		profiles: make(map[string]*Credentials),
	}
}

// Store saves credentials in memory
func (m *MockStore) Store(creds *Credentials) error {
	if m.Fail {
		return ErrStoreUnavailable
	}
	if creds == nil || creds.Name == "" {
		return ErrInvalidCredentials
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *creds
	m.profiles[creds.Name] = &c
	return nil
}

// Retrieve gets credentials from memory
func (m *MockStore) Retrieve(name string) (*Credentials, error) {
	if m.Fail {
		return nil, ErrStoreUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	creds, ok := m.profiles[name]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	c := *creds
	return &c, nil
}

// List returns all stored profiles
func (m *MockStore) List() ([]*Credentials, error) {
	if m.Fail {
		return nil, ErrStoreUnavailable
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*Credentials
	for _, creds := range m.profiles {
		c := *creds
		result = append(result, &c)
	}
	return result, nil
}

// Delete removes credentials from memory
func (m *MockStore) Delete(name string) error {
	if m.Fail {
		return ErrStoreUnavailable
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[name]; !ok {
		return ErrCredentialsNotFound
	}
	delete(m.profiles, name)
	return nil
}

// Count returns the number of stored profiles
func (m *MockStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.profiles)
}

// NewMockManager creates a Manager backed only by an in-memory store, for
// tests that must not touch the keychain or filesystem
func NewMockManager() (*Manager, *MockStore) {
	store := NewMockStore()
	return &Manager{stores: []CredentialStore{store}}, store
}

// Exists checks if credentials exist in memory
func (m *MockStore) Exists(name string) bool {
	if m.Fail {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.profiles[name]
	return ok
}
