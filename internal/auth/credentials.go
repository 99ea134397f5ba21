// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"fmt"
	"strings"
)

// Administrator roles. Only these two are ever issued; there is no
// finer-grained permission model.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Identity is an entry in the administrator allow-list.
type Identity struct {
	Username string
	Role     string
	hash     string
}

// CredentialStore holds the fixed set of valid administrator identities.
// The set is loaded once at startup and is not mutable at runtime;
// there is no self-service registration.
type CredentialStore struct {
	identities map[string]Identity
	// dummyHash is burned for unknown usernames so that verification time
	// does not reveal whether a username exists.
	dummyHash string
}

// ParseCredentials builds a CredentialStore from the configured allow-list:
// semicolon-separated "username:role:argon2idhash" entries. The hash itself
// contains "$" separators, so only the first two colons delimit fields.
func ParseCredentials(raw string) (*CredentialStore, error) {
	dummy, err := HashPassword("corpsite-dummy")
	if err != nil {
		return nil, fmt.Errorf("generating dummy hash: %w", err)
	}

	store := &CredentialStore{
		identities: make(map[string]Identity),
		dummyHash:  dummy,
	}

	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid credential entry %q: want username:role:hash", redactEntry(entry))
		}
		username, role, hash := parts[0], parts[1], parts[2]
		if username == "" {
			return nil, fmt.Errorf("credential entry with empty username")
		}
		if role != RoleAdmin && role != RoleSuperAdmin {
			return nil, fmt.Errorf("credential entry %q: unknown role %q", username, role)
		}
		if !strings.HasPrefix(hash, "$argon2id$") {
			return nil, fmt.Errorf("credential entry %q: secret must be an argon2id hash, not plaintext", username)
		}
		if _, dup := store.identities[username]; dup {
			return nil, fmt.Errorf("duplicate credential entry %q", username)
		}
		store.identities[username] = Identity{Username: username, Role: role, hash: hash}
	}

	if len(store.identities) == 0 {
		return nil, fmt.Errorf("administrator allow-list is empty")
	}

	return store, nil
}

// Verify checks a username/secret pair against the allow-list.
// Unknown usernames still run a full argon2 verification against a dummy
// hash so the two failure modes are indistinguishable by timing.
func (s *CredentialStore) Verify(username, secret string) (Identity, bool) {
	identity, known := s.identities[username]
	hash := identity.hash
	if !known {
		hash = s.dummyHash
	}

	match, err := CheckPassword(secret, hash)
	if err != nil || !match || !known {
		return Identity{}, false
	}
	return identity, true
}

// Len returns the number of identities in the allow-list.
func (s *CredentialStore) Len() int {
	return len(s.identities)
}

// redactEntry hides everything past the username so hashes never hit logs.
func redactEntry(entry string) string {
	if i := strings.Index(entry, ":"); i > 0 {
		return entry[:i] + ":…"
	}
	return entry
}
