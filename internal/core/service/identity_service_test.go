package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/buildhub/module-catalog/internal/core/domain"
	"github.com/buildhub/module-catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubVerifier struct {
	claims map[string]*ports.CredentialClaims
}

func (v *stubVerifier) Verify(_ context.Context, credential string) (*ports.CredentialClaims, error) {
	c, ok := v.claims[credential]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return c, nil
}

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	ensured int // number of EnsureBySubject calls that created a record
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) EnsureBySubject(_ context.Context, subject, displayName string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[subject]; ok {
		clone := *u
		return &clone, nil
	}
	now := time.Now().UTC()
	u := &domain.User{ID: subject, DisplayName: displayName, Role: domain.RoleUser, CreatedAt: now, UpdatedAt: now}
	r.users[subject] = u
	r.ensured++
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ListByRole(_ context.Context, role domain.Role) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubIdentityCache struct {
	mu      sync.Mutex
	entries map[string]domain.Identity
	getErr  error // if set, Get returns this error
}

func newStubIdentityCache() *stubIdentityCache {
	return &stubIdentityCache{entries: make(map[string]domain.Identity)}
}

func (c *stubIdentityCache) Get(_ context.Context, subject string) (*domain.Identity, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	identity, ok := c.entries[subject]
	if !ok {
		return nil, false, nil
	}
	return &identity, true, nil
}

func (c *stubIdentityCache) Set(_ context.Context, subject string, identity domain.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[subject] = identity
	return nil
}

func testIdentityService(verifier ports.CredentialVerifier, users ports.UserRepository) ports.IdentityService {
	return NewIdentityService(verifier, users, nil, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve_LazilyCreatesUserWithDefaultRole(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{claims: map[string]*ports.CredentialClaims{
		"tok-alice": {Subject: "sub-alice", DisplayName: "Alice"},
	}}
	svc := testIdentityService(verifier, repo)

	identity, err := svc.Resolve(context.Background(), "tok-alice")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.UserID != "sub-alice" {
		t.Fatalf("unexpected user id: %s", identity.UserID)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("expected default role user, got %s", identity.Role)
	}

	user, err := repo.FindByID(context.Background(), "sub-alice")
	if err != nil {
		t.Fatalf("user record not created: %v", err)
	}
	if user.DisplayName != "Alice" {
		t.Fatalf("unexpected display name: %s", user.DisplayName)
	}
}

func TestResolve_ExistingUserKeepsRole(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{claims: map[string]*ports.CredentialClaims{
		"tok-mod": {Subject: "sub-mod", DisplayName: "Mo"},
	}}
	svc := testIdentityService(verifier, repo)

	if _, err := svc.Resolve(context.Background(), "tok-mod"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if _, err := repo.SetRole(context.Background(), "sub-mod", domain.RoleModerator); err != nil {
		t.Fatalf("set role: %v", err)
	}

	identity, err := svc.Resolve(context.Background(), "tok-mod")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if identity.Role != domain.RoleModerator {
		t.Fatalf("expected moderator role, got %s", identity.Role)
	}
	if repo.ensured != 1 {
		t.Fatalf("expected a single user record, got %d creations", repo.ensured)
	}
}

func TestResolve_InvalidCredential(t *testing.T) {
	svc := testIdentityService(&stubVerifier{claims: nil}, newStubUserRepo())

	for _, credential := range []string{"", "   ", "bogus"} {
		_, err := svc.Resolve(context.Background(), credential)
		if !errors.Is(err, domain.ErrInvalidCredential) {
			t.Fatalf("credential %q: expected ErrInvalidCredential, got %v", credential, err)
		}
	}
}

func TestResolve_RejectedCredentialFailsDespiteCachedIdentity(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	// A cache entry for the subject must not rescue a credential the
	// verifier no longer accepts (expired or revoked after caching).
	cache.entries["sub-alice"] = domain.Identity{UserID: "sub-alice", Role: domain.RoleModerator}
	svc := NewIdentityService(&stubVerifier{claims: nil}, repo, cache, zerolog.Nop())

	_, err := svc.Resolve(context.Background(), "revoked-token")
	if !errors.Is(err, domain.ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestResolve_CacheHitSkipsUserStoreOnly(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	verifier := &stubVerifier{claims: map[string]*ports.CredentialClaims{
		"tok-bob": {Subject: "sub-bob", DisplayName: "Bob"},
	}}
	svc := NewIdentityService(verifier, repo, cache, zerolog.Nop())

	first, err := svc.Resolve(context.Background(), "tok-bob")
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if repo.ensured != 1 {
		t.Fatalf("expected one user creation, got %d", repo.ensured)
	}

	second, err := svc.Resolve(context.Background(), "tok-bob")
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if second != first {
		t.Fatalf("cache hit returned a different identity: %+v vs %+v", second, first)
	}
	if repo.ensured != 1 {
		t.Fatalf("cache hit should skip the user store, got %d creations", repo.ensured)
	}
}

func TestResolve_CacheReadFailureIsNonFatal(t *testing.T) {
	repo := newStubUserRepo()
	cache := newStubIdentityCache()
	cache.getErr = errors.New("redis down")
	verifier := &stubVerifier{claims: map[string]*ports.CredentialClaims{
		"tok-carol": {Subject: "sub-carol", DisplayName: "Carol"},
	}}
	svc := NewIdentityService(verifier, repo, cache, zerolog.Nop())

	identity, err := svc.Resolve(context.Background(), "tok-carol")
	if err != nil {
		t.Fatalf("Resolve should survive a cache outage: %v", err)
	}
	if identity.UserID != "sub-carol" {
		t.Fatalf("unexpected identity: %+v", identity)
	}
}

func TestResolve_ConcurrentFirstLoginCreatesOneUser(t *testing.T) {
	repo := newStubUserRepo()
	verifier := &stubVerifier{claims: map[string]*ports.CredentialClaims{
		"tok-new": {Subject: "sub-new", DisplayName: "New"},
	}}
	svc := testIdentityService(verifier, repo)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Resolve(context.Background(), "tok-new"); err != nil {
				t.Errorf("Resolve: %v", err)
			}
		}()
	}
	wg.Wait()

	if repo.ensured != 1 {
		t.Fatalf("expected exactly one user creation, got %d", repo.ensured)
	}
}

// ---------------------------------------------------------------------------
// Role management
// ---------------------------------------------------------------------------

func TestSetRole_AdminOnly(t *testing.T) {
	repo := newStubUserRepo()
	if _, err := repo.EnsureBySubject(context.Background(), "sub-target", "Target"); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc := testIdentityService(&stubVerifier{}, repo)

	for _, role := range []domain.Role{domain.RoleUser, domain.RoleModerator} {
		actor := domain.Identity{UserID: "sub-actor", Role: role}
		_, err := svc.SetRole(context.Background(), "sub-target", domain.RoleModerator, actor)
		if !errors.Is(err, domain.ErrInsufficientRole) {
			t.Fatalf("actor role %s: expected ErrInsufficientRole, got %v", role, err)
		}
	}

	admin := domain.Identity{UserID: "sub-admin", Role: domain.RoleAdmin}
	user, err := svc.SetRole(context.Background(), "sub-target", domain.RoleModerator, admin)
	if err != nil {
		t.Fatalf("SetRole as admin: %v", err)
	}
	if user.Role != domain.RoleModerator {
		t.Fatalf("role not updated: %s", user.Role)
	}
}

func TestSetRole_RejectsUnknownRole(t *testing.T) {
	svc := testIdentityService(&stubVerifier{}, newStubUserRepo())
	admin := domain.Identity{UserID: "sub-admin", Role: domain.RoleAdmin}

	_, err := svc.SetRole(context.Background(), "sub-target", domain.Role("superuser"), admin)
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestListModerators(t *testing.T) {
	repo := newStubUserRepo()
	for _, sub := range []string{"a", "b", "c"} {
		if _, err := repo.EnsureBySubject(context.Background(), sub, sub); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	if _, err := repo.SetRole(context.Background(), "b", domain.RoleModerator); err != nil {
		t.Fatalf("set role: %v", err)
	}
	svc := testIdentityService(&stubVerifier{}, repo)

	_, err := svc.ListModerators(context.Background(), domain.Identity{UserID: "b", Role: domain.RoleModerator})
	if !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("moderator caller: expected ErrInsufficientRole, got %v", err)
	}

	mods, err := svc.ListModerators(context.Background(), domain.Identity{UserID: "root", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("ListModerators: %v", err)
	}
	if len(mods) != 1 || mods[0].ID != "b" {
		t.Fatalf("unexpected moderator list: %+v", mods)
	}
}

// ---------------------------------------------------------------------------
// Role ordering
// ---------------------------------------------------------------------------

func TestRoleAtLeast(t *testing.T) {
	cases := []struct {
		role, min domain.Role
		want      bool
	}{
		{domain.RoleUser, domain.RoleUser, true},
		{domain.RoleUser, domain.RoleModerator, false},
		{domain.RoleUser, domain.RoleAdmin, false},
		{domain.RoleModerator, domain.RoleUser, true},
		{domain.RoleModerator, domain.RoleModerator, true},
		{domain.RoleModerator, domain.RoleAdmin, false},
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.Role("ghost"), domain.RoleUser, false},
	}
	for _, tc := range cases {
		if got := tc.role.AtLeast(tc.min); got != tc.want {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tc.role, tc.min, got, tc.want)
		}
	}
}
