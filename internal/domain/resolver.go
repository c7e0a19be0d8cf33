// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package domain resolves the tenant an authenticated user belongs to.
package domain

import (
	"context"
	"errors"
	"fmt"

	"github.com/retr0h/auditlog/internal/config"
)

var (
	// ErrUserNotFound is returned for users that belong to no domain.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotAdmin is returned when a user may not administer the domain.
	ErrNotAdmin = errors.New("user is not admin")
)

// Resolver maps users to domains and checks admin rights.
type Resolver interface {
	// FindDomainForUser returns the domain the user belongs to.
	FindDomainForUser(ctx context.Context, userID string) (string, error)
	// AuthorizeAdmin fails with ErrNotAdmin unless the user administers domain.
	AuthorizeAdmin(ctx context.Context, userID string, domain string) error
}

// ensure StaticResolver implements Resolver at compile time.
var _ Resolver = (*StaticResolver)(nil)

// StaticResolver resolves users from configuration.
type StaticResolver struct {
	domains map[string]string
	admins  map[string]map[string]struct{}
}

// NewStaticResolver indexes the configured domains. Admins are members of
// their domain as well.
func NewStaticResolver(
	domains []config.Domain,
) *StaticResolver {
	r := &StaticResolver{
		domains: make(map[string]string),
		admins:  make(map[string]map[string]struct{}),
	}

	for _, d := range domains {
		for _, user := range d.Users {
			r.domains[user] = d.Name
		}
		for _, admin := range d.Admins {
			r.domains[admin] = d.Name
			if r.admins[d.Name] == nil {
				r.admins[d.Name] = make(map[string]struct{})
			}
			r.admins[d.Name][admin] = struct{}{}
		}
	}

	return r
}

// FindDomainForUser returns the user's domain.
func (r *StaticResolver) FindDomainForUser(
	_ context.Context,
	userID string,
) (string, error) {
	d, ok := r.domains[userID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	return d, nil
}

// AuthorizeAdmin checks the user is listed as an admin of domain.
func (r *StaticResolver) AuthorizeAdmin(
	_ context.Context,
	userID string,
	domain string,
) error {
	if _, ok := r.admins[domain][userID]; !ok {
		return ErrNotAdmin
	}

	return nil
}
