/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package auth

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/unikorn-cloud/booker/pkg/openapi"
)

var (
	ErrBadCredentials = errors.New("bad credentials")
	ErrUnauthorized   = errors.New("request carries no valid token or basic credentials")
)

// TokenCookie is the cookie mutating requests present their token in.
const TokenCookie = "token"

// tokenLength matches the length of tokens handed out by the real service.
const tokenLength = 15

// Issuer hands out opaque tokens for a single credential pair and
// remembers them for the lifetime of the process, tokens never expire.
type Issuer struct {
	username string
	password string

	lock   sync.RWMutex
	tokens map[string]struct{}
}

func NewIssuer(username, password string) *Issuer {
	return &Issuer{
		username: username,
		password: password,
		tokens:   map[string]struct{}{},
	}
}

// Issue returns a new token if the credentials match.
func (i *Issuer) Issue(credentials openapi.Credentials) (string, error) {
	if !i.matches(credentials.Username, credentials.Password) {
		return "", ErrBadCredentials
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:tokenLength]

	i.lock.Lock()
	defer i.lock.Unlock()

	i.tokens[token] = struct{}{}

	return token, nil
}

func (i *Issuer) Valid(token string) bool {
	i.lock.RLock()
	defer i.lock.RUnlock()

	_, ok := i.tokens[token]

	return ok
}

// Authorize accepts either a token cookie or basic authentication.
func (i *Issuer) Authorize(r *http.Request) error {
	if cookie, err := r.Cookie(TokenCookie); err == nil && i.Valid(cookie.Value) {
		return nil
	}

	if username, password, ok := r.BasicAuth(); ok && i.matches(username, password) {
		return nil
	}

	return ErrUnauthorized
}

func (i *Issuer) matches(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(i.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(i.password))

	return u&p == 1
}
