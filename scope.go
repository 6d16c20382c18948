// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package prog

import "github.com/google/uuid"

// Scope identifies the interruption scope that stopped a computation.
//
// Interrupted outcomes accept any comparable value as their scope; Scope is
// the ready-made choice for runtimes that open scopes dynamically and need
// each one to be distinct.
type Scope struct {
	id uuid.UUID
}

// NewScope returns a fresh scope, distinct from every other scope.
func NewScope() Scope {
	return Scope{id: uuid.New()}
}

// IsZero reports whether s is the zero Scope, which no call to NewScope returns.
func (s Scope) IsZero() bool { return s.id == uuid.Nil }

func (s Scope) String() string { return s.id.String() }
