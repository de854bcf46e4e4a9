/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package graph

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateID rejects an AddNew whose id is already taken. Wrapped errors
// carry the offending id in their message.
var ErrDuplicateID = errors.New("duplicate item id")

// ErrTitleCollision rejects a new id or title that appears inside an existing
// title (or vice versa). Substring lookup would not be able to tell the two
// apart afterwards.
var ErrTitleCollision = errors.New("id/title collision")

// NotFoundError reports a lookup that matched nothing.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no item with id %q or title containing %q found", e.Query, e.Query)
}

// CycleError reports a dependency cycle. Members lists the cycle's item ids
// in order, with the first id repeated at the end.
type CycleError struct {
	Members []string
}

func (e *CycleError) Error() string {
	return "cycle detected in dependencies: " + strings.Join(e.Members, " -> ")
}
