// Package route resolves the author profile route the browser is showing.
package route

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidAuthorID is returned when the id segment is not a positive integer.
var ErrInvalidAuthorID = errors.New("invalid author id")

// Route is the parsed form of /authors/<id>.
type Route struct {
	AuthorID int64
}

// Parse accepts "/authors/<id>", "authors/<id>" or a bare "<id>".
func Parse(path string) (Route, error) {
	p := strings.Trim(strings.TrimSpace(path), "/")
	p = strings.TrimPrefix(p, "authors/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	id, err := strconv.ParseInt(p, 10, 64)
	if err != nil || id <= 0 {
		return Route{}, fmt.Errorf("%w: %q", ErrInvalidAuthorID, path)
	}
	return Route{AuthorID: id}, nil
}

func (r Route) String() string {
	return "/authors/" + strconv.FormatInt(r.AuthorID, 10)
}
