// Package callback encodes and decodes the data carried by inline keyboard buttons.
//
// The wire format is kept compatible with the buttons already out in chats:
//
//	entry_id=<id>&type=<movie|tv>   selection of a catalog entry
//	entry_id=<page>                  navigation to a results page
//
// The only thing telling the two apart on the wire is the presence of the
// type field, so in code they are distinct types behind the Token interface.
package callback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lepinkainen/reelbot/internal/errors"
	"github.com/lepinkainen/reelbot/internal/media"
)

const (
	idKey   = "entry_id"
	typeKey = "type"
)

// Token is either a Selection or a Navigation.
type Token interface {
	encode() string
}

// Selection asks for the detail view of one catalog entry.
type Selection struct {
	EntryID int64
	Kind    media.Kind
}

// Navigation asks for another page of the remembered search.
type Navigation struct {
	Page int
}

// Select builds a Selection token.
func Select(entryID int64, kind media.Kind) Selection {
	return Selection{EntryID: entryID, Kind: kind}
}

// Navigate builds a Navigation token.
func Navigate(page int) Navigation {
	return Navigation{Page: page}
}

func (s Selection) encode() string {
	return fmt.Sprintf("%s=%d&%s=%s", idKey, s.EntryID, typeKey, s.Kind)
}

func (n Navigation) encode() string {
	return fmt.Sprintf("%s=%d", idKey, n.Page)
}

// Encode renders a token as button callback data.
func Encode(t Token) string {
	return t.encode()
}

// Decode parses button callback data. It returns an *errors.DecodeError for
// anything that is not exactly one of the two known shapes.
func Decode(data string) (Token, error) {
	if data == "" {
		return nil, errors.NewDecodeError(data, "empty data")
	}

	fields := strings.Split(data, "&")
	if len(fields) > 2 {
		return nil, errors.NewDecodeError(data, "too many fields")
	}

	key, value, ok := strings.Cut(fields[0], "=")
	if !ok {
		return nil, errors.NewDecodeError(data, "missing '=' in first field")
	}
	if key != idKey {
		return nil, errors.NewDecodeError(data, fmt.Sprintf("unexpected key %q", key))
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, errors.NewDecodeError(data, "entry id is not numeric")
	}
	if id <= 0 {
		return nil, errors.NewDecodeError(data, "entry id must be positive")
	}

	if len(fields) == 1 {
		if id > int64(maxPage) {
			return nil, errors.NewDecodeError(data, "page number out of range")
		}
		return Navigation{Page: int(id)}, nil
	}

	key, value, ok = strings.Cut(fields[1], "=")
	if !ok || key != typeKey {
		return nil, errors.NewDecodeError(data, "second field must be type=<kind>")
	}
	kind, err := media.ParseKind(value)
	if err != nil {
		return nil, errors.NewDecodeError(data, err.Error())
	}
	return Selection{EntryID: id, Kind: kind}, nil
}

// TMDB serves at most 500 pages per search.
const maxPage = 500
