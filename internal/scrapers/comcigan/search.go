package comcigan

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
)

// DirectoryEntry is one school of a search result.
type DirectoryEntry struct {
	Id         int
	Region     string
	Name       string
	InternalId int
}

// UnmarshalJSON decodes the (id, region, name, internal id) tuple the
// service sends for each school.
func (e *DirectoryEntry) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	err := json.Unmarshal(data, &tuple)
	if err != nil {
		return err
	}
	if len(tuple) != 4 {
		return fmt.Errorf("expected 4 element entry, got %d", len(tuple))
	}

	var out DirectoryEntry
	err = json.Unmarshal(tuple[0], &out.Id)
	if err != nil {
		return fmt.Errorf("id: %w", err)
	}
	err = json.Unmarshal(tuple[1], &out.Region)
	if err != nil {
		return fmt.Errorf("region: %w", err)
	}
	err = json.Unmarshal(tuple[2], &out.Name)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	err = json.Unmarshal(tuple[3], &out.InternalId)
	if err != nil {
		return fmt.Errorf("internal id: %w", err)
	}

	*e = out
	return nil
}

// EncodeQuery encodes a search query as EUC-KR and percent-escapes every
// byte as %XX.
func EncodeQuery(query string) (string, error) {
	encoded, err := korean.EUCKR.NewEncoder().String(query)
	if err != nil {
		return "", fmt.Errorf("encode %q as euc-kr: %w", query, err)
	}

	var out strings.Builder
	out.Grow(len(encoded) * 3)
	for i := 0; i < len(encoded); i++ {
		fmt.Fprintf(&out, "%%%02X", encoded[i])
	}
	return out.String(), nil
}

// SearchURL returns the search endpoint url for a query.
func SearchURL(keys SchemaKeys, query string) (string, error) {
	escaped, err := EncodeQuery(query)
	if err != nil {
		return "", err
	}
	return keys.SearchPath + escaped, nil
}

// ParseSearchResult parses a normalized search response. An empty list is
// not an error.
func (p Protocol) ParseSearchResult(normalized string) ([]DirectoryEntry, error) {
	object, err := parseObject(normalized)
	if err != nil {
		return nil, err
	}
	raw, ok := object[p.SearchResultField]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingField, p.SearchResultField)
	}

	var entries []DirectoryEntry
	err = json.Unmarshal(raw, &entries)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %w", ErrMalformedPayload, p.SearchResultField, err)
	}
	if entries == nil {
		entries = []DirectoryEntry{}
	}
	return entries, nil
}

// Search fetches the schools matching query through t. An empty list is not
// an error.
func (p Protocol) Search(ctx context.Context, t Transport, query string, keys SchemaKeys) ([]DirectoryEntry, error) {
	url, err := SearchURL(keys, query)
	if err != nil {
		return nil, err
	}
	text, err := FetchText(ctx, t, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	entries, err := p.ParseSearchResult(Normalize(text))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return entries, nil
}

// TimetableURL returns the timetable endpoint url of a school, it is the
// search path without its query, queried with
// base64(<id header><internal id><suffix>).
func (p Protocol) TimetableURL(keys SchemaKeys, entry DirectoryEntry) string {
	path, _, _ := strings.Cut(keys.SearchPath, "?")
	id := keys.IdHeader + strconv.Itoa(entry.InternalId) + p.TimetableIdSuffix
	return path + "?" + base64.StdEncoding.EncodeToString([]byte(id))
}

// decodePage returns the bootstrap page as text. The service serves it as
// EUC-KR, which never forms valid UTF-8 once it contains hangul, so input
// that already is valid UTF-8 is kept as is.
func decodePage(body []byte) (string, error) {
	if utf8.Valid(body) {
		return string(body), nil
	}
	decoded, err := korean.EUCKR.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("decode euc-kr page: %w", err)
	}
	return string(decoded), nil
}
