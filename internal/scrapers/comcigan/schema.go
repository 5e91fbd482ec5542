package comcigan

import (
	"comcigan/pkg/htmlutil"
	"errors"
	"fmt"
	"regexp"
)

// SchemaKeys are the identifiers the service generated for the current
// deployment. They are only valid for the session that resolved them.
type SchemaKeys struct {
	// Timetable is the payload field holding the [grade][class][day][period] cube.
	Timetable string
	// Subjects is the payload field holding the subject table.
	Subjects string
	// Teachers is the payload field holding the teacher table.
	Teachers string
	// IdHeader prefixes the internal school id in the timetable query.
	IdHeader string
	// SearchPath is the search endpoint path, the query is appended to it.
	SearchPath string
}

type Field string

const (
	FieldTimetable  Field = "timetable"
	FieldSubjects   Field = "subjects"
	FieldTeachers   Field = "teachers"
	FieldIdHeader   Field = "id_header"
	FieldSearchPath Field = "search_path"
)

// Anchor locates one identifier in the bootstrap script: the identifier is
// the text matching Token that sits directly between Prefix and Suffix.
// Prefix and Suffix are literal, Token is a regular expression.
type Anchor struct {
	Field  Field
	Prefix string
	Token  string
	Suffix string
}

// PatternTable maps every field of SchemaKeys to the anchor that finds it.
type PatternTable []Anchor

// DefaultPatterns matches the bootstrap script currently served at /st.
//
// These literals are copied out of the service's script. When the service
// changes its script they stop matching and Resolve fails, this table is the
// only thing that has to be updated.
var DefaultPatterns = PatternTable{
	{Field: FieldTimetable, Prefix: "일일자료=Q자료(자료.", Token: `자료\d+`, Suffix: "["},
	{Field: FieldSubjects, Prefix: "자료.", Token: `자료\d+`, Suffix: "[sb]"},
	{Field: FieldTeachers, Prefix: "성명=자료.", Token: `자료\d+`, Suffix: "[th]"},
	{Field: FieldIdHeader, Prefix: "sc_data('", Token: `\d+_`, Suffix: "'"},
	{Field: FieldSearchPath, Prefix: "url:'.", Token: `/\d+\?\d+l`, Suffix: "'"},
}

type compiledAnchor struct {
	field Field
	re    *regexp.Regexp
}

func (a compiledAnchor) find(haystacks []string) (string, bool) {
	for _, haystack := range haystacks {
		groups := a.re.FindStringSubmatch(haystack)
		if len(groups) >= 2 {
			return groups[1], true
		}
	}
	return "", false
}

// Resolver extracts SchemaKeys from the bootstrap script with a PatternTable.
type Resolver struct {
	anchors []compiledAnchor
}

// NewResolver compiles a pattern table, every field of SchemaKeys must
// appear in it exactly once.
func NewResolver(table PatternTable) (Resolver, error) {
	seen := map[Field]bool{}
	anchors := make([]compiledAnchor, 0, len(table))
	for _, a := range table {
		if seen[a.Field] {
			return Resolver{}, fmt.Errorf("duplicate anchor for field %q", a.Field)
		}
		seen[a.Field] = true

		re, err := regexp.Compile(
			regexp.QuoteMeta(a.Prefix) + "(" + a.Token + ")" + regexp.QuoteMeta(a.Suffix),
		)
		if err != nil {
			return Resolver{}, fmt.Errorf("anchor for field %q: %w", a.Field, err)
		}
		anchors = append(anchors, compiledAnchor{field: a.Field, re: re})
	}

	for _, f := range []Field{FieldTimetable, FieldSubjects, FieldTeachers, FieldIdHeader, FieldSearchPath} {
		if !seen[f] {
			return Resolver{}, fmt.Errorf("no anchor for field %q", f)
		}
	}

	return Resolver{anchors: anchors}, nil
}

var defaultResolver = func() Resolver {
	r, err := NewResolver(DefaultPatterns)
	if err != nil {
		panic(err)
	}
	return r
}()

// Resolve extracts SchemaKeys with DefaultPatterns.
func Resolve(page string) (SchemaKeys, error) {
	return defaultResolver.Resolve(page)
}

// Resolve matches every anchor against the script text of the page. If any
// anchor fails to match, no keys are returned and the error wraps
// ErrSchemaNotFound once for every missing field.
//
// The page is not valid markup, so its <script> bodies are only searched
// first. An anchor missing from them is looked up in the whole page, since
// the tokenizer may end a script early or the anchors may sit outside one.
func (r Resolver) Resolve(page string) (SchemaKeys, error) {
	haystacks := []string{page}
	script, ok := htmlutil.ScriptText(page)
	if ok {
		haystacks = []string{script, page}
	}

	found := map[Field]string{}
	var missing []error
	for _, a := range r.anchors {
		value, ok := a.find(haystacks)
		if !ok {
			missing = append(missing, fmt.Errorf("%w: %s", ErrSchemaNotFound, a.field))
			continue
		}
		found[a.field] = value
	}
	if len(missing) > 0 {
		return SchemaKeys{}, errors.Join(missing...)
	}

	return SchemaKeys{
		Timetable:  found[FieldTimetable],
		Subjects:   found[FieldSubjects],
		Teachers:   found[FieldTeachers],
		IdHeader:   found[FieldIdHeader],
		SearchPath: found[FieldSearchPath],
	}, nil
}
