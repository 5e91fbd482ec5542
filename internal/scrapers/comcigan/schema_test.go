package comcigan

import (
	"errors"
	"strings"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
)

//go:embed testdata/bootstrap_page.html
var bootstrapPageTest string

var expectedKeys = SchemaKeys{
	Timetable:  "자료147",
	Subjects:   "자료492",
	Teachers:   "자료446",
	IdHeader:   "73629_",
	SearchPath: "/36179?17384l",
}

func TestResolve(t *testing.T) {
	keys, err := Resolve(bootstrapPageTest)
	require.NoError(t, err)
	require.Equal(t, expectedKeys, keys)
}

func TestResolvePlainScript(t *testing.T) {
	script := `$.ajax({ url:'./1234?5678l'+escape(sc) }); sc_data('99_',sc,1,'0');
일일자료=Q자료(자료.자료1[a]); var 성명=자료.자료2[th]; var 과목=자료.자료3[sb];`

	keys, err := Resolve(script)
	require.NoError(t, err)
	require.Equal(t, SchemaKeys{
		Timetable:  "자료1",
		Subjects:   "자료3",
		Teachers:   "자료2",
		IdHeader:   "99_",
		SearchPath: "/1234?5678l",
	}, keys)
}

func TestResolveAnchorsOutsideScriptBodies(t *testing.T) {
	anchors := `$.ajax({ url:'./36179?17384l'+escape(sc) }); sc_data('73629_',sc,1,'0');
일일자료=Q자료(자료.자료147[학년][반][요일][교시]); var 성명=자료.자료446[th]; var 과목=자료.자료492[sb];`

	pages := []string{
		// only an external script, the anchors sit in the body text
		`<html><head><script src="jquery.js"></script></head><body>` + anchors + `</body></html>`,
		// the tokenizer ends the script at the written </script>
		`<html><script>document.write('<script src=a.js></script>');` + anchors + `</script></html>`,
	}

	for _, page := range pages {
		keys, err := Resolve(page)
		require.NoError(t, err, page)
		require.Equal(t, expectedKeys, keys, page)
	}
}

func TestResolveMissingAnchor(t *testing.T) {
	testCases := []struct {
		remove  string
		missing Field
	}{
		{remove: "일일자료=Q자료(자료.자료147[", missing: FieldTimetable},
		{remove: "자료.자료492[sb]", missing: FieldSubjects},
		{remove: "성명=자료.자료446[th]", missing: FieldTeachers},
		{remove: "sc_data('73629_'", missing: FieldIdHeader},
		{remove: "url:'./36179?17384l'", missing: FieldSearchPath},
	}

	for _, test := range testCases {
		page := strings.Replace(bootstrapPageTest, test.remove, "", 1)
		keys, err := Resolve(page)
		require.ErrorIs(t, err, ErrSchemaNotFound, test.missing)
		require.Contains(t, err.Error(), string(test.missing))
		require.Equal(t, SchemaKeys{}, keys)
	}
}

func TestResolveReportsEveryMissingField(t *testing.T) {
	_, err := Resolve("<html><script>var nothing = 1;</script></html>")
	require.ErrorIs(t, err, ErrSchemaNotFound)

	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined))
	require.Len(t, joined.Unwrap(), 5)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	page := strings.Replace(bootstrapPageTest, "sc_data(", "SC_DATA(", 1)
	_, err := Resolve(page)
	require.ErrorIs(t, err, ErrSchemaNotFound)
}

func TestCustomPatternTable(t *testing.T) {
	table := PatternTable{
		{Field: FieldTimetable, Prefix: "tt=", Token: `\w+`, Suffix: ";"},
		{Field: FieldSubjects, Prefix: "sb=", Token: `\w+`, Suffix: ";"},
		{Field: FieldTeachers, Prefix: "th=", Token: `\w+`, Suffix: ";"},
		{Field: FieldIdHeader, Prefix: "id=", Token: `\d+_`, Suffix: ";"},
		{Field: FieldSearchPath, Prefix: "path=", Token: `/[^;]+`, Suffix: ";"},
	}
	resolver, err := NewResolver(table)
	require.NoError(t, err)

	keys, err := resolver.Resolve("tt=a1;sb=b2;th=c3;id=4_;path=/x?y;")
	require.NoError(t, err)
	require.Equal(t, SchemaKeys{
		Timetable:  "a1",
		Subjects:   "b2",
		Teachers:   "c3",
		IdHeader:   "4_",
		SearchPath: "/x?y",
	}, keys)
}

func TestNewResolverRejectsIncompleteTable(t *testing.T) {
	_, err := NewResolver(DefaultPatterns[:4])
	require.Error(t, err)

	duplicate := append(PatternTable{}, DefaultPatterns...)
	duplicate = append(duplicate, DefaultPatterns[0])
	_, err = NewResolver(duplicate)
	require.Error(t, err)

	broken := append(PatternTable{}, DefaultPatterns...)
	broken[0].Token = `(`
	_, err = NewResolver(broken)
	require.Error(t, err)
}
