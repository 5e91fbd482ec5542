package comcigan

import (
	"context"
	"testing"

	_ "embed"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

//go:embed testdata/search_response.json
var searchResponseTest string

func TestEncodeQuery(t *testing.T) {
	testCases := []struct {
		query    string
		expected string
	}{
		{query: "향동중", expected: "%C7%E2%B5%BF%C1%DF"},
		{query: "세종과학고등학교", expected: "%BC%BC%C1%BE%B0%FA%C7%D0%B0%ED%B5%EE%C7%D0%B1%B3"},
		{query: "a1", expected: "%61%31"},
		{query: "", expected: ""},
	}

	for _, test := range testCases {
		encoded, err := EncodeQuery(test.query)
		require.NoError(t, err)
		require.Equal(t, test.expected, encoded, test.query)
	}
}

func TestEncodeQueryUnencodable(t *testing.T) {
	_, err := EncodeQuery("😀")
	require.Error(t, err)
}

func TestSearchURL(t *testing.T) {
	url, err := SearchURL(expectedKeys, "향동중")
	require.NoError(t, err)
	require.Equal(t, "/36179?17384l%C7%E2%B5%BF%C1%DF", url)
}

func TestParseSearchResult(t *testing.T) {
	entries, err := ProtocolV2.ParseSearchResult(Normalize(searchResponseTest))
	require.NoError(t, err)
	require.Equal(t, []DirectoryEntry{
		{Id: 24966, Region: "경기", Name: "향동중학교", InternalId: 12045},
		{Id: 24967, Region: "서울", Name: "향동고등학교", InternalId: 12046},
	}, entries)
}

func TestParseSearchResultEmpty(t *testing.T) {
	entries, err := ProtocolV2.ParseSearchResult(`{"학교검색":[]}`)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestParseSearchResultErrors(t *testing.T) {
	_, err := ProtocolV2.ParseSearchResult(`{"other":[]}`)
	require.ErrorIs(t, err, ErrMissingField)

	_, err = ProtocolV2.ParseSearchResult(`{"학교검색":[[1,"a","b"]]}`)
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = ProtocolV2.ParseSearchResult(`{"학교검색":[["1","a","b",2]]}`)
	require.ErrorIs(t, err, ErrMalformedPayload)

	_, err = ProtocolV2.ParseSearchResult("{\"학교검색\":[]}\x00")
	require.ErrorIs(t, err, ErrMalformedPayload)
}

func TestTimetableURL(t *testing.T) {
	entry := DirectoryEntry{Id: 24966, Region: "경기", Name: "향동중학교", InternalId: 12045}
	// base64("73629_12045_0_1")
	require.Equal(t, "/36179?NzM2MjlfMTIwNDVfMF8x", ProtocolV2.TimetableURL(expectedKeys, entry))
}

func TestDecodePage(t *testing.T) {
	encoded, err := korean.EUCKR.NewEncoder().String(bootstrapPageTest)
	require.NoError(t, err)

	decoded, err := decodePage([]byte(encoded))
	require.NoError(t, err)
	require.Equal(t, bootstrapPageTest, decoded)

	decoded, err = decodePage([]byte(bootstrapPageTest))
	require.NoError(t, err)
	require.Equal(t, bootstrapPageTest, decoded)
}

func TestSearch(t *testing.T) {
	transport := newFakeTransport(t)

	entries, err := ProtocolV2.Search(context.Background(), transport, "향동중", expectedKeys)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, []string{"/36179?17384l%C7%E2%B5%BF%C1%DF"}, transport.requested)

	_, err = ProtocolV2.Search(context.Background(), transport, "없음", expectedKeys)
	require.ErrorIs(t, err, ErrTransport)
}
