package comcigan

// Protocol declares the conventions of one revision of the service's wire
// format. The payload does not say which revision produced it, so exactly one
// revision is decoded at a time.
type Protocol struct {
	Version string

	// Base splits a period code into a high part (code / Base) and a
	// low part (code mod Base).
	Base int
	// SubjectOffset is added to the high part to index the trimmed subject table.
	SubjectOffset int
	// TeacherOffset is added to the low part to index the teacher table.
	TeacherOffset int
	// EmptySubject is the subject value the service uses for a free period.
	EmptySubject string

	// SearchResultField is the fixed top level field of a search response.
	SearchResultField string
	// TimetableIdSuffix is appended to `<id header><internal id>` before
	// base64 encoding the timetable query.
	TimetableIdSuffix string
}

// ProtocolV2 is the base 1000 revision the service currently serves.
//
// The earlier base 100 revision indexed both tables without offsets and is
// no longer served, it is intentionally not supported.
var ProtocolV2 = Protocol{
	Version:           "v2",
	Base:              1000,
	SubjectOffset:     -1,
	TeacherOffset:     0,
	EmptySubject:      "19",
	SearchResultField: "학교검색",
	TimetableIdSuffix: "_0_1",
}

// CurrentProtocol is the revision used when none is given explicitly.
var CurrentProtocol = ProtocolV2

// Split returns the high and low part of a period code.
func (p Protocol) Split(code int) (high, low int) {
	return code / p.Base, code % p.Base
}

// Pack is the inverse of Split.
func (p Protocol) Pack(high, low int) int {
	return high*p.Base + low
}
