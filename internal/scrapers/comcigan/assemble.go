package comcigan

import (
	"comcigan/internal/timetable"
	"fmt"
)

// Assembler builds a timetable out of a trimmed cube of period codes.
type Assembler struct {
	Protocol Protocol
	// Subjects is the subject table with its placeholder already trimmed.
	Subjects []string
	Teachers []string
}

// Assemble walks the cube in order and decodes every period, each level is
// numbered by its 0-based position. Nothing is skipped or reordered, the
// first code that fails to decode fails the whole timetable.
func (a Assembler) Assemble(schoolName string, cube [][][][]int) (*timetable.School, error) {
	school := &timetable.School{
		Name:   schoolName,
		Grades: make([]timetable.Grade, len(cube)),
	}

	for g, classes := range cube {
		grade := timetable.Grade{
			Number:  g,
			Classes: make([]timetable.Class, len(classes)),
		}
		for c, days := range classes {
			class := timetable.Class{
				Number: c,
				Days:   make([]timetable.Day, len(days)),
			}
			for d, periods := range days {
				day := timetable.Day{
					Number:  d,
					Periods: make([]timetable.Period, len(periods)),
				}
				for p, code := range periods {
					subject, teacher, err := a.Protocol.Decode(code, a.Subjects, a.Teachers)
					if err != nil {
						return nil, fmt.Errorf(
							"grade %d class %d day %d period %d: %w",
							g, c, d, p, err,
						)
					}
					day.Periods[p] = timetable.Period{
						Number:  p,
						Subject: subject,
						Teacher: teacher,
					}
				}
				class.Days[d] = day
			}
			grade.Classes[c] = class
		}
		school.Grades[g] = grade
	}

	return school, nil
}

// AssemblePayload trims and converts a parsed payload, then assembles it.
func (p Protocol) AssemblePayload(schoolName string, payload Payload) (*timetable.School, error) {
	cube, err := Trim(payload.Timetable).Cube()
	if err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}
	subjects, err := Trim(payload.Subjects).Strings()
	if err != nil {
		return nil, fmt.Errorf("subjects: %w", err)
	}
	teachers, err := payload.Teachers.Strings()
	if err != nil {
		return nil, fmt.Errorf("teachers: %w", err)
	}

	assembler := Assembler{
		Protocol: p,
		Subjects: subjects,
		Teachers: teachers,
	}
	return assembler.Assemble(schoolName, cube)
}
