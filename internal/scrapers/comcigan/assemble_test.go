package comcigan

import (
	"comcigan/internal/timetable"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestAssembleSinglePeriod(t *testing.T) {
	assembler := Assembler{
		Protocol: ProtocolV2,
		Subjects: []string{"국어"},
		Teachers: []string{"", "김선생"},
	}

	school, err := assembler.Assemble("향동중학교", [][][][]int{{{{1001}}}})
	require.NoError(t, err)

	expected := &timetable.School{
		Name: "향동중학교",
		Grades: []timetable.Grade{{
			Number: 0,
			Classes: []timetable.Class{{
				Number: 0,
				Days: []timetable.Day{{
					Number: 0,
					Periods: []timetable.Period{
						{Number: 0, Subject: "국어", Teacher: "김선생"},
					},
				}},
			}},
		}},
	}
	diff := cmp.Diff(expected, school)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestAssemblePreservesPositions(t *testing.T) {
	assembler := Assembler{
		Protocol: ProtocolV2,
		Subjects: []string{"국어", "수학", "19"},
		Teachers: []string{"", "김선생", "이선생"},
	}
	cube := [][][][]int{
		{
			{{1001, 3000, 2002}, {2001}},
			{},
		},
		{
			{{2002, 1001}},
		},
	}

	school, err := assembler.Assemble("test", cube)
	require.NoError(t, err)
	require.Len(t, school.Grades, 2)

	for g, grade := range school.Grades {
		require.Equal(t, g, grade.Number)
		require.Len(t, grade.Classes, len(cube[g]))
		for c, class := range grade.Classes {
			require.Equal(t, c, class.Number)
			require.Len(t, class.Days, len(cube[g][c]))
			for d, day := range class.Days {
				require.Equal(t, d, day.Number)
				require.Len(t, day.Periods, len(cube[g][c][d]))
				for p, period := range day.Periods {
					require.Equal(t, p, period.Number)
				}
			}
		}
	}

	free := school.Grades[0].Classes[0].Days[0].Periods[1]
	require.True(t, free.Empty())
	require.Equal(t, "수학", school.Grades[1].Classes[0].Days[0].Periods[0].Subject)
}

func TestAssembleFailsOnBadCode(t *testing.T) {
	assembler := Assembler{
		Protocol: ProtocolV2,
		Subjects: []string{"국어"},
		Teachers: []string{"김선생"},
	}

	school, err := assembler.Assemble("test", [][][][]int{{{{1000, 9000}}}})
	require.ErrorIs(t, err, ErrCodeDecode)
	require.Contains(t, err.Error(), "grade 0 class 0 day 0 period 1")
	require.Nil(t, school)
}

func TestAssemblePayload(t *testing.T) {
	payload := Payload{
		Timetable: parseValue(t, `[0,[0,[0,[0,1001,2000]]]]`),
		Subjects:  parseValue(t, `[2,"국어","19"]`),
		Teachers:  parseValue(t, `["","김선생"]`),
	}

	school, err := ProtocolV2.AssemblePayload("test", payload)
	require.NoError(t, err)

	periods := school.Grades[0].Classes[0].Days[0].Periods
	require.Equal(t, []timetable.Period{
		{Number: 0, Subject: "국어", Teacher: "김선생"},
		{Number: 1},
	}, periods)
}
