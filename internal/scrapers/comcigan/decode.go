package comcigan

import "fmt"

// Decode resolves a period code into the subject and teacher it refers to.
//
// The subject is looked up first, when it is the protocol's EmptySubject both
// results are empty and the teacher table is not consulted. Any other
// out of range lookup is an ErrCodeDecode.
func (p Protocol) Decode(code int, subjects, teachers []string) (subject, teacher string, err error) {
	if code < 0 {
		return "", "", fmt.Errorf("%w: negative code %d", ErrCodeDecode, code)
	}

	high, low := p.Split(code)

	subjectIdx := high + p.SubjectOffset
	if subjectIdx < 0 || subjectIdx >= len(subjects) {
		return "", "", fmt.Errorf(
			"%w: code %d: subject index %d out of range [0, %d)",
			ErrCodeDecode, code, subjectIdx, len(subjects),
		)
	}
	subject = subjects[subjectIdx]
	if subject == p.EmptySubject {
		return "", "", nil
	}

	teacherIdx := low%p.Base + p.TeacherOffset
	if teacherIdx < 0 || teacherIdx >= len(teachers) {
		return "", "", fmt.Errorf(
			"%w: code %d: teacher index %d out of range [0, %d)",
			ErrCodeDecode, code, teacherIdx, len(teachers),
		)
	}
	return subject, teachers[teacherIdx], nil
}

// Decode decodes a period code with CurrentProtocol.
func Decode(code int, subjects, teachers []string) (subject, teacher string, err error) {
	return CurrentProtocol.Decode(code, subjects, teachers)
}
