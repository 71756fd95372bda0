package progress

import "errors"

var (
	// ErrInvalidProgress is returned for progress values outside [0, 100]
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")

	// ErrUnknownPrerequisite is returned when a module lists a prerequisite
	// key that does not exist in the course
	ErrUnknownPrerequisite = errors.New("prerequisite references an unknown module")

	// ErrPrerequisiteCycle is returned when the module graph is cyclic
	ErrPrerequisiteCycle = errors.New("prerequisite graph contains a cycle")

	// ErrNoQuestions is returned when scoring a module without questions
	ErrNoQuestions = errors.New("assessment has no questions")
)
