// Package progress implements the module/lesson progress engine: lesson
// watch-signal aggregation, prerequisite gating and assessment scoring.
// Everything here is pure computation over in-memory state; loading and
// persisting enrollment records is the caller's job.
package progress

// LessonProgress is the per-lesson viewing state inside a module.
// Progress is monotonic non-decreasing; LastPosition is a resume cursor and
// is overwritten on every update that reports one.
type LessonProgress struct {
	LessonID     string `json:"lessonId"`
	Progress     int    `json:"progress"`
	Completed    bool   `json:"completed"`
	LastPosition *int   `json:"lastPosition,omitempty"`
}

// ModuleProgress aggregates lesson state for one module of an enrollment
type ModuleProgress struct {
	ModuleID            string           `json:"moduleId"`
	Completed           bool             `json:"completed"`
	AssessmentCompleted bool             `json:"assessmentCompleted"`
	VideoProgress       int              `json:"videoProgress"`
	LastWatchedPosition int              `json:"lastWatchedPosition"`
	Lessons             []LessonProgress `json:"lessons"`
}

// LessonDef is a lesson as defined by the course catalog
type LessonDef struct {
	Key         string
	Title       string
	ContentType string
}

// QuestionDef is one assessment question; CorrectAnswer indexes the options
type QuestionDef struct {
	Key           string
	CorrectAnswer int
}

// AssessmentDef is the question set gating a module, with its pass threshold
type AssessmentDef struct {
	Questions    []QuestionDef
	PassingScore int
}

// ModuleDef is a module as defined by the course catalog. Assessment is nil
// for modules without one.
type ModuleDef struct {
	Key           string
	Title         string
	Lessons       []LessonDef
	Prerequisites []string
	Assessment    *AssessmentDef
}

// CourseDef is the ordered module list of one course
type CourseDef struct {
	CourseID uint
	Modules  []ModuleDef
}

// Module returns the module definition for the given key, or nil
func (d CourseDef) Module(key string) *ModuleDef {
	for i := range d.Modules {
		if d.Modules[i].Key == key {
			return &d.Modules[i]
		}
	}
	return nil
}

// FindModule returns the progress entry for the given module key, or nil
func FindModule(mods []ModuleProgress, key string) *ModuleProgress {
	for i := range mods {
		if mods[i].ModuleID == key {
			return &mods[i]
		}
	}
	return nil
}

// FindLesson returns the progress entry for the given lesson key, or nil
func (mp *ModuleProgress) FindLesson(key string) *LessonProgress {
	for i := range mp.Lessons {
		if mp.Lessons[i].LessonID == key {
			return &mp.Lessons[i]
		}
	}
	return nil
}

// NewModuleProgress returns a zeroed progress entry for a module
func NewModuleProgress(key string) ModuleProgress {
	return ModuleProgress{
		ModuleID: key,
		Lessons:  []LessonProgress{},
	}
}

// SeedModuleProgress builds the initial progress list for a fresh enrollment,
// one zeroed entry per defined module in course order.
func SeedModuleProgress(def CourseDef) []ModuleProgress {
	mods := make([]ModuleProgress, 0, len(def.Modules))
	for _, m := range def.Modules {
		mods = append(mods, NewModuleProgress(m.Key))
	}
	return mods
}
