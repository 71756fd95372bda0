package progress

// CompletionThreshold is the lesson progress percentage at which a lesson
// counts as completed.
const CompletionThreshold = 90

// RecordLessonProgress folds one observed watch/read signal into the progress
// list and returns the updated list along with the touched module and lesson
// entries. The module entry is materialized lazily if the module was never
// touched before (e.g. a module added to the catalog after enrollment).
//
// Lesson progress never regresses: an out-of-order or replayed update keeps
// the stored maximum. The completed flag is recomputed from the stored value,
// so a late low report cannot clear it. position is a resume cursor, not a
// completion signal, and is overwritten whenever it is reported.
func RecordLessonProgress(mods []ModuleProgress, moduleKey, lessonKey string, observed int, position *int) ([]ModuleProgress, *ModuleProgress, *LessonProgress, error) {
	if observed < 0 || observed > 100 {
		return nil, nil, nil, ErrInvalidProgress
	}

	mp := FindModule(mods, moduleKey)
	if mp == nil {
		mods = append(mods, NewModuleProgress(moduleKey))
		mp = &mods[len(mods)-1]
	}

	lp := mp.FindLesson(lessonKey)
	if lp == nil {
		mp.Lessons = append(mp.Lessons, LessonProgress{
			LessonID:     lessonKey,
			Progress:     observed,
			Completed:    observed >= CompletionThreshold,
			LastPosition: position,
		})
		lp = &mp.Lessons[len(mp.Lessons)-1]
	} else {
		if observed > lp.Progress {
			lp.Progress = observed
		}
		lp.Completed = lp.Progress >= CompletionThreshold
		if position != nil {
			lp.LastPosition = position
		}
	}

	recomputeModule(mp)
	if position != nil {
		mp.LastWatchedPosition = *position
	}

	return mods, mp, lp, nil
}

// recomputeModule refreshes the aggregate fields from the recorded lessons.
// VideoProgress is the floored mean over lessons recorded so far, and a
// module is completed once every recorded lesson is completed. Lessons the
// learner never opened are not part of either calculation.
func recomputeModule(mp *ModuleProgress) {
	if len(mp.Lessons) == 0 {
		mp.VideoProgress = 0
		mp.Completed = false
		return
	}

	sum := 0
	allCompleted := true
	for _, lp := range mp.Lessons {
		sum += lp.Progress
		if !lp.Completed {
			allCompleted = false
		}
	}

	mp.VideoProgress = sum / len(mp.Lessons)
	mp.Completed = allCompleted
}

// OverallProgress is the percentage of defined modules the learner has
// completed, floored to an integer.
func OverallProgress(def CourseDef, mods []ModuleProgress) int {
	if len(def.Modules) == 0 {
		return 0
	}

	completed := 0
	for _, m := range def.Modules {
		if mp := FindModule(mods, m.Key); mp != nil && mp.Completed {
			completed++
		}
	}
	return completed * 100 / len(def.Modules)
}

// IsCourseCompleted reports whether every defined module is completed and,
// for modules carrying an assessment, passed.
func IsCourseCompleted(def CourseDef, mods []ModuleProgress) bool {
	if len(def.Modules) == 0 {
		return false
	}

	for _, m := range def.Modules {
		mp := FindModule(mods, m.Key)
		if mp == nil || !mp.Completed {
			return false
		}
		if m.Assessment != nil && !mp.AssessmentCompleted {
			return false
		}
	}
	return true
}
