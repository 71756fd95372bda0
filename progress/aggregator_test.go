package progress

import "testing"

func intPtr(v int) *int { return &v }

func TestRecordLessonProgress_CreatesModuleAndLesson(t *testing.T) {
	mods, mp, lp, err := RecordLessonProgress(nil, "module-1", "lesson-1", 45, intPtr(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mods) != 1 {
		t.Fatalf("expected 1 module entry, got %d", len(mods))
	}
	if mp.ModuleID != "module-1" || lp.LessonID != "lesson-1" {
		t.Fatalf("unexpected keys: %q / %q", mp.ModuleID, lp.LessonID)
	}
	if lp.Progress != 45 || lp.Completed {
		t.Fatalf("unexpected lesson state: progress=%d completed=%v", lp.Progress, lp.Completed)
	}
	if lp.LastPosition == nil || *lp.LastPosition != 120 {
		t.Fatalf("expected lastPosition=120, got %v", lp.LastPosition)
	}
	if mp.LastWatchedPosition != 120 {
		t.Fatalf("expected module lastWatchedPosition=120, got %d", mp.LastWatchedPosition)
	}
}

func TestRecordLessonProgress_MonotonicOutOfOrder(t *testing.T) {
	mods, _, _, err := RecordLessonProgress(nil, "m1", "l1", 60, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mods, _, lp, err := RecordLessonProgress(mods, "m1", "l1", 80, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Progress != 80 {
		t.Fatalf("expected progress=80, got %d", lp.Progress)
	}

	// A replayed lower value must not regress the stored progress
	mods, _, lp, err = RecordLessonProgress(mods, "m1", "l1", 60, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Progress != 80 {
		t.Fatalf("expected progress to stay 80, got %d", lp.Progress)
	}
	if len(mods) != 1 || len(mods[0].Lessons) != 1 {
		t.Fatalf("expected single module/lesson entry")
	}
}

func TestRecordLessonProgress_LateLowUpdateKeepsCompleted(t *testing.T) {
	mods, _, _, _ := RecordLessonProgress(nil, "m1", "l1", 95, nil)
	_, _, lp, err := RecordLessonProgress(mods, "m1", "l1", 50, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lp.Progress != 95 || !lp.Completed {
		t.Fatalf("late low update regressed state: progress=%d completed=%v", lp.Progress, lp.Completed)
	}
}

func TestRecordLessonProgress_CompletionThreshold(t *testing.T) {
	_, _, lp, _ := RecordLessonProgress(nil, "m1", "l1", 89, nil)
	if lp.Completed {
		t.Fatalf("89 must not complete a lesson")
	}
	_, _, lp, _ = RecordLessonProgress(nil, "m1", "l1", 90, nil)
	if !lp.Completed {
		t.Fatalf("90 must complete a lesson")
	}
}

func TestRecordLessonProgress_RejectsOutOfRange(t *testing.T) {
	for _, bad := range []int{-1, 101, 250} {
		if _, _, _, err := RecordLessonProgress(nil, "m1", "l1", bad, nil) ; err != ErrInvalidProgress {
			t.Fatalf("progress=%d: expected ErrInvalidProgress, got %v", bad, err)
		}
	}
}

func TestRecordLessonProgress_ModuleAggregation(t *testing.T) {
	mods, _, _, _ := RecordLessonProgress(nil, "m1", "l1", 95, nil)
	mods, mp, _, err := RecordLessonProgress(mods, "m1", "l2", 40, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mp.Completed {
		t.Fatalf("module must not complete with an unfinished lesson")
	}
	if mp.VideoProgress != 67 { // floor((95+40)/2)
		t.Fatalf("expected videoProgress=67, got %d", mp.VideoProgress)
	}

	_, mp, _, _ = RecordLessonProgress(mods, "m1", "l2", 100, nil)
	if !mp.Completed {
		t.Fatalf("module should complete once every recorded lesson is done")
	}
	if mp.VideoProgress != 97 { // floor((95+100)/2)
		t.Fatalf("expected videoProgress=97, got %d", mp.VideoProgress)
	}
}

func TestRecordLessonProgress_PositionNotMonotonic(t *testing.T) {
	mods, _, _, _ := RecordLessonProgress(nil, "m1", "l1", 50, intPtr(300))
	_, mp, lp, _ := RecordLessonProgress(mods, "m1", "l1", 55, intPtr(10))
	if lp.LastPosition == nil || *lp.LastPosition != 10 {
		t.Fatalf("expected resume cursor rewound to 10, got %v", lp.LastPosition)
	}
	if mp.LastWatchedPosition != 10 {
		t.Fatalf("expected module position 10, got %d", mp.LastWatchedPosition)
	}
}

func TestRecordLessonProgress_PositionUnchangedWhenOmitted(t *testing.T) {
	mods, _, _, _ := RecordLessonProgress(nil, "m1", "l1", 50, intPtr(300))
	_, _, lp, _ := RecordLessonProgress(mods, "m1", "l1", 60, nil)
	if lp.LastPosition == nil || *lp.LastPosition != 300 {
		t.Fatalf("expected resume cursor kept at 300, got %v", lp.LastPosition)
	}
}

func twoModuleCourse() CourseDef {
	return CourseDef{
		CourseID: 1,
		Modules: []ModuleDef{
			{Key: "m1", Lessons: []LessonDef{{Key: "l1"}}},
			{Key: "m2", Prerequisites: []string{"m1"}},
		},
	}
}

func TestOverallProgress(t *testing.T) {
	def := twoModuleCourse()
	mods := SeedModuleProgress(def)
	if got := OverallProgress(def, mods); got != 0 {
		t.Fatalf("expected 0%%, got %d", got)
	}

	mods, _, _, _ = RecordLessonProgress(mods, "m1", "l1", 95, nil)
	if got := OverallProgress(def, mods); got != 50 {
		t.Fatalf("expected 50%%, got %d", got)
	}
}

func TestIsCourseCompleted_RequiresAssessmentPass(t *testing.T) {
	def := CourseDef{
		Modules: []ModuleDef{
			{Key: "m1", Assessment: &AssessmentDef{Questions: []QuestionDef{{Key: "q1"}}, PassingScore: 70}},
		},
	}
	mods := []ModuleProgress{{ModuleID: "m1", Completed: true}}
	if IsCourseCompleted(def, mods) {
		t.Fatalf("course must not complete with assessment pending")
	}
	mods[0].AssessmentCompleted = true
	if !IsCourseCompleted(def, mods) {
		t.Fatalf("course should complete once assessment is passed")
	}
}

func TestSeedModuleProgress_CourseOrder(t *testing.T) {
	mods := SeedModuleProgress(twoModuleCourse())
	if len(mods) != 2 || mods[0].ModuleID != "m1" || mods[1].ModuleID != "m2" {
		t.Fatalf("unexpected seed: %+v", mods)
	}
	for _, mp := range mods {
		if mp.Completed || mp.VideoProgress != 0 || len(mp.Lessons) != 0 {
			t.Fatalf("seeded entry not zeroed: %+v", mp)
		}
	}
}
