package progress

import "testing"

func gatedCourse() CourseDef {
	return CourseDef{
		CourseID: 7,
		Modules: []ModuleDef{
			{Key: "a", Assessment: &AssessmentDef{Questions: []QuestionDef{{Key: "q1"}}, PassingScore: 70}},
			{Key: "b", Prerequisites: []string{"a"}},
			{Key: "c", Prerequisites: []string{"b"}},
		},
	}
}

func TestIsModuleAccessible_NoPrerequisites(t *testing.T) {
	def := gatedCourse()
	if !IsModuleAccessible(def, "a", nil) {
		t.Fatalf("module without prerequisites must always be accessible")
	}
}

func TestIsModuleAccessible_RequiresAssessmentOfPrereq(t *testing.T) {
	def := gatedCourse()
	mods := []ModuleProgress{{ModuleID: "a", Completed: true, AssessmentCompleted: false}}

	if IsModuleAccessible(def, "b", mods) {
		t.Fatalf("b must stay locked while a's assessment is pending")
	}

	mods[0].AssessmentCompleted = true
	if !IsModuleAccessible(def, "b", mods) {
		t.Fatalf("b should unlock once a is completed and passed")
	}
}

func TestIsModuleAccessible_PrereqWithoutAssessment(t *testing.T) {
	def := gatedCourse()
	mods := []ModuleProgress{
		{ModuleID: "a", Completed: true, AssessmentCompleted: true},
		{ModuleID: "b", Completed: true}, // b has no assessment
	}
	if !IsModuleAccessible(def, "c", mods) {
		t.Fatalf("completion alone should satisfy an assessment-less prerequisite")
	}
}

func TestIsModuleAccessible_UnknownModule(t *testing.T) {
	if IsModuleAccessible(gatedCourse(), "nope", nil) {
		t.Fatalf("unknown module must not be accessible")
	}
}

func TestMissingPrerequisites(t *testing.T) {
	def := CourseDef{Modules: []ModuleDef{
		{Key: "a"},
		{Key: "b"},
		{Key: "c", Prerequisites: []string{"a", "b"}},
	}}
	mods := []ModuleProgress{{ModuleID: "a", Completed: true}}

	missing := MissingPrerequisites(def, "c", mods)
	if len(missing) != 1 || missing[0] != "b" {
		t.Fatalf("expected [b], got %v", missing)
	}
}

func TestNextAccessibleModule(t *testing.T) {
	def := gatedCourse()

	// Blocked: current module not finished
	mods := []ModuleProgress{{ModuleID: "a", Completed: true}}
	if next := NextAccessibleModule(def, "a", mods); next != "" {
		t.Fatalf("expected blocked (assessment pending), got %q", next)
	}

	mods[0].AssessmentCompleted = true
	if next := NextAccessibleModule(def, "a", mods); next != "b" {
		t.Fatalf("expected b, got %q", next)
	}

	// Last module has no successor
	mods = append(mods,
		ModuleProgress{ModuleID: "b", Completed: true},
		ModuleProgress{ModuleID: "c", Completed: true},
	)
	if next := NextAccessibleModule(def, "c", mods); next != "" {
		t.Fatalf("expected no successor, got %q", next)
	}
}

func TestValidateModuleGraph(t *testing.T) {
	if err := ValidateModuleGraph(gatedCourse()); err != nil {
		t.Fatalf("valid graph rejected: %v", err)
	}

	unknown := CourseDef{Modules: []ModuleDef{{Key: "a", Prerequisites: []string{"ghost"}}}}
	if err := ValidateModuleGraph(unknown); err != ErrUnknownPrerequisite {
		t.Fatalf("expected ErrUnknownPrerequisite, got %v", err)
	}

	cyclic := CourseDef{Modules: []ModuleDef{
		{Key: "a", Prerequisites: []string{"c"}},
		{Key: "b", Prerequisites: []string{"a"}},
		{Key: "c", Prerequisites: []string{"b"}},
	}}
	if err := ValidateModuleGraph(cyclic); err != ErrPrerequisiteCycle {
		t.Fatalf("expected ErrPrerequisiteCycle, got %v", err)
	}

	selfRef := CourseDef{Modules: []ModuleDef{{Key: "a", Prerequisites: []string{"a"}}}}
	if err := ValidateModuleGraph(selfRef); err != ErrPrerequisiteCycle {
		t.Fatalf("expected ErrPrerequisiteCycle for self reference, got %v", err)
	}
}
