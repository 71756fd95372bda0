package progress

// prerequisiteSatisfied reports whether one prerequisite module is done from
// the gate's point of view: completed, and passed if it carries an assessment.
func prerequisiteSatisfied(def CourseDef, key string, mods []ModuleProgress) bool {
	mp := FindModule(mods, key)
	if mp == nil || !mp.Completed {
		return false
	}

	md := def.Module(key)
	if md != nil && md.Assessment != nil && !mp.AssessmentCompleted {
		return false
	}
	return true
}

// IsModuleAccessible decides whether the learner may enter a module. Modules
// without prerequisites are always accessible; otherwise every listed
// prerequisite must be satisfied. Unknown modules are never accessible.
func IsModuleAccessible(def CourseDef, moduleKey string, mods []ModuleProgress) bool {
	md := def.Module(moduleKey)
	if md == nil {
		return false
	}

	for _, prereq := range md.Prerequisites {
		if !prerequisiteSatisfied(def, prereq, mods) {
			return false
		}
	}
	return true
}

// MissingPrerequisites returns the prerequisite keys still blocking a module,
// in declaration order. Empty for accessible or unknown modules.
func MissingPrerequisites(def CourseDef, moduleKey string, mods []ModuleProgress) []string {
	md := def.Module(moduleKey)
	if md == nil {
		return nil
	}

	var missing []string
	for _, prereq := range md.Prerequisites {
		if !prerequisiteSatisfied(def, prereq, mods) {
			missing = append(missing, prereq)
		}
	}
	return missing
}

// NextAccessibleModule returns the key of the module following currentKey in
// course order, provided the current module is finished (completed plus
// assessment when it defines one) and the next module's prerequisites are
// satisfied. Returns "" when the learner is blocked or already on the last
// module.
func NextAccessibleModule(def CourseDef, currentKey string, mods []ModuleProgress) string {
	idx := -1
	for i := range def.Modules {
		if def.Modules[i].Key == currentKey {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(def.Modules) {
		return ""
	}

	if !prerequisiteSatisfied(def, currentKey, mods) {
		return ""
	}

	next := def.Modules[idx+1].Key
	if !IsModuleAccessible(def, next, mods) {
		return ""
	}
	return next
}

// ValidateModuleGraph checks a course's prerequisite graph at catalog write
// time: every prerequisite must name a module of the same course, and the
// graph must be acyclic. Runtime gating never walks the graph transitively,
// so rejecting bad definitions here is what keeps it safe.
func ValidateModuleGraph(def CourseDef) error {
	index := make(map[string]int, len(def.Modules))
	for i, m := range def.Modules {
		index[m.Key] = i
	}

	indegree := make([]int, len(def.Modules))
	dependents := make(map[string][]int, len(def.Modules))
	for i, m := range def.Modules {
		for _, prereq := range m.Prerequisites {
			if _, ok := index[prereq]; !ok {
				return ErrUnknownPrerequisite
			}
			indegree[i]++
			dependents[prereq] = append(dependents[prereq], i)
		}
	}

	// Kahn's algorithm: if anything is left with a positive indegree after
	// peeling, the remainder is cyclic.
	queue := make([]int, 0, len(def.Modules))
	for i, d := range indegree {
		if d == 0 {
			queue = append(queue, i)
		}
	}

	visited := 0
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		visited++
		for _, j := range dependents[def.Modules[i].Key] {
			indegree[j]--
			if indegree[j] == 0 {
				queue = append(queue, j)
			}
		}
	}

	if visited != len(def.Modules) {
		return ErrPrerequisiteCycle
	}
	return nil
}
