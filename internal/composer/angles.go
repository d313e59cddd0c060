package composer

// focusAngles lists 3-4 per-class focus angles (spec.md §4.8), grounded
// on original_source's question_strategies.py file-helper selection
// logic generalized from "pick a different file set per question index"
// to "pick a different angle per question".
var focusAngles = map[FileClass][]string{
	ClassController: {
		"request handling",
		"validation and error handling",
		"API design",
		"authentication and authorization",
	},
	ClassService: {
		"business logic",
		"orchestration across collaborators",
		"transaction boundaries",
		"error propagation",
	},
	ClassModel: {
		"data modeling",
		"validation constraints",
		"relationships between entities",
		"schema evolution",
	},
	ClassConfiguration: {
		"environment-specific overrides",
		"secret and credential handling",
		"default values and fallbacks",
	},
	ClassUtility: {
		"reusability across callers",
		"edge-case handling",
		"performance characteristics",
	},
	ClassFrontend: {
		"state management",
		"rendering behavior",
		"accessibility",
		"API integration",
	},
	ClassGeneral: {
		"code organization",
		"maintainability",
		"testing approach",
	},
}

// anglesFor returns the focus angles for a class, falling back to the
// general set.
func anglesFor(c FileClass) []string {
	if a, ok := focusAngles[c]; ok {
		return a
	}
	return focusAngles[ClassGeneral]
}

// pickAngle deterministically selects one focus angle per (file,
// question index) pair so repeated composition of the same file across
// a session cycles through its angles instead of repeating one, in
// place of the Python original's random.choice (kept deterministic here
// so MMR idempotence-style guarantees extend to prompt composition).
func pickAngle(c FileClass, questionIndex int) string {
	angles := anglesFor(c)
	return angles[questionIndex%len(angles)]
}
