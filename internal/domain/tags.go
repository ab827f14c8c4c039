package domain

// Option is one choice of a menu or checklist: Key is stored, Label is shown.
type Option struct {
	Key   string
	Label string
}

// SkipTag is the subject sentinel that leaves a record untagged.
const SkipTag = "skip"

var SubjectTags = []Option{
	{"math", "Math"},
	{"science", "Sciences"},
	{"lang", "Language"},
	{"societies", "Individuals and Societies"},
	{"arts", "Arts"},
	{"misc", "Misc"},
	{SkipTag, "Skip this post"},
}

var ProblemTags = []Option{
	{"teachers", "Lack of quality teachers/teaching"},
	{"ia", "Need IA support"},
	{"workload", "Too high workload"},
	{"confusing", "IB is too confusing"},
	{"resources", "Bad/not enough resources"},
	{"college", "Need college guidance"},
	{"management", "Difficulties with time management or organization"},
	{"mental", "Mental health issues"},
	{"structure", "Poor course structure"},
	{"langbarrier", "Language barrier"},
}

// HasSkip reports whether the subject selection contains the skip sentinel.
func HasSkip(keys []string) bool {
	for _, k := range keys {
		if k == SkipTag {
			return true
		}
	}
	return false
}
