package workflow

import "fmt"

// Step is one stage of the terms authoring flow.
type Step int

const (
	StepDomainSelection Step = iota + 1
	StepStandardTerms
	StepCustomClauses
	StepReview
)

var stepNames = map[Step]string{
	StepDomainSelection: "domainSelection",
	StepStandardTerms:   "standardTerms",
	StepCustomClauses:   "customClauses",
	StepReview:          "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

func (s Step) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid workflow step %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Step) UnmarshalText(b []byte) error {
	for step, name := range stepNames {
		if name == string(b) {
			*s = step
			return nil
		}
	}
	return fmt.Errorf("unknown workflow step %q", string(b))
}
