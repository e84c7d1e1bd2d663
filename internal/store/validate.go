package store

import (
	"fmt"

	"portfolio.dconn.dev/internal/models"
)

// Problem describes one defect found in a store
type Problem struct {
	Index   int
	ID      string
	Message string
}

func (p Problem) String() string {
	if p.ID == "" {
		return fmt.Sprintf("project #%d: %s", p.Index, p.Message)
	}
	return fmt.Sprintf("project #%d (%s): %s", p.Index, p.ID, p.Message)
}

// Validate checks ids and media of every project and returns the problems found
func Validate(projects []models.Project) []Problem {
	var problems []Problem
	seen := make(map[string]int)

	for i := range projects {
		p := &projects[i]
		if p.ID == "" {
			problems = append(problems, Problem{Index: i, Message: "missing id"})
		} else if first, dup := seen[p.ID]; dup {
			problems = append(problems, Problem{Index: i, ID: p.ID, Message: fmt.Sprintf("duplicate id, first used by project #%d", first)})
		} else {
			seen[p.ID] = i
		}

		for j, m := range p.EffectiveMedia() {
			switch {
			case m.Type != models.MediaImage && m.Type != models.MediaVideo:
				problems = append(problems, Problem{Index: i, ID: p.ID, Message: fmt.Sprintf("media #%d has unknown type %q", j, m.Type)})
			case m.Src == "":
				problems = append(problems, Problem{Index: i, ID: p.ID, Message: fmt.Sprintf("media #%d has no src", j)})
			case m.IsImage() && m.Poster != "":
				problems = append(problems, Problem{Index: i, ID: p.ID, Message: fmt.Sprintf("media #%d: poster is ignored on images", j)})
			}
		}
	}
	return problems
}
