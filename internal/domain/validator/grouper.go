package validator

import "github.com/openkraft/visionboard/internal/domain"

// GroupByProject partitions records by owning project. Every project in
// projects is present as a key, even with no records; records pointing at a
// project outside the list are dropped. Record order is preserved per project.
func GroupByProject[R any](records []R, projectID func(R) int64, projects []domain.Project) map[int64][]R {
	groups := make(map[int64][]R, len(projects))
	for _, p := range projects {
		groups[p.ID] = nil
	}

	for _, r := range records {
		id := projectID(r)
		rs, ok := groups[id]
		if !ok {
			continue
		}
		groups[id] = append(rs, r)
	}

	return groups
}
