package algorithms

import "gigwork_backend/internal/models"

// MatchedSkills returns the names of the job skills the user also has,
// preserving the job's skill order. Matching is id-based: having at
// least one shared skill makes a user a match.
func MatchedSkills(jobSkills, userSkills []models.Skill) []string {
	if len(jobSkills) == 0 || len(userSkills) == 0 {
		return nil
	}

	userSet := make(map[string]bool, len(userSkills))
	for _, s := range userSkills {
		userSet[s.ID] = true
	}

	var matched []string
	for _, s := range jobSkills {
		if userSet[s.ID] {
			matched = append(matched, s.Name)
		}
	}
	return matched
}

// ContainsProfileType reports whether the applicant profile type is in
// the job's accepted set. An empty set accepts everyone.
func ContainsProfileType(accepted []string, profileType string) bool {
	if len(accepted) == 0 {
		return true
	}
	for _, t := range accepted {
		if t == profileType {
			return true
		}
	}
	return false
}
