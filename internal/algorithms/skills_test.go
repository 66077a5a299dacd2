package algorithms

import (
	"testing"

	"gigwork_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func skill(id, name string) models.Skill {
	return models.Skill{BaseModel: models.BaseModel{ID: id}, Name: name}
}

func TestMatchedSkillsPreservesJobOrder(t *testing.T) {
	jobSkills := []models.Skill{skill("1", "Go"), skill("2", "SQL"), skill("3", "Docker")}
	userSkills := []models.Skill{skill("3", "Docker"), skill("1", "Go")}

	assert.Equal(t, []string{"Go", "Docker"}, MatchedSkills(jobSkills, userSkills))
}

func TestMatchedSkillsNoOverlap(t *testing.T) {
	jobSkills := []models.Skill{skill("1", "Go")}
	userSkills := []models.Skill{skill("2", "SQL")}

	assert.Nil(t, MatchedSkills(jobSkills, userSkills))
	assert.Nil(t, MatchedSkills(nil, userSkills))
	assert.Nil(t, MatchedSkills(jobSkills, nil))
}

func TestContainsProfileType(t *testing.T) {
	assert.True(t, ContainsProfileType(nil, models.ProfileTypeIndividual))
	assert.True(t, ContainsProfileType([]string{models.ProfileTypeAgency}, models.ProfileTypeAgency))
	assert.False(t, ContainsProfileType([]string{models.ProfileTypeAgency}, models.ProfileTypeIndividual))
}
