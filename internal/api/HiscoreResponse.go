package api

// Skill is one skill row of a player's hiscore entry.
type Skill struct {
	Name  string `json:"name"`
	Level uint32 `json:"level"`
	XP    uint64 `json:"xp"`
}

// hiscoreResponse mirrors index_lite.json. Pointer fields let the decoder
// tell a missing key apart from a zero value.
type hiscoreResponse struct {
	Skills *[]hiscoreSkill `json:"skills"`
}

type hiscoreSkill struct {
	Name  *string `json:"name"`
	Level *uint32 `json:"level"`
	XP    *uint64 `json:"xp"`
}

func (r *hiscoreResponse) validate() error {
	if r.Skills == nil {
		return missingField("skills")
	}
	for i, s := range *r.Skills {
		switch {
		case s.Name == nil:
			return missingElementField("skills", i, "name")
		case s.Level == nil:
			return missingElementField("skills", i, "level")
		case s.XP == nil:
			return missingElementField("skills", i, "xp")
		}
	}
	return nil
}

func mapHiscoreToSkills(r hiscoreResponse) []Skill {
	skills := make([]Skill, 0, len(*r.Skills))
	for _, s := range *r.Skills {
		skills = append(skills, Skill{
			Name:  *s.Name,
			Level: *s.Level,
			XP:    *s.XP,
		})
	}
	return skills
}
