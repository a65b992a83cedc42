// Package candidate loads the optional local candidate profile used for
// cover-letter personalization and location compatibility checks.
package candidate

import (
	"encoding/json"
	"fmt"
	"os"
)

// Profile is a read-only snapshot of the candidate data file. Absence of the
// file (or of individual fields) is a valid state.
type Profile struct {
	Personal PersonalInformation `json:"personal_information"`
	Goals    CareerGoals         `json:"career_goals_and_preferences"`
	Skills   Skills              `json:"skills_and_expertise"`
}

type PersonalInformation struct {
	Name        string `json:"name"`
	PublicEmail string `json:"public_email"`
	Website     string `json:"website"`
	Resume      string `json:"resume"`
	Location    string `json:"location"`
	TimeZone    string `json:"time_zone"`
}

type CareerGoals struct {
	Objective  string   `json:"objective"`
	IdealRoles []string `json:"ideal_roles"`
}

type Skills struct {
	CommunicationAndStrategy []string `json:"communication_and_strategy"`
	AIAndTechnical           []string `json:"ai_and_technical"`
	SoftSkills               []string `json:"soft_skills"`
}

// Load reads the candidate data file. The file holds an array of profiles;
// the first entry wins. A missing file returns (nil, nil) so callers can
// degrade gracefully; a present but unparseable file is an error.
func Load(path string) (*Profile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading candidate data: %w", err)
	}

	var profiles []*Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parsing candidate data: %w", err)
	}

	if len(profiles) == 0 {
		return nil, nil
	}

	return profiles[0], nil
}
