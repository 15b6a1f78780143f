package session_models

// PreferenceRecord is one participant's constraints for the outing.
// Records are never edited once they join a session.
type PreferenceRecord struct {
	Name          string   `json:"name"`
	Budget        int      `json:"budget"`
	Days          []string `json:"days"`
	Times         []string `json:"times"`
	ActivityLevel string   `json:"activity_level"`
	Setting       string   `json:"setting"`
	Interests     []string `json:"interests"`
	Cuisines      []string `json:"cuisines"`
	Dietary       []string `json:"dietary"`
	Transport     string   `json:"transport"`
}

// Clone copies the collection fields so the stored record cannot be mutated through the caller's slices.
func (p PreferenceRecord) Clone() PreferenceRecord {
	out := p
	out.Days = cloneStrings(p.Days)
	out.Times = cloneStrings(p.Times)
	out.Interests = cloneStrings(p.Interests)
	out.Cuisines = cloneStrings(p.Cuisines)
	out.Dietary = cloneStrings(p.Dietary)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
