package models

// Document - все состояние системы. Хранится целиком одним документом.
// Коллекции упорядочены по времени создания.
type Document struct {
	Templates   []Template   `json:"templates"`
	Tournaments []Tournament `json:"tournaments"`
	Teams       []Team       `json:"teams"`
	Submissions []Submission `json:"submissions"`
}

func NewDocument() *Document {
	return &Document{
		Templates:   []Template{},
		Tournaments: []Tournament{},
		Teams:       []Team{},
		Submissions: []Submission{},
	}
}

// Normalize replaces nil collections, e.g. after decoding an older or partial file.
func (d *Document) Normalize() {
	if d.Templates == nil {
		d.Templates = []Template{}
	}
	if d.Tournaments == nil {
		d.Tournaments = []Tournament{}
	}
	if d.Teams == nil {
		d.Teams = []Team{}
	}
	if d.Submissions == nil {
		d.Submissions = []Submission{}
	}
}

// Clone returns a deep copy; mutations on the copy never leak into d.
func (d *Document) Clone() *Document {
	out := &Document{
		Templates:   make([]Template, len(d.Templates)),
		Tournaments: make([]Tournament, len(d.Tournaments)),
		Teams:       make([]Team, len(d.Teams)),
		Submissions: make([]Submission, len(d.Submissions)),
	}
	for i, t := range d.Templates {
		out.Templates[i] = t.Clone()
	}
	for i, t := range d.Tournaments {
		out.Tournaments[i] = t.Clone()
	}
	copy(out.Teams, d.Teams)
	for i, s := range d.Submissions {
		out.Submissions[i] = s.Clone()
	}
	return out
}

// --- Lookups. Возвращают указатель внутрь документа, nil если не найдено. ---

func (d *Document) TemplateByID(id string) *Template {
	for i := range d.Templates {
		if d.Templates[i].ID == id {
			return &d.Templates[i]
		}
	}
	return nil
}

func (d *Document) TemplateBySlug(slug string) *Template {
	for i := range d.Templates {
		if d.Templates[i].Slug == slug {
			return &d.Templates[i]
		}
	}
	return nil
}

func (d *Document) TournamentByID(id string) *Tournament {
	for i := range d.Tournaments {
		if d.Tournaments[i].ID == id {
			return &d.Tournaments[i]
		}
	}
	return nil
}

// OpenTournamentsForScope returns every Registration/Active tournament of the scope, oldest first.
func (d *Document) OpenTournamentsForScope(scopeID string) []*Tournament {
	var out []*Tournament
	for i := range d.Tournaments {
		if d.Tournaments[i].ScopeID == scopeID && d.Tournaments[i].IsOpen() {
			out = append(out, &d.Tournaments[i])
		}
	}
	return out
}

func (d *Document) TeamByID(id string) *Team {
	for i := range d.Teams {
		if d.Teams[i].ID == id {
			return &d.Teams[i]
		}
	}
	return nil
}

func (d *Document) TeamsByTournament(tournamentID string) []Team {
	out := make([]Team, 0)
	for _, t := range d.Teams {
		if t.TournamentID == tournamentID {
			out = append(out, t)
		}
	}
	return out
}

func (d *Document) TeamByCaptain(captainID, tournamentID string) *Team {
	for i := range d.Teams {
		if d.Teams[i].CaptainID == captainID && d.Teams[i].TournamentID == tournamentID {
			return &d.Teams[i]
		}
	}
	return nil
}

func (d *Document) SubmissionByID(id string) *Submission {
	for i := range d.Submissions {
		if d.Submissions[i].ID == id {
			return &d.Submissions[i]
		}
	}
	return nil
}

// SubmissionsByTeams returns the submissions of the given teams in document order.
func (d *Document) SubmissionsByTeams(teamIDs map[string]struct{}) []Submission {
	out := make([]Submission, 0)
	for _, s := range d.Submissions {
		if _, ok := teamIDs[s.TeamID]; ok {
			out = append(out, s)
		}
	}
	return out
}
