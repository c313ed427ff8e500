package responses

// Entry — сырая запись товара как пришла с бэкенда. Формы полей гуляют от
// интеграции к интеграции, поэтому держим map и разбираем в нормализаторе.
type Entry struct {
	Raw map[string]any
}

type TeamMember struct {
	Name      string `json:"name"`
	GithubURL string `json:"githubUrl"`
	Role      string `json:"role,omitempty"`
}

type Team struct {
	ID       string       `json:"id,omitempty"`
	Team     string       `json:"team"`
	Nickname string       `json:"nickname"`
	Members  []TeamMember `json:"members"`
}
