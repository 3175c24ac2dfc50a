package company

// Employee is one person with their department and skills.
type Employee struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Title      string   `json:"title"`
	Department string   `json:"department"`
	Skills     []string `json:"skills"`
}

// Project summarizes a project and how many people work on it.
type Project struct {
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Description string `json:"description"`
	TeamSize    int64  `json:"team_size"`
}

// Expert is an employee holding a skill, with how well and how long.
type Expert struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Title           string `json:"title"`
	Department      string `json:"department"`
	Proficiency     int64  `json:"proficiency"`
	YearsExperience int64  `json:"years_experience"`
}

// SkillExperts lists the experts for one skill, strongest first.
type SkillExperts struct {
	Skill   string   `json:"skill"`
	Experts []Expert `json:"experts"`
}

// DepartmentStats counts a department's people and the active projects they staff.
type DepartmentStats struct {
	Department     string `json:"department"`
	EmployeeCount  int64  `json:"employee_count"`
	ActiveProjects int64  `json:"active_projects"`
}

// Assignment is one project an employee works on.
type Assignment struct {
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	Role         string `json:"role"`
	HoursPerWeek int64  `json:"hours_per_week"`
}

// EmployeeProjects lists the projects of one employee.
type EmployeeProjects struct {
	Email    string       `json:"email"`
	Projects []Assignment `json:"projects"`
}

// TeamMember is one person on a project team.
type TeamMember struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Title       string `json:"title"`
	Department  string `json:"department"`
	ProjectRole string `json:"project_role"`
}

// ProjectTeam is a project and everyone working on it.
type ProjectTeam struct {
	ProjectID   string       `json:"project_id"`
	ProjectName string       `json:"project_name"`
	Status      string       `json:"status"`
	Team        []TeamMember `json:"team"`
}
