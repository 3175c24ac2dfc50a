package company

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/observability"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

const (
	employeesQuery = `MATCH (e:Employee)-[:WORKS_IN]->(d:Department)
WHERE $department IS NULL OR d.name = $department
OPTIONAL MATCH (e)-[:HAS_SKILL]->(s:Skill)
RETURN e.name AS name, e.email AS email, e.title AS title,
       d.name AS department, collect(DISTINCT s.name) AS skills
ORDER BY department, name`

	projectsQuery = `MATCH (p:Project)
WHERE $status IS NULL OR p.status = $status
OPTIONAL MATCH (e:Employee)-[:WORKS_ON]->(p)
RETURN p.project_id AS project_id, p.name AS name, p.status AS status,
       p.description AS description, count(DISTINCT e) AS team_size
ORDER BY name`

	expertsQuery = `MATCH (e:Employee)-[r:HAS_SKILL]->(s:Skill {name: $skill})
OPTIONAL MATCH (e)-[:WORKS_IN]->(d:Department)
RETURN e.name AS name, e.email AS email, e.title AS title,
       d.name AS department, r.proficiency AS proficiency, r.years AS years
ORDER BY proficiency DESC, years DESC, name`

	departmentStatsQuery = `MATCH (d:Department)
OPTIONAL MATCH (e:Employee)-[:WORKS_IN]->(d)
OPTIONAL MATCH (e)-[:WORKS_ON]->(p:Project {status: 'active'})
RETURN d.name AS department, count(DISTINCT e) AS employee_count,
       count(DISTINCT p) AS active_projects
ORDER BY employee_count DESC, department`

	employeeProjectsQuery = `MATCH (e:Employee {email: $email})-[r:WORKS_ON]->(p:Project)
RETURN p.project_id AS project_id, p.name AS name, p.status AS status,
       r.role AS role, r.hours_per_week AS hours
ORDER BY status, name`

	projectTeamQuery = `MATCH (p:Project {project_id: $project_id})
OPTIONAL MATCH (e:Employee)-[r:WORKS_ON]->(p)
OPTIONAL MATCH (e)-[:WORKS_IN]->(d:Department)
RETURN p.name AS project_name, p.status AS status,
       e.name AS employee_name, e.email AS email, e.title AS title,
       d.name AS department, r.role AS project_role
ORDER BY project_role, employee_name`
)

// Directory reads the company knowledge base out of the graph.
type Directory struct {
	client graph.GraphClient
	logger *observability.TracedLogger
}

// Option configures a Directory.
type Option func(*Directory)

// WithLogger sets the logger.
func WithLogger(logger *observability.TracedLogger) Option {
	return func(d *Directory) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDirectory creates a Directory over client.
func NewDirectory(client graph.GraphClient, opts ...Option) *Directory {
	d := &Directory{
		client: client,
		logger: observability.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Employees lists employees, restricted to one department when department is not empty.
func (d *Directory) Employees(ctx context.Context, department string) ([]Employee, error) {
	res, err := d.query(ctx, "employees", employeesQuery, map[string]any{"department": optional(department)})
	if err != nil {
		return nil, err
	}

	employees := make([]Employee, 0, len(res.Records))
	for _, row := range res.Records {
		employees = append(employees, Employee{
			Name:       str(row["name"]),
			Email:      str(row["email"]),
			Title:      str(row["title"]),
			Department: str(row["department"]),
			Skills:     strs(row["skills"]),
		})
	}
	d.logger.Info(ctx, "retrieved employees", "count", len(employees), "department", department)
	return employees, nil
}

// Projects lists projects, restricted to one status when status is not empty.
func (d *Directory) Projects(ctx context.Context, status string) ([]Project, error) {
	res, err := d.query(ctx, "projects", projectsQuery, map[string]any{"status": optional(status)})
	if err != nil {
		return nil, err
	}

	projects := make([]Project, 0, len(res.Records))
	for _, row := range res.Records {
		projects = append(projects, Project{
			ProjectID:   str(row["project_id"]),
			Name:        str(row["name"]),
			Status:      str(row["status"]),
			Description: str(row["description"]),
			TeamSize:    num(row["team_size"]),
		})
	}
	d.logger.Info(ctx, "retrieved projects", "count", len(projects), "status", status)
	return projects, nil
}

// SkillExperts lists who holds skill, most proficient first.
// A skill nobody holds is ErrCodeNotFound.
func (d *Directory) SkillExperts(ctx context.Context, skill string) (*SkillExperts, error) {
	res, err := d.query(ctx, "skill experts", expertsQuery, map[string]any{"skill": skill})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, types.NewError(ErrCodeNotFound, "no experts found for skill: "+skill)
	}

	out := &SkillExperts{Skill: skill, Experts: make([]Expert, 0, len(res.Records))}
	for _, row := range res.Records {
		out.Experts = append(out.Experts, Expert{
			Name:            str(row["name"]),
			Email:           str(row["email"]),
			Title:           str(row["title"]),
			Department:      str(row["department"]),
			Proficiency:     num(row["proficiency"]),
			YearsExperience: num(row["years"]),
		})
	}
	d.logger.Info(ctx, "retrieved skill experts", "skill", skill, "count", len(out.Experts))
	return out, nil
}

// DepartmentStats counts people and active projects per department, largest first.
func (d *Directory) DepartmentStats(ctx context.Context) ([]DepartmentStats, error) {
	res, err := d.query(ctx, "department stats", departmentStatsQuery, nil)
	if err != nil {
		return nil, err
	}

	stats := make([]DepartmentStats, 0, len(res.Records))
	for _, row := range res.Records {
		stats = append(stats, DepartmentStats{
			Department:     str(row["department"]),
			EmployeeCount:  num(row["employee_count"]),
			ActiveProjects: num(row["active_projects"]),
		})
	}
	return stats, nil
}

// EmployeeProjects lists the projects the employee with email works on.
// An unknown email, or one with no projects, is ErrCodeNotFound.
func (d *Directory) EmployeeProjects(ctx context.Context, email string) (*EmployeeProjects, error) {
	res, err := d.query(ctx, "employee projects", employeeProjectsQuery, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, types.NewError(ErrCodeNotFound, "no projects found for employee: "+email)
	}

	out := &EmployeeProjects{Email: email, Projects: make([]Assignment, 0, len(res.Records))}
	for _, row := range res.Records {
		out.Projects = append(out.Projects, Assignment{
			ProjectID:    str(row["project_id"]),
			Name:         str(row["name"]),
			Status:       str(row["status"]),
			Role:         str(row["role"]),
			HoursPerWeek: num(row["hours"]),
		})
	}
	return out, nil
}

// ProjectTeam returns a project with its members. A project with nobody on
// it has an empty team; an unknown project id is ErrCodeNotFound.
func (d *Directory) ProjectTeam(ctx context.Context, projectID string) (*ProjectTeam, error) {
	res, err := d.query(ctx, "project team", projectTeamQuery, map[string]any{"project_id": projectID})
	if err != nil {
		return nil, err
	}
	if len(res.Records) == 0 {
		return nil, types.NewError(ErrCodeNotFound, "project not found: "+projectID)
	}

	first := res.Records[0]
	out := &ProjectTeam{
		ProjectID:   projectID,
		ProjectName: str(first["project_name"]),
		Status:      str(first["status"]),
		Team:        make([]TeamMember, 0, len(res.Records)),
	}
	for _, row := range res.Records {
		// OPTIONAL MATCH yields one row of nulls for an empty team
		if row["employee_name"] == nil {
			continue
		}
		out.Team = append(out.Team, TeamMember{
			Name:        str(row["employee_name"]),
			Email:       str(row["email"]),
			Title:       str(row["title"]),
			Department:  str(row["department"]),
			ProjectRole: str(row["project_role"]),
		})
	}
	return out, nil
}

func (d *Directory) query(ctx context.Context, what, cypher string, params map[string]any) (graph.QueryResult, error) {
	ctx, span := observability.StartSpan(ctx, "company.query", attribute.String("company.read", what))
	res, err := d.client.Query(ctx, cypher, params)
	observability.EndSpan(span, err)
	if err != nil {
		d.logger.Error(ctx, "company query failed", "read", what, "error", err)
		return graph.QueryResult{}, wrapStoreError(what, err)
	}
	return res, nil
}

// optional maps an empty filter to null so the query's IS NULL branch matches everything.
func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func str(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func num(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func strs(v any) []string {
	out := []string{}
	switch list := v.(type) {
	case []string:
		for _, s := range list {
			if s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range list {
			if s := str(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
