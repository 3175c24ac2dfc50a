package company

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamal2131/langchain-neo4j/internal/graph"
	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

func connectedGraph(t *testing.T, fn graph.QueryFunc) *graph.MockGraphClient {
	t.Helper()
	client := graph.NewMockGraphClient()
	require.NoError(t, client.Connect(context.Background()))
	if fn != nil {
		client.SetQueryFunc(fn)
	}
	return client
}

func records(rows ...map[string]any) graph.QueryResult {
	return graph.QueryResult{Records: rows}
}

func TestDirectory_Employees(t *testing.T) {
	var gotParams map[string]any
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		assert.Equal(t, employeesQuery, cypher)
		gotParams = params
		return records(
			map[string]any{"name": "Alice Johnson", "email": "alice@example.com", "title": "Full Stack Developer",
				"department": "Engineering", "skills": []any{"Python", nil, "React"}},
			map[string]any{"name": "Carol Davis", "email": "carol@example.com", "title": "Full Stack Developer",
				"department": "Engineering", "skills": []any{}},
		), nil
	})
	dir := NewDirectory(client)

	employees, err := dir.Employees(context.Background(), "Engineering")
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Engineering", gotParams["department"])
	assert.Equal(t, []string{"Python", "React"}, employees[0].Skills)
	assert.Equal(t, []string{}, employees[1].Skills)

	_, err = dir.Employees(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, gotParams["department"])
	assert.Contains(t, gotParams, "department")
}

func TestDirectory_Projects(t *testing.T) {
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		assert.Equal(t, "active", params["status"])
		return records(map[string]any{"project_id": "PRJ-001", "name": "AI Chatbot", "status": "active",
			"description": "Customer support assistant", "team_size": int64(3)}), nil
	})

	projects, err := NewDirectory(client).Projects(context.Background(), "active")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, Project{ProjectID: "PRJ-001", Name: "AI Chatbot", Status: "active",
		Description: "Customer support assistant", TeamSize: 3}, projects[0])
}

func TestDirectory_SkillExperts(t *testing.T) {
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		if params["skill"] != "Python" {
			return records(), nil
		}
		return records(
			map[string]any{"name": "Alice Johnson", "email": "alice@example.com", "title": "Full Stack Developer",
				"department": "Engineering", "proficiency": int64(5), "years": int64(7)},
			map[string]any{"name": "Bob Smith", "email": "bob@example.com", "title": "Data Engineer",
				"department": "Data Science", "proficiency": int64(5), "years": int64(5)},
		), nil
	})
	dir := NewDirectory(client)

	experts, err := dir.SkillExperts(context.Background(), "Python")
	require.NoError(t, err)
	assert.Equal(t, "Python", experts.Skill)
	require.Len(t, experts.Experts, 2)
	assert.Equal(t, int64(7), experts.Experts[0].YearsExperience)

	_, err = dir.SkillExperts(context.Background(), "COBOL")
	assert.True(t, types.HasCode(err, ErrCodeNotFound))
}

func TestDirectory_DepartmentStats(t *testing.T) {
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		assert.Equal(t, departmentStatsQuery, cypher)
		return records(
			map[string]any{"department": "Engineering", "employee_count": int64(2), "active_projects": int64(1)},
			map[string]any{"department": "Platform", "employee_count": int64(1), "active_projects": int64(1)},
		), nil
	})

	stats, err := NewDirectory(client).DepartmentStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []DepartmentStats{
		{Department: "Engineering", EmployeeCount: 2, ActiveProjects: 1},
		{Department: "Platform", EmployeeCount: 1, ActiveProjects: 1},
	}, stats)
}

func TestDirectory_EmployeeProjects(t *testing.T) {
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		if params["email"] != "bob@example.com" {
			return records(), nil
		}
		return records(map[string]any{"project_id": "PRJ-002", "name": "Data Pipeline", "status": "active",
			"role": "Lead Engineer", "hours": int64(30)}), nil
	})
	dir := NewDirectory(client)

	got, err := dir.EmployeeProjects(context.Background(), "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", got.Email)
	require.Len(t, got.Projects, 1)
	assert.Equal(t, int64(30), got.Projects[0].HoursPerWeek)

	_, err = dir.EmployeeProjects(context.Background(), "nobody@example.com")
	assert.True(t, types.HasCode(err, ErrCodeNotFound))
}

func TestDirectory_ProjectTeam(t *testing.T) {
	client := connectedGraph(t, func(ctx context.Context, cypher string, params map[string]any) (graph.QueryResult, error) {
		switch params["project_id"] {
		case "PRJ-001":
			return records(
				map[string]any{"project_name": "AI Chatbot", "status": "active", "employee_name": "Bob Smith",
					"email": "bob@example.com", "title": "Data Engineer", "department": "Data Science", "project_role": "Data Engineer"},
				map[string]any{"project_name": "AI Chatbot", "status": "active", "employee_name": "Alice Johnson",
					"email": "alice@example.com", "title": "Full Stack Developer", "department": "Engineering", "project_role": "Lead Developer"},
			), nil
		case "PRJ-009":
			return records(map[string]any{"project_name": "Empty", "status": "planning", "employee_name": nil}), nil
		}
		return records(), nil
	})
	dir := NewDirectory(client)

	team, err := dir.ProjectTeam(context.Background(), "PRJ-001")
	require.NoError(t, err)
	assert.Equal(t, "AI Chatbot", team.ProjectName)
	assert.Len(t, team.Team, 2)

	empty, err := dir.ProjectTeam(context.Background(), "PRJ-009")
	require.NoError(t, err)
	assert.Equal(t, "Empty", empty.ProjectName)
	assert.Empty(t, empty.Team)

	_, err = dir.ProjectTeam(context.Background(), "PRJ-404")
	assert.True(t, types.HasCode(err, ErrCodeNotFound))
}

func TestDirectory_StoreErrors(t *testing.T) {
	offline := NewDirectory(graph.NewMockGraphClient())
	_, err := offline.DepartmentStats(context.Background())
	assert.True(t, types.HasCode(err, ErrCodeStoreUnavailable))

	client := connectedGraph(t, nil)
	client.AddQueryError(types.NewError(graph.ErrCodeGraphQueryFailed, "boom"))
	_, err = NewDirectory(client).Projects(context.Background(), "")
	assert.True(t, types.HasCode(err, ErrCodeQueryFailed))
}
