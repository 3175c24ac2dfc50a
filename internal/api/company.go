package api

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Kamal2131/langchain-neo4j/internal/types"
)

// Project statuses the /company/projects filter accepts.
var projectStatuses = map[string]bool{"active": true, "completed": true, "planning": true}

func (s *Server) handleEmployees(w http.ResponseWriter, r *http.Request) {
	department := strings.TrimSpace(r.URL.Query().Get("department"))
	employees, err := s.company.Employees(r.Context(), department)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status")))
	if status != "" && !projectStatuses[status] {
		writeError(w, http.StatusBadRequest, "status must be one of active, completed, planning", types.REQUEST_INVALID, nil)
		return
	}
	projects, err := s.company.Projects(r.Context(), status)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleSkillExperts(w http.ResponseWriter, r *http.Request) {
	experts, err := s.company.SkillExperts(r.Context(), mux.Vars(r)["skill"])
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, experts)
}

func (s *Server) handleDepartmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.company.DepartmentStats(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleEmployeeProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.company.EmployeeProjects(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleProjectTeam(w http.ResponseWriter, r *http.Request) {
	team, err := s.company.ProjectTeam(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}
