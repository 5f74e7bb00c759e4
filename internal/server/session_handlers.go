package server

import (
	"net/http"

	"resumeforge/internal/types"
)

// Session CRUD handlers. Records are replaced wholesale on PUT; there is no
// field-level patching.

func (s *Server) putResumeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var record types.ResumeRecord
	if err := parseJSONRequest(r, &record); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	s.Services.Store.SaveResume(sessionID, record)
	s.Logger.Debug("Resume stored", "session_id", sessionID)

	writeJSONResponse(w, map[string]string{"sessionId": sessionID})
}

func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	record, err := s.Services.Store.GetResume(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSONResponse(w, record)
}

func (s *Server) deleteResumeHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	s.Services.Store.DeleteResume(sessionID)
	s.Logger.Debug("Resume deleted", "session_id", sessionID)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putJobHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	var job types.JobRequirements
	if err := parseJSONRequest(r, &job); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	s.Services.Store.SaveJob(sessionID, job)
	s.Logger.Debug("Job stored", "session_id", sessionID)

	writeJSONResponse(w, map[string]string{"sessionId": sessionID})
}

func (s *Server) getJobHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	job, err := s.Services.Store.GetJob(sessionID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	writeJSONResponse(w, job)
}

func (s *Server) deleteJobHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	s.Services.Store.DeleteJob(sessionID)
	s.Logger.Debug("Job deleted", "session_id", sessionID)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	s.Services.Store.DeleteSession(sessionID)
	s.Logger.Debug("Session deleted", "session_id", sessionID)

	w.WriteHeader(http.StatusNoContent)
}
