// Package store is the persistence collaborator: a session-keyed in-memory
// store for resumes, job requirements, and chat history. Records are replaced
// wholesale on write (last write wins, no field-level merge). The only error
// the store surfaces is not-found for an unknown session.
package store

import (
	"sync"

	"github.com/google/uuid"

	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// SessionStore holds per-session records behind an RWMutex. Safe for
// concurrent use.
type SessionStore struct {
	mu      sync.RWMutex
	resumes map[string]types.ResumeRecord
	jobs    map[string]types.JobRequirements
	chats   map[string][]types.ChatTurn
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		resumes: make(map[string]types.ResumeRecord),
		jobs:    make(map[string]types.JobRequirements),
		chats:   make(map[string][]types.ChatTurn),
	}
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}

func notFound(kind, sessionID string) *errors.AppError {
	return errors.NewNotFoundError(errors.ErrCodeRecordNotFound, "no "+kind+" stored for session", nil).
		WithContext("session_id", sessionID)
}

// SaveResume stores the record under sessionID, replacing any previous one.
func (s *SessionStore) SaveResume(sessionID string, record types.ResumeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[sessionID] = record
}

// GetResume returns the record stored under sessionID.
func (s *SessionStore) GetResume(sessionID string) (types.ResumeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.resumes[sessionID]
	if !ok {
		return types.ResumeRecord{}, notFound("resume", sessionID)
	}
	return record, nil
}

// DeleteResume removes the resume stored under sessionID. The chat history
// goes with it, since chat is always about the stored resume.
func (s *SessionStore) DeleteResume(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resumes, sessionID)
	delete(s.chats, sessionID)
}

// SaveJob stores the requirements under sessionID, replacing any previous one.
func (s *SessionStore) SaveJob(sessionID string, job types.JobRequirements) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[sessionID] = job
}

// GetJob returns the requirements stored under sessionID.
func (s *SessionStore) GetJob(sessionID string) (types.JobRequirements, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[sessionID]
	if !ok {
		return types.JobRequirements{}, notFound("job", sessionID)
	}
	return job, nil
}

// DeleteJob removes the job requirements stored under sessionID.
func (s *SessionStore) DeleteJob(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, sessionID)
}

// SaveChat stores the conversation history under sessionID wholesale.
func (s *SessionStore) SaveChat(sessionID string, turns []types.ChatTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[sessionID] = append([]types.ChatTurn(nil), turns...)
}

// GetChat returns the conversation history for sessionID. A session with no
// chat yet returns an empty history, not an error: chat begins implicitly.
func (s *SessionStore) GetChat(sessionID string) []types.ChatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.ChatTurn(nil), s.chats[sessionID]...)
}

// DeleteSession removes every record kept for sessionID. Deleting an unknown
// session is a no-op.
func (s *SessionStore) DeleteSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resumes, sessionID)
	delete(s.jobs, sessionID)
	delete(s.chats, sessionID)
}

// Stats reports how many records each map currently holds.
func (s *SessionStore) Stats() (resumes, jobs, chats int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resumes), len(s.jobs), len(s.chats)
}
