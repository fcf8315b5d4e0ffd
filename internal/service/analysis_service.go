package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/formsense/motion-backend-go/internal/analysis"
	"github.com/formsense/motion-backend-go/internal/models"
	"github.com/formsense/motion-backend-go/internal/profiles"
)

// ErrSessionNotFound is returned for operations on unknown or already
// ended sessions
var ErrSessionNotFound = errors.New("session not found")

// liveSession pairs an analyzer with the lock that serializes frame
// delivery to it. The analysis core is single-threaded by contract;
// the service is the host, so serialization is its job.
type liveSession struct {
	mu       sync.Mutex
	analyzer *analysis.Analyzer
}

// AnalysisService owns the live analysis sessions: one analyzer per
// session id, created against the read-only profile registry and
// destroyed when the session ends.
type AnalysisService struct {
	registry *profiles.Registry
	log      logrus.FieldLogger

	mu       sync.RWMutex
	sessions map[string]*liveSession
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(registry *profiles.Registry, log logrus.FieldLogger) *AnalysisService {
	return &AnalysisService{
		registry: registry,
		log:      log.WithField("component", "analysis_service"),
		sessions: make(map[string]*liveSession),
	}
}

// StartSession creates a session for the given exercise. An unknown
// exercise id fails here, at construction, never mid-session.
func (s *AnalysisService) StartSession(exerciseID string) (string, error) {
	profile, err := s.registry.Get(exerciseID)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = &liveSession{
		analyzer: analysis.NewAnalyzer(id, profile, s.log, time.Now()),
	}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"session_id": id,
		"exercise":   exerciseID,
	}).Info("session started")

	return id, nil
}

// ProcessFrame delivers one pose frame to the session's analyzer.
// Calls for the same session are serialized.
func (s *AnalysisService) ProcessFrame(sessionID string, frame *models.PoseFrame) (models.FrameResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return models.FrameResult{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.analyzer.ProcessFrame(frame), nil
}

// ResetSet clears per-set state between sets of the same exercise
func (s *AnalysisService) ResetSet(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.analyzer.ResetForNewSet(time.Now())
	return nil
}

// Summary returns the session summary without ending the session
func (s *AnalysisService) Summary(sessionID string) (models.SessionSummary, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return models.SessionSummary{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.analyzer.Summary(time.Now()), nil
}

// EndSession produces the final summary and destroys the analyzer.
// Discarding the instance is the cancellation mechanism; nothing is
// persisted.
func (s *AnalysisService) EndSession(sessionID string) (models.SessionSummary, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return models.SessionSummary{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	summary := sess.analyzer.Summary(time.Now())

	s.log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"reps":       summary.TotalReps,
		"avg_score":  summary.AverageFormScore,
	}).Info("session ended")

	return summary, nil
}

func (s *AnalysisService) session(id string) (*liveSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}
