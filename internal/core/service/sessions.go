package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/lodestone-labs/relnav/internal/core/domain"
	"github.com/lodestone-labs/relnav/internal/core/port"
	"go.opentelemetry.io/otel/trace"
)

// Session is one live connection: a backend, the latest table snapshot, and
// the drill-down navigator bound to it. Table snapshots are replaced
// atomically; the navigator and classifier only ever read them.
type Session struct {
	ID      string
	Profile string
	Dialect domain.Dialect

	backend *port.Backend
	nav     *Navigator
	query   *QueryService
	tables  atomic.Pointer[[]domain.TableDescriptor]
}

// Tables returns the current schema snapshot. Implements TableSource.
func (s *Session) Tables() []domain.TableDescriptor {
	if p := s.tables.Load(); p != nil {
		return *p
	}
	return nil
}

// RefreshTables re-introspects the schema and swaps in the new snapshot.
func (s *Session) RefreshTables(ctx context.Context) ([]domain.TableDescriptor, error) {
	snapshot, err := s.backend.Catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing table snapshot: %w", err)
	}
	s.tables.Store(&snapshot)
	return snapshot, nil
}

// ClassifyColumn reports the table a column appears to reference, if any,
// against the session's current snapshot.
func (s *Session) ClassifyColumn(column string) (string, bool) {
	return domain.ClassifyForeignKey(column, s.Tables())
}

func (s *Session) Navigator() *Navigator { return s.nav }

func (s *Session) Query() *QueryService { return s.query }

func (s *Session) close() {
	s.nav.Close()
	if s.backend.Close != nil {
		s.backend.Close()
	}
}

// ConnectionSpec describes how to open a session.
type ConnectionSpec struct {
	Profile string // display name; may be empty for ad-hoc connections
	URL     string
	Dialect domain.Dialect
}

// SessionManager owns all live sessions, keyed by opaque ids. Each session
// gets its own Navigator, so independent drill-down stacks never share
// token bookkeeping.
type SessionManager struct {
	connector port.BackendConnector
	validator StatementValidator
	auditor   port.LookupAuditor
	logger    *slog.Logger
	tracer    trace.Tracer
	inst      port.Instrumentation

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionManager(connector port.BackendConnector, validator StatementValidator, auditor port.LookupAuditor, logger *slog.Logger, tracer trace.Tracer, inst port.Instrumentation) *SessionManager {
	return &SessionManager{
		connector: connector,
		validator: validator,
		auditor:   auditor,
		logger:    logger,
		tracer:    tracer,
		inst:      inst,
		sessions:  make(map[string]*Session),
	}
}

// Connect opens a backend for spec, takes an initial schema snapshot, and
// registers a new session. Only the postgres dialect has an execution
// backend today; other dialects are accepted by the synthesizer but cannot
// be connected.
func (m *SessionManager) Connect(ctx context.Context, spec ConnectionSpec) (*Session, error) {
	if spec.Dialect == "" {
		spec.Dialect = domain.DialectPostgres
	}
	if spec.Dialect != domain.DialectPostgres {
		return nil, fmt.Errorf("dialect %q: no execution backend available", spec.Dialect)
	}

	backend, err := m.connector.Connect(ctx, spec.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting: %w", err)
	}

	sess := &Session{
		ID:      uuid.NewString(),
		Profile: spec.Profile,
		Dialect: spec.Dialect,
		backend: backend,
	}
	sess.nav = NewNavigator(sess, spec.Dialect, backend.Executor, m.auditor, m.logger, m.tracer, m.inst)
	sess.query = NewQueryService(m.validator, backend.Executor, m.auditor, m.logger, m.tracer, m.inst)

	if _, err := sess.RefreshTables(ctx); err != nil {
		if backend.Close != nil {
			backend.Close()
		}
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	m.logger.Info("session connected",
		slog.String("session_id", sess.ID),
		slog.String("profile", spec.Profile),
		slog.String("dialect", string(spec.Dialect)),
		slog.Int("tables", len(sess.Tables())),
	)
	return sess, nil
}

// Get looks up a live session by id.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	return sess, ok
}

// Disconnect closes and removes a session. Returns false when the id is
// unknown.
func (m *SessionManager) Disconnect(id string) bool {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return false
	}
	sess.close()
	m.logger.Info("session disconnected", slog.String("session_id", id))
	return true
}

// CloseAll tears down every live session; used at shutdown.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.close()
	}
}
