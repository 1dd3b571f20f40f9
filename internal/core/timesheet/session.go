package timesheet

import (
	"sync"

	"github.com/google/uuid"
)

// SessionState は保存セッションの状態です。
type SessionState string

const (
	StateIdle              SessionState = "idle"
	StateValidating        SessionState = "validating"
	StateCheckingDuplicate SessionState = "checking_duplicate"
	StatePersisting        SessionState = "persisting"
)

// SaveSession は 1 グリッドの保存フローを守る単一飛行ガードです。
// Idle → Validating → CheckingDuplicate → Persisting → Idle の順でのみ
// 遷移し、キャンセルは Idle / Validating からのみ許可されます。
type SaveSession struct {
	mu    sync.Mutex
	id    string
	state SessionState
}

// NewSaveSession は Idle 状態のセッションを生成します。
func NewSaveSession() *SaveSession {
	return &SaveSession{id: uuid.NewString(), state: StateIdle}
}

// ID はセッション識別子を返します。
func (s *SaveSession) ID() string {
	return s.id
}

// State は現在の状態を返します。
func (s *SaveSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Saving は保存フローが進行中かどうかを返します。呼び出し側は
// 二重保存を発行する前にこのフラグを確認します。
func (s *SaveSession) Saving() bool {
	return s.State() != StateIdle
}

// begin は Idle から Validating へ遷移します。進行中であれば
// ErrSaveInProgress を返します。
func (s *SaveSession) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle {
		return ErrSaveInProgress
	}
	s.state = StateValidating
	return nil
}

// advance は保存フローの次段階へ遷移します。
func (s *SaveSession) advance(next SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sessionSuccessor(s.state) != next {
		return ErrInvalidTransition
	}
	s.state = next
	return nil
}

// finish は状態を Idle に戻します。結果の成否によらず保存フローの
// 終端で呼ばれます。
func (s *SaveSession) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateIdle
}

// Cancel は保存フローを中断します。永続化段階に入った後の
// キャンセルは許可されません（書き込みはロールバックされないため）。
func (s *SaveSession) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateIdle:
		return nil
	case StateValidating:
		s.state = StateIdle
		return nil
	default:
		return ErrCancelNotAllowed
	}
}

func sessionSuccessor(state SessionState) SessionState {
	switch state {
	case StateValidating:
		return StateCheckingDuplicate
	case StateCheckingDuplicate:
		return StatePersisting
	default:
		return ""
	}
}
