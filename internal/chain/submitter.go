package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrAlreadySubmitted - результат сессии уже отправлен или отправляется.
	ErrAlreadySubmitted = errors.New("result already submitted")
	// ErrNothingToRetry - повтор возможен только после неудачи.
	ErrNothingToRetry = errors.New("no failed submission to retry")
)

// Outcome - итог сессии, как его видит контракт.
type Outcome struct {
	Victory        bool
	WavesCleared   int
	LivesRemaining int
}

// Submission - что и куда отправить.
// Если ChallengeID задан, вызывается play_challenge, иначе play_and_submit.
type Submission struct {
	Outcome     Outcome
	TowerID     string
	ChallengeID string
	Payment     uint64
}

// Result - итог одной попытки отправки.
type Result struct {
	Attempt int
	Auto    bool // попытка сделана автоматически
	Err     error
	Final   bool // дальше попыток не будет без действия игрока (или успех)
	Message string
	Event   any // GameCompletedEvent или ChallengeCompletedEvent
}

type submitState int

const (
	submitIdle submitState = iota
	submitPending
	submitFailed
	submitDone
)

// Submitter отправляет итог одной сессии не больше одного раза.
// После неудачи делается один автоматический повтор, дальше только Retry.
type Submitter struct {
	contract Contract
	timeout  time.Duration
	results  chan Result
	log      zerolog.Logger

	mu       sync.Mutex
	state    submitState
	sub      Submission
	attempts int
	wg       sync.WaitGroup
}

func NewSubmitter(contract Contract, timeout time.Duration, log zerolog.Logger) *Submitter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Submitter{
		contract: contract,
		timeout:  timeout,
		results:  make(chan Result, 4),
		log:      log,
	}
}

// Results - канал, который разбирает игровой цикл.
func (s *Submitter) Results() <-chan Result { return s.results }

// Submit запускает отправку. Повторный вызов возвращает ErrAlreadySubmitted.
func (s *Submitter) Submit(sub Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != submitIdle {
		return ErrAlreadySubmitted
	}
	s.sub = sub
	s.state = submitPending
	s.start(true)
	return nil
}

// Retry повторяет неудавшуюся отправку по команде игрока.
func (s *Submitter) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case submitFailed:
	case submitIdle:
		return ErrNothingToRetry
	default:
		return ErrAlreadySubmitted
	}
	s.state = submitPending
	s.start(false)
	return nil
}

// Pending сообщает, идёт ли отправка.
func (s *Submitter) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == submitPending
}

// Done сообщает, что результат принят контрактом.
func (s *Submitter) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == submitDone
}

// Failed сообщает, что можно нажать Retry.
func (s *Submitter) Failed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == submitFailed
}

// Wait ждёт завершения фоновых попыток.
func (s *Submitter) Wait() { s.wg.Wait() }

// start вызывается под s.mu.
func (s *Submitter) start(allowAutoRetry bool) {
	sub := s.sub
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(sub, allowAutoRetry)
	}()
}

func (s *Submitter) run(sub Submission, allowAutoRetry bool) {
	for auto := false; ; auto = true {
		s.mu.Lock()
		s.attempts++
		attempt := s.attempts
		s.mu.Unlock()

		ev, err := s.call(sub)
		if err == nil {
			s.finish(submitDone)
			s.log.Info().Int("attempt", attempt).Msg("result submitted")
			s.emit(Result{Attempt: attempt, Auto: auto, Final: true, Message: successMessage(sub, ev), Event: ev})
			return
		}

		s.log.Warn().Err(err).Int("attempt", attempt).Bool("auto", auto).Msg("submission failed")
		if allowAutoRetry && !auto {
			s.emit(Result{Attempt: attempt, Err: err, Message: fmt.Sprintf("Submission failed: %v. Retrying...", err)})
			continue
		}
		s.finish(submitFailed)
		s.emit(Result{Attempt: attempt, Auto: auto, Err: err, Final: true,
			Message: fmt.Sprintf("Submission failed: %v. Press R to retry.", err)})
		return
	}
}

// emit не блокирует: если цикл игры не разбирает канал, самый старый результат выбрасывается.
func (s *Submitter) emit(r Result) {
	for {
		select {
		case s.results <- r:
			return
		default:
		}
		select {
		case <-s.results:
		default:
		}
	}
}

func (s *Submitter) finish(st submitState) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

func (s *Submitter) call(sub Submission) (any, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if sub.ChallengeID != "" {
		return s.contract.PlayChallenge(ctx, sub.ChallengeID, sub.Payment, sub.Outcome.Victory)
	}
	waves := sub.Outcome.WavesCleared
	if waves < 0 {
		waves = 0
	}
	if waves > 255 {
		waves = 255
	}
	return s.contract.PlayAndSubmit(ctx, sub.TowerID, sub.Payment, uint8(waves))
}

func successMessage(sub Submission, ev any) string {
	switch e := ev.(type) {
	case ChallengeCompletedEvent:
		if e.Success {
			return fmt.Sprintf("Challenge completed! Reward %.4f SUI sent to your wallet!", MistToSui(uint64(e.Reward)))
		}
		return "Challenge failed. Entry fee forfeited."
	case GameCompletedEvent:
		if e.WavesCleared == 0 {
			return "Result submitted. Your tower was destroyed."
		}
		return fmt.Sprintf("Result submitted: %d waves cleared, tower returned.", e.WavesCleared)
	}
	return "Result submitted."
}
