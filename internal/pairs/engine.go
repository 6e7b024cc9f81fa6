package pairs

import (
	"sync"
	"time"

	"github.com/rocketscienceinc/pairmatch-backend/internal/entity"
)

const (
	// MatchAward is added to the score for every matched pair.
	MatchAward = 10
	// MismatchPenalty is subtracted for every failed pair attempt; the score
	// never goes below zero.
	MismatchPenalty = 5

	// PeekDelay is how long a mismatched pair stays face-up before it is
	// concealed again.
	PeekDelay = time.Second
	// TickInterval is the elapsed-time counter period.
	TickInterval = time.Second
)

// Observer is called after every state mutation. It carries no payload; the
// observer re-reads Snapshot.
type Observer func()

// Engine is the memory-match state machine for one round: it owns the deck,
// the pending first selection, the score, the elapsed-time counter and the
// finished flag. All mutation goes through Flip and Reset; scheduler callbacks
// re-enter through the same guarded paths, serialized by one mutex.
type Engine struct {
	mu sync.Mutex

	cards     []*entity.Card
	pending   *entity.Card
	resolving bool
	score     int
	elapsed   int
	started   bool
	finished  bool

	// round fences stale scheduler callbacks: every callback captures the
	// round it was scheduled in and gives up if Reset bumped it since.
	round uint64

	scheduler Scheduler
	stopTick  CancelFunc
	stopPeek  CancelFunc

	observers []Observer
}

// NewEngine deals a fresh shuffled deck. The timer does not start until the
// first accepted flip.
func NewEngine(scheduler Scheduler) *Engine {
	return &Engine{
		cards:     NewDeck(),
		scheduler: scheduler,
	}
}

// Subscribe registers an observer notified after every state mutation.
func (that *Engine) Subscribe(observer Observer) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.observers = append(that.observers, observer)
}

// Flip reveals the card with the given ID and resolves the pair attempt when
// it is the second card revealed. It is a silent no-op while a mismatch is
// being shown, and for cards that are unknown, already face-up or matched.
func (that *Engine) Flip(cardID int) {
	that.mu.Lock()

	card := that.cardByIDLocked(cardID)
	if card == nil || that.resolving || card.FaceUp || card.Matched {
		that.mu.Unlock()
		return
	}

	if !that.started {
		that.startTimerLocked()
	}

	card.FaceUp = true

	if that.pending == nil {
		that.pending = card
		that.mu.Unlock()
		that.notify()

		return
	}

	first := that.pending
	that.pending = nil

	if first.Content == card.Content {
		that.resolveMatchLocked(first, card)
		that.mu.Unlock()
		that.notify()

		return
	}

	that.score -= MismatchPenalty
	if that.score < 0 {
		that.score = 0
	}

	that.resolving = true

	round := that.round
	that.stopPeek = that.scheduler.Once(PeekDelay, func() {
		that.concealMismatch(round, first, card)
	})

	that.mu.Unlock()
	that.notify()
}

// Reset abandons the current round and deals a fresh deck: selection, score,
// elapsed time and the finished flag are cleared, running timers are cancelled.
// Safe to call at any point, including while a mismatch conceal is pending.
func (that *Engine) Reset() {
	that.mu.Lock()

	that.cancelTimersLocked()
	that.round++
	that.cards = NewDeck()
	that.pending = nil
	that.resolving = false
	that.score = 0
	that.elapsed = 0
	that.started = false
	that.finished = false

	that.mu.Unlock()
	that.notify()
}

// Snapshot returns a deep copy of the observable state. Mutating the returned
// value never affects the engine.
func (that *Engine) Snapshot() *entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	cards := make([]*entity.Card, len(that.cards))
	for i, card := range that.cards {
		copied := *card
		cards[i] = &copied
	}

	return &entity.Game{
		Cards:   cards,
		Score:   that.score,
		Elapsed: that.elapsed,
		Status:  that.statusLocked(),
	}
}

// resolveMatchLocked marks both cards matched, awards the score and evaluates
// the win condition. Finding the last pair is the only path to finished.
func (that *Engine) resolveMatchLocked(first, second *entity.Card) {
	first.Matched = true
	second.Matched = true
	that.score += MatchAward

	for _, card := range that.cards {
		if !card.Matched {
			return
		}
	}

	that.cancelTimersLocked()
	that.finished = true
}

// concealMismatch turns a mismatched pair face-down again once the peek delay
// elapses. A reset in between supersedes it: the round check guarantees a
// stale callback never touches the new deck.
func (that *Engine) concealMismatch(round uint64, first, second *entity.Card) {
	that.mu.Lock()

	if round != that.round {
		that.mu.Unlock()
		return
	}

	first.FaceUp = false
	second.FaceUp = false
	that.resolving = false
	that.stopPeek = nil

	that.mu.Unlock()
	that.notify()
}

func (that *Engine) tick(round uint64) {
	that.mu.Lock()

	if round != that.round || that.finished {
		that.mu.Unlock()
		return
	}

	that.elapsed++

	that.mu.Unlock()
	that.notify()
}

func (that *Engine) startTimerLocked() {
	that.started = true

	round := that.round
	that.stopTick = that.scheduler.Every(TickInterval, func() {
		that.tick(round)
	})
}

func (that *Engine) cancelTimersLocked() {
	if that.stopTick != nil {
		that.stopTick()
		that.stopTick = nil
	}

	if that.stopPeek != nil {
		that.stopPeek()
		that.stopPeek = nil
	}
}

func (that *Engine) cardByIDLocked(cardID int) *entity.Card {
	for _, card := range that.cards {
		if card.ID == cardID {
			return card
		}
	}

	return nil
}

func (that *Engine) statusLocked() string {
	switch {
	case that.finished:
		return entity.StatusFinished
	case that.started:
		return entity.StatusOngoing
	default:
		return entity.StatusWaiting
	}
}

// notify is always called outside the mutex so observers can call Snapshot.
func (that *Engine) notify() {
	that.mu.Lock()
	observers := make([]Observer, len(that.observers))
	copy(observers, that.observers)
	that.mu.Unlock()

	for _, observer := range observers {
		observer()
	}
}
