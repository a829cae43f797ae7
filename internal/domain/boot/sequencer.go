package boot

import "time"

// Phase represents the startup phase of a shell session
type Phase int

const (
	// PhaseLogo shows the boot logo until the logo delay elapses
	PhaseLogo Phase = iota
	// PhaseHello plays the greeting animation and waits for activation
	PhaseHello
	// PhaseMain is the interactive shell; terminal for the session
	PhaseMain
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseLogo:
		return "logo"
	case PhaseHello:
		return "hello"
	case PhaseMain:
		return "main"
	default:
		return "unknown"
	}
}

// DefaultLogoDelay is how long the logo stays up before the greeting
const DefaultLogoDelay = 2 * time.Second

// Sequencer drives Logo -> Hello -> Main. There are no backward transitions.
//
// Sequencer is not safe for concurrent use. The timer callback passed to
// Start runs on the scheduler's goroutine, so the owner must take its own
// lock before calling LogoElapsed from it.
type Sequencer struct {
	phase         Phase
	delay         time.Duration
	scheduler     Scheduler
	timer         Timer
	animationDone bool
}

// NewSequencer creates a sequencer in PhaseLogo
func NewSequencer(delay time.Duration, scheduler Scheduler) *Sequencer {
	if delay <= 0 {
		delay = DefaultLogoDelay
	}
	if scheduler == nil {
		scheduler = RealScheduler{}
	}
	return &Sequencer{
		phase:     PhaseLogo,
		delay:     delay,
		scheduler: scheduler,
	}
}

// Phase returns the current phase
func (s *Sequencer) Phase() Phase {
	return s.phase
}

// Ready reports whether the shell may mount
func (s *Sequencer) Ready() bool {
	return s.phase == PhaseMain
}

// Start arms the logo timer; fire is invoked once the delay elapses and
// should call LogoElapsed under the owner's lock. Start is a no-op outside
// PhaseLogo or when already armed.
func (s *Sequencer) Start(fire func()) {
	if s.phase != PhaseLogo || s.timer != nil {
		return
	}
	s.timer = s.scheduler.AfterFunc(s.delay, fire)
}

// LogoElapsed advances Logo -> Hello. Reports whether the phase changed.
func (s *Sequencer) LogoElapsed() bool {
	if s.phase != PhaseLogo {
		return false
	}
	s.timer = nil
	s.phase = PhaseHello
	return true
}

// AnimationComplete records that the greeting animation finished.
// Only meaningful in PhaseHello.
func (s *Sequencer) AnimationComplete() {
	if s.phase == PhaseHello {
		s.animationDone = true
	}
}

// AnimationDone reports whether the greeting animation has finished
func (s *Sequencer) AnimationDone() bool {
	return s.animationDone
}

// Activate handles the user's activation click. It advances Hello -> Main
// only after AnimationComplete; earlier clicks are dropped, not queued.
func (s *Sequencer) Activate() bool {
	if s.phase != PhaseHello || !s.animationDone {
		return false
	}
	s.phase = PhaseMain
	return true
}

// Skip jumps straight to PhaseMain, cancelling any pending timer
func (s *Sequencer) Skip() {
	s.Stop()
	s.phase = PhaseMain
}

// Stop cancels the pending logo timer, if any
func (s *Sequencer) Stop() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
