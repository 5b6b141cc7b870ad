package notify

import "sync"

// Recorder merkt sich alle Toasts ohne Throttling. Für Tests.
type Recorder struct {
	mu     sync.Mutex
	Toasts []Toast
}

func (r *Recorder) Success(message string) { r.add(LevelSuccess, message) }
func (r *Recorder) Error(message string)   { r.add(LevelError, message) }
func (r *Recorder) Warning(message string) { r.add(LevelWarning, message) }
func (r *Recorder) Info(message string)    { r.add(LevelInfo, message) }

func (r *Recorder) add(level Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, Toast{Level: level, Message: message})
}

// Messages liefert die Texte aller Toasts eines Levels.
func (r *Recorder) Messages(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, t := range r.Toasts {
		if t.Level == level {
			out = append(out, t.Message)
		}
	}
	return out
}
