package notify

import "sync"

// Notification is one recorded message
type Notification struct {
	Severity string
	Message  string
}

// Recorder captures notifications for inspection in tests and in the
// terminal front end, which drains them after each operation.
type Recorder struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Success records a success notification
func (r *Recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Severity: "success", Message: message})
}

// Error records an error notification
func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, Notification{Severity: "error", Message: message})
}

// Drain returns all recorded notifications and empties the recorder
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.notifications
	r.notifications = nil
	return out
}

// Last returns the most recent notification, or a zero value when empty
func (r *Recorder) Last() Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notifications) == 0 {
		return Notification{}
	}
	return r.notifications[len(r.notifications)-1]
}
