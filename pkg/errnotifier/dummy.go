package errnotifier

// DummyNotifier doing nothing, just stub implementation for test purposes
// and for runs without a bugsnag key configured.
type DummyNotifier struct{}

// NewDummyNotifier creates new dummy notifier.
func NewDummyNotifier() *DummyNotifier {
	return &DummyNotifier{}
}

func (n *DummyNotifier) NotifyError(err error) {}
func (n *DummyNotifier) NotifyTaskError(taskID, projectID string, err error) {}
