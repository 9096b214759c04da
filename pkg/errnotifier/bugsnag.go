package errnotifier

import (
	"github.com/bugsnag/bugsnag-go"

	"github.com/nittiva/trackboard/pkg/config"
)

type BugSnagNotifier struct {
	apiKey  string
	envType string
}

func NewBugSnagNotifier(APIKey, envType string) *BugSnagNotifier {
	bn := &BugSnagNotifier{
		apiKey:  APIKey,
		envType: envType,
	}

	bugsnag.Configure(bugsnag.Configuration{
		APIKey:       bn.apiKey,
		ReleaseStage: bn.envType,
		NotifyReleaseStages: []string{
			config.EnvTypeProduction,
			config.EnvTypeStaging,
		},
		// more configuration options
	})

	return bn
}

// NotifyError notifies bugsnag with error.
func (n *BugSnagNotifier) NotifyError(err error) {
	bugsnag.Notify(err)
}

// NotifyTaskError notifies bugsnag with metadata for a failed task push.
func (n *BugSnagNotifier) NotifyTaskError(taskID, projectID string, err error) {
	bugsnag.Notify(err, bugsnag.MetaData{
		"task": {
			"ID":        taskID,
			"ProjectID": projectID,
		},
	})
}
