package events

import "github.com/dshills/keyline/internal/event/topic"

// TopicConfigReloaded is published when the configuration file changed and
// was loaded again.
const TopicConfigReloaded topic.Topic = "config.reloaded"

// ConfigReloaded carries the path of the reloaded file and the error, if
// the new content could not be applied.
type ConfigReloaded struct {
	Path string
	Err  error
}
