package models

import "encoding/json"

// PushSubscription stores a browser push subscription as the raw JSON the
// browser handed us, keyed by its endpoint.
type PushSubscription struct {
	Endpoint string          `db:"endpoint"`
	Data     json.RawMessage `db:"data"`
}
