package infra

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/maxsound/backend/internal/models"
	"github.com/maxsound/backend/internal/ports"
)

type WebPushNotifier struct {
	store      ports.PushStore
	subject    string
	publicKey  string
	privateKey string
	enabled    bool
}

func NewWebPushNotifier(store ports.PushStore, subject, publicKey, privateKey string) ports.Notifier {
	enabled := publicKey != "" && privateKey != ""
	if !enabled {
		log.Println("WARN: VAPID keys not configured; push disabled")
	}
	return &WebPushNotifier{
		store:      store,
		subject:    subject,
		publicKey:  publicKey,
		privateKey: privateKey,
		enabled:    enabled,
	}
}

// NotifyNewTrack fans the announcement out to every stored subscription.
// Per-subscription failures are logged and skipped; endpoints the push
// service reports gone (404/410) are pruned.
func (n *WebPushNotifier) NotifyNewTrack(ctx context.Context, track *models.Track) error {
	if !n.enabled {
		return nil
	}

	subs, err := n.store.ListSubscriptions(ctx)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]string{
		"title": "New upload on MAXSOUND",
		"body":  track.Artist + " – " + track.Title,
		"url":   "/track/" + track.ID,
	})
	if err != nil {
		return err
	}

	for _, row := range subs {
		var sub webpush.Subscription
		if err := json.Unmarshal(row.Data, &sub); err != nil {
			log.Printf("[PUSH][BAD-SUB] endpoint=%s err=%v", row.Endpoint, err)
			continue
		}

		resp, err := webpush.SendNotification(payload, &sub, &webpush.Options{
			Subscriber:      n.subject,
			VAPIDPublicKey:  n.publicKey,
			VAPIDPrivateKey: n.privateKey,
			TTL:             60,
		})
		if err != nil {
			log.Printf("[PUSH][FAIL] endpoint=%s err=%v", row.Endpoint, err)
			continue
		}

		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			_ = n.store.RemoveSubscription(ctx, row.Endpoint)
		}
		resp.Body.Close()
	}

	return nil
}
