package delivery

import (
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hTracks *TrackHandler, hCheckout *CheckoutHandler, hUploads *UploadHandler, hPush *PushHandler) {
	r.Route("/api", func(r chi.Router) {
		// catalog
		r.Get("/tracks", hTracks.List)
		r.Get("/tracks/{id}", hTracks.Get)
		r.Delete("/tracks/{id}", hTracks.Delete)
		r.Get("/tracks/{id}/purchased", hTracks.Purchased)

		// checkout
		r.Post("/checkout/intent", hCheckout.CreateIntent)
		r.Post("/checkout/session", hCheckout.CreateSession)
		r.Get("/checkout/verify", hCheckout.Verify)
		r.Post("/checkout/confirm", hCheckout.Confirm)

		// admin upload
		r.Post("/uploads", hUploads.Create)

		// push subscriptions
		r.Get("/push/public-key", hPush.PublicKey)
		r.Post("/push/subscribe", hPush.Subscribe)
		r.Delete("/push/subscribe", hPush.Unsubscribe)
	})
}
